package databases

// go generate: mockery --name ParticipantDatabase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/batepapo/chatroom-api/models"
)

const participantCollectionName = "participants"

// ParticipantDatabase is the participant registry: it tracks who is in the
// room and when each participant was last seen
type ParticipantDatabase interface {
	EnsureIndexes(ctx context.Context) error
	Join(ctx context.Context, name string) (*models.Participant, error)
	Heartbeat(ctx context.Context, name string) error
	Get(ctx context.Context, name string) (*models.Participant, error)
	List(ctx context.Context) ([]models.Participant, error)
	Count(ctx context.Context) (int64, error)
	Remove(ctx context.Context, name string) error
	ExpireOlderThan(ctx context.Context, threshold time.Time) ([]models.Participant, error)
}

type participantDatabase struct {
	db  DatabaseHelper
	now func() time.Time
}

// NewParticipantDatabase initializes a new instance of participant database with the provided db connection
func NewParticipantDatabase(db DatabaseHelper) ParticipantDatabase {
	return &participantDatabase{
		db:  db,
		now: time.Now,
	}
}

// EnsureIndexes creates the unique index on the normalized name. Join relies
// on it: the index makes check-and-insert a single atomic operation, so two
// concurrent joins for the same name cannot both succeed.
func (p *participantDatabase) EnsureIndexes(ctx context.Context) error {
	return p.db.Collection(participantCollectionName).EnsureIndex(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "nameKey", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
}

func (p *participantDatabase) Join(ctx context.Context, name string) (*models.Participant, error) {
	participant := models.Participant{
		Name:     name,
		NameKey:  models.NormalizeName(name),
		LastSeen: primitive.NewDateTimeFromTime(p.now()),
	}

	id, err := p.db.Collection(participantCollectionName).InsertOne(ctx, participant)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, models.ErrNameTaken
		}
		return nil, fmt.Errorf("%w: insert participant: %v", models.ErrStorage, err)
	}
	if oid, ok := id.(primitive.ObjectID); ok {
		participant.ID = oid
	}
	return &participant, nil
}

func (p *participantDatabase) Heartbeat(ctx context.Context, name string) error {
	res, err := p.db.Collection(participantCollectionName).UpdateOne(ctx,
		bson.M{"nameKey": models.NormalizeName(name)},
		bson.M{"$set": bson.M{"lastSeen": primitive.NewDateTimeFromTime(p.now())}},
	)
	if err != nil {
		return fmt.Errorf("%w: update lastSeen: %v", models.ErrStorage, err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (p *participantDatabase) Get(ctx context.Context, name string) (*models.Participant, error) {
	participant := &models.Participant{}
	err := p.db.Collection(participantCollectionName).
		FindOne(ctx, bson.M{"nameKey": models.NormalizeName(name)}).
		Decode(participant)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find participant: %v", models.ErrStorage, err)
	}
	return participant, nil
}

func (p *participantDatabase) List(ctx context.Context) ([]models.Participant, error) {
	cursor, err := p.db.Collection(participantCollectionName).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%w: find participants: %v", models.ErrStorage, err)
	}
	var participants []models.Participant
	if err := cursor.Decode(&participants); err != nil {
		return nil, fmt.Errorf("%w: decode participants: %v", models.ErrStorage, err)
	}
	return participants, nil
}

// Count returns the number of participants currently in the room
func (p *participantDatabase) Count(ctx context.Context) (int64, error) {
	count, err := p.db.Collection(participantCollectionName).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("%w: count participants: %v", models.ErrStorage, err)
	}
	return count, nil
}

func (p *participantDatabase) Remove(ctx context.Context, name string) error {
	res, err := p.db.Collection(participantCollectionName).
		DeleteOne(ctx, bson.M{"nameKey": models.NormalizeName(name)})
	if err != nil {
		return fmt.Errorf("%w: delete participant: %v", models.ErrStorage, err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ExpireOlderThan removes and returns every participant whose lastSeen is
// older than threshold. Each record is claimed with FindOneAndDelete, so a
// participant is handed to exactly one caller even when two sweeps overlap,
// and a heartbeat landing mid-scan keeps its participant alive.
func (p *participantDatabase) ExpireOlderThan(ctx context.Context, threshold time.Time) ([]models.Participant, error) {
	coll := p.db.Collection(participantCollectionName)
	filter := bson.M{"lastSeen": bson.M{"$lt": primitive.NewDateTimeFromTime(threshold)}}

	var evicted []models.Participant
	for {
		participant := models.Participant{}
		err := coll.FindOneAndDelete(ctx, filter).Decode(&participant)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return evicted, nil
		}
		if err != nil {
			return evicted, fmt.Errorf("%w: expire participants: %v", models.ErrStorage, err)
		}
		evicted = append(evicted, participant)
	}
}
