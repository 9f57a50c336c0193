package databases

// go generate: mockery --name MessageDatabase

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/batepapo/chatroom-api/models"
)

const messageCollectionName = "messages"

// MessageDatabase is the append-only message log. Authorization (ownership,
// status immutability) is the caller's job; this layer only stores, patches
// and windows records.
type MessageDatabase interface {
	Append(ctx context.Context, message models.Message) (primitive.ObjectID, error)
	AppendBatch(ctx context.Context, messages []models.Message) ([]primitive.ObjectID, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Message, error)
	Update(ctx context.Context, id primitive.ObjectID, patch models.MessagePatch) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	VisibleTo(ctx context.Context, user string, limit int64) ([]models.Message, error)
}

type messageDatabase struct {
	db DatabaseHelper
}

// NewMessageDatabase initializes a new instance of message database with the provided db connection
func NewMessageDatabase(db DatabaseHelper) MessageDatabase {
	return &messageDatabase{
		db: db,
	}
}

func (m *messageDatabase) Append(ctx context.Context, message models.Message) (primitive.ObjectID, error) {
	id, err := m.db.Collection(messageCollectionName).InsertOne(ctx, message.Keyed())
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: insert message: %v", models.ErrStorage, err)
	}
	oid, ok := id.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("%w: unexpected inserted id type %T", models.ErrStorage, id)
	}
	return oid, nil
}

// AppendBatch inserts the messages as one ordered InsertMany so a sweep's
// departure notices land contiguously in the log.
func (m *messageDatabase) AppendBatch(ctx context.Context, messages []models.Message) ([]primitive.ObjectID, error) {
	documents := make([]interface{}, len(messages))
	for i, message := range messages {
		documents[i] = message.Keyed()
	}

	ids, err := m.db.Collection(messageCollectionName).InsertMany(ctx, documents)
	if err != nil {
		return nil, fmt.Errorf("%w: insert messages: %v", models.ErrStorage, err)
	}

	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, ok := id.(primitive.ObjectID); ok {
			oids = append(oids, oid)
		}
	}
	return oids, nil
}

func (m *messageDatabase) Get(ctx context.Context, id primitive.ObjectID) (*models.Message, error) {
	message := &models.Message{}
	err := m.db.Collection(messageCollectionName).FindOne(ctx, bson.M{"_id": id}).Decode(message)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find message: %v", models.ErrStorage, err)
	}
	return message, nil
}

func (m *messageDatabase) Update(ctx context.Context, id primitive.ObjectID, patch models.MessagePatch) error {
	// a patched recipient re-derives its key so visibility stays consistent
	if patch.To != nil {
		key := models.NormalizeName(*patch.To)
		patch.ToKey = &key
	}
	res, err := m.db.Collection(messageCollectionName).
		UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": patch})
	if err != nil {
		return fmt.Errorf("%w: update message: %v", models.ErrStorage, err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (m *messageDatabase) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := m.db.Collection(messageCollectionName).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%w: delete message: %v", models.ErrStorage, err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// visibilityFilter selects the records a user may see: broadcasts, status
// notices, anything addressed to everyone, and the user's own private
// traffic in either direction. Matching runs on the normalized key fields
// so "Bob" sees messages addressed to "bob".
func visibilityFilter(user string) bson.M {
	key := models.NormalizeName(user)
	return bson.M{"$or": []bson.M{
		{"kind": models.KindBroadcast},
		{"kind": models.KindStatus},
		{"toKey": key},
		{"fromKey": key},
		{"toKey": models.BroadcastRecipient},
	}}
}

// VisibleTo returns the most recent limit messages visible to user, oldest
// first. The filter runs over the full log and the window is taken from its
// tail, so the result is always the newest N *qualifying* records.
func (m *messageDatabase) VisibleTo(ctx context.Context, user string, limit int64) ([]models.Message, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "sentAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit)

	cursor, err := m.db.Collection(messageCollectionName).Find(ctx, visibilityFilter(user), opts)
	if err != nil {
		return nil, fmt.Errorf("%w: find messages: %v", models.ErrStorage, err)
	}

	var messages []models.Message
	if err := cursor.Decode(&messages); err != nil {
		return nil, fmt.Errorf("%w: decode messages: %v", models.ErrStorage, err)
	}

	// query returned newest first, history reads oldest first
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
