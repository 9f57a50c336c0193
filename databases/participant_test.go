package databases_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/batepapo/chatroom-api/config"
	"github.com/batepapo/chatroom-api/databases"
	"github.com/batepapo/chatroom-api/databases/mocks"
	"github.com/batepapo/chatroom-api/models"
)

func TestNewParticipantDatabase(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	conf := config.New()

	dbClient, err := databases.NewClient(conf)
	assert.NoError(t, err)

	db := databases.NewDatabase(conf, dbClient)

	participantDB := databases.NewParticipantDatabase(db)

	assert.NotEmpty(t, participantDB)
}

func duplicateKeyError() error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000}},
	}
}

func TestParticipantDatabase_Join(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	insertedID := primitive.NewObjectID()
	var inserted models.Participant
	collectionHelper.
		On("InsertOne", mock.Anything, mock.AnythingOfType("models.Participant")).
		Return(insertedID, nil).
		Run(func(args mock.Arguments) {
			inserted = args.Get(1).(models.Participant)
		})
	dbHelper.On("Collection", "participants").Return(collectionHelper)

	participantDB := databases.NewParticipantDatabase(dbHelper)

	participant, err := participantDB.Join(context.Background(), "Alice")
	assert.NoError(t, err)
	assert.Equal(t, "Alice", participant.Name)
	assert.Equal(t, insertedID, participant.ID)

	// stored record carries the case-folded key the unique index guards
	assert.Equal(t, "alice", inserted.NameKey)
	assert.NotZero(t, inserted.LastSeen)
}

func TestParticipantDatabase_JoinNameTaken(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.
		On("InsertOne", mock.Anything, mock.AnythingOfType("models.Participant")).
		Return(nil, duplicateKeyError())
	dbHelper.On("Collection", "participants").Return(collectionHelper)

	participantDB := databases.NewParticipantDatabase(dbHelper)

	_, err := participantDB.Join(context.Background(), "alice")
	assert.ErrorIs(t, err, models.ErrNameTaken)
}

func TestParticipantDatabase_Heartbeat(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.
		On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1}, nil)
	dbHelper.On("Collection", "participants").Return(collectionHelper)

	participantDB := databases.NewParticipantDatabase(dbHelper)

	assert.NoError(t, participantDB.Heartbeat(context.Background(), "Alice"))
}

func TestParticipantDatabase_HeartbeatNotFound(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.
		On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 0}, nil)
	dbHelper.On("Collection", "participants").Return(collectionHelper)

	participantDB := databases.NewParticipantDatabase(dbHelper)

	err := participantDB.Heartbeat(context.Background(), "ghost")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestParticipantDatabase_GetNotFound(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	srHelper := &mocks.SingleResultHelper{}

	srHelper.On("Decode", mock.Anything).Return(mongo.ErrNoDocuments)
	collectionHelper.On("FindOne", mock.Anything, mock.Anything).Return(srHelper)
	dbHelper.On("Collection", "participants").Return(collectionHelper)

	participantDB := databases.NewParticipantDatabase(dbHelper)

	_, err := participantDB.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestParticipantDatabase_List(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	cursorHelper := &mocks.CursorHelper{}

	cursorHelper.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.Participant)
		*arg = []models.Participant{{Name: "Alice"}, {Name: "Bob"}}
	})
	collectionHelper.On("Find", mock.Anything, mock.Anything).Return(cursorHelper, nil)
	dbHelper.On("Collection", "participants").Return(collectionHelper)

	participantDB := databases.NewParticipantDatabase(dbHelper)

	participants, err := participantDB.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, participants, 2)
}

func TestParticipantDatabase_ExpireOlderThan(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	srStale := &mocks.SingleResultHelper{}
	srDone := &mocks.SingleResultHelper{}

	srStale.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*models.Participant)
		arg.Name = "Alice"
		arg.NameKey = "alice"
	})
	srDone.On("Decode", mock.Anything).Return(mongo.ErrNoDocuments)

	// one stale record claimed, then the filter is exhausted
	collectionHelper.On("FindOneAndDelete", mock.Anything, mock.Anything).Return(srStale).Once()
	collectionHelper.On("FindOneAndDelete", mock.Anything, mock.Anything).Return(srDone)
	dbHelper.On("Collection", "participants").Return(collectionHelper)

	participantDB := databases.NewParticipantDatabase(dbHelper)

	evicted, err := participantDB.ExpireOlderThan(context.Background(), time.Now())
	assert.NoError(t, err)
	assert.Len(t, evicted, 1)
	assert.Equal(t, "Alice", evicted[0].Name)
}

func TestParticipantDatabase_ExpireOlderThanEmpty(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	srDone := &mocks.SingleResultHelper{}

	srDone.On("Decode", mock.Anything).Return(mongo.ErrNoDocuments)
	collectionHelper.On("FindOneAndDelete", mock.Anything, mock.Anything).Return(srDone)
	dbHelper.On("Collection", "participants").Return(collectionHelper)

	participantDB := databases.NewParticipantDatabase(dbHelper)

	evicted, err := participantDB.ExpireOlderThan(context.Background(), time.Now())
	assert.NoError(t, err)
	assert.Empty(t, evicted)
}

func TestParticipantDatabase_ExpireOlderThanStorageError(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	srErr := &mocks.SingleResultHelper{}

	srErr.On("Decode", mock.Anything).Return(errors.New("mocked-error"))
	collectionHelper.On("FindOneAndDelete", mock.Anything, mock.Anything).Return(srErr)
	dbHelper.On("Collection", "participants").Return(collectionHelper)

	participantDB := databases.NewParticipantDatabase(dbHelper)

	_, err := participantDB.ExpireOlderThan(context.Background(), time.Now())
	assert.ErrorIs(t, err, models.ErrStorage)
}

func TestParticipantDatabase_Count(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(2), nil)
	dbHelper.On("Collection", "participants").Return(collectionHelper)

	participantDB := databases.NewParticipantDatabase(dbHelper)

	count, err := participantDB.Count(context.Background())
	assert.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestParticipantDatabase_CountStorageError(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), errors.New("mocked-error"))
	dbHelper.On("Collection", "participants").Return(collectionHelper)

	participantDB := databases.NewParticipantDatabase(dbHelper)

	_, err := participantDB.Count(context.Background())
	assert.ErrorIs(t, err, models.ErrStorage)
}
