package handlers_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/batepapo/chatroom-api/api/handlers"
	"github.com/batepapo/chatroom-api/config"
	"github.com/batepapo/chatroom-api/databases/mocks"
	"github.com/batepapo/chatroom-api/models"
)

func testConfig() *config.Config {
	return &config.Config{
		DefaultPageSize:   100,
		MaxPageSize:       500,
		ValidateRecipient: true,
	}
}

func TestParticipant_JoinHandler(t *testing.T) {
	pDB := &mocks.ParticipantDatabase{}
	mDB := &mocks.MessageDatabase{}

	pDB.On("Join", mock.Anything, "Alice").
		Return(&models.Participant{ID: primitive.NewObjectID(), Name: "Alice", NameKey: "alice"}, nil)
	mDB.On("Append", mock.Anything, mock.MatchedBy(func(m models.Message) bool {
		return m.Kind == models.KindStatus &&
			m.From == "Alice" &&
			m.To == models.BroadcastRecipient &&
			m.Text == models.StatusJoinedText
	})).Return(primitive.NewObjectID(), nil)

	p := handlers.Participant{DB: pDB, MDB: mDB, Config: testConfig()}

	req := httptest.NewRequest("POST", "/api/v1/participants", bytes.NewBufferString(`{"name":"Alice"}`))
	rr := httptest.NewRecorder()
	p.JoinHandler(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), "Alice")
}

func TestParticipant_JoinHandlerNameTaken(t *testing.T) {
	pDB := &mocks.ParticipantDatabase{}
	mDB := &mocks.MessageDatabase{}

	// case-insensitive collision: "alice" collides with an active "Alice"
	pDB.On("Join", mock.Anything, "alice").Return(nil, models.ErrNameTaken)

	p := handlers.Participant{DB: pDB, MDB: mDB, Config: testConfig()}

	req := httptest.NewRequest("POST", "/api/v1/participants", bytes.NewBufferString(`{"name":"alice"}`))
	rr := httptest.NewRecorder()
	p.JoinHandler(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	mDB.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestParticipant_JoinHandlerEmptyName(t *testing.T) {
	p := handlers.Participant{DB: &mocks.ParticipantDatabase{}, MDB: &mocks.MessageDatabase{}, Config: testConfig()}

	req := httptest.NewRequest("POST", "/api/v1/participants", bytes.NewBufferString(`{"name":""}`))
	rr := httptest.NewRecorder()
	p.JoinHandler(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestParticipant_JoinHandlerReservedName(t *testing.T) {
	p := handlers.Participant{DB: &mocks.ParticipantDatabase{}, MDB: &mocks.MessageDatabase{}, Config: testConfig()}

	req := httptest.NewRequest("POST", "/api/v1/participants", bytes.NewBufferString(`{"name":"Everyone"}`))
	rr := httptest.NewRecorder()
	p.JoinHandler(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestParticipant_JoinHandlerRollsBackOnAppendFailure(t *testing.T) {
	pDB := &mocks.ParticipantDatabase{}
	mDB := &mocks.MessageDatabase{}

	pDB.On("Join", mock.Anything, "Alice").
		Return(&models.Participant{Name: "Alice", NameKey: "alice"}, nil)
	mDB.On("Append", mock.Anything, mock.Anything).
		Return(primitive.NilObjectID, models.ErrStorage)
	pDB.On("Remove", mock.Anything, "Alice").Return(nil)

	p := handlers.Participant{DB: pDB, MDB: mDB, Config: testConfig()}

	req := httptest.NewRequest("POST", "/api/v1/participants", bytes.NewBufferString(`{"name":"Alice"}`))
	rr := httptest.NewRecorder()
	p.JoinHandler(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	pDB.AssertCalled(t, "Remove", mock.Anything, "Alice")
}

func TestParticipant_JoinHandlerRollsBackOnDeadRequestContext(t *testing.T) {
	pDB := &mocks.ParticipantDatabase{}
	mDB := &mocks.MessageDatabase{}

	pDB.On("Join", mock.Anything, "Alice").
		Return(&models.Participant{Name: "Alice", NameKey: "alice"}, nil)
	mDB.On("Append", mock.Anything, mock.Anything).
		Return(primitive.NilObjectID, context.Canceled)
	// the rollback must run on a live context even when the request's is dead,
	// otherwise the failed join leaves a ghost participant behind
	pDB.On("Remove", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() == nil
	}), "Alice").Return(nil)

	p := handlers.Participant{DB: pDB, MDB: mDB, Config: testConfig()}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest("POST", "/api/v1/participants", bytes.NewBufferString(`{"name":"Alice"}`))
	req = req.WithContext(ctx)
	rr := httptest.NewRecorder()
	p.JoinHandler(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	pDB.AssertExpectations(t)
}

func TestParticipant_ListParticipantsHandler(t *testing.T) {
	pDB := &mocks.ParticipantDatabase{}
	pDB.On("List", mock.Anything).Return([]models.Participant{
		{Name: "Alice"},
		{Name: "Bob"},
	}, nil)

	p := handlers.Participant{DB: pDB, Config: testConfig()}

	req := httptest.NewRequest("GET", "/api/v1/participants", nil)
	rr := httptest.NewRecorder()
	p.ListParticipantsHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Alice")
	assert.Contains(t, rr.Body.String(), "Bob")
}

func TestParticipant_ListParticipantsHandlerEmpty(t *testing.T) {
	pDB := &mocks.ParticipantDatabase{}
	pDB.On("List", mock.Anything).Return(nil, nil)

	p := handlers.Participant{DB: pDB, Config: testConfig()}

	req := httptest.NewRequest("GET", "/api/v1/participants", nil)
	rr := httptest.NewRecorder()
	p.ListParticipantsHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestParticipant_HeartbeatHandler(t *testing.T) {
	pDB := &mocks.ParticipantDatabase{}
	pDB.On("Heartbeat", mock.Anything, "Alice").Return(nil)

	p := handlers.Participant{DB: pDB, Config: testConfig()}

	req := httptest.NewRequest("POST", "/api/v1/status", nil)
	req.Header.Set("User", "Alice")
	rr := httptest.NewRecorder()
	p.HeartbeatHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestParticipant_HeartbeatHandlerMissingIdentity(t *testing.T) {
	p := handlers.Participant{DB: &mocks.ParticipantDatabase{}, Config: testConfig()}

	req := httptest.NewRequest("POST", "/api/v1/status", nil)
	rr := httptest.NewRecorder()
	p.HeartbeatHandler(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestParticipant_HeartbeatHandlerSweptParticipant(t *testing.T) {
	pDB := &mocks.ParticipantDatabase{}
	// a participant evicted by the sweeper cannot re-heartbeat, it must rejoin
	pDB.On("Heartbeat", mock.Anything, "Alice").Return(models.ErrNotFound)

	p := handlers.Participant{DB: pDB, Config: testConfig()}

	req := httptest.NewRequest("POST", "/api/v1/status", nil)
	req.Header.Set("User", "Alice")
	rr := httptest.NewRecorder()
	p.HeartbeatHandler(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
