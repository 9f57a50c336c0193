package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/batepapo/chatroom-api/api"
	"github.com/batepapo/chatroom-api/config"
	"github.com/batepapo/chatroom-api/databases"
	"github.com/batepapo/chatroom-api/models"
)

// Message struct for handling message operations
type Message struct {
	DB     databases.MessageDatabase
	PDB    databases.ParticipantDatabase
	Hub    *Hub
	Config *config.Config
}

// SendMessageHandler appends a broadcast or private message from the
// identified sender
func (m Message) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	user := api.SenderIdentity(r)
	if user == "" {
		config.ErrorStatus("missing sender identity", http.StatusBadRequest, w, models.ErrUnauthenticated)
		return
	}

	var body models.MessageBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(body); err != nil {
		config.ErrorStatus("invalid message body", models.HTTPStatus(models.ErrValidation), w, err)
		return
	}

	sender, err := m.PDB.Get(r.Context(), user)
	if errors.Is(err, models.ErrNotFound) {
		config.ErrorStatus("sender not registered", models.HTTPStatus(models.ErrValidation), w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to verify sender", models.HTTPStatus(err), w, err)
		return
	}

	// self-addressed messages are rejected for both kinds
	if models.NormalizeName(body.To) == sender.NameKey {
		config.ErrorStatus("cannot send message to yourself", models.HTTPStatus(models.ErrValidation), w, models.ErrValidation)
		return
	}

	// the registered display name is what gets stored, so a send addressed
	// to "bob" lands as "Bob" and stays visible to its recipient
	to := body.To
	if m.Config.ValidateRecipient && body.To != models.BroadcastRecipient {
		recipient, err := m.PDB.Get(r.Context(), body.To)
		if errors.Is(err, models.ErrNotFound) {
			config.ErrorStatus("recipient not found", models.HTTPStatus(models.ErrValidation), w, err)
			return
		}
		if err != nil {
			config.ErrorStatus("failed to verify recipient", models.HTTPStatus(err), w, err)
			return
		}
		to = recipient.Name
	}

	now := time.Now()
	message := models.Message{
		From:   sender.Name,
		To:     to,
		Text:   body.Text,
		Kind:   body.Kind,
		Time:   now.Format(models.TimeLayout),
		SentAt: primitive.NewDateTimeFromTime(now),
	}.Keyed()

	id, err := m.DB.Append(r.Context(), message)
	if err != nil {
		config.ErrorStatus("failed to append message", models.HTTPStatus(err), w, err)
		return
	}
	message.ID = id
	m.Hub.Publish(message)

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(message)
}

// ListMessagesHandler returns the newest window of messages visible to the
// caller, oldest first
func (m Message) ListMessagesHandler(w http.ResponseWriter, r *http.Request) {
	user := api.SenderIdentity(r)
	if user == "" {
		config.ErrorStatus("missing sender identity", models.HTTPStatus(models.ErrUnauthenticated), w, models.ErrUnauthenticated)
		return
	}

	limit := m.Config.DefaultPageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			config.ErrorStatus("invalid limit", models.HTTPStatus(models.ErrValidation), w, models.ErrValidation)
			return
		}
		limit = parsed
		if limit > m.Config.MaxPageSize {
			limit = m.Config.MaxPageSize
		}
	}

	messages, err := m.DB.VisibleTo(r.Context(), user, limit)
	if err != nil {
		config.ErrorStatus("failed to list messages", models.HTTPStatus(err), w, err)
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(messages)
}

// MessageByIDHandler returns a single message, provided the caller may see it
func (m Message) MessageByIDHandler(w http.ResponseWriter, r *http.Request) {
	user := api.SenderIdentity(r)
	if user == "" {
		config.ErrorStatus("missing sender identity", models.HTTPStatus(models.ErrUnauthenticated), w, models.ErrUnauthenticated)
		return
	}

	message, ok := m.fetchMessage(w, r)
	if !ok {
		return
	}
	if !message.VisibleTo(user) {
		config.ErrorStatus("message not found", models.HTTPStatus(models.ErrNotFound), w, models.ErrNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(message)
}

// EditMessageHandler replaces the body of a message owned by the caller.
// Status notices are immutable regardless of the caller.
func (m Message) EditMessageHandler(w http.ResponseWriter, r *http.Request) {
	user := api.SenderIdentity(r)
	if user == "" {
		config.ErrorStatus("missing sender identity", http.StatusBadRequest, w, models.ErrUnauthenticated)
		return
	}

	var body models.MessageBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(body); err != nil {
		config.ErrorStatus("invalid message body", models.HTTPStatus(models.ErrValidation), w, err)
		return
	}

	if _, err := m.PDB.Get(r.Context(), user); errors.Is(err, models.ErrNotFound) {
		config.ErrorStatus("sender not registered", models.HTTPStatus(models.ErrValidation), w, err)
		return
	} else if err != nil {
		config.ErrorStatus("failed to verify sender", models.HTTPStatus(err), w, err)
		return
	}

	message, ok := m.fetchMessage(w, r)
	if !ok {
		return
	}
	if !m.ownedBy(message, user, w) {
		return
	}

	patch := models.MessagePatch{To: &body.To, Text: &body.Text, Kind: &body.Kind}
	if err := m.DB.Update(r.Context(), message.ID, patch); err != nil {
		config.ErrorStatus("failed to update message", models.HTTPStatus(err), w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"response": "ok"}`))
}

// DeleteMessageHandler removes a message owned by the caller
func (m Message) DeleteMessageHandler(w http.ResponseWriter, r *http.Request) {
	user := api.SenderIdentity(r)
	if user == "" {
		config.ErrorStatus("missing sender identity", http.StatusBadRequest, w, models.ErrUnauthenticated)
		return
	}

	message, ok := m.fetchMessage(w, r)
	if !ok {
		return
	}
	if !m.ownedBy(message, user, w) {
		return
	}

	if err := m.DB.Delete(r.Context(), message.ID); err != nil {
		config.ErrorStatus("failed to delete message", models.HTTPStatus(err), w, err)
		return
	}

	zap.S().Infow("message deleted",
		"id", message.ID.Hex(),
		"by", user,
	)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"response": "ok"}`))
}

// fetchMessage resolves the path id to a stored message, writing the error
// response itself when it cannot
func (m Message) fetchMessage(w http.ResponseWriter, r *http.Request) (*models.Message, bool) {
	raw := mux.Vars(r)["message_id"]
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		config.ErrorStatus("invalid message id", http.StatusBadRequest, w, err)
		return nil, false
	}

	message, err := m.DB.Get(r.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		config.ErrorStatus("message not found", models.HTTPStatus(err), w, err)
		return nil, false
	}
	if err != nil {
		config.ErrorStatus("failed to get message", models.HTTPStatus(err), w, err)
		return nil, false
	}
	return message, true
}

// ownedBy enforces ownership and status immutability for edit and delete,
// writing the 403 itself on failure
func (m Message) ownedBy(message *models.Message, user string, w http.ResponseWriter) bool {
	if models.NormalizeName(message.From) != models.NormalizeName(user) {
		config.ErrorStatus("not the message owner", models.HTTPStatus(models.ErrForbidden), w, models.ErrForbidden)
		return false
	}
	if message.Kind == models.KindStatus {
		config.ErrorStatus("status messages cannot be modified", models.HTTPStatus(models.ErrForbidden), w, models.ErrForbidden)
		return false
	}
	return true
}
