package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/batepapo/chatroom-api/api"
	"github.com/batepapo/chatroom-api/config"
	"github.com/batepapo/chatroom-api/databases"
	"github.com/batepapo/chatroom-api/models"
)

var validate = validator.New()

// Participant struct for handling participant operations
type Participant struct {
	DB     databases.ParticipantDatabase
	MDB    databases.MessageDatabase
	Hub    *Hub
	Config *config.Config
}

// JoinHandler registers a new participant and announces the arrival. The
// registry insert and the status append succeed or fail together: a failed
// append rolls the insert back.
func (p Participant) JoinHandler(w http.ResponseWriter, r *http.Request) {
	var body models.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(body); err != nil {
		config.ErrorStatus("invalid participant name", models.HTTPStatus(models.ErrValidation), w, err)
		return
	}
	if models.NormalizeName(body.Name) == models.BroadcastRecipient {
		config.ErrorStatus("reserved participant name", models.HTTPStatus(models.ErrValidation), w, models.ErrValidation)
		return
	}

	participant, err := p.DB.Join(r.Context(), body.Name)
	if errors.Is(err, models.ErrNameTaken) {
		config.ErrorStatus("name already taken", models.HTTPStatus(err), w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to join room", models.HTTPStatus(err), w, err)
		return
	}

	notice := models.NewStatusMessage(participant.Name, models.StatusJoinedText, time.Now())
	id, appendErr := p.MDB.Append(r.Context(), notice)
	if appendErr != nil {
		// the request context may be the reason the append failed, so the
		// rollback gets a fresh one
		rbCtx, cancel := api.WithQueryTimeout(nil)
		defer cancel()
		if rbErr := p.DB.Remove(rbCtx, participant.Name); rbErr != nil {
			zap.S().Errorw("failed to roll back join after status append failure",
				"participant", participant.Name,
				"error", rbErr,
			)
		}
		config.ErrorStatus("failed to append join notice", models.HTTPStatus(appendErr), w, appendErr)
		return
	}
	notice.ID = id
	p.Hub.Publish(notice)

	zap.S().Infow("participant joined",
		"participant", participant.Name,
	)
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(participant)
}

// ListParticipantsHandler returns everyone currently in the room
func (p Participant) ListParticipantsHandler(w http.ResponseWriter, r *http.Request) {
	participants, err := p.DB.List(r.Context())
	if err != nil {
		config.ErrorStatus("failed to list participants", models.HTTPStatus(err), w, err)
		return
	}
	if participants == nil {
		participants = []models.Participant{}
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(participants)
}

// HeartbeatHandler refreshes the caller's lastSeen time. A participant the
// sweeper already evicted gets a 404 and must rejoin.
func (p Participant) HeartbeatHandler(w http.ResponseWriter, r *http.Request) {
	user := api.SenderIdentity(r)
	if user == "" {
		config.ErrorStatus("missing sender identity", http.StatusBadRequest, w, models.ErrUnauthenticated)
		return
	}

	err := p.DB.Heartbeat(r.Context(), user)
	if errors.Is(err, models.ErrNotFound) {
		config.ErrorStatus("participant not active", models.HTTPStatus(err), w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to record heartbeat", models.HTTPStatus(err), w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"response": "ok"}`))
}
