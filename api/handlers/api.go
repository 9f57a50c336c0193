package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/batepapo/chatroom-api/api"
	"github.com/batepapo/chatroom-api/config"
	"github.com/batepapo/chatroom-api/databases"
	"github.com/batepapo/chatroom-api/models"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router *mux.Router
	Config config.Config

	PDB databases.ParticipantDatabase
	MDB databases.MessageDatabase
	Hub *Hub

	dbHelper databases.DatabaseHelper
	client   databases.ClientHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	r := mux.NewRouter()

	p := Participant{DB: a.PDB, MDB: a.MDB, Hub: a.Hub, Config: &a.Config}
	m := Message{DB: a.MDB, PDB: a.PDB, Hub: a.Hub, Config: &a.Config}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	// the websocket upgrade manages its own deadlines, keep it off the
	// timeout-wrapped subrouter
	r.Handle("/api/v1/stream", http.HandlerFunc(a.Hub.ServeWS)).Methods("GET")

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(api.TimeoutMiddleware(api.QueryTimeout))

	apiCreate.Handle("/participants", api.Middleware(http.HandlerFunc(p.JoinHandler))).Methods("POST")
	apiCreate.Handle("/participants", api.Middleware(http.HandlerFunc(p.ListParticipantsHandler))).Methods("GET")
	apiCreate.Handle("/status", api.Middleware(http.HandlerFunc(p.HeartbeatHandler))).Methods("POST")

	apiCreate.Handle("/messages", api.Middleware(http.HandlerFunc(m.SendMessageHandler))).Methods("POST")
	apiCreate.Handle("/messages", api.Middleware(http.HandlerFunc(m.ListMessagesHandler))).Methods("GET")
	apiCreate.Handle("/messages/{message_id}", api.Middleware(http.HandlerFunc(m.MessageByIDHandler))).Methods("GET")
	apiCreate.Handle("/messages/{message_id}", api.Middleware(http.HandlerFunc(m.EditMessageHandler))).Methods("PUT")
	apiCreate.Handle("/messages/{message_id}", api.Middleware(http.HandlerFunc(m.DeleteMessageHandler))).Methods("DELETE")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}
	a.client = client

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("chatroom-api has connected to the database")

	a.PDB = databases.NewParticipantDatabase(a.dbHelper)
	a.MDB = databases.NewMessageDatabase(a.dbHelper)

	// the unique name index is what makes concurrent joins safe
	ctx, cancel := api.WithQueryTimeout(nil)
	defer cancel()
	if err := a.PDB.EnsureIndexes(ctx); err != nil {
		zap.S().With(err).Error("failed to ensure participant indexes")
		return err
	}

	a.Hub = NewHub()

	// initialize api router
	a.initializeRoutes()
	return nil
}

// Shutdown releases the database connection at process exit
func (a *App) Shutdown(ctx context.Context) error {
	return a.client.Disconnect(ctx)
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
