package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/batepapo/chatroom-api/api/handlers"
	"github.com/batepapo/chatroom-api/api/scheduler"
	"github.com/batepapo/chatroom-api/config"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()

	if err := a.Initialize(); err != nil { //initialize database and router
		zap.S().With(err).Fatal("failed to initialize")
	}

	s := scheduler.NewScheduler(&a.Config, a.PDB, a.MDB, a.Hub)
	s.Start()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%v", a.Config.Port),
		Handler: a.Router,
	}

	go func() {
		zap.S().Infow("chatroom-api is up and running",
			"port", a.Config.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.S().With(err).Fatal("server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zap.S().Info("shutting down")
	s.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.S().With(err).Error("server shutdown failed")
	}
	if err := a.Shutdown(ctx); err != nil {
		zap.S().With(err).Error("database disconnect failed")
	}
}
