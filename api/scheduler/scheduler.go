package scheduler

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/batepapo/chatroom-api/api"
	"github.com/batepapo/chatroom-api/api/handlers"
	"github.com/batepapo/chatroom-api/config"
	"github.com/batepapo/chatroom-api/databases"
	"github.com/batepapo/chatroom-api/models"
)

// Scheduler runs the presence sweeper: a periodic job that evicts
// participants whose last heartbeat fell outside the inactivity window and
// appends their departure notices to the message log
type Scheduler struct {
	cron *cron.Cron
	PDB  databases.ParticipantDatabase
	MDB  databases.MessageDatabase
	Hub  *handlers.Hub

	sweepPeriod      time.Duration
	inactivityWindow time.Duration
	instanceID       string
	now              func() time.Time
}

// NewScheduler creates a new scheduler instance
func NewScheduler(conf *config.Config, pDB databases.ParticipantDatabase, mDB databases.MessageDatabase, hub *handlers.Hub) *Scheduler {
	return &Scheduler{
		cron:             cron.New(cron.WithLocation(time.UTC)),
		PDB:              pDB,
		MDB:              mDB,
		Hub:              hub,
		sweepPeriod:      conf.SweepPeriod,
		inactivityWindow: conf.InactivityWindow,
		instanceID:       uuid.NewString(),
		now:              time.Now,
	}
}

// Start begins the scheduler with the sweep job registered
func (s *Scheduler) Start() {
	_, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.sweepPeriod), s.Sweep)
	if err != nil {
		zap.S().Errorw("failed to register sweep job", "error", err)
		return
	}

	s.cron.Start()
	zap.S().Infow("presence sweeper started",
		"period", s.sweepPeriod,
		"inactivityWindow", s.inactivityWindow,
		"instance", s.instanceID,
	)
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("presence sweeper stopped")
}

// Sweep runs one eviction pass. Every failure is logged and swallowed: the
// sweep is best-effort and the next tick retries from scratch.
func (s *Scheduler) Sweep() {
	ctx, cancel := api.WithQueryTimeout(nil)
	defer cancel()

	threshold := s.now().Add(-s.inactivityWindow)
	evicted, err := s.PDB.ExpireOlderThan(ctx, threshold)
	if err != nil {
		zap.S().Errorw("failed to expire participants",
			"error", err,
			"instance", s.instanceID,
		)
		return
	}
	if len(evicted) == 0 {
		return
	}

	now := s.now()
	notices := make([]models.Message, len(evicted))
	for i, participant := range evicted {
		notices[i] = models.NewStatusMessage(participant.Name, models.StatusLeftText, now)
	}

	ids, err := s.MDB.AppendBatch(ctx, notices)
	if err != nil {
		zap.S().Errorw("failed to append departure notices",
			"error", err,
			"evicted", len(evicted),
			"instance", s.instanceID,
		)
		return
	}

	for i := range notices {
		if i < len(ids) {
			notices[i].ID = ids[i]
		}
		s.Hub.Publish(notices[i])
	}

	remaining, err := s.PDB.Count(ctx)
	if err != nil {
		zap.S().Warnw("failed to count remaining participants", "error", err)
		remaining = -1
	}
	zap.S().Infow("sweep complete",
		"evicted", len(evicted),
		"remaining", remaining,
		"instance", s.instanceID,
	)
}
