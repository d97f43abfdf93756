package worker

import (
	"context"
	"log/slog"
	"time"

	"claimdesk.app/server/common/logger"
)

type SweeperConfig struct {
	Interval time.Duration
	// RemindAfter is how long a claim may sit in PENDIENTE before its owner is reminded.
	RemindAfter time.Duration
}

// Sweeper runs periodic maintenance: pending-claim reminders and expired session purging.
type Sweeper struct {
	reminders ReminderSender
	sessions  SessionPurger
	cfg       SweeperConfig
	now       func() time.Time

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func NewSweeper(reminders ReminderSender, sessions SessionPurger, cfg SweeperConfig) *Sweeper {
	return &Sweeper{
		reminders: reminders,
		sessions:  sessions,
		cfg:       cfg,
		now:       time.Now,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Run sweeps once immediately and then on every tick until Stop is called.
func (s *Sweeper) Run(ctx context.Context) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "claimdesk.worker.sweeper"})

	defer close(s.stoppedCh)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "sweeper started",
		"interval", s.cfg.Interval,
		"remind_after", s.cfg.RemindAfter)

	s.sweepOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			slog.InfoContext(ctx, "sweeper stopping")
			return
		case <-ticker.C:
			s.sweepOnce(ctx)
		}
	}
}

func (s *Sweeper) Stop() {
	close(s.stopCh)
	<-s.stoppedCh
}

func (s *Sweeper) sweepOnce(ctx context.Context) {
	sc := logger.StartSpan(ctx, "worker.sweep")
	defer sc.End()
	ctx = sc.Context()

	cutoff := s.now().Add(-s.cfg.RemindAfter)
	if _, err := s.reminders.SendReminders(ctx, cutoff); err != nil {
		sc.RecordError(err)
		slog.ErrorContext(ctx, "reminder sweep failed", "error", err)
	}

	if s.sessions != nil {
		if _, err := s.sessions.PurgeExpiredSessions(ctx); err != nil {
			slog.ErrorContext(ctx, "session purge failed", "error", err)
		}
	}
}
