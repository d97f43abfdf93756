package worker

import (
	"context"
	"time"

	"claimdesk.app/server/internal/queue"
)

// Consumer abstracts the message queue for testability.
type Consumer interface {
	Read(ctx context.Context) ([]queue.Message, error)
	Ack(ctx context.Context, msg queue.Message) error
	Requeue(ctx context.Context, msg queue.Message, errMsg string) error
	SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error
}

// TaskHandler executes one kind of queued task. Returning an error triggers a
// retry, and the message is dead-lettered once attempts run out.
type TaskHandler interface {
	Handle(ctx context.Context, msg queue.Message) error
}

// ReminderSender mirrors service.ReminderService.
type ReminderSender interface {
	SendReminders(ctx context.Context, cutoff time.Time) (int, error)
}

// SessionPurger removes expired login sessions.
type SessionPurger interface {
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}
