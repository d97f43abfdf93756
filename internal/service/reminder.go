package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"claimdesk.app/server/common/id"
	"claimdesk.app/server/common/logger"
	"claimdesk.app/server/internal/model"
	"claimdesk.app/server/internal/store"
)

const reminderBatchSize = 100

// ReminderService nudges owners of claims that have sat in PENDIENTE too long.
type ReminderService interface {
	// SendReminders notifies owners of pending claims untouched since before
	// cutoff that have no reminder newer than cutoff. It returns how many were sent.
	SendReminders(ctx context.Context, cutoff time.Time) (int, error)
}

type reminderService struct {
	claims   store.ClaimStore
	txRunner TxRunner
}

func NewReminderService(claims store.ClaimStore, txRunner TxRunner) ReminderService {
	return &reminderService{claims: claims, txRunner: txRunner}
}

func (s *reminderService) SendReminders(ctx context.Context, cutoff time.Time) (int, error) {
	stale, err := s.claims.ListStalePending(ctx, cutoff, reminderBatchSize)
	if err != nil {
		return 0, fmt.Errorf("listing stale claims: %w", err)
	}

	sent := 0
	for _, claim := range stale {
		claimCtx := logger.WithLogFields(ctx, logger.LogFields{ClaimID: logger.Ptr(claim.ID), UserID: logger.Ptr(claim.OwnerID)})

		err := s.txRunner.WithTx(claimCtx, func(sp StoreProvider) error {
			return sp.Notifications().Create(claimCtx, &model.Notification{
				ID:      id.New(),
				UserID:  claim.OwnerID,
				ClaimID: claim.ID,
				Type:    model.NotificationTypeReminder,
				Message: fmt.Sprintf("Your claim %s is still pending review.", claim.ReferenceNumber),
			})
		})
		if err != nil {
			if ctx.Err() != nil {
				return sent, ctx.Err()
			}
			slog.ErrorContext(claimCtx, "failed to send reminder", "error", err)
			continue
		}
		sent++
	}

	if sent > 0 {
		slog.InfoContext(ctx, "reminders sent", "count", sent, "stale", len(stale))
	}
	return sent, nil
}
