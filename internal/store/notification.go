package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"claimdesk.app/server/core/db/sqlc"
	"claimdesk.app/server/internal/model"
)

type notificationStore struct {
	queries *sqlc.Queries
}

func newNotificationStore(queries *sqlc.Queries) NotificationStore {
	return &notificationStore{queries: queries}
}

func (s *notificationStore) Create(ctx context.Context, notification *model.Notification) error {
	row, err := s.queries.CreateNotification(ctx, sqlc.CreateNotificationParams{
		ID:      notification.ID,
		UserID:  notification.UserID,
		ClaimID: notification.ClaimID,
		Type:    string(notification.Type),
		Message: notification.Message,
	})
	if err != nil {
		return err
	}
	*notification = toNotificationModel(row)
	return nil
}

func (s *notificationStore) ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit int32) ([]model.Notification, error) {
	rows, err := s.queries.ListNotificationsByUser(ctx, sqlc.ListNotificationsByUserParams{
		UserID:     userID,
		UnreadOnly: unreadOnly,
		RowLimit:   limit,
	})
	if err != nil {
		return nil, err
	}
	notifications := make([]model.Notification, 0, len(rows))
	for _, row := range rows {
		notifications = append(notifications, toNotificationModel(row))
	}
	return notifications, nil
}

// MarkRead sets the read flag. Marking an already read notification returns it unchanged.
func (s *notificationStore) MarkRead(ctx context.Context, id, userID int64) (*model.Notification, error) {
	row, err := s.queries.MarkNotificationRead(ctx, sqlc.MarkNotificationReadParams{ID: id, UserID: userID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	n := toNotificationModel(row)
	return &n, nil
}

func (s *notificationStore) CountUnread(ctx context.Context, userID int64) (int64, error) {
	return s.queries.CountUnreadNotifications(ctx, userID)
}

func (s *notificationStore) DeleteByClaim(ctx context.Context, claimID int64) (int64, error) {
	return s.queries.DeleteNotificationsByClaim(ctx, claimID)
}

func toNotificationModel(row sqlc.Notification) model.Notification {
	return model.Notification{
		ID:        row.ID,
		UserID:    row.UserID,
		ClaimID:   row.ClaimID,
		Type:      model.NotificationType(row.Type),
		Message:   row.Message,
		Read:      row.Read,
		CreatedAt: row.CreatedAt.Time,
	}
}
