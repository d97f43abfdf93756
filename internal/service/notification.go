package service

import (
	"context"
	"errors"
	"fmt"

	"claimdesk.app/server/internal/model"
	"claimdesk.app/server/internal/store"
)

const notificationListLimit = 50

type NotificationService interface {
	List(ctx context.Context, actor model.Actor, unreadOnly bool) ([]model.Notification, error)
	// MarkRead is idempotent. Notifications of other users are reported as not found.
	MarkRead(ctx context.Context, actor model.Actor, notificationID int64) (*model.Notification, error)
	CountUnread(ctx context.Context, actor model.Actor) (int64, error)
}

type notificationService struct {
	notifications store.NotificationStore
}

func NewNotificationService(notifications store.NotificationStore) NotificationService {
	return &notificationService{notifications: notifications}
}

func (s *notificationService) List(ctx context.Context, actor model.Actor, unreadOnly bool) ([]model.Notification, error) {
	notifications, err := s.notifications.ListByUser(ctx, actor.UserID, unreadOnly, notificationListLimit)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	return notifications, nil
}

func (s *notificationService) MarkRead(ctx context.Context, actor model.Actor, notificationID int64) (*model.Notification, error) {
	n, err := s.notifications.MarkRead(ctx, notificationID, actor.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("marking notification read: %w", err)
	}
	return n, nil
}

func (s *notificationService) CountUnread(ctx context.Context, actor model.Actor) (int64, error) {
	n, err := s.notifications.CountUnread(ctx, actor.UserID)
	if err != nil {
		return 0, fmt.Errorf("counting unread notifications: %w", err)
	}
	return n, nil
}
