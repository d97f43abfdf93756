package service

import (
	"context"
	"fmt"

	"claimdesk.app/server/internal/model"
	"claimdesk.app/server/internal/store"
)

const dashboardRecentLimit = 5

// Dashboard is the landing view. Stats and UnreadNotifications are only filled for staff.
type Dashboard struct {
	Stats               *model.ClaimStats
	RecentClaims        []model.Claim
	UnreadNotifications []model.Notification
}

type DashboardService interface {
	Get(ctx context.Context, actor model.Actor) (*Dashboard, error)
}

type dashboardService struct {
	claims        store.ClaimStore
	notifications store.NotificationStore
}

func NewDashboardService(claims store.ClaimStore, notifications store.NotificationStore) DashboardService {
	return &dashboardService{claims: claims, notifications: notifications}
}

func (s *dashboardService) Get(ctx context.Context, actor model.Actor) (*Dashboard, error) {
	recent, err := s.claims.ListByOwner(ctx, actor.UserID, "", dashboardRecentLimit)
	if err != nil {
		return nil, fmt.Errorf("listing recent claims: %w", err)
	}

	d := &Dashboard{RecentClaims: recent}
	if !actor.IsStaff {
		return d, nil
	}

	stats, err := s.claims.Stats(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("computing claim stats: %w", err)
	}
	d.Stats = &stats

	d.UnreadNotifications, err = s.notifications.ListByUser(ctx, actor.UserID, true, dashboardRecentLimit)
	if err != nil {
		return nil, fmt.Errorf("listing unread notifications: %w", err)
	}
	return d, nil
}
