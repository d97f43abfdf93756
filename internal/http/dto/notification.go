package dto

import (
	"time"

	"claimdesk.app/server/internal/model"
	"claimdesk.app/server/internal/service"
)

type NotificationResponse struct {
	ID        int64                  `json:"id,string"`
	ClaimID   int64                  `json:"claim_id,string"`
	Type      model.NotificationType `json:"type"`
	Message   string                 `json:"message"`
	Read      bool                   `json:"read"`
	CreatedAt time.Time              `json:"created_at"`
}

func ToNotificationResponses(notifications []model.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, NotificationResponse{
			ID:        n.ID,
			ClaimID:   n.ClaimID,
			Type:      n.Type,
			Message:   n.Message,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	return out
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unread_count"`
}

type DashboardResponse struct {
	Stats               *model.ClaimStats      `json:"stats,omitempty"`
	RecentClaims        []ClaimResponse        `json:"recent_claims"`
	UnreadNotifications []NotificationResponse `json:"unread_notifications,omitempty"`
}

func ToDashboardResponse(d *service.Dashboard) DashboardResponse {
	resp := DashboardResponse{
		Stats:        d.Stats,
		RecentClaims: ToClaimResponses(d.RecentClaims),
	}
	if d.UnreadNotifications != nil {
		resp.UnreadNotifications = ToNotificationResponses(d.UnreadNotifications)
	}
	return resp
}
