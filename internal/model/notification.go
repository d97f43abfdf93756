package model

import "time"

type NotificationType string

const (
	NotificationTypeStatusUpdate     NotificationType = "ACTUALIZACION"
	NotificationTypeResponseReceived NotificationType = "RESPUESTA"
	NotificationTypeReminder         NotificationType = "RECORDATORIO"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationTypeStatusUpdate, NotificationTypeResponseReceived, NotificationTypeReminder:
		return true
	}
	return false
}

type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id"`
	ClaimID   int64            `json:"claim_id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
