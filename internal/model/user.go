package model

import "time"

type User struct {
	ID        int64     `json:"id"`
	WorkOSID  *string   `json:"workos_id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Actor is the authenticated user performing an operation.
type Actor struct {
	UserID  int64
	IsStaff bool
}

func (u User) Actor() Actor {
	return Actor{UserID: u.ID, IsStaff: u.IsStaff}
}
