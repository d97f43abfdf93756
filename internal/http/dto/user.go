package dto

import (
	"claimdesk.app/server/internal/model"
)

type UserResponse struct {
	ID        int64   `json:"id,string"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	IsStaff   bool    `json:"is_staff"`
}

func ToUserResponse(u *model.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
		IsStaff:   u.IsStaff,
	}
}
