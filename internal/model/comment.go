package model

import "time"

type Comment struct {
	ID               int64     `json:"id"`
	ClaimID          int64     `json:"claim_id"`
	AuthorID         int64     `json:"author_id"`
	Content          string    `json:"content"`
	OfficialResponse bool      `json:"official_response"`
	CreatedAt        time.Time `json:"created_at"`
}
