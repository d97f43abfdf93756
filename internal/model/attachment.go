package model

import (
	"path"
	"strings"
	"time"
)

type Attachment struct {
	ID               int64     `json:"id"`
	ClaimID          int64     `json:"claim_id"`
	StorageKey       string    `json:"storage_key"`
	OriginalFilename string    `json:"original_filename"`
	MIMEType         string    `json:"mime_type"`
	SizeBytes        int64     `json:"size_bytes"`
	UploadedAt       time.Time `json:"uploaded_at"`
}

// Extension returns the lower-cased extension of the stored file, including the dot.
func (a Attachment) Extension() string {
	return strings.ToLower(path.Ext(a.StorageKey))
}

func (a Attachment) IsImage() bool {
	switch a.Extension() {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

func (a Attachment) IsPDF() bool {
	return a.Extension() == ".pdf"
}
