package dto

import (
	"fmt"
	"time"

	"claimdesk.app/server/internal/model"
	"claimdesk.app/server/internal/service"
	"claimdesk.app/server/internal/upload"
)

// ClaimRequest is bound from multipart, urlencoded or JSON bodies. Field rules
// are enforced by the service so every problem is reported at once.
type ClaimRequest struct {
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
	Category    string `form:"category" json:"category"`
	Priority    string `form:"priority" json:"priority"`
}

func (r ClaimRequest) ToInput() service.ClaimInput {
	return service.ClaimInput{
		Title:       r.Title,
		Description: r.Description,
		Category:    model.Category(r.Category),
		Priority:    model.Priority(r.Priority),
	}
}

type StatusRequest struct {
	Status string `form:"status" json:"status" binding:"required"`
}

type CommentRequest struct {
	Content string `form:"content" json:"content"`
}

type ClaimResponse struct {
	ID              int64             `json:"id,string"`
	ReferenceNumber string            `json:"reference_number"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Status          model.ClaimStatus `json:"status"`
	StatusLabel     string            `json:"status_label"`
	Priority        model.Priority    `json:"priority"`
	Category        model.Category    `json:"category"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func ToClaimResponse(c model.Claim) ClaimResponse {
	return ClaimResponse{
		ID:              c.ID,
		ReferenceNumber: c.ReferenceNumber,
		Title:           c.Title,
		Description:     c.Description,
		Status:          c.Status,
		StatusLabel:     c.Status.Label(),
		Priority:        c.Priority,
		Category:        c.Category,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func ToClaimResponses(claims []model.Claim) []ClaimResponse {
	out := make([]ClaimResponse, 0, len(claims))
	for _, c := range claims {
		out = append(out, ToClaimResponse(c))
	}
	return out
}

type CommentResponse struct {
	ID               int64     `json:"id,string"`
	AuthorID         int64     `json:"author_id,string"`
	Content          string    `json:"content"`
	OfficialResponse bool      `json:"official_response"`
	CreatedAt        time.Time `json:"created_at"`
}

func ToCommentResponse(c model.Comment) CommentResponse {
	return CommentResponse{
		ID:               c.ID,
		AuthorID:         c.AuthorID,
		Content:          c.Content,
		OfficialResponse: c.OfficialResponse,
		CreatedAt:        c.CreatedAt,
	}
}

type AttachmentResponse struct {
	ID               int64     `json:"id,string"`
	OriginalFilename string    `json:"original_filename"`
	MIMEType         string    `json:"mime_type"`
	SizeBytes        int64     `json:"size_bytes"`
	Extension        string    `json:"extension"`
	IsImage          bool      `json:"is_image"`
	IsPDF            bool      `json:"is_pdf"`
	DownloadURL      string    `json:"download_url"`
	UploadedAt       time.Time `json:"uploaded_at"`
}

func ToAttachmentResponse(a model.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:               a.ID,
		OriginalFilename: a.OriginalFilename,
		MIMEType:         a.MIMEType,
		SizeBytes:        a.SizeBytes,
		Extension:        a.Extension(),
		IsImage:          a.IsImage(),
		IsPDF:            a.IsPDF(),
		DownloadURL:      fmt.Sprintf("/api/v1/claims/%d/attachments/%d", a.ClaimID, a.ID),
		UploadedAt:       a.UploadedAt,
	}
}

func toAttachmentResponses(attachments []model.Attachment) []AttachmentResponse {
	out := make([]AttachmentResponse, 0, len(attachments))
	for _, a := range attachments {
		out = append(out, ToAttachmentResponse(a))
	}
	return out
}

type ClaimDetailResponse struct {
	Claim       ClaimResponse        `json:"claim"`
	Comments    []CommentResponse    `json:"comments"`
	Attachments []AttachmentResponse `json:"attachments"`
}

func ToClaimDetailResponse(d *model.ClaimDetail) ClaimDetailResponse {
	comments := make([]CommentResponse, 0, len(d.Comments))
	for _, c := range d.Comments {
		comments = append(comments, ToCommentResponse(c))
	}
	return ClaimDetailResponse{
		Claim:       ToClaimResponse(d.Claim),
		Comments:    comments,
		Attachments: toAttachmentResponses(d.Attachments),
	}
}

type CreateClaimResponse struct {
	Claim         ClaimResponse        `json:"claim"`
	Attachments   []AttachmentResponse `json:"attachments"`
	RejectedFiles []upload.Rejection   `json:"rejected_files"`
}

func ToCreateClaimResponse(r *service.CreateClaimResult) CreateClaimResponse {
	rejected := r.Rejected
	if rejected == nil {
		rejected = []upload.Rejection{}
	}
	return CreateClaimResponse{
		Claim:         ToClaimResponse(*r.Claim),
		Attachments:   toAttachmentResponses(r.Attachments),
		RejectedFiles: rejected,
	}
}
