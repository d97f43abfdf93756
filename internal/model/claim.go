package model

import "time"

type (
	ClaimStatus string
	Priority    string
	Category    string
)

const (
	ClaimStatusPending    ClaimStatus = "PENDIENTE"
	ClaimStatusInProgress ClaimStatus = "EN_PROGRESO"
	ClaimStatusResolved   ClaimStatus = "RESUELTO"
	ClaimStatusClosed     ClaimStatus = "CERRADO"
)

const (
	PriorityLow    Priority = "BAJA"
	PriorityMedium Priority = "MEDIA"
	PriorityHigh   Priority = "ALTA"
)

const (
	CategoryService   Category = "SERVICIO"
	CategoryBilling   Category = "FACTURACION"
	CategoryTechnical Category = "TECNICO"
	CategoryOther     Category = "OTRO"
)

func (s ClaimStatus) Valid() bool {
	switch s {
	case ClaimStatusPending, ClaimStatusInProgress, ClaimStatusResolved, ClaimStatusClosed:
		return true
	}
	return false
}

// Label returns the human readable form used in notification messages.
func (s ClaimStatus) Label() string {
	switch s {
	case ClaimStatusPending:
		return "Pending"
	case ClaimStatusInProgress:
		return "In progress"
	case ClaimStatusResolved:
		return "Resolved"
	case ClaimStatusClosed:
		return "Closed"
	}
	return string(s)
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func (c Category) Valid() bool {
	switch c {
	case CategoryService, CategoryBilling, CategoryTechnical, CategoryOther:
		return true
	}
	return false
}

// Claim is a customer submitted issue. ReferenceNumber is assigned once at
// creation and never changes.
type Claim struct {
	ID              int64       `json:"id"`
	OwnerID         int64       `json:"owner_id"`
	ReferenceNumber string      `json:"reference_number"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Status          ClaimStatus `json:"status"`
	Priority        Priority    `json:"priority"`
	Category        Category    `json:"category"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type ClaimStats struct {
	Total      int64 `json:"total"`
	Resolved   int64 `json:"resolved"`
	InProgress int64 `json:"in_progress"`
	Pending    int64 `json:"pending"`
}

// ClaimDetail is a claim together with its comments (oldest first) and attachments.
type ClaimDetail struct {
	Claim       Claim        `json:"claim"`
	Comments    []Comment    `json:"comments"`
	Attachments []Attachment `json:"attachments"`
}
