package store

import (
	"context"
	"errors"
	"time"

	"claimdesk.app/server/internal/model"
)

var (
	// ErrNotFound is returned when a requested entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrReferenceConflict is returned when a reference number is already taken.
	ErrReferenceConflict = errors.New("reference number already in use")
)

// UserStore defines the contract for user data access
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByWorkOSID(ctx context.Context, workosID string) (*model.User, error)
	UpsertByWorkOSID(ctx context.Context, user *model.User) error
}

// SessionStore defines the contract for session data access
type SessionStore interface {
	GetValid(ctx context.Context, id int64) (*model.Session, error) // checks expiry
	Create(ctx context.Context, session *model.Session) error
	Delete(ctx context.Context, id int64) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// ClaimStore defines the contract for claim data access.
// Every read and write is scoped to the owning user.
type ClaimStore interface {
	Create(ctx context.Context, claim *model.Claim) error
	GetForOwner(ctx context.Context, id, ownerID int64) (*model.Claim, error)
	// ListByOwner returns claims newest first. A limit of zero returns all of them.
	ListByOwner(ctx context.Context, ownerID int64, search string, limit int32) ([]model.Claim, error)
	UpdateDetails(ctx context.Context, claim *model.Claim) error
	UpdateStatus(ctx context.Context, id, ownerID int64, status model.ClaimStatus) (*model.Claim, error)
	DeleteForOwner(ctx context.Context, id, ownerID int64) error
	Stats(ctx context.Context, ownerID int64) (model.ClaimStats, error)
	ListStalePending(ctx context.Context, cutoff time.Time, limit int32) ([]model.Claim, error)
}

// CommentStore defines the contract for claim comment data access
type CommentStore interface {
	Create(ctx context.Context, comment *model.Comment) error
	ListByClaim(ctx context.Context, claimID int64) ([]model.Comment, error)
	DeleteByClaim(ctx context.Context, claimID int64) (int64, error)
}

// AttachmentStore defines the contract for attachment metadata access
type AttachmentStore interface {
	Create(ctx context.Context, attachment *model.Attachment) error
	Get(ctx context.Context, id, claimID int64) (*model.Attachment, error)
	ListByClaim(ctx context.Context, claimID int64) ([]model.Attachment, error)
	// DeleteByClaim removes the rows and returns their storage keys.
	DeleteByClaim(ctx context.Context, claimID int64) ([]string, error)
}

// NotificationStore defines the contract for notification data access
type NotificationStore interface {
	Create(ctx context.Context, notification *model.Notification) error
	ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit int32) ([]model.Notification, error)
	MarkRead(ctx context.Context, id, userID int64) (*model.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	DeleteByClaim(ctx context.Context, claimID int64) (int64, error)
}

// ReferenceStore backs reference number allocation. It must be used inside a transaction.
type ReferenceStore interface {
	LockCounter(ctx context.Context, prefix string) (int64, error)
	LatestReference(ctx context.Context) (string, bool, error)
	SaveCounter(ctx context.Context, prefix string, value int64) error
}
