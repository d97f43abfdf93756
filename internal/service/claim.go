package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel/trace"

	"claimdesk.app/server/common/id"
	"claimdesk.app/server/common/logger"
	"claimdesk.app/server/internal/blob"
	"claimdesk.app/server/internal/model"
	"claimdesk.app/server/internal/queue"
	"claimdesk.app/server/internal/refnum"
	"claimdesk.app/server/internal/store"
	"claimdesk.app/server/internal/upload"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 10000
	maxCommentLen     = 5000

	// maxReferenceAttempts bounds how often creation is retried after losing a
	// reference number race.
	maxReferenceAttempts = 3
)

// UploadedFile is one file from a multipart request. Open may be called more
// than once and must return the full content each time.
type UploadedFile struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

type ClaimInput struct {
	Title       string
	Description string
	Category    model.Category
	Priority    model.Priority
}

type CreateClaimResult struct {
	Claim       *model.Claim
	Attachments []model.Attachment
	Rejected    []upload.Rejection
}

type ClaimService interface {
	Create(ctx context.Context, actor model.Actor, in ClaimInput, files []UploadedFile) (*CreateClaimResult, error)
	List(ctx context.Context, actor model.Actor, search string) ([]model.Claim, error)
	Get(ctx context.Context, actor model.Actor, claimID int64) (*model.ClaimDetail, error)
	AddComment(ctx context.Context, actor model.Actor, claimID int64, content string) (*model.Comment, error)
	Update(ctx context.Context, actor model.Actor, claimID int64, in ClaimInput) (*model.Claim, error)
	ChangeStatus(ctx context.Context, actor model.Actor, claimID int64, status model.ClaimStatus) (*model.Claim, error)
	Delete(ctx context.Context, actor model.Actor, claimID int64) error
	OpenAttachment(ctx context.Context, actor model.Actor, claimID, attachmentID int64) (*model.Attachment, io.ReadCloser, error)
}

type claimService struct {
	claims      store.ClaimStore
	comments    store.CommentStore
	attachments store.AttachmentStore
	txRunner    TxRunner
	blobs       blob.Storage
	producer    queue.Producer
	validator   *upload.Validator
}

func NewClaimService(
	claims store.ClaimStore,
	comments store.CommentStore,
	attachments store.AttachmentStore,
	txRunner TxRunner,
	blobs blob.Storage,
	producer queue.Producer,
	validator *upload.Validator,
) ClaimService {
	return &claimService{
		claims:      claims,
		comments:    comments,
		attachments: attachments,
		txRunner:    txRunner,
		blobs:       blobs,
		producer:    producer,
		validator:   validator,
	}
}

type screenedFile struct {
	file     UploadedFile
	mimeType string
}

func (s *claimService) Create(ctx context.Context, actor model.Actor, in ClaimInput, files []UploadedFile) (*CreateClaimResult, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: &actor.UserID, Component: "service.claim"})

	in, err := normalizeClaimInput(in)
	if err != nil {
		return nil, err
	}

	accepted, rejected, err := s.screenFiles(ctx, files)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= maxReferenceAttempts; attempt++ {
		result, err := s.createOnce(ctx, actor, in, accepted)
		if err == nil {
			result.Rejected = rejected
			slog.InfoContext(ctx, "claim created",
				"claim_id", result.Claim.ID,
				"reference_number", result.Claim.ReferenceNumber,
				"attachments", len(result.Attachments),
				"rejected", len(rejected),
			)
			return result, nil
		}
		if !errors.Is(err, store.ErrReferenceConflict) {
			return nil, err
		}
		slog.WarnContext(ctx, "reference number conflict, retrying", "attempt", attempt)
	}

	slog.ErrorContext(ctx, "reference number allocation exhausted", "attempts", maxReferenceAttempts)
	return nil, ErrReferenceConflict
}

// createOnce runs one creation attempt. Blobs written by a failed attempt are removed.
func (s *claimService) createOnce(ctx context.Context, actor model.Actor, in ClaimInput, files []screenedFile) (*CreateClaimResult, error) {
	var (
		result  CreateClaimResult
		written []string
	)

	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		ref, err := refnum.Next(ctx, sp.References())
		if err != nil {
			return fmt.Errorf("allocating reference number: %w", err)
		}

		claim := &model.Claim{
			ID:              id.New(),
			OwnerID:         actor.UserID,
			ReferenceNumber: ref,
			Title:           in.Title,
			Description:     in.Description,
			Status:          model.ClaimStatusPending,
			Priority:        in.Priority,
			Category:        in.Category,
		}
		if err := sp.Claims().Create(ctx, claim); err != nil {
			if errors.Is(err, store.ErrReferenceConflict) {
				return err
			}
			return fmt.Errorf("creating claim: %w", err)
		}

		attachments := make([]model.Attachment, 0, len(files))
		for _, f := range files {
			key := blob.AttachmentKey(claim.ID, ref, f.file.Name)
			if err := s.putBlob(ctx, key, f); err != nil {
				return err
			}
			written = append(written, key)

			a := &model.Attachment{
				ID:               id.New(),
				ClaimID:          claim.ID,
				StorageKey:       key,
				OriginalFilename: f.file.Name,
				MIMEType:         f.mimeType,
				SizeBytes:        f.file.Size,
			}
			if err := sp.Attachments().Create(ctx, a); err != nil {
				return fmt.Errorf("recording attachment: %w", err)
			}
			attachments = append(attachments, *a)
		}

		if err := sp.Notifications().Create(ctx, &model.Notification{
			ID:      id.New(),
			UserID:  claim.OwnerID,
			ClaimID: claim.ID,
			Type:    model.NotificationTypeStatusUpdate,
			Message: fmt.Sprintf("Your claim %s was created successfully.", claim.ReferenceNumber),
		}); err != nil {
			return fmt.Errorf("creating notification: %w", err)
		}

		result.Claim = claim
		result.Attachments = attachments
		return nil
	})
	if err != nil {
		s.removeBlobs(ctx, written)
		return nil, err
	}
	return &result, nil
}

// screenFiles validates every file up front. Invalid files are reported and
// skipped, they never fail the request.
func (s *claimService) screenFiles(ctx context.Context, files []UploadedFile) ([]screenedFile, []upload.Rejection, error) {
	accepted := make([]screenedFile, 0, len(files))
	var rejected []upload.Rejection

	for _, f := range files {
		rc, err := f.Open()
		if err != nil {
			return nil, nil, fmt.Errorf("opening upload %q: %w", f.Name, err)
		}
		ok, rej, err := s.validator.Validate(f.Name, f.Size, rc)
		rc.Close()
		if err != nil {
			return nil, nil, err
		}
		if rej != nil {
			slog.InfoContext(ctx, "attachment rejected",
				"filename", logger.Truncate(f.Name, 100),
				"reason", rej.Reason,
			)
			rejected = append(rejected, *rej)
			continue
		}
		accepted = append(accepted, screenedFile{file: f, mimeType: ok.MIMEType})
	}
	return accepted, rejected, nil
}

// putBlob sniffs the reopened upload again and stores exactly the bytes that
// passed, so content swapped between screening and storage is never persisted.
func (s *claimService) putBlob(ctx context.Context, key string, f screenedFile) error {
	rc, err := f.file.Open()
	if err != nil {
		return fmt.Errorf("opening upload %q: %w", f.file.Name, err)
	}
	defer rc.Close()

	acc, rej, err := s.validator.Validate(f.file.Name, f.file.Size, rc)
	if err != nil {
		return err
	}
	if rej != nil || acc.MIMEType != f.mimeType {
		return fmt.Errorf("upload %q changed after screening", f.file.Name)
	}

	if err := s.blobs.Put(ctx, key, acc.Body, acc.Size, acc.MIMEType); err != nil {
		return fmt.Errorf("storing attachment %q: %w", f.file.Name, err)
	}
	return nil
}

func (s *claimService) removeBlobs(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.blobs.Delete(ctx, key); err != nil {
			slog.WarnContext(ctx, "failed to remove blob", "error", err, "storage_key", key)
		}
	}
}

func (s *claimService) List(ctx context.Context, actor model.Actor, search string) ([]model.Claim, error) {
	claims, err := s.claims.ListByOwner(ctx, actor.UserID, search, 0)
	if err != nil {
		return nil, fmt.Errorf("listing claims: %w", err)
	}
	return claims, nil
}

func (s *claimService) Get(ctx context.Context, actor model.Actor, claimID int64) (*model.ClaimDetail, error) {
	claim, err := s.claims.GetForOwner(ctx, claimID, actor.UserID)
	if err != nil {
		return nil, claimLookupError(err)
	}

	comments, err := s.comments.ListByClaim(ctx, claim.ID)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}

	attachments, err := s.attachments.ListByClaim(ctx, claim.ID)
	if err != nil {
		return nil, fmt.Errorf("listing attachments: %w", err)
	}

	return &model.ClaimDetail{Claim: *claim, Comments: comments, Attachments: attachments}, nil
}

func (s *claimService) AddComment(ctx context.Context, actor model.Actor, claimID int64, content string) (*model.Comment, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: &actor.UserID, ClaimID: &claimID, Component: "service.claim"})

	content = strings.TrimSpace(content)
	switch {
	case content == "":
		return nil, &ValidationError{Fields: map[string]string{"content": "must not be empty"}}
	case utf8.RuneCountInString(content) > maxCommentLen:
		return nil, &ValidationError{Fields: map[string]string{"content": fmt.Sprintf("must be at most %d characters", maxCommentLen)}}
	}

	var comment *model.Comment
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		claim, err := sp.Claims().GetForOwner(ctx, claimID, actor.UserID)
		if err != nil {
			return claimLookupError(err)
		}

		comment = &model.Comment{
			ID:               id.New(),
			ClaimID:          claim.ID,
			AuthorID:         actor.UserID,
			Content:          content,
			OfficialResponse: actor.IsStaff,
		}
		if err := sp.Comments().Create(ctx, comment); err != nil {
			return fmt.Errorf("creating comment: %w", err)
		}

		return sp.Notifications().Create(ctx, &model.Notification{
			ID:      id.New(),
			UserID:  claim.OwnerID,
			ClaimID: claim.ID,
			Type:    model.NotificationTypeResponseReceived,
			Message: fmt.Sprintf("New response on your claim %s.", claim.ReferenceNumber),
		})
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "comment added", "comment_id", comment.ID, "official", comment.OfficialResponse)
	return comment, nil
}

func (s *claimService) Update(ctx context.Context, actor model.Actor, claimID int64, in ClaimInput) (*model.Claim, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: &actor.UserID, ClaimID: &claimID, Component: "service.claim"})

	in, err := normalizeClaimInput(in)
	if err != nil {
		return nil, err
	}

	claim := &model.Claim{
		ID:          claimID,
		OwnerID:     actor.UserID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Priority:    in.Priority,
	}
	err = s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		if err := sp.Claims().UpdateDetails(ctx, claim); err != nil {
			return claimLookupError(err)
		}
		return sp.Notifications().Create(ctx, &model.Notification{
			ID:      id.New(),
			UserID:  claim.OwnerID,
			ClaimID: claim.ID,
			Type:    model.NotificationTypeStatusUpdate,
			Message: fmt.Sprintf("Your claim %s was updated.", claim.ReferenceNumber),
		})
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "claim updated")
	return claim, nil
}

func (s *claimService) ChangeStatus(ctx context.Context, actor model.Actor, claimID int64, status model.ClaimStatus) (*model.Claim, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: &actor.UserID, ClaimID: &claimID, Component: "service.claim"})

	if !status.Valid() {
		return nil, &ValidationError{Fields: map[string]string{"status": "unknown status"}}
	}

	var claim *model.Claim
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		var err error
		claim, err = sp.Claims().UpdateStatus(ctx, claimID, actor.UserID, status)
		if err != nil {
			return claimLookupError(err)
		}
		return sp.Notifications().Create(ctx, &model.Notification{
			ID:      id.New(),
			UserID:  claim.OwnerID,
			ClaimID: claim.ID,
			Type:    model.NotificationTypeStatusUpdate,
			Message: fmt.Sprintf("Your claim %s changed status to %s.", claim.ReferenceNumber, status.Label()),
		})
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "claim status changed", "status", status)
	return claim, nil
}

func (s *claimService) Delete(ctx context.Context, actor model.Actor, claimID int64) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: &actor.UserID, ClaimID: &claimID, Component: "service.claim"})

	var keys []string
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		claim, err := sp.Claims().GetForOwner(ctx, claimID, actor.UserID)
		if err != nil {
			return claimLookupError(err)
		}

		if _, err := sp.Notifications().DeleteByClaim(ctx, claim.ID); err != nil {
			return fmt.Errorf("deleting notifications: %w", err)
		}
		keys, err = sp.Attachments().DeleteByClaim(ctx, claim.ID)
		if err != nil {
			return fmt.Errorf("deleting attachments: %w", err)
		}
		if _, err := sp.Comments().DeleteByClaim(ctx, claim.ID); err != nil {
			return fmt.Errorf("deleting comments: %w", err)
		}
		if err := sp.Claims().DeleteForOwner(ctx, claim.ID, actor.UserID); err != nil {
			return claimLookupError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "claim deleted", "attachments", len(keys))
	s.scheduleBlobCleanup(ctx, claimID, keys)
	return nil
}

// scheduleBlobCleanup hands stored bytes to the worker. Without a queue, or
// when enqueueing fails, the blobs are removed inline.
func (s *claimService) scheduleBlobCleanup(ctx context.Context, claimID int64, keys []string) {
	if len(keys) == 0 {
		return
	}

	if s.producer != nil {
		err := s.producer.Enqueue(ctx, queue.Task{
			TaskType:    queue.TaskTypeBlobCleanup,
			ClaimID:     claimID,
			StorageKeys: keys,
			TraceID:     traceID(ctx),
		})
		if err == nil {
			return
		}
		slog.WarnContext(ctx, "failed to enqueue blob cleanup, deleting inline", "error", err)
	}

	s.removeBlobs(ctx, keys)
}

// traceID links the worker span to the request that enqueued the task.
func traceID(ctx context.Context) *string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return nil
	}
	tid := sc.TraceID().String()
	return &tid
}

func (s *claimService) OpenAttachment(ctx context.Context, actor model.Actor, claimID, attachmentID int64) (*model.Attachment, io.ReadCloser, error) {
	if _, err := s.claims.GetForOwner(ctx, claimID, actor.UserID); err != nil {
		return nil, nil, claimLookupError(err)
	}

	attachment, err := s.attachments.Get(ctx, attachmentID, claimID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrAttachmentNotFound
		}
		return nil, nil, fmt.Errorf("getting attachment: %w", err)
	}

	body, err := s.blobs.Open(ctx, attachment.StorageKey)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			slog.WarnContext(ctx, "attachment bytes missing", "attachment_id", attachment.ID, "storage_key", attachment.StorageKey)
			return nil, nil, ErrAttachmentNotFound
		}
		return nil, nil, fmt.Errorf("opening attachment: %w", err)
	}
	return attachment, body, nil
}

func claimLookupError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrClaimNotFound
	}
	return fmt.Errorf("loading claim: %w", err)
}

// normalizeClaimInput trims text fields and checks every field.
func normalizeClaimInput(in ClaimInput) (ClaimInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)

	verr := &ValidationError{}
	switch {
	case in.Title == "":
		verr.add("title", "must not be empty")
	case utf8.RuneCountInString(in.Title) > maxTitleLen:
		verr.add("title", fmt.Sprintf("must be at most %d characters", maxTitleLen))
	}
	switch {
	case in.Description == "":
		verr.add("description", "must not be empty")
	case utf8.RuneCountInString(in.Description) > maxDescriptionLen:
		verr.add("description", fmt.Sprintf("must be at most %d characters", maxDescriptionLen))
	}
	if !in.Category.Valid() {
		verr.add("category", "must be one of SERVICIO, FACTURACION, TECNICO, OTRO")
	}
	if !in.Priority.Valid() {
		verr.add("priority", "must be one of BAJA, MEDIA, ALTA")
	}
	return in, verr.orNil()
}
