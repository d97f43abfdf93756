package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"claimdesk.app/server/core/db/sqlc"
	"claimdesk.app/server/internal/model"
)

type attachmentStore struct {
	queries *sqlc.Queries
}

func newAttachmentStore(queries *sqlc.Queries) AttachmentStore {
	return &attachmentStore{queries: queries}
}

func (s *attachmentStore) Create(ctx context.Context, attachment *model.Attachment) error {
	row, err := s.queries.CreateAttachment(ctx, sqlc.CreateAttachmentParams{
		ID:               attachment.ID,
		ClaimID:          attachment.ClaimID,
		StorageKey:       attachment.StorageKey,
		OriginalFilename: attachment.OriginalFilename,
		MimeType:         attachment.MIMEType,
		SizeBytes:        attachment.SizeBytes,
	})
	if err != nil {
		return err
	}
	*attachment = toAttachmentModel(row)
	return nil
}

func (s *attachmentStore) Get(ctx context.Context, id, claimID int64) (*model.Attachment, error) {
	row, err := s.queries.GetAttachment(ctx, sqlc.GetAttachmentParams{ID: id, ClaimID: claimID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	a := toAttachmentModel(row)
	return &a, nil
}

func (s *attachmentStore) ListByClaim(ctx context.Context, claimID int64) ([]model.Attachment, error) {
	rows, err := s.queries.ListAttachmentsByClaim(ctx, claimID)
	if err != nil {
		return nil, err
	}
	attachments := make([]model.Attachment, 0, len(rows))
	for _, row := range rows {
		attachments = append(attachments, toAttachmentModel(row))
	}
	return attachments, nil
}

func (s *attachmentStore) DeleteByClaim(ctx context.Context, claimID int64) ([]string, error) {
	return s.queries.DeleteAttachmentsByClaim(ctx, claimID)
}

func toAttachmentModel(row sqlc.ClaimAttachment) model.Attachment {
	return model.Attachment{
		ID:               row.ID,
		ClaimID:          row.ClaimID,
		StorageKey:       row.StorageKey,
		OriginalFilename: row.OriginalFilename,
		MIMEType:         row.MimeType,
		SizeBytes:        row.SizeBytes,
		UploadedAt:       row.UploadedAt.Time,
	}
}
