package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"claimdesk.app/server/internal/blob"
	"claimdesk.app/server/internal/queue"
)

// BlobCleanupHandler removes the stored bytes of a deleted claim's attachments.
type BlobCleanupHandler struct {
	blobs blob.Storage
}

func NewBlobCleanupHandler(blobs blob.Storage) *BlobCleanupHandler {
	return &BlobCleanupHandler{blobs: blobs}
}

// Handle deletes every key and reports all failures together. Keys that are
// already gone count as deleted, so a retried message is harmless.
func (h *BlobCleanupHandler) Handle(ctx context.Context, msg queue.Message) error {
	var errs []error
	deleted := 0
	for _, key := range msg.StorageKeys {
		if err := h.blobs.Delete(ctx, key); err != nil {
			if errors.Is(err, blob.ErrInvalidKey) || errors.Is(err, blob.ErrKeyTraversal) {
				slog.ErrorContext(ctx, "skipping unusable storage key", "storage_key", key, "error", err)
				continue
			}
			errs = append(errs, fmt.Errorf("deleting %s: %w", key, err))
			continue
		}
		deleted++
	}

	slog.InfoContext(ctx, "blob cleanup finished",
		"deleted", deleted,
		"failed", len(errs),
		"total", len(msg.StorageKeys))

	return errors.Join(errs...)
}
