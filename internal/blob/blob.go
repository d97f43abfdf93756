// Package blob stores attachment bytes outside the database.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"claimdesk.app/server/core/config"
)

var (
	ErrNotFound     = errors.New("blob not found")
	ErrInvalidKey   = errors.New("invalid blob key")
	ErrKeyTraversal = errors.New("path traversal not allowed")
)

// Storage persists opaque objects under slash separated keys.
type Storage interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error
}

// New builds the storage backend selected in configuration.
func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Backend {
	case config.StorageBackendS3:
		return NewS3Storage(ctx, cfg.S3)
	case config.StorageBackendLocal, "":
		return NewLocalStorage(cfg.LocalRoot)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// maxExtLen bounds the extension copied into a key, dot included.
const maxExtLen = 10

// AttachmentKey builds the key for a claim attachment:
// claims/<claim id>/<reference>_<10 hex chars><original extension>.
// Extensions that are long or not plain alphanumerics are dropped.
func AttachmentKey(claimID int64, reference, originalName string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
	return fmt.Sprintf("claims/%d/%s_%s%s", claimID, reference, suffix, keyExt(originalName))
}

func keyExt(name string) string {
	ext := strings.ToLower(path.Ext(filepath.Base(name)))
	if len(ext) < 2 || len(ext) > maxExtLen {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}

func validateKey(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	if strings.Contains(key, "..") || strings.HasPrefix(key, "/") || filepath.IsAbs(key) {
		return ErrKeyTraversal
	}
	return nil
}
