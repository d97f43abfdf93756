package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrClaimNotFound        = errors.New("claim not found")
	ErrAttachmentNotFound   = errors.New("attachment not found")
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrReferenceConflict means a reference number could not be allocated after
	// several attempts. The request can be retried.
	ErrReferenceConflict = errors.New("could not allocate a unique reference number")
)

// ValidationError reports per-field input problems. Nothing is persisted when it is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	e.Fields[field] = msg
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
