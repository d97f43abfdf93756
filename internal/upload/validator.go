// Package upload checks claim attachments before they reach storage.
package upload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
)

const (
	DefaultMaxBytes int64 = 5 * 1024 * 1024

	// MaxNameLen matches attachments.original_filename VARCHAR(255).
	MaxNameLen = 255

	// sniffLen is how much of the stream is inspected for a type signature.
	sniffLen = 1024
)

var DefaultAllowedTypes = []string{"application/pdf", "image/jpeg", "image/png"}

type Reason string

const (
	ReasonTooLarge       Reason = "too_large"
	ReasonTypeNotAllowed Reason = "type_not_allowed"
	ReasonNameTooLong    Reason = "name_too_long"
)

// Rejection describes a file that was not stored. It is reported back to the
// caller and never aborts the surrounding request.
type Rejection struct {
	Filename string `json:"filename"`
	Reason   Reason `json:"reason"`
	Message  string `json:"message"`
}

// Accepted is a file that passed validation. Body replays the full content,
// including the bytes consumed for sniffing.
type Accepted struct {
	OriginalName string
	MIMEType     string
	Size         int64
	Body         io.Reader
}

type Validator struct {
	maxBytes int64
	allowed  []string
}

func NewValidator(maxBytes int64, allowed []string) *Validator {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if len(allowed) == 0 {
		allowed = DefaultAllowedTypes
	}
	return &Validator{maxBytes: maxBytes, allowed: allowed}
}

func (v *Validator) MaxBytes() int64 {
	return v.maxBytes
}

// Validate applies the name rule, the size rule and then the content type rule.
// The declared content type and the filename extension are never consulted.
// A non-nil error means the stream itself could not be read.
func (v *Validator) Validate(name string, size int64, r io.Reader) (*Accepted, *Rejection, error) {
	if utf8.RuneCountInString(name) > MaxNameLen {
		return nil, &Rejection{
			Filename: name,
			Reason:   ReasonNameTooLong,
			Message:  fmt.Sprintf("file name exceeds %d characters", MaxNameLen),
		}, nil
	}

	if size > v.maxBytes {
		return nil, &Rejection{
			Filename: name,
			Reason:   ReasonTooLarge,
			Message:  fmt.Sprintf("file %q exceeds the maximum size of %s", name, formatMB(v.maxBytes)),
		}, nil
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("reading %q: %w", name, err)
	}
	head = head[:n]

	detected := mimetype.Detect(head)
	mimeType, ok := v.match(detected)
	if !ok {
		return nil, &Rejection{
			Filename: name,
			Reason:   ReasonTypeNotAllowed,
			Message:  fmt.Sprintf("file %q has type %s, which is not allowed", name, detected.String()),
		}, nil
	}

	return &Accepted{
		OriginalName: name,
		MIMEType:     mimeType,
		Size:         size,
		Body:         io.MultiReader(bytes.NewReader(head), r),
	}, nil, nil
}

// match reports the allow-list entry the detected type satisfies, honouring aliases.
func (v *Validator) match(detected *mimetype.MIME) (string, bool) {
	for _, allowed := range v.allowed {
		if detected.Is(allowed) {
			return allowed, true
		}
	}
	return "", false
}

func formatMB(n int64) string {
	return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
}
