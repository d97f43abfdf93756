// Package refnum allocates human readable claim reference numbers of the form INT-00042.
package refnum

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	Prefix = "INT-"
	width  = 5
)

// ErrMalformed is returned when a stored reference number cannot be parsed.
var ErrMalformed = errors.New("malformed reference number")

// Format renders n with the INT- prefix, zero padded to five digits.
// Wider numbers are rendered in full.
func Format(n int64) string {
	return fmt.Sprintf("%s%0*d", Prefix, width, n)
}

// Parse returns the numeric part of a reference number.
func Parse(ref string) (int64, error) {
	digits, ok := strings.CutPrefix(ref, Prefix)
	if !ok || len(digits) < width {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, ref)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q", ErrMalformed, ref)
		}
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, ref)
	}
	return n, nil
}

// Source is the transactional view the generator allocates from.
// LockCounter must block concurrent allocators until the surrounding
// transaction ends.
type Source interface {
	LockCounter(ctx context.Context, prefix string) (int64, error)
	// LatestReference returns the highest stored reference, or ok=false when none exist.
	LatestReference(ctx context.Context) (ref string, ok bool, err error)
	SaveCounter(ctx context.Context, prefix string, value int64) error
}

// Next allocates the next reference number from src. It must be called inside
// the transaction that inserts the claim.
//
// The counter row is a high-water mark, so numbers freed by deleting the newest
// claim are not handed out again. The stored maximum is still consulted so rows
// inserted without the counter (imports, restores) cannot cause a collision.
func Next(ctx context.Context, src Source) (string, error) {
	counter, err := src.LockCounter(ctx, Prefix)
	if err != nil {
		return "", fmt.Errorf("locking reference counter: %w", err)
	}

	latest, ok, err := src.LatestReference(ctx)
	if err != nil {
		return "", fmt.Errorf("reading latest reference: %w", err)
	}

	next := counter
	if ok {
		n, err := Parse(latest)
		if err != nil {
			return "", err
		}
		next = max(next, n)
	}
	next++

	if err := src.SaveCounter(ctx, Prefix, next); err != nil {
		return "", fmt.Errorf("saving reference counter: %w", err)
	}

	return Format(next), nil
}
