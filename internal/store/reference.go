package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"claimdesk.app/server/core/db/sqlc"
)

type referenceStore struct {
	queries *sqlc.Queries
}

func newReferenceStore(queries *sqlc.Queries) ReferenceStore {
	return &referenceStore{queries: queries}
}

// LockCounter takes a row lock on the counter; concurrent callers wait until
// the holding transaction commits or rolls back.
func (s *referenceStore) LockCounter(ctx context.Context, prefix string) (int64, error) {
	value, err := s.queries.LockReferenceCounter(ctx, prefix)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("reference counter %q is not seeded", prefix)
		}
		return 0, err
	}
	return value, nil
}

func (s *referenceStore) LatestReference(ctx context.Context) (string, bool, error) {
	ref, err := s.queries.GetLatestReferenceNumber(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return ref, true, nil
}

func (s *referenceStore) SaveCounter(ctx context.Context, prefix string, value int64) error {
	return s.queries.SetReferenceCounter(ctx, sqlc.SetReferenceCounterParams{Prefix: prefix, LastValue: value})
}
