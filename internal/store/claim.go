package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"claimdesk.app/server/core/db/sqlc"
	"claimdesk.app/server/internal/model"
)

const (
	pgUniqueViolation         = "23505"
	referenceNumberConstraint = "claims_reference_number_key"
)

type claimStore struct {
	queries *sqlc.Queries
}

func newClaimStore(queries *sqlc.Queries) ClaimStore {
	return &claimStore{queries: queries}
}

func (s *claimStore) Create(ctx context.Context, claim *model.Claim) error {
	row, err := s.queries.CreateClaim(ctx, sqlc.CreateClaimParams{
		ID:              claim.ID,
		OwnerID:         claim.OwnerID,
		ReferenceNumber: claim.ReferenceNumber,
		Title:           claim.Title,
		Description:     claim.Description,
		Status:          string(claim.Status),
		Priority:        string(claim.Priority),
		Category:        string(claim.Category),
	})
	if err != nil {
		if isReferenceConflict(err) {
			return ErrReferenceConflict
		}
		return err
	}
	*claim = *toClaimModel(row)
	return nil
}

func (s *claimStore) GetForOwner(ctx context.Context, id, ownerID int64) (*model.Claim, error) {
	row, err := s.queries.GetClaimForOwner(ctx, sqlc.GetClaimForOwnerParams{ID: id, OwnerID: ownerID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toClaimModel(row), nil
}

func (s *claimStore) ListByOwner(ctx context.Context, ownerID int64, search string, limit int32) ([]model.Claim, error) {
	rows, err := s.queries.ListClaimsByOwner(ctx, sqlc.ListClaimsByOwnerParams{
		OwnerID:  ownerID,
		Search:   escapeLike(strings.TrimSpace(search)),
		RowLimit: limit,
	})
	if err != nil {
		return nil, err
	}
	return toClaimModels(rows), nil
}

func (s *claimStore) UpdateDetails(ctx context.Context, claim *model.Claim) error {
	row, err := s.queries.UpdateClaimDetails(ctx, sqlc.UpdateClaimDetailsParams{
		ID:          claim.ID,
		OwnerID:     claim.OwnerID,
		Title:       claim.Title,
		Description: claim.Description,
		Category:    string(claim.Category),
		Priority:    string(claim.Priority),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	*claim = *toClaimModel(row)
	return nil
}

func (s *claimStore) UpdateStatus(ctx context.Context, id, ownerID int64, status model.ClaimStatus) (*model.Claim, error) {
	row, err := s.queries.UpdateClaimStatus(ctx, sqlc.UpdateClaimStatusParams{
		ID:      id,
		OwnerID: ownerID,
		Status:  string(status),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toClaimModel(row), nil
}

func (s *claimStore) DeleteForOwner(ctx context.Context, id, ownerID int64) error {
	n, err := s.queries.DeleteClaimForOwner(ctx, sqlc.DeleteClaimForOwnerParams{ID: id, OwnerID: ownerID})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *claimStore) Stats(ctx context.Context, ownerID int64) (model.ClaimStats, error) {
	row, err := s.queries.GetClaimStats(ctx, ownerID)
	if err != nil {
		return model.ClaimStats{}, err
	}
	return model.ClaimStats{
		Total:      row.Total,
		Resolved:   row.Resolved,
		InProgress: row.InProgress,
		Pending:    row.Pending,
	}, nil
}

func (s *claimStore) ListStalePending(ctx context.Context, cutoff time.Time, limit int32) ([]model.Claim, error) {
	rows, err := s.queries.ListStalePendingClaims(ctx, sqlc.ListStalePendingClaimsParams{
		Cutoff:   pgtype.Timestamptz{Time: cutoff, Valid: true},
		RowLimit: limit,
	})
	if err != nil {
		return nil, err
	}
	return toClaimModels(rows), nil
}

func isReferenceConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgUniqueViolation &&
		pgErr.ConstraintName == referenceNumberConstraint
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func toClaimModel(row sqlc.Claim) *model.Claim {
	return &model.Claim{
		ID:              row.ID,
		OwnerID:         row.OwnerID,
		ReferenceNumber: row.ReferenceNumber,
		Title:           row.Title,
		Description:     row.Description,
		Status:          model.ClaimStatus(row.Status),
		Priority:        model.Priority(row.Priority),
		Category:        model.Category(row.Category),
		CreatedAt:       row.CreatedAt.Time,
		UpdatedAt:       row.UpdatedAt.Time,
	}
}

func toClaimModels(rows []sqlc.Claim) []model.Claim {
	claims := make([]model.Claim, 0, len(rows))
	for _, row := range rows {
		claims = append(claims, *toClaimModel(row))
	}
	return claims
}
