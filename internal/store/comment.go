package store

import (
	"context"

	"claimdesk.app/server/core/db/sqlc"
	"claimdesk.app/server/internal/model"
)

type commentStore struct {
	queries *sqlc.Queries
}

func newCommentStore(queries *sqlc.Queries) CommentStore {
	return &commentStore{queries: queries}
}

func (s *commentStore) Create(ctx context.Context, comment *model.Comment) error {
	row, err := s.queries.CreateComment(ctx, sqlc.CreateCommentParams{
		ID:               comment.ID,
		ClaimID:          comment.ClaimID,
		AuthorID:         comment.AuthorID,
		Content:          comment.Content,
		OfficialResponse: comment.OfficialResponse,
	})
	if err != nil {
		return err
	}
	*comment = toCommentModel(row)
	return nil
}

func (s *commentStore) ListByClaim(ctx context.Context, claimID int64) ([]model.Comment, error) {
	rows, err := s.queries.ListCommentsByClaim(ctx, claimID)
	if err != nil {
		return nil, err
	}
	comments := make([]model.Comment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, toCommentModel(row))
	}
	return comments, nil
}

func (s *commentStore) DeleteByClaim(ctx context.Context, claimID int64) (int64, error) {
	return s.queries.DeleteCommentsByClaim(ctx, claimID)
}

func toCommentModel(row sqlc.ClaimComment) model.Comment {
	return model.Comment{
		ID:               row.ID,
		ClaimID:          row.ClaimID,
		AuthorID:         row.AuthorID,
		Content:          row.Content,
		OfficialResponse: row.OfficialResponse,
		CreatedAt:        row.CreatedAt.Time,
	}
}
