package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/claims-service/internal/domain"
)

// ClaimNoteRepository handles persistence for claim notes.
type ClaimNoteRepository interface {
	Create(ctx context.Context, note *domain.ClaimNote) error
	ListByClaim(ctx context.Context, claimID string) ([]domain.ClaimNote, error)
}

type claimNoteRepository struct {
	pool *pgxpool.Pool
}

// NewClaimNoteRepository instantiates the repository.
func NewClaimNoteRepository(pool *pgxpool.Pool) ClaimNoteRepository {
	return &claimNoteRepository{pool: pool}
}

func (r *claimNoteRepository) Create(ctx context.Context, note *domain.ClaimNote) error {
	const query = `
        INSERT INTO claim_notes (claim_id, author_id, content)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		note.ClaimID,
		note.AuthorID,
		note.Content,
	).Scan(&note.ID, &note.CreatedAt)
}

func (r *claimNoteRepository) ListByClaim(ctx context.Context, claimID string) ([]domain.ClaimNote, error) {
	const query = `
        SELECT id, claim_id, author_id, content, created_at
        FROM claim_notes WHERE claim_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, claimID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ClaimNote
	for rows.Next() {
		var note domain.ClaimNote
		if err := rows.Scan(
			&note.ID,
			&note.ClaimID,
			&note.AuthorID,
			&note.Content,
			&note.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, note)
	}
	return result, rows.Err()
}
