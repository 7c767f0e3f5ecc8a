package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/claims-service/internal/domain"
)

// ClaimAuditRepository stores and reads the append-only audit trail. No
// update or delete operation is exposed.
type ClaimAuditRepository interface {
	Append(ctx context.Context, entry *domain.ClaimAudit) error
	ListByClaim(ctx context.Context, claimID string) ([]domain.ClaimAudit, error)
}

type claimAuditRepository struct {
	pool *pgxpool.Pool
}

// NewClaimAuditRepository builds the repository.
func NewClaimAuditRepository(pool *pgxpool.Pool) ClaimAuditRepository {
	return &claimAuditRepository{pool: pool}
}

func (r *claimAuditRepository) Append(ctx context.Context, entry *domain.ClaimAudit) error {
	const query = `
        INSERT INTO claim_audit (claim_id, actor_id, actor_role, from_status, to_status, payload)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		entry.ClaimID,
		entry.ActorID,
		entry.ActorRole,
		entry.FromStatus,
		entry.ToStatus,
		entry.Payload,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *claimAuditRepository) ListByClaim(ctx context.Context, claimID string) ([]domain.ClaimAudit, error) {
	const query = `
        SELECT id, claim_id, actor_id, actor_role, from_status, to_status, payload, created_at
        FROM claim_audit WHERE claim_id=$1 ORDER BY created_at ASC, id ASC`
	rows, err := r.pool.Query(ctx, query, claimID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ClaimAudit
	for rows.Next() {
		var entry domain.ClaimAudit
		if err := rows.Scan(
			&entry.ID,
			&entry.ClaimID,
			&entry.ActorID,
			&entry.ActorRole,
			&entry.FromStatus,
			&entry.ToStatus,
			&entry.Payload,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
