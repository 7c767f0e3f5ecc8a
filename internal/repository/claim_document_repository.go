package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/claims-service/internal/domain"
)

// ClaimDocumentRepository stores metadata for uploaded claim documents.
type ClaimDocumentRepository interface {
	Create(ctx context.Context, doc *domain.ClaimDocument) error
	ListByClaim(ctx context.Context, claimID string) ([]domain.ClaimDocument, error)
}

type claimDocumentRepository struct {
	pool *pgxpool.Pool
}

// NewClaimDocumentRepository instantiates the repository.
func NewClaimDocumentRepository(pool *pgxpool.Pool) ClaimDocumentRepository {
	return &claimDocumentRepository{pool: pool}
}

func (r *claimDocumentRepository) Create(ctx context.Context, doc *domain.ClaimDocument) error {
	const query = `
        INSERT INTO claim_documents (claim_id, file_name, content_type, storage_key, size_bytes, uploaded_by_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		doc.ClaimID,
		doc.FileName,
		doc.ContentType,
		doc.StorageKey,
		doc.SizeBytes,
		doc.UploadedByID,
	).Scan(&doc.ID, &doc.CreatedAt)
}

func (r *claimDocumentRepository) ListByClaim(ctx context.Context, claimID string) ([]domain.ClaimDocument, error) {
	const query = `
        SELECT id, claim_id, file_name, content_type, storage_key, size_bytes, uploaded_by_id, created_at
        FROM claim_documents WHERE claim_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, claimID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ClaimDocument
	for rows.Next() {
		var doc domain.ClaimDocument
		if err := rows.Scan(
			&doc.ID,
			&doc.ClaimID,
			&doc.FileName,
			&doc.ContentType,
			&doc.StorageKey,
			&doc.SizeBytes,
			&doc.UploadedByID,
			&doc.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, doc)
	}
	return result, rows.Err()
}
