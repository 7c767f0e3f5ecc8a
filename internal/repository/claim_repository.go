package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/claims-service/internal/domain"
)

// ErrClaimStatusConflict signals a compare-and-set update that lost the race:
// the claim's status no longer matches the expected pre-transition status.
var ErrClaimStatusConflict = errors.New("claim status changed concurrently")

// ClaimFilter captures role-scoped listing parameters.
type ClaimFilter struct {
	CustomerID         *string
	Statuses           []domain.ClaimStatus
	AssignedAdjusterID *string
	IncludeUnassigned  bool
	Limit              int
	Offset             int
}

// ClaimStatusChange carries the fields a committed transition writes.
// Supplemental fields are applied only when present; existing values are
// never cleared.
type ClaimStatusChange struct {
	Status             domain.ClaimStatus
	AssignedAdjusterID *string
	ApprovedAmount     *float64
}

// ClaimRepository encapsulates claim persistence.
type ClaimRepository interface {
	Create(ctx context.Context, claim *domain.Claim) error
	GetByID(ctx context.Context, id string) (*domain.Claim, error)
	GetByClaimNumber(ctx context.Context, number string) (*domain.Claim, error)
	ListWithFilter(ctx context.Context, filter ClaimFilter) ([]domain.Claim, error)
	CompareAndSetStatus(ctx context.Context, id string, expected domain.ClaimStatus, change ClaimStatusChange) (*domain.Claim, error)
}

type claimRepository struct {
	pool *pgxpool.Pool
}

// NewClaimRepository instantiates the repository.
func NewClaimRepository(pool *pgxpool.Pool) ClaimRepository {
	return &claimRepository{pool: pool}
}

const claimColumns = `id, claim_number, policy_id, customer_id, assigned_adjuster_id, status,
               incident_date, incident_description, incident_location,
               estimated_damage, approved_amount, created_at, updated_at`

func (r *claimRepository) Create(ctx context.Context, claim *domain.Claim) error {
	const query = `
        INSERT INTO claims (claim_number, policy_id, customer_id, status, incident_date, incident_description, incident_location, estimated_damage)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		claim.ClaimNumber,
		claim.PolicyID,
		claim.CustomerID,
		claim.Status,
		claim.IncidentDate,
		claim.IncidentDescription,
		claim.IncidentLocation,
		claim.EstimatedDamage,
	).Scan(&claim.ID, &claim.CreatedAt, &claim.UpdatedAt)
}

func (r *claimRepository) GetByID(ctx context.Context, id string) (*domain.Claim, error) {
	query := fmt.Sprintf(`SELECT %s FROM claims WHERE id=$1`, claimColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *claimRepository) GetByClaimNumber(ctx context.Context, number string) (*domain.Claim, error) {
	query := fmt.Sprintf(`SELECT %s FROM claims WHERE claim_number=$1`, claimColumns)
	return r.fetchSingle(ctx, query, number)
}

func (r *claimRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Claim, error) {
	var claim domain.Claim
	if err := scanClaim(r.pool.QueryRow(ctx, query, arg), &claim); err != nil {
		return nil, err
	}
	return &claim, nil
}

func (r *claimRepository) ListWithFilter(ctx context.Context, filter ClaimFilter) ([]domain.Claim, error) {
	base := fmt.Sprintf(`SELECT %s FROM claims`, claimColumns)
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		clauses = append(clauses, fmt.Sprintf("customer_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.AssignedAdjusterID != nil {
		args = append(args, *filter.AssignedAdjusterID)
		if filter.IncludeUnassigned {
			clauses = append(clauses, fmt.Sprintf("(assigned_adjuster_id=$%d OR assigned_adjuster_id IS NULL)", len(args)))
		} else {
			clauses = append(clauses, fmt.Sprintf("assigned_adjuster_id=$%d", len(args)))
		}
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY updated_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Claim
	for rows.Next() {
		var claim domain.Claim
		if err := scanClaim(rows, &claim); err != nil {
			return nil, err
		}
		result = append(result, claim)
	}
	return result, rows.Err()
}

// CompareAndSetStatus applies a transition only if the claim still holds the
// expected status. Losing the race yields ErrClaimStatusConflict; a missing
// claim yields pgx.ErrNoRows.
func (r *claimRepository) CompareAndSetStatus(ctx context.Context, id string, expected domain.ClaimStatus, change ClaimStatusChange) (*domain.Claim, error) {
	query := fmt.Sprintf(`
        UPDATE claims SET status=$3,
            assigned_adjuster_id=COALESCE($4, assigned_adjuster_id),
            approved_amount=COALESCE($5, approved_amount),
            updated_at=NOW()
        WHERE id=$1 AND status=$2
        RETURNING %s`, claimColumns)

	var claim domain.Claim
	err := scanClaim(r.pool.QueryRow(ctx, query,
		id,
		expected,
		change.Status,
		change.AssignedAdjusterID,
		change.ApprovedAmount,
	), &claim)
	if err == nil {
		return &claim, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// No row matched: distinguish a vanished claim from a lost race.
	var exists bool
	if probeErr := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM claims WHERE id=$1)`, id).Scan(&exists); probeErr != nil {
		return nil, probeErr
	}
	if !exists {
		return nil, pgx.ErrNoRows
	}
	return nil, ErrClaimStatusConflict
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClaim(row rowScanner, claim *domain.Claim) error {
	return row.Scan(
		&claim.ID,
		&claim.ClaimNumber,
		&claim.PolicyID,
		&claim.CustomerID,
		&claim.AssignedAdjusterID,
		&claim.Status,
		&claim.IncidentDate,
		&claim.IncidentDescription,
		&claim.IncidentLocation,
		&claim.EstimatedDamage,
		&claim.ApprovedAmount,
		&claim.CreatedAt,
		&claim.UpdatedAt,
	)
}
