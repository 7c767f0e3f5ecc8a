package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/claims-service/internal/domain"
)

// PolicyRepository handles persistence for insurance policies.
type PolicyRepository interface {
	Create(ctx context.Context, policy *domain.Policy) error
	GetByID(ctx context.Context, id string) (*domain.Policy, error)
	GetByCustomer(ctx context.Context, customerID string) (*domain.Policy, error)
	List(ctx context.Context, customerID *string) ([]domain.Policy, error)
}

type policyRepository struct {
	pool *pgxpool.Pool
}

// NewPolicyRepository instantiates the repository.
func NewPolicyRepository(pool *pgxpool.Pool) PolicyRepository {
	return &policyRepository{pool: pool}
}

const policyColumns = `id, policy_number, customer_id, vehicle_make, vehicle_model, vehicle_year,
               license_plate, coverage_amount, active_flag, created_at`

func (r *policyRepository) Create(ctx context.Context, policy *domain.Policy) error {
	const query = `
        INSERT INTO policies (policy_number, customer_id, vehicle_make, vehicle_model, vehicle_year, license_plate, coverage_amount, active_flag)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		policy.PolicyNumber,
		policy.CustomerID,
		policy.VehicleMake,
		policy.VehicleModel,
		policy.VehicleYear,
		policy.LicensePlate,
		policy.CoverageAmount,
		policy.Active,
	).Scan(&policy.ID, &policy.CreatedAt)
}

func (r *policyRepository) GetByID(ctx context.Context, id string) (*domain.Policy, error) {
	query := `SELECT ` + policyColumns + ` FROM policies WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *policyRepository) GetByCustomer(ctx context.Context, customerID string) (*domain.Policy, error) {
	query := `SELECT ` + policyColumns + ` FROM policies WHERE customer_id=$1 ORDER BY created_at ASC LIMIT 1`
	return r.fetchSingle(ctx, query, customerID)
}

func (r *policyRepository) List(ctx context.Context, customerID *string) ([]domain.Policy, error) {
	query := `SELECT ` + policyColumns + ` FROM policies`
	args := []any{}
	if customerID != nil {
		query += ` WHERE customer_id=$1`
		args = append(args, *customerID)
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Policy
	for rows.Next() {
		var policy domain.Policy
		if err := rows.Scan(
			&policy.ID,
			&policy.PolicyNumber,
			&policy.CustomerID,
			&policy.VehicleMake,
			&policy.VehicleModel,
			&policy.VehicleYear,
			&policy.LicensePlate,
			&policy.CoverageAmount,
			&policy.Active,
			&policy.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, policy)
	}
	return result, rows.Err()
}

func (r *policyRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Policy, error) {
	var policy domain.Policy
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&policy.ID,
		&policy.PolicyNumber,
		&policy.CustomerID,
		&policy.VehicleMake,
		&policy.VehicleModel,
		&policy.VehicleYear,
		&policy.LicensePlate,
		&policy.CoverageAmount,
		&policy.Active,
		&policy.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &policy, nil
}
