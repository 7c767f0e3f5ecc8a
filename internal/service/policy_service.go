package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/claims-service/internal/domain"
	"github.com/spec-kit/claims-service/internal/repository"
	apperrors "github.com/spec-kit/claims-service/pkg/util"
)

// PolicyService manages the policies claims are filed against.
type PolicyService struct {
	policies repository.PolicyRepository
}

// NewPolicyService constructs the service.
func NewPolicyService(policies repository.PolicyRepository) *PolicyService {
	return &PolicyService{policies: policies}
}

// EnsureDefaultPolicy creates a starter policy for the customer if none
// exists yet, returning the existing one otherwise.
func (s *PolicyService) EnsureDefaultPolicy(ctx context.Context, actor *domain.User) (*domain.Policy, bool, error) {
	if actor.Role != domain.RoleCustomer && actor.Role != domain.RoleAgent {
		return nil, false, apperrors.NewForbidden("only customers and agents create policies", map[string]any{"role": actor.Role})
	}

	existing, err := s.policies.GetByCustomer(ctx, actor.ID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	policy := &domain.Policy{
		PolicyNumber:   generatePolicyNumber(),
		CustomerID:     actor.ID,
		VehicleMake:    "Toyota",
		VehicleModel:   "Camry",
		VehicleYear:    2020,
		LicensePlate:   "ABC123",
		CoverageAmount: 50000.00,
		Active:         true,
	}
	if err := s.policies.Create(ctx, policy); err != nil {
		return nil, false, err
	}
	return policy, true, nil
}

// ListPolicies returns the actor's policies; staff roles see all.
func (s *PolicyService) ListPolicies(ctx context.Context, actor *domain.User) ([]domain.Policy, error) {
	if actor.Role == domain.RoleCustomer {
		return s.policies.List(ctx, &actor.ID)
	}
	return s.policies.List(ctx, nil)
}

func generatePolicyNumber() string {
	return "POL-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
