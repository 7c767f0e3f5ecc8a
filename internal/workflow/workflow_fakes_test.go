package workflow

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/claims-service/internal/domain"
	"github.com/spec-kit/claims-service/internal/repository"
)

type fakeDirectory struct {
	users map[string]*domain.User
}

func newFakeDirectory(users ...*domain.User) *fakeDirectory {
	dir := &fakeDirectory{users: map[string]*domain.User{}}
	for _, u := range users {
		dir.users[u.ID] = u
	}
	return dir
}

func (d *fakeDirectory) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := d.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

type fakeClaimStore struct {
	mu     sync.Mutex
	claims map[string]*domain.Claim
}

func newFakeClaimStore(claims ...*domain.Claim) *fakeClaimStore {
	store := &fakeClaimStore{claims: map[string]*domain.Claim{}}
	for _, c := range claims {
		copied := *c
		store.claims[c.ID] = &copied
	}
	return store
}

func (s *fakeClaimStore) CompareAndSetStatus(_ context.Context, id string, expected domain.ClaimStatus, change repository.ClaimStatusChange) (*domain.Claim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	claim, ok := s.claims[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if claim.Status != expected {
		return nil, repository.ErrClaimStatusConflict
	}
	claim.Status = change.Status
	if change.AssignedAdjusterID != nil {
		adjusterID := *change.AssignedAdjusterID
		claim.AssignedAdjusterID = &adjusterID
	}
	if change.ApprovedAmount != nil {
		amount := *change.ApprovedAmount
		claim.ApprovedAmount = &amount
	}
	claim.UpdatedAt = time.Now()

	copied := *claim
	return &copied, nil
}

func (s *fakeClaimStore) get(id string) *domain.Claim {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *s.claims[id]
	return &copied
}

type fakeAuditSink struct {
	mu      sync.Mutex
	entries []domain.ClaimAudit
}

func (s *fakeAuditSink) Append(_ context.Context, entry *domain.ClaimAudit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.CreatedAt = time.Now()
	s.entries = append(s.entries, *entry)
	return nil
}

func adjusterUser(id string) *domain.User {
	return &domain.User{
		ID:        id,
		Email:     id + "@example.com",
		FirstName: "Jane",
		LastName:  "Adjuster",
		Role:      domain.RoleAdjuster,
		Active:    true,
	}
}

func submittedClaim(id string) *domain.Claim {
	return &domain.Claim{
		ID:                  id,
		ClaimNumber:         "CLM-TEST0001",
		PolicyID:            "policy-1",
		CustomerID:          "customer-1",
		Status:              domain.ClaimStatusSubmitted,
		IncidentDate:        time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
		IncidentDescription: "rear-ended at a stop light",
		IncidentLocation:    "5th and Main",
	}
}

func strPtr(v string) *string     { return &v }
func floatPtr(v float64) *float64 { return &v }
