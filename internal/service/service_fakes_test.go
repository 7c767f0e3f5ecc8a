package service

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/claims-service/internal/domain"
	"github.com/spec-kit/claims-service/internal/events"
	"github.com/spec-kit/claims-service/internal/repository"
)

type fakeClaimRepo struct {
	mu         sync.Mutex
	claims     map[string]*domain.Claim
	lastFilter repository.ClaimFilter
}

func newFakeClaimRepo(claims ...*domain.Claim) *fakeClaimRepo {
	repo := &fakeClaimRepo{claims: map[string]*domain.Claim{}}
	for _, c := range claims {
		copied := *c
		repo.claims[c.ID] = &copied
	}
	return repo
}

func (r *fakeClaimRepo) Create(_ context.Context, claim *domain.Claim) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	claim.ID = "claim-" + claim.ClaimNumber
	claim.CreatedAt = time.Now()
	claim.UpdatedAt = claim.CreatedAt
	copied := *claim
	r.claims[claim.ID] = &copied
	return nil
}

func (r *fakeClaimRepo) GetByID(_ context.Context, id string) (*domain.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	claim, ok := r.claims[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *claim
	return &copied, nil
}

func (r *fakeClaimRepo) GetByClaimNumber(_ context.Context, number string) (*domain.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, claim := range r.claims {
		if claim.ClaimNumber == number {
			copied := *claim
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeClaimRepo) ListWithFilter(_ context.Context, filter repository.ClaimFilter) ([]domain.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = filter
	return nil, nil
}

func (r *fakeClaimRepo) CompareAndSetStatus(_ context.Context, id string, expected domain.ClaimStatus, change repository.ClaimStatusChange) (*domain.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	claim, ok := r.claims[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if claim.Status != expected {
		return nil, repository.ErrClaimStatusConflict
	}
	claim.Status = change.Status
	if change.AssignedAdjusterID != nil {
		claim.AssignedAdjusterID = change.AssignedAdjusterID
	}
	if change.ApprovedAmount != nil {
		claim.ApprovedAmount = change.ApprovedAmount
	}
	claim.UpdatedAt = time.Now()
	copied := *claim
	return &copied, nil
}

type fakePolicyRepo struct {
	policies map[string]*domain.Policy
}

func newFakePolicyRepo(policies ...*domain.Policy) *fakePolicyRepo {
	repo := &fakePolicyRepo{policies: map[string]*domain.Policy{}}
	for _, p := range policies {
		copied := *p
		repo.policies[p.ID] = &copied
	}
	return repo
}

func (r *fakePolicyRepo) Create(_ context.Context, policy *domain.Policy) error {
	policy.ID = "policy-" + policy.PolicyNumber
	policy.CreatedAt = time.Now()
	copied := *policy
	r.policies[policy.ID] = &copied
	return nil
}

func (r *fakePolicyRepo) GetByID(_ context.Context, id string) (*domain.Policy, error) {
	policy, ok := r.policies[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *policy
	return &copied, nil
}

func (r *fakePolicyRepo) GetByCustomer(_ context.Context, customerID string) (*domain.Policy, error) {
	for _, policy := range r.policies {
		if policy.CustomerID == customerID {
			copied := *policy
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakePolicyRepo) List(_ context.Context, customerID *string) ([]domain.Policy, error) {
	out := make([]domain.Policy, 0, len(r.policies))
	for _, policy := range r.policies {
		if customerID != nil && policy.CustomerID != *customerID {
			continue
		}
		out = append(out, *policy)
	}
	return out, nil
}

type fakeNoteRepo struct {
	notes []domain.ClaimNote
}

func (r *fakeNoteRepo) Create(_ context.Context, note *domain.ClaimNote) error {
	note.ID = "note-1"
	note.CreatedAt = time.Now()
	r.notes = append(r.notes, *note)
	return nil
}

func (r *fakeNoteRepo) ListByClaim(_ context.Context, claimID string) ([]domain.ClaimNote, error) {
	out := make([]domain.ClaimNote, 0)
	for _, note := range r.notes {
		if note.ClaimID == claimID {
			out = append(out, note)
		}
	}
	return out, nil
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func testUser(id string, role domain.Role) *domain.User {
	return &domain.User{
		ID:     id,
		Email:  id + "@test.com",
		Role:   role,
		Active: true,
	}
}
