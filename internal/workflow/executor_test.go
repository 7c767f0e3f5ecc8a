package workflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/claims-service/internal/domain"
	apperrors "github.com/spec-kit/claims-service/pkg/util"
)

func TestCommitConflict(t *testing.T) {
	ctx := context.Background()
	claim := submittedClaim("claim-1")
	claim.Status = domain.ClaimStatusUnderReview

	store := newFakeClaimStore(claim)
	audit := &fakeAuditSink{}
	engine := NewEngine(newFakeDirectory(adjusterUser("adj-1")))
	executor := NewExecutor(store, audit, nil)

	// Two actors validate against the same snapshot.
	first, err := engine.ValidateTransition(ctx, claim, Actor{ID: "mgr-1", Role: domain.RoleManager}, TransitionRequest{
		Target:             domain.ClaimStatusAssigned,
		AssignedAdjusterID: strPtr("adj-1"),
	})
	require.NoError(t, err)
	second, err := engine.ValidateTransition(ctx, claim, Actor{ID: "agent-1", Role: domain.RoleAgent}, TransitionRequest{
		Target: domain.ClaimStatusRejected,
	})
	require.NoError(t, err)

	// Exactly one commits; the loser gets a conflict and changes nothing.
	updated, err := executor.Commit(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, domain.ClaimStatusAssigned, updated.Status)

	_, err = executor.Commit(ctx, second)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict), "got %v", err)

	assert.Equal(t, domain.ClaimStatusAssigned, store.get("claim-1").Status)
	assert.Len(t, audit.entries, 1)
}

func TestCommitMissingClaim(t *testing.T) {
	executor := NewExecutor(newFakeClaimStore(), &fakeAuditSink{}, nil)

	_, err := executor.Commit(context.Background(), &ApprovedTransition{
		ClaimID: "ghost",
		From:    domain.ClaimStatusSubmitted,
		Target:  domain.ClaimStatusUnderReview,
		Actor:   Actor{ID: "agent-1", Role: domain.RoleAgent},
	})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound), "got %v", err)
}

func TestCommitRefreshesUpdatedAt(t *testing.T) {
	ctx := context.Background()
	claim := submittedClaim("claim-1")
	claim.UpdatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	store := newFakeClaimStore(claim)
	engine := NewEngine(newFakeDirectory())
	executor := NewExecutor(store, &fakeAuditSink{}, nil)

	approved, err := engine.ValidateTransition(ctx, claim, Actor{ID: "agent-1", Role: domain.RoleAgent}, TransitionRequest{
		Target: domain.ClaimStatusUnderReview,
	})
	require.NoError(t, err)

	updated, err := executor.Commit(ctx, approved)
	require.NoError(t, err)
	assert.True(t, updated.UpdatedAt.After(claim.UpdatedAt))
}

// Full lifecycle: submitted → under_review → assigned → investigating →
// approved → settled, five audit entries in order.
func TestLifecycleEndToEnd(t *testing.T) {
	ctx := context.Background()
	claim := submittedClaim("claim-1")

	store := newFakeClaimStore(claim)
	audit := &fakeAuditSink{}
	engine := NewEngine(newFakeDirectory(adjusterUser("7")))
	executor := NewExecutor(store, audit, nil)

	steps := []struct {
		actor Actor
		req   TransitionRequest
	}{
		{Actor{ID: "agent-1", Role: domain.RoleAgent}, TransitionRequest{Target: domain.ClaimStatusUnderReview}},
		{Actor{ID: "mgr-1", Role: domain.RoleManager}, TransitionRequest{Target: domain.ClaimStatusAssigned, AssignedAdjusterID: strPtr("7")}},
		{Actor{ID: "7", Role: domain.RoleAdjuster}, TransitionRequest{Target: domain.ClaimStatusInvestigating}},
		{Actor{ID: "7", Role: domain.RoleAdjuster}, TransitionRequest{Target: domain.ClaimStatusApproved, ApprovedAmount: floatPtr(3500.00)}},
		{Actor{ID: "mgr-1", Role: domain.RoleManager}, TransitionRequest{Target: domain.ClaimStatusSettled}},
	}

	current := store.get("claim-1")
	for i, step := range steps {
		approved, err := engine.ValidateTransition(ctx, current, step.actor, step.req)
		require.NoError(t, err, "step %d", i+1)
		current, err = executor.Commit(ctx, approved)
		require.NoError(t, err, "step %d", i+1)
	}

	assert.Equal(t, domain.ClaimStatusSettled, current.Status)
	require.NotNil(t, current.ApprovedAmount)
	assert.Equal(t, 3500.00, *current.ApprovedAmount)
	require.NotNil(t, current.AssignedAdjusterID)
	assert.Equal(t, "7", *current.AssignedAdjusterID)

	require.Len(t, audit.entries, 5)
	wantPath := []domain.ClaimStatus{
		domain.ClaimStatusUnderReview,
		domain.ClaimStatusAssigned,
		domain.ClaimStatusInvestigating,
		domain.ClaimStatusApproved,
		domain.ClaimStatusSettled,
	}
	from := domain.ClaimStatusSubmitted
	for i, entry := range audit.entries {
		assert.Equal(t, from, entry.FromStatus, "entry %d", i+1)
		assert.Equal(t, wantPath[i], entry.ToStatus, "entry %d", i+1)
		from = wantPath[i]
	}
	assert.Equal(t, "7", audit.entries[1].Payload["assigned_adjuster_id"])
	assert.Equal(t, 3500.00, audit.entries[3].Payload["approved_amount"])
}
