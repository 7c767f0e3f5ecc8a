package workflow

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/claims-service/internal/domain"
	apperrors "github.com/spec-kit/claims-service/pkg/util"
)

func TestOwnershipPredicate(t *testing.T) {
	engine := NewEngine(newFakeDirectory())

	claim := submittedClaim("claim-1")
	claim.Status = domain.ClaimStatusAssigned
	claim.AssignedAdjusterID = strPtr("adj-1")

	// The assigned adjuster has actions.
	actions := engine.ListLegalActions(claim, Actor{ID: "adj-1", Role: domain.RoleAdjuster})
	assert.NotEmpty(t, actions)

	// Any other adjuster has none, regardless of status.
	for _, status := range domain.AllClaimStatuses {
		claim.Status = status
		actions = engine.ListLegalActions(claim, Actor{ID: "adj-2", Role: domain.RoleAdjuster})
		assert.Empty(t, actions, "status=%s", status)
	}

	// An unassigned claim offers the adjuster nothing either.
	claim.Status = domain.ClaimStatusAssigned
	claim.AssignedAdjusterID = nil
	actions = engine.ListLegalActions(claim, Actor{ID: "adj-1", Role: domain.RoleAdjuster})
	assert.Empty(t, actions)
}

// ValidateTransition must never succeed for a target absent from
// ListLegalActions computed against the same claim and actor.
func TestValidateConsistentWithList(t *testing.T) {
	directory := newFakeDirectory(adjusterUser("adj-1"))
	engine := NewEngine(directory)
	ctx := context.Background()

	for _, role := range domain.AllRoles {
		for _, status := range domain.AllClaimStatuses {
			claim := submittedClaim("claim-1")
			claim.Status = status
			claim.AssignedAdjusterID = strPtr("actor-1")

			actor := Actor{ID: "actor-1", Role: role}
			legal := map[domain.ClaimStatus]bool{}
			for _, action := range engine.ListLegalActions(claim, actor) {
				legal[action.Target] = true
			}

			for _, target := range domain.AllClaimStatuses {
				req := TransitionRequest{
					Target:             target,
					AssignedAdjusterID: strPtr("adj-1"),
					ApprovedAmount:     floatPtr(100.0),
				}
				approved, err := engine.ValidateTransition(ctx, claim, actor, req)
				if legal[target] {
					require.NoError(t, err, "role=%s status=%s target=%s", role, status, target)
					assert.Equal(t, status, approved.From)
					assert.Equal(t, target, approved.Target)
				} else {
					require.Error(t, err, "role=%s status=%s target=%s", role, status, target)
					assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))
				}
			}
		}
	}
}

func TestValidateAssignmentPayload(t *testing.T) {
	adjuster := adjusterUser("adj-1")
	inactive := adjusterUser("adj-2")
	inactive.Active = false
	notAdjuster := &domain.User{ID: "agent-1", Role: domain.RoleAgent, Active: true}

	engine := NewEngine(newFakeDirectory(adjuster, inactive, notAdjuster))
	ctx := context.Background()

	claim := submittedClaim("claim-1")
	claim.Status = domain.ClaimStatusUnderReview
	manager := Actor{ID: "mgr-1", Role: domain.RoleManager}

	tests := []struct {
		name       string
		adjusterID *string
		wantCode   string
	}{
		{name: "missing adjuster id", adjusterID: nil, wantCode: apperrors.CodeMissingData},
		{name: "empty adjuster id", adjusterID: strPtr(""), wantCode: apperrors.CodeMissingData},
		{name: "unknown user", adjusterID: strPtr("ghost"), wantCode: apperrors.CodeInvalidReference},
		{name: "wrong role", adjusterID: strPtr("agent-1"), wantCode: apperrors.CodeInvalidReference},
		{name: "inactive adjuster", adjusterID: strPtr("adj-2"), wantCode: apperrors.CodeInvalidReference},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := TransitionRequest{Target: domain.ClaimStatusAssigned, AssignedAdjusterID: tt.adjusterID}
			_, err := engine.ValidateTransition(ctx, claim, manager, req)
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, tt.wantCode), "got %v", err)
		})
	}

	approved, err := engine.ValidateTransition(ctx, claim, manager, TransitionRequest{
		Target:             domain.ClaimStatusAssigned,
		AssignedAdjusterID: strPtr("adj-1"),
	})
	require.NoError(t, err)
	require.NotNil(t, approved.AssignedAdjusterID)
	assert.Equal(t, "adj-1", *approved.AssignedAdjusterID)
}

func TestValidateApprovalAmount(t *testing.T) {
	engine := NewEngine(newFakeDirectory())
	ctx := context.Background()

	claim := submittedClaim("claim-1")
	claim.Status = domain.ClaimStatusInvestigating
	claim.AssignedAdjusterID = strPtr("adj-1")
	adjuster := Actor{ID: "adj-1", Role: domain.RoleAdjuster}

	tests := []struct {
		name     string
		amount   *float64
		wantCode string
	}{
		{name: "missing amount", amount: nil, wantCode: apperrors.CodeMissingData},
		{name: "negative amount", amount: floatPtr(-5), wantCode: apperrors.CodeInvalidValue},
		{name: "NaN amount", amount: floatPtr(math.NaN()), wantCode: apperrors.CodeInvalidValue},
		{name: "infinite amount", amount: floatPtr(math.Inf(1)), wantCode: apperrors.CodeInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := TransitionRequest{Target: domain.ClaimStatusApproved, ApprovedAmount: tt.amount}
			_, err := engine.ValidateTransition(ctx, claim, adjuster, req)
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, tt.wantCode), "got %v", err)
		})
	}

	approved, err := engine.ValidateTransition(ctx, claim, adjuster, TransitionRequest{
		Target:         domain.ClaimStatusApproved,
		ApprovedAmount: floatPtr(12000.50),
	})
	require.NoError(t, err)
	require.NotNil(t, approved.ApprovedAmount)
	assert.Equal(t, 12000.50, *approved.ApprovedAmount)
}

// Payload fields the target does not require are dropped, not carried along.
func TestValidateNormalizesPayload(t *testing.T) {
	engine := NewEngine(newFakeDirectory(adjusterUser("adj-1")))
	ctx := context.Background()

	claim := submittedClaim("claim-1")
	agent := Actor{ID: "agent-1", Role: domain.RoleAgent}

	approved, err := engine.ValidateTransition(ctx, claim, agent, TransitionRequest{
		Target:             domain.ClaimStatusUnderReview,
		AssignedAdjusterID: strPtr("adj-1"),
		ApprovedAmount:     floatPtr(999),
	})
	require.NoError(t, err)
	assert.Nil(t, approved.AssignedAdjusterID)
	assert.Nil(t, approved.ApprovedAmount)
}
