// Package workflow implements the claim workflow authorization engine: it
// computes the legal next actions for an actor against a claim, validates a
// proposed transition with its supplemental payload, and commits the result
// atomically with an audit entry.
package workflow

import (
	"context"
	"errors"
	"math"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/claims-service/internal/domain"
	apperrors "github.com/spec-kit/claims-service/pkg/util"
)

// Actor is the identity invoking a transition. It is supplied per call and
// never persisted by the engine.
type Actor struct {
	ID   string
	Role domain.Role
}

// TransitionRequest is the caller's proposal: a target status plus whatever
// supplemental payload the target requires.
type TransitionRequest struct {
	Target             domain.ClaimStatus
	AssignedAdjusterID *string
	ApprovedAmount     *float64
}

// ApprovedTransition is a validated transition the executor commits without
// re-running business rules. From captures the claim's pre-transition status
// for the compare-and-set write.
type ApprovedTransition struct {
	ClaimID            string
	ClaimNumber        string
	From               domain.ClaimStatus
	Target             domain.ClaimStatus
	AssignedAdjusterID *string
	ApprovedAmount     *float64
	Actor              Actor
}

// UserDirectory resolves adjuster references supplied with a transition.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// Engine evaluates the transition rule table against concrete claims and
// actors. Both operations are pure reads; Engine holds no mutable state.
type Engine struct {
	users UserDirectory
}

// NewEngine constructs the engine.
func NewEngine(users UserDirectory) *Engine {
	return &Engine{users: users}
}

// ListLegalActions returns the transitions the actor may currently request
// against the claim, in rule-table declaration order. An empty slice is a
// valid, common outcome and never an error.
func (e *Engine) ListLegalActions(claim *domain.Claim, actor Actor) []ActionDescriptor {
	rows := rulesFor(actor.Role, claim.Status)
	actions := make([]ActionDescriptor, 0, len(rows))
	for _, r := range rows {
		if r.ownerOnly && !isAssignedAdjuster(claim, actor) {
			continue
		}
		actions = append(actions, r.describe())
	}
	return actions
}

// ValidateTransition checks one proposed transition against the rule table
// and the request payload. On success it returns an ApprovedTransition
// carrying the normalized payload and the claim's pre-transition status.
func (e *Engine) ValidateTransition(ctx context.Context, claim *domain.Claim, actor Actor, req TransitionRequest) (*ApprovedTransition, error) {
	var matched *ActionDescriptor
	for _, action := range e.ListLegalActions(claim, actor) {
		if action.Target == req.Target {
			action := action
			matched = &action
			break
		}
	}
	if matched == nil {
		return nil, apperrors.NewForbidden("transition not permitted", map[string]any{
			"claim_id": claim.ID,
			"from":     claim.Status,
			"target":   req.Target,
			"role":     actor.Role,
		})
	}

	approved := &ApprovedTransition{
		ClaimID:     claim.ID,
		ClaimNumber: claim.ClaimNumber,
		From:        claim.Status,
		Target:      matched.Target,
		Actor:       actor,
	}

	if matched.RequiresAdjuster {
		if req.AssignedAdjusterID == nil || *req.AssignedAdjusterID == "" {
			return nil, apperrors.NewMissingData("assigned_adjuster_id")
		}
		adjuster, err := e.users.GetByID(ctx, *req.AssignedAdjusterID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) || apperrors.HasCode(err, apperrors.CodeNotFound) {
				return nil, apperrors.NewInvalidReference("assigned adjuster does not exist", map[string]any{
					"assigned_adjuster_id": *req.AssignedAdjusterID,
				})
			}
			return nil, err
		}
		if adjuster.Role != domain.RoleAdjuster || !adjuster.Active {
			return nil, apperrors.NewInvalidReference("referenced user is not an active adjuster", map[string]any{
				"assigned_adjuster_id": adjuster.ID,
				"role":                 adjuster.Role,
			})
		}
		approved.AssignedAdjusterID = &adjuster.ID
	}

	if matched.RequiresAmount {
		if req.ApprovedAmount == nil {
			return nil, apperrors.NewMissingData("approved_amount")
		}
		amount := *req.ApprovedAmount
		if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
			return nil, apperrors.NewInvalidValue("approved_amount must be a finite non-negative number", map[string]any{
				"approved_amount": amount,
			})
		}
		approved.ApprovedAmount = &amount
	}

	return approved, nil
}

func isAssignedAdjuster(claim *domain.Claim, actor Actor) bool {
	return claim.AssignedAdjusterID != nil && *claim.AssignedAdjusterID == actor.ID
}
