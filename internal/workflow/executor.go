package workflow

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/claims-service/internal/domain"
	"github.com/spec-kit/claims-service/internal/events"
	"github.com/spec-kit/claims-service/internal/repository"
	apperrors "github.com/spec-kit/claims-service/pkg/util"
)

// ClaimStore is the persistence contract the executor commits through. The
// compare-and-set keyed on the pre-transition status gives at-most-one
// committed writer per claim without a global lock.
type ClaimStore interface {
	CompareAndSetStatus(ctx context.Context, id string, expected domain.ClaimStatus, change repository.ClaimStatusChange) (*domain.Claim, error)
}

// AuditSink appends audit entries for executed transitions.
type AuditSink interface {
	Append(ctx context.Context, entry *domain.ClaimAudit) error
}

// Executor commits validated transitions: status change, supplemental
// fields, updated_at refresh, one audit entry, one event.
type Executor struct {
	claims     ClaimStore
	audit      AuditSink
	dispatcher events.Dispatcher
}

// NewExecutor constructs the executor.
func NewExecutor(claims ClaimStore, audit AuditSink, dispatcher events.Dispatcher) *Executor {
	return &Executor{claims: claims, audit: audit, dispatcher: dispatcher}
}

// Commit applies an ApprovedTransition. If the claim's status moved since
// validation the write is rejected with a CONFLICT error and no state
// changes; the caller must re-list legal actions and retry.
func (x *Executor) Commit(ctx context.Context, approved *ApprovedTransition) (*domain.Claim, error) {
	change := repository.ClaimStatusChange{
		Status:             approved.Target,
		AssignedAdjusterID: approved.AssignedAdjusterID,
		ApprovedAmount:     approved.ApprovedAmount,
	}

	claim, err := x.claims.CompareAndSetStatus(ctx, approved.ClaimID, approved.From, change)
	if err != nil {
		if errors.Is(err, repository.ErrClaimStatusConflict) {
			return nil, apperrors.NewConflict("claim status changed since validation", map[string]any{
				"claim_id": approved.ClaimID,
				"expected": approved.From,
			})
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("claim", map[string]any{"claim_id": approved.ClaimID})
		}
		return nil, err
	}

	entry := &domain.ClaimAudit{
		ClaimID:    claim.ID,
		ActorID:    approved.Actor.ID,
		ActorRole:  approved.Actor.Role,
		FromStatus: approved.From,
		ToStatus:   approved.Target,
		Payload:    payloadSnapshot(approved),
	}
	if err := x.audit.Append(ctx, entry); err != nil {
		return nil, err
	}

	x.publishStatusChanged(ctx, claim, approved)
	return claim, nil
}

func payloadSnapshot(approved *ApprovedTransition) map[string]any {
	payload := map[string]any{}
	if approved.AssignedAdjusterID != nil {
		payload["assigned_adjuster_id"] = *approved.AssignedAdjusterID
	}
	if approved.ApprovedAmount != nil {
		payload["approved_amount"] = *approved.ApprovedAmount
	}
	return payload
}

func (x *Executor) publishStatusChanged(ctx context.Context, claim *domain.Claim, approved *ApprovedTransition) {
	if x.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventClaimStatusChanged,
		ClaimID:   claim.ID,
		Actor:     events.Actor{UserID: approved.Actor.ID, Role: approved.Actor.Role},
		Timestamp: time.Now(),
		Payload: events.ClaimStatusChangedPayload{
			FromStatus:         approved.From,
			ToStatus:           approved.Target,
			AssignedAdjusterID: approved.AssignedAdjusterID,
			ApprovedAmount:     approved.ApprovedAmount,
		},
	}
	_ = x.dispatcher.Publish(ctx, event)
}
