package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/claims-service/internal/domain"
	"github.com/spec-kit/claims-service/internal/events"
	"github.com/spec-kit/claims-service/internal/repository"
	"github.com/spec-kit/claims-service/internal/workflow"
	apperrors "github.com/spec-kit/claims-service/pkg/util"
)

// ClaimService coordinates claim intake, role-scoped reads, and the
// workflow engine/executor pair for transitions.
type ClaimService struct {
	claims     repository.ClaimRepository
	policies   repository.PolicyRepository
	notes      repository.ClaimNoteRepository
	documents  repository.ClaimDocumentRepository
	audit      repository.ClaimAuditRepository
	engine     *workflow.Engine
	executor   *workflow.Executor
	dispatcher events.Dispatcher
}

// ClaimDependencies bundles collaborators for the claim service.
type ClaimDependencies struct {
	ClaimRepo    repository.ClaimRepository
	PolicyRepo   repository.PolicyRepository
	NoteRepo     repository.ClaimNoteRepository
	DocumentRepo repository.ClaimDocumentRepository
	AuditRepo    repository.ClaimAuditRepository
	Engine       *workflow.Engine
	Executor     *workflow.Executor
	Dispatcher   events.Dispatcher
}

// ClaimCreateInput describes claim creation payload.
type ClaimCreateInput struct {
	PolicyID            string
	IncidentDate        time.Time
	IncidentDescription string
	IncidentLocation    string
	EstimatedDamage     *float64
}

// DocumentInput describes uploaded document metadata.
type DocumentInput struct {
	FileName    string
	ContentType string
	SizeBytes   int64
}

// NewClaimService constructs the service.
func NewClaimService(deps ClaimDependencies) *ClaimService {
	return &ClaimService{
		claims:     deps.ClaimRepo,
		policies:   deps.PolicyRepo,
		notes:      deps.NoteRepo,
		documents:  deps.DocumentRepo,
		audit:      deps.AuditRepo,
		engine:     deps.Engine,
		executor:   deps.Executor,
		dispatcher: deps.Dispatcher,
	}
}

// CreateClaim files a new claim against a policy. Customers and agents only.
func (s *ClaimService) CreateClaim(ctx context.Context, actor *domain.User, input ClaimCreateInput) (*domain.Claim, error) {
	if actor.Role != domain.RoleCustomer && actor.Role != domain.RoleAgent {
		return nil, apperrors.NewForbidden("only customers and agents file claims", map[string]any{"role": actor.Role})
	}

	policy, err := s.policies.GetByID(ctx, input.PolicyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("policy", map[string]any{"policy_id": input.PolicyID})
		}
		return nil, err
	}

	claim := &domain.Claim{
		ClaimNumber:         generateClaimNumber(),
		PolicyID:            policy.ID,
		CustomerID:          policy.CustomerID,
		Status:              domain.ClaimStatusSubmitted,
		IncidentDate:        input.IncidentDate,
		IncidentDescription: strings.TrimSpace(input.IncidentDescription),
		IncidentLocation:    strings.TrimSpace(input.IncidentLocation),
		EstimatedDamage:     input.EstimatedDamage,
	}
	if err := s.claims.Create(ctx, claim); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, actor, events.Event{
		Type:    events.EventClaimCreated,
		ClaimID: claim.ID,
		Payload: events.ClaimCreatedPayload{
			ClaimNumber: claim.ClaimNumber,
			PolicyID:    claim.PolicyID,
			CustomerID:  claim.CustomerID,
			IncidentAt:  claim.IncidentDate,
		},
	})
	return claim, nil
}

// ListClaims returns the claims visible to the actor's role. Customers see
// their own; agents see intake statuses; adjusters see their working set
// plus unassigned; managers see everything in flight; admins see all.
func (s *ClaimService) ListClaims(ctx context.Context, actor *domain.User, limit, offset int) ([]domain.Claim, error) {
	filter := repository.ClaimFilter{Limit: limit, Offset: offset}

	switch actor.Role {
	case domain.RoleCustomer:
		filter.CustomerID = &actor.ID
	case domain.RoleAgent:
		filter.Statuses = []domain.ClaimStatus{domain.ClaimStatusSubmitted, domain.ClaimStatusUnderReview}
	case domain.RoleAdjuster:
		filter.Statuses = []domain.ClaimStatus{domain.ClaimStatusAssigned, domain.ClaimStatusInvestigating, domain.ClaimStatusApproved}
		filter.AssignedAdjusterID = &actor.ID
		filter.IncludeUnassigned = true
	case domain.RoleManager:
		filter.Statuses = []domain.ClaimStatus{domain.ClaimStatusUnderReview, domain.ClaimStatusAssigned, domain.ClaimStatusInvestigating, domain.ClaimStatusApproved}
	case domain.RoleAdmin:
		// no scoping
	default:
		return nil, apperrors.NewForbidden("unknown role", map[string]any{"role": actor.Role})
	}

	return s.claims.ListWithFilter(ctx, filter)
}

// GetClaim fetches a claim enforcing per-role access.
func (s *ClaimService) GetClaim(ctx context.Context, actor *domain.User, claimID string) (*domain.Claim, error) {
	claim, err := s.claims.GetByID(ctx, claimID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("claim", map[string]any{"claim_id": claimID})
		}
		return nil, err
	}
	if err := s.checkAccess(actor, claim); err != nil {
		return nil, err
	}
	return claim, nil
}

// ListActions enumerates the transitions the actor may currently request.
func (s *ClaimService) ListActions(ctx context.Context, actor *domain.User, claimID string) ([]workflow.ActionDescriptor, error) {
	claim, err := s.GetClaim(ctx, actor, claimID)
	if err != nil {
		return nil, err
	}
	return s.engine.ListLegalActions(claim, workflow.Actor{ID: actor.ID, Role: actor.Role}), nil
}

// Transition validates and commits one status change. On CONFLICT the caller
// must re-list legal actions against fresh state and retry.
func (s *ClaimService) Transition(ctx context.Context, actor *domain.User, claimID string, req workflow.TransitionRequest) (*domain.Claim, error) {
	claim, err := s.claims.GetByID(ctx, claimID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("claim", map[string]any{"claim_id": claimID})
		}
		return nil, err
	}

	approved, err := s.engine.ValidateTransition(ctx, claim, workflow.Actor{ID: actor.ID, Role: actor.Role}, req)
	if err != nil {
		return nil, err
	}
	return s.executor.Commit(ctx, approved)
}

// History returns the claim's audit trail in chronological order.
func (s *ClaimService) History(ctx context.Context, actor *domain.User, claimID string) ([]domain.ClaimAudit, error) {
	if _, err := s.GetClaim(ctx, actor, claimID); err != nil {
		return nil, err
	}
	return s.audit.ListByClaim(ctx, claimID)
}

// AddNote attaches a note to a claim the actor can access.
func (s *ClaimService) AddNote(ctx context.Context, actor *domain.User, claimID, content string) (*domain.ClaimNote, error) {
	if _, err := s.GetClaim(ctx, actor, claimID); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("content required", nil)
	}

	note := &domain.ClaimNote{
		ClaimID:  claimID,
		AuthorID: actor.ID,
		Content:  content,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, actor, events.Event{
		Type:    events.EventClaimNoteAdded,
		ClaimID: claimID,
		Payload: events.ClaimNoteAddedPayload{
			NoteID:         note.ID,
			ContentPreview: stringPreview(note.Content, 120),
		},
	})
	return note, nil
}

// ListNotes returns a claim's notes in chronological order.
func (s *ClaimService) ListNotes(ctx context.Context, actor *domain.User, claimID string) ([]domain.ClaimNote, error) {
	if _, err := s.GetClaim(ctx, actor, claimID); err != nil {
		return nil, err
	}
	return s.notes.ListByClaim(ctx, claimID)
}

// AddDocument records metadata for an uploaded document. The binary itself
// lives in external storage; only the reference persists here.
func (s *ClaimService) AddDocument(ctx context.Context, actor *domain.User, claimID string, input DocumentInput) (*domain.ClaimDocument, error) {
	if _, err := s.GetClaim(ctx, actor, claimID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.FileName) == "" {
		return nil, apperrors.NewValidationError("file_name required", nil)
	}

	doc := &domain.ClaimDocument{
		ClaimID:      claimID,
		FileName:     input.FileName,
		ContentType:  input.ContentType,
		StorageKey:   uuid.NewString(),
		SizeBytes:    input.SizeBytes,
		UploadedByID: actor.ID,
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, actor, events.Event{
		Type:    events.EventClaimDocumentUploaded,
		ClaimID: claimID,
		Payload: events.ClaimDocumentUploadedPayload{
			DocumentID: doc.ID,
			FileName:   doc.FileName,
			SizeBytes:  doc.SizeBytes,
		},
	})
	return doc, nil
}

// ListDocuments returns a claim's document metadata.
func (s *ClaimService) ListDocuments(ctx context.Context, actor *domain.User, claimID string) ([]domain.ClaimDocument, error) {
	if _, err := s.GetClaim(ctx, actor, claimID); err != nil {
		return nil, err
	}
	return s.documents.ListByClaim(ctx, claimID)
}

func (s *ClaimService) checkAccess(actor *domain.User, claim *domain.Claim) error {
	switch actor.Role {
	case domain.RoleCustomer:
		if claim.CustomerID != actor.ID {
			return apperrors.NewForbidden("access denied", nil)
		}
	case domain.RoleAdjuster:
		if claim.AssignedAdjusterID == nil || *claim.AssignedAdjusterID != actor.ID {
			return apperrors.NewForbidden("access denied", nil)
		}
	case domain.RoleAgent, domain.RoleManager, domain.RoleAdmin:
		// unrestricted per-claim access
	default:
		return apperrors.NewForbidden("unknown role", map[string]any{"role": actor.Role})
	}
	return nil
}

func (s *ClaimService) publishEvent(ctx context.Context, actor *domain.User, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.Actor = events.Actor{UserID: actor.ID, Role: actor.Role}
	_ = s.dispatcher.Publish(ctx, event)
}

func generateClaimNumber() string {
	return "CLM-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
