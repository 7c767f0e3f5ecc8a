package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/claims-service/internal/api/dto"
	"github.com/spec-kit/claims-service/internal/auth"
	"github.com/spec-kit/claims-service/internal/domain"
	"github.com/spec-kit/claims-service/internal/service"
	"github.com/spec-kit/claims-service/internal/workflow"
	apperrors "github.com/spec-kit/claims-service/pkg/util"
)

// ClaimsHandler manages claim endpoints.
type ClaimsHandler struct {
	service *service.ClaimService
}

// NewClaimsHandler constructs handler.
func NewClaimsHandler(claimService *service.ClaimService) *ClaimsHandler {
	return &ClaimsHandler{service: claimService}
}

// CreateClaim POST /claims.
func (h *ClaimsHandler) CreateClaim(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateClaimRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.PolicyID == "" || strings.TrimSpace(req.IncidentDescription) == "" || req.IncidentDate.IsZero() {
		return apperrors.NewValidationError("policy_id, incident_date, incident_description required", nil)
	}

	claim, err := h.service.CreateClaim(c.Context(), principal.User, service.ClaimCreateInput{
		PolicyID:            req.PolicyID,
		IncidentDate:        req.IncidentDate,
		IncidentDescription: req.IncidentDescription,
		IncidentLocation:    req.IncidentLocation,
		EstimatedDamage:     req.EstimatedDamage,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": claimDetail(claim)})
}

// ListClaims GET /claims.
func (h *ClaimsHandler) ListClaims(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)

	claims, err := h.service.ListClaims(c.Context(), principal.User, pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	items := make([]dto.ClaimSummary, 0, len(claims))
	for i := range claims {
		items = append(items, claimSummary(&claims[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetClaim GET /claims/:id.
func (h *ClaimsHandler) GetClaim(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	claim, err := h.service.GetClaim(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": claimDetail(claim)})
}

// ListActions GET /claims/:id/actions.
func (h *ClaimsHandler) ListActions(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	actions, err := h.service.ListActions(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": actions})
}

// Transition POST /claims/:id/transition.
func (h *ClaimsHandler) Transition(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Target == "" {
		return apperrors.NewValidationError("target required", nil)
	}

	claim, err := h.service.Transition(c.Context(), principal.User, c.Params("id"), workflow.TransitionRequest{
		Target:             req.Target,
		AssignedAdjusterID: req.AssignedAdjusterID,
		ApprovedAmount:     req.ApprovedAmount,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": claimDetail(claim)})
}

// History GET /claims/:id/history.
func (h *ClaimsHandler) History(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	entries, err := h.service.History(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.AuditEntryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, auditEntryResponse(&entries[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// AddNote POST /claims/:id/notes.
func (h *ClaimsHandler) AddNote(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.NoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	note, err := h.service.AddNote(c.Context(), principal.User, c.Params("id"), req.Content)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": noteResponse(note)})
}

// ListNotes GET /claims/:id/notes.
func (h *ClaimsHandler) ListNotes(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	notes, err := h.service.ListNotes(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.NoteResponse, 0, len(notes))
	for i := range notes {
		items = append(items, noteResponse(&notes[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// AddDocument POST /claims/:id/documents.
func (h *ClaimsHandler) AddDocument(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.DocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	doc, err := h.service.AddDocument(c.Context(), principal.User, c.Params("id"), service.DocumentInput{
		FileName:    req.FileName,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": documentResponse(doc)})
}

// ListDocuments GET /claims/:id/documents.
func (h *ClaimsHandler) ListDocuments(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	docs, err := h.service.ListDocuments(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.DocumentResponse, 0, len(docs))
	for i := range docs {
		items = append(items, documentResponse(&docs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func claimSummary(claim *domain.Claim) dto.ClaimSummary {
	return dto.ClaimSummary{
		ID:                 claim.ID,
		ClaimNumber:        claim.ClaimNumber,
		PolicyID:           claim.PolicyID,
		CustomerID:         claim.CustomerID,
		AssignedAdjusterID: claim.AssignedAdjusterID,
		Status:             claim.Status,
		IncidentDate:       claim.IncidentDate,
		EstimatedDamage:    claim.EstimatedDamage,
		ApprovedAmount:     claim.ApprovedAmount,
		CreatedAt:          claim.CreatedAt,
		UpdatedAt:          claim.UpdatedAt,
	}
}

func claimDetail(claim *domain.Claim) dto.ClaimDetailResponse {
	return dto.ClaimDetailResponse{
		ClaimSummary:        claimSummary(claim),
		IncidentDescription: claim.IncidentDescription,
		IncidentLocation:    claim.IncidentLocation,
	}
}

func auditEntryResponse(entry *domain.ClaimAudit) dto.AuditEntryResponse {
	return dto.AuditEntryResponse{
		ID:         entry.ID,
		ActorID:    entry.ActorID,
		ActorRole:  entry.ActorRole,
		FromStatus: entry.FromStatus,
		ToStatus:   entry.ToStatus,
		Payload:    entry.Payload,
		CreatedAt:  entry.CreatedAt,
	}
}

func noteResponse(note *domain.ClaimNote) dto.NoteResponse {
	return dto.NoteResponse{
		ID:        note.ID,
		AuthorID:  note.AuthorID,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
	}
}

func documentResponse(doc *domain.ClaimDocument) dto.DocumentResponse {
	return dto.DocumentResponse{
		ID:           doc.ID,
		FileName:     doc.FileName,
		ContentType:  doc.ContentType,
		SizeBytes:    doc.SizeBytes,
		UploadedByID: doc.UploadedByID,
		CreatedAt:    doc.CreatedAt,
	}
}
