package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/claims-service/internal/api/dto"
	"github.com/spec-kit/claims-service/internal/auth"
	"github.com/spec-kit/claims-service/internal/domain"
	"github.com/spec-kit/claims-service/internal/service"
	apperrors "github.com/spec-kit/claims-service/pkg/util"
)

// PoliciesHandler manages policy endpoints.
type PoliciesHandler struct {
	service *service.PolicyService
}

// NewPoliciesHandler constructs handler.
func NewPoliciesHandler(policyService *service.PolicyService) *PoliciesHandler {
	return &PoliciesHandler{service: policyService}
}

// ListPolicies GET /policies.
func (h *PoliciesHandler) ListPolicies(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	policies, err := h.service.ListPolicies(c.Context(), principal.User)
	if err != nil {
		return err
	}
	items := make([]dto.PolicyResponse, 0, len(policies))
	for i := range policies {
		items = append(items, policyResponse(&policies[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// EnsureDefaultPolicy POST /policies/default. Provisions a starter policy
// for customers who have none yet.
func (h *PoliciesHandler) EnsureDefaultPolicy(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	policy, created, err := h.service.EnsureDefaultPolicy(c.Context(), principal.User)
	if err != nil {
		return err
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"data": policyResponse(policy)})
}

func policyResponse(policy *domain.Policy) dto.PolicyResponse {
	return dto.PolicyResponse{
		ID:             policy.ID,
		PolicyNumber:   policy.PolicyNumber,
		CustomerID:     policy.CustomerID,
		VehicleMake:    policy.VehicleMake,
		VehicleModel:   policy.VehicleModel,
		VehicleYear:    policy.VehicleYear,
		LicensePlate:   policy.LicensePlate,
		CoverageAmount: policy.CoverageAmount,
		Active:         policy.Active,
		CreatedAt:      policy.CreatedAt,
	}
}
