package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/claims-service/internal/domain"
	apperrors "github.com/spec-kit/claims-service/pkg/util"
)

// RequireRole ensures the authenticated user holds one of the allowed roles.
// Admin is not implicitly allowed; include it explicitly where intended.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.User.Role]; !exists {
			return apperrors.NewForbidden("insufficient role", map[string]any{"role": principal.User.Role})
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures a caller is logged in, any role.
func RequireAuthenticated() fiber.Handler {
	return RequireRole()
}
