package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/turnkey-platform/turnkey-service/internal/domain"
	"github.com/turnkey-platform/turnkey-service/pkg/errorutil"
)

// RequireRole ensures the caller has one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return errorutil.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[user.Role]; !exists {
			return errorutil.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireManager ensures the caller is an Admin, Supervisor or Employer.
func RequireManager() fiber.Handler {
	return RequireRole(domain.RoleAdmin, domain.RoleSupervisor, domain.RoleEmployer)
}
