package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cryptobloom/backend/internal/domain"
	apperrors "github.com/cryptobloom/backend/pkg/util"
)

// RequireRole ensures the authenticated identity holds one of the
// allowed roles. It composes after AuthMiddleware.Handle and reads the
// identity that handler attached; authentication is never rerun here.
func RequireRole(allowed ...domain.UserRole) fiber.Handler {
	allowedSet := make(map[domain.UserRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok || identity.User == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[identity.User.Role]; !exists {
			return apperrors.NewForbidden("access denied, insufficient role")
		}
		return c.Next()
	}
}

// RequireStaff restricts a route to moderators and administrators.
func RequireStaff() fiber.Handler {
	return RequireRole(domain.RoleAdmin, domain.RoleModerator)
}
