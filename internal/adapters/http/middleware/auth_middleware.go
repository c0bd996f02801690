package middleware

import (
	"errors"

	"github.com/keonU206/Hey-Young-system/internal/config"
	"github.com/keonU206/Hey-Young-system/internal/core/domain"
	"github.com/keonU206/Hey-Young-system/internal/pkg/jwt"
	"github.com/keonU206/Hey-Young-system/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SessionCookieName is the only transport for the auth token
const SessionCookieName = "auth_token"

// AuthMiddleware resolves the caller's identity from the session cookie.
// Verification is purely cryptographic; handlers that need the live active
// flag re-fetch the user themselves.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookieName)
		if token == "" {
			return response.Unauthorized(c, "Authentication required")
		}

		claims, err := jwt.ValidateToken(token, cfg.JWT.Secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Session expired, please log in again")
			}
			return response.Unauthorized(c, "Invalid session token")
		}

		c.Locals("userID", claims.UserID)
		c.Locals("loginID", claims.LoginID)
		c.Locals("name", claims.Name)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowed := range allowedRoles {
			if domain.Role(role) == allowed {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only ADMIN role. Applied to every /api/admin
// route - including logs and reports, which must not bypass the gate.
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}

// InstructorOrAdmin middleware allows INSTRUCTOR or ADMIN roles
func InstructorOrAdmin() fiber.Handler {
	return RoleMiddleware(domain.RoleInstructor, domain.RoleAdmin)
}

// CallerID returns the authenticated user id stashed by AuthMiddleware
func CallerID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("userID").(uint)
	return id, ok
}
