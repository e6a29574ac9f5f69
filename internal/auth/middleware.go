package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/udrembiga/manajemen-ud/internal/db/models"
	"github.com/udrembiga/manajemen-ud/internal/web/handler"
)

// bearerPrefix of the Authorization header.
const bearerPrefix = "Bearer "

// extractBearerToken pulls the token out of the Authorization header.
func extractBearerToken(c *fiber.Ctx) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", ErrMissingToken
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" {
		return "", ErrMissingToken
	}

	return token, nil
}

// RequireAuth verifies the bearer token and that its user still exists and
// is active, then stores the typed identity in the request context.
func (s *Service) RequireAuth(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := extractBearerToken(c)
		if err != nil {
			return handler.Fail(c, fiber.StatusUnauthorized, "Authentication required")
		}

		identity, err := s.ParseToken(token)
		if err != nil {
			return handler.Fail(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}

		var u models.User
		if err := db.First(&u, identity.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return handler.Fail(c, fiber.StatusUnauthorized, "User not found")
			}

			return handler.FailErr(c, "Failed to authenticate", err)
		}

		if !u.IsActive {
			return handler.Fail(c, fiber.StatusForbidden, "Account is deactivated")
		}

		// the stored role wins over the token claim
		identity.Role = u.Role
		identity.Username = u.Username

		storeIdentity(c, identity)

		return c.Next()
	}
}

// RequireRoles restricts a route to the given role set. Must run after
// RequireAuth.
func RequireRoles(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFrom(c)
		if !ok {
			return handler.Fail(c, fiber.StatusUnauthorized, "Authentication required")
		}

		for _, role := range roles {
			if identity.Role == role {
				return c.Next()
			}
		}

		return handler.Fail(c, fiber.StatusForbidden, "Insufficient role")
	}
}
