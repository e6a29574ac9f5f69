package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/udrembiga/manajemen-ud/internal/db/models"
)

// localsKey is the single fiber locals slot holding the typed identity.
const localsKey = "auth.identity"

// Identity is the authenticated caller, resolved once by RequireAuth and
// passed to downstream handlers as explicit typed context.
type Identity struct {
	UserID   uint64
	Username string
	Role     models.Role
}

// storeIdentity attaches the identity to the request context.
func storeIdentity(c *fiber.Ctx, id *Identity) {
	c.Locals(localsKey, id)
}

// IdentityFrom resolves the authenticated identity from the request context.
func IdentityFrom(c *fiber.Ctx) (*Identity, bool) {
	id, ok := c.Locals(localsKey).(*Identity)
	return id, ok
}
