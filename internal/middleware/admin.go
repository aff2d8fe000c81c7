package middleware

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/apperror"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var errAdminRequired = apperror.Authorization("Admin access required")

// RoleLookup resolves the stored role of a user.
type RoleLookup interface {
	Role(ctx context.Context, id uuid.UUID) (models.Role, error)
}

// AdminRequired must run after JWTProtected. The role is read from the
// database so a demoted admin loses access before their token expires.
// When LoadIdentity already ran, its lookup is reused.
func AdminRequired(users RoleLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := CurrentIdentity(c)
		if err != nil {
			return err
		}

		role := id.Role
		if role == "" {
			role, err = users.Role(c.UserContext(), id.UserID)
			if err != nil {
				if apperror.Is(err, apperror.KindNotFound) {
					return errUnauthorized
				}
				return err
			}
			c.Locals(roleLocal, role)
		}
		if role != models.RoleAdmin {
			return errAdminRequired
		}
		return c.Next()
	}
}
