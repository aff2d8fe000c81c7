package middleware

import (
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/apperror"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const roleLocal = "user_role"

// Identity is the caller resolved from a verified session token.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   models.Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

// LoadIdentity must run after JWTProtected or OptionalJWT. It resolves the
// caller's stored role so authorization never trusts the role claim, and
// rejects tokens whose account no longer exists. Requests without a token
// pass through untouched.
func LoadIdentity(users RoleLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals("user").(*jwt.Token); !ok {
			return c.Next()
		}
		sub, err := tokenSubject(c)
		if err != nil {
			return err
		}
		role, err := users.Role(c.UserContext(), sub)
		if err != nil {
			if apperror.Is(err, apperror.KindNotFound) {
				return errUnauthorized
			}
			return err
		}
		c.Locals(roleLocal, role)
		return c.Next()
	}
}

func tokenSubject(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return uuid.Nil, errUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errUnauthorized
	}
	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, errUnauthorized
	}
	return id, nil
}

// CurrentIdentity extracts the caller from the JWT claims in context. Role is
// only set once LoadIdentity has read it from the database.
func CurrentIdentity(c *fiber.Ctx) (Identity, error) {
	id, err := tokenSubject(c)
	if err != nil {
		return Identity{}, err
	}
	claims := c.Locals("user").(*jwt.Token).Claims.(jwt.MapClaims)
	email, _ := claims["email"].(string)
	role, _ := c.Locals(roleLocal).(models.Role)
	return Identity{UserID: id, Email: email, Role: role}, nil
}

// OptionalIdentity returns the caller when the request carried a token.
func OptionalIdentity(c *fiber.Ctx) (Identity, bool) {
	if _, ok := c.Locals("user").(*jwt.Token); !ok {
		return Identity{}, false
	}
	id, err := CurrentIdentity(c)
	return id, err == nil
}

// GetUserID extracts the user UUID from JWT claims in context.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	return tokenSubject(c)
}

// RequireSelfOrAdmin allows the owner of target or an admin.
func RequireSelfOrAdmin(c *fiber.Ctx, target uuid.UUID) (Identity, error) {
	id, err := CurrentIdentity(c)
	if err != nil {
		return Identity{}, err
	}
	if id.UserID != target && !id.IsAdmin() {
		return Identity{}, apperror.Authorization("you can only access your own resources")
	}
	return id, nil
}
