package middleware

import (
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/apperror"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/config"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

var errUnauthorized = apperror.Authentication("Unauthorized: invalid or expired token")

func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtConfig(cfg))
}

// OptionalJWT verifies a bearer token when one is sent and lets anonymous
// requests through untouched.
func OptionalJWT(cfg *config.Config) fiber.Handler {
	jc := jwtConfig(cfg)
	jc.Filter = func(c *fiber.Ctx) bool {
		return c.Get(fiber.HeaderAuthorization) == ""
	}
	return jwtware.New(jc)
}

func jwtConfig(cfg *config.Config) jwtware.Config {
	return jwtware.Config{
		SigningKey: jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return errUnauthorized
		},
	}
}
