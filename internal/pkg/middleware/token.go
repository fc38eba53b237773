package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/muhafiz/muhafiz-api/internal/pkg/security"
	"github.com/muhafiz/muhafiz-api/internal/pkg/usercontext"
)

// RequireToken gates a route on a valid access token in the Authorization
// header. The raw token is expected; a "Bearer " prefix is tolerated.
func RequireToken(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"msg": "Token required"})
		}

		claims, err := security.VerifyToken(token, secret)
		if err != nil {
			log.Debugf("[Auth] rejected token on %s %s: %v", c.Method(), c.Path(), err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"msg": "Invalid token"})
		}

		usercontext.SetUserContext(c, usercontext.UserContext{
			UserID:     claims.ID,
			Name:       claims.Name,
			Email:      claims.Email,
			Role:       claims.Role,
			IsLoggedIn: true,
		})

		return c.Next()
	}
}

func extractToken(c *fiber.Ctx) string {
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return auth
}
