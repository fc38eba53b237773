package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// OriginGuard rejects cross-origin requests whose Origin is not on the
// allow-list. Requests without an Origin header (curl, server to server) pass.
func OriginGuard(allowed []string) fiber.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range normalizeOrigins(allowed) {
		set[strings.ToLower(o)] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		if origin == "" {
			return c.Next()
		}
		if _, ok := set[strings.ToLower(strings.TrimRight(origin, "/"))]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not allowed by CORS"})
		}
		return c.Next()
	}
}

// CORS returns the cors middleware for the same allow-list.
func CORS(allowed []string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: strings.Join(normalizeOrigins(allowed), ","),
		AllowMethods: strings.Join([]string{
			fiber.MethodGet,
			fiber.MethodPost,
			fiber.MethodPut,
			fiber.MethodDelete,
			fiber.MethodOptions,
		}, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	})
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			out = append(out, o)
		}
	}
	return out
}
