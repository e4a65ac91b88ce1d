package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/channelgrid/server/internal/config"
	"github.com/channelgrid/server/internal/search"
	"github.com/channelgrid/server/pkg/auth"
)

const searchContextKey = "searchContext"

// SearchContext resolves the caller's trust tier and stores it in locals.
// A matching X-API-Key marks the request internal; a valid admin bearer
// token marks it admin; everything else is an end user. The tier only
// widens result ceilings, so failed token parses silently fall through.
func SearchContext(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tier := search.ContextEndUser

		if key := c.Get("X-API-Key"); key != "" && cfg.InternalAPIKey != "" && key == cfg.InternalAPIKey {
			tier = search.ContextInternal
		}

		if authHeader := c.Get("Authorization"); authHeader != "" && cfg.JWTSecretKey != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				if claims, err := auth.ValidateAccessToken(parts[1], cfg.JWTSecretKey); err == nil && claims.Role == auth.RoleAdmin {
					tier = search.ContextAdmin
				}
			}
		}

		c.Locals(searchContextKey, tier)
		return c.Next()
	}
}

// SearchContextFrom reads the resolved tier, defaulting to end user.
func SearchContextFrom(c *fiber.Ctx) search.Context {
	if tier, ok := c.Locals(searchContextKey).(search.Context); ok {
		return tier
	}
	return search.ContextEndUser
}

// InternalOnly rejects requests without the internal API key. Used for the
// cache invalidation endpoint called by the channel sync job.
func InternalOnly(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get("X-API-Key")
		if key == "" || cfg.InternalAPIKey == "" || key != cfg.InternalAPIKey {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or missing API key",
			})
		}
		return c.Next()
	}
}
