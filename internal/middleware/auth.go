package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/oknastroy/internal/config"
	"github.com/example/oknastroy/internal/models"
	"github.com/example/oknastroy/internal/utils"
)

const principalContextKey = "currentPrincipal"

// AuthMiddleware validates JWT tokens and loads the caller's principal into
// context. Requests without a valid token are rejected.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := principalFromHeader(c, cfg)
		if err != nil {
			return err
		}
		c.Locals(principalContextKey, principal)
		return c.Next()
	}
}

// OptionalAuth loads the principal when a valid token is present but lets
// anonymous requests through. Used for guest checkout.
func OptionalAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get("Authorization") == "" {
			return c.Next()
		}
		principal, err := principalFromHeader(c, cfg)
		if err != nil {
			return err
		}
		c.Locals(principalContextKey, principal)
		return c.Next()
	}
}

// RequireRoles rejects callers whose role is not in the allowed set. Must
// run after AuthMiddleware.
func RequireRoles(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
		}
		for _, role := range roles {
			if principal.Role == role {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "insufficient role")
	}
}

// CurrentPrincipal extracts the authenticated principal from context.
func CurrentPrincipal(c *fiber.Ctx) (models.Principal, bool) {
	value := c.Locals(principalContextKey)
	if value == nil {
		return models.Principal{}, false
	}

	if principal, ok := value.(models.Principal); ok {
		return principal, true
	}

	return models.Principal{}, false
}

func principalFromHeader(c *fiber.Ctx, cfg *config.Config) (models.Principal, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return models.Principal{}, fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return models.Principal{}, fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
	}

	principal, err := utils.ParseToken(cfg.JWTSecret, parts[1])
	if err != nil {
		return models.Principal{}, fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	}
	return principal, nil
}
