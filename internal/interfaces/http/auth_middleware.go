package http

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bau-portal/internal/domain/entity"
	"github.com/jhoicas/bau-portal/pkg/jwt"
)

// LocalIdentity clave de c.Locals con la identidad del token.
const LocalIdentity = "identity"

// AuthMiddleware valida el Bearer Token JWT y deja la identidad en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return writeError(c, fiber.StatusUnauthorized, "Authorization-Header fehlt")
		}
		scheme, tokenString, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return writeError(c, fiber.StatusUnauthorized, "Format: Bearer <token>")
		}
		tokenString = strings.TrimSpace(tokenString)
		if tokenString == "" {
			return writeError(c, fiber.StatusUnauthorized, "Token fehlt")
		}
		sub, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return writeError(c, fiber.StatusUnauthorized, "Token ungültig oder abgelaufen")
		}
		role, ok := entity.ParseRole(sub.Role)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, "Token ohne gültige Rolle")
		}
		c.Locals(LocalIdentity, &entity.Identity{
			ID:        sub.UserID,
			Email:     sub.Email,
			Role:      role,
			BetriebID: sub.BetriebID,
		})
		return c.Next()
	}
}

// RequireRole deja pasar solo a los roles indicados. Va después de AuthMiddleware.
func RequireRole(roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := Actor(c)
		if actor == nil {
			return writeError(c, fiber.StatusUnauthorized, "Nicht authentifiziert")
		}
		if !slices.Contains(roles, actor.Role) {
			return writeError(c, fiber.StatusForbidden, "Keine Berechtigung für diese Aktion")
		}
		return c.Next()
	}
}

// Actor identidad del token (después del middleware de auth); nil si no hay.
func Actor(c *fiber.Ctx) *entity.Identity {
	id, _ := c.Locals(LocalIdentity).(*entity.Identity)
	return id
}
