package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/mut-reserve/mutreserve/internal/web/session"
)

const identityLocalsKey = "identity"

// RequireSession is a fiber middleware that rejects requests without a
// valid session cookie. On success the identity is stored in the request
// locals for handlers.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := readIdentity(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		c.Locals(identityLocalsKey, identity)

		return c.Next()
	}
}

// RequireMenu is a fiber middleware that requires the session's role to be
// granted the given menu. Grants are checked against the resolver, not the
// menu list frozen into the session at login, so a revocation takes effect
// on the next request.
func RequireMenu(resolver *Resolver, menuSlug string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := readIdentity(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		permitted, err := resolver.IsPermitted(identity.PositionID, menuSlug)
		if err != nil {
			log.Error().Err(err).Str("menu", menuSlug).Uint("position", identity.PositionID).
				Msg("failed to check menu grant")

			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal server error",
			})
		}

		if !permitted {
			log.Warn().Str("ssn", identity.SSN).Str("menu", menuSlug).
				Msg("menu access denied")

			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "forbidden",
			})
		}

		c.Locals(identityLocalsKey, identity)

		return c.Next()
	}
}

// CurrentIdentity returns the session identity stored by the middleware,
// or reads it from the session cookie when no middleware ran.
func CurrentIdentity(c *fiber.Ctx) (*session.Identity, bool) {
	if identity, ok := c.Locals(identityLocalsKey).(*session.Identity); ok {
		return identity, true
	}

	return readIdentity(c)
}

func readIdentity(c *fiber.Ctx) (*session.Identity, bool) {
	sessionID := c.Cookies("session")
	if sessionID == "" {
		return nil, false
	}

	sessionData := new(session.Data)
	if err := sessionData.Read(sessionID); err != nil {
		return nil, false
	}

	if !sessionData.Valid() {
		return nil, false
	}

	return &sessionData.Identity, true
}
