package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/grupo4/clientes-api/pkg/csrf"
)

// HeaderCSRF carries the caller-supplied CSRF token on mutating requests.
const HeaderCSRF = "X-CSRF-Token"

// RequireCSRF enforces the double-check on state-mutating methods: the
// expected token is recomputed from the session cookie, never stored.
// Read-only methods pass through untouched.
func RequireCSRF(deriver *csrf.Deriver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}

		sessionToken := c.Cookies(CookieSesion)
		if sessionToken == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Sesión no válida para verificación CSRF.",
			})
		}

		incoming := c.Get(HeaderCSRF)
		if incoming == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Falta cabecera CSRF.",
				"details": "Debe enviar el header '" + HeaderCSRF + "' en las peticiones que modifican datos.",
			})
		}

		if !deriver.Verify(sessionToken, incoming) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Token CSRF inválido.",
			})
		}

		return c.Next()
	}
}
