package middleware

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/grupo4/clientes-api/internal/domain"
	"github.com/grupo4/clientes-api/internal/repository"
)

// CookieSesion is the cookie slot carrying the session bearer token.
const CookieSesion = "sid"

// localsUsuario keys the resolved identity in fiber.Locals.
const localsUsuario = "usuario"

// RequireAuth validates the session cookie against sesiones_seguras and
// attaches the owning user's public fields to the request.
func RequireAuth(sessions repository.SessionRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(CookieSesion)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "No autenticado",
			})
		}

		usuario, err := sessions.GetActiveWithUser(c.Context(), token)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"message": "Sesión inválida o expirada. Inicie sesión nuevamente.",
				})
			}
			log.Printf("[AUTH] session lookup failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error interno al validar sesión",
			})
		}

		// Guards against store corruption, not normal operation.
		if usuario.IDUsuario <= 0 {
			log.Printf("[AUTH] invalid user id resolved from session: %d", usuario.IDUsuario)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Sesión inválida",
			})
		}

		c.Locals(localsUsuario, usuario)
		return c.Next()
	}
}

// UsuarioActual returns the identity attached by RequireAuth, if any.
func UsuarioActual(c *fiber.Ctx) (*domain.SesionUsuario, bool) {
	usuario, ok := c.Locals(localsUsuario).(*domain.SesionUsuario)
	return usuario, ok
}
