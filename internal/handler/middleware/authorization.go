package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/grupo4/clientes-api/internal/domain"
	"github.com/grupo4/clientes-api/internal/repository"
)

// RequirePermiso verifies that the authenticated user holds the capability
// over the named menu option (e.g. "CLIENTES"). It rejects rather than
// crashes when no identity was attached.
func RequirePermiso(permisos repository.PermisoRepository, opcion string, acceso domain.TipoAcceso) fiber.Handler {
	return func(c *fiber.Ctx) error {
		usuario, ok := UsuarioActual(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "No autenticado",
			})
		}

		if usuario.IDUsuario <= 0 {
			log.Printf("[PERMISO] invalid user id in request identity: %d", usuario.IDUsuario)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Sesión inválida",
			})
		}

		concedido, err := permisos.HasPermiso(c.Context(), usuario.IDUsuario, opcion, acceso)
		if err != nil {
			log.Printf("[PERMISO] check failed for user %d on %s/%s: %v",
				usuario.IDUsuario, opcion, acceso, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error interno en autorización",
			})
		}

		if !concedido {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Acceso denegado",
			})
		}

		return c.Next()
	}
}
