package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/grupo4/clientes-api/internal/domain"
	"github.com/grupo4/clientes-api/internal/handler/middleware"
	"github.com/grupo4/clientes-api/internal/repository"
	"github.com/grupo4/clientes-api/pkg/csrf"
)

// OpcionClientes is the menu option guarding the customer registry.
const OpcionClientes = "CLIENTES"

// SetupRoutes wires the HTTP surface. Auth routes stay outside the session
// and CSRF gates because they are the ones creating the session; the
// clientes group runs the full pipeline: session, CSRF (mutating verbs
// only) and per-action permission.
func SetupRoutes(
	app *fiber.App,
	authHandler *AuthHandler,
	clienteHandler *ClienteHandler,
	healthHandler *HealthHandler,
	sessions repository.SessionRepository,
	permisos repository.PermisoRepository,
	deriver *csrf.Deriver,
	loginLimiter fiber.Handler,
) {
	api := app.Group("/api")

	api.Get("/health", healthHandler.Health)

	auth := api.Group("/auth")
	auth.Get("/captcha", authHandler.Captcha)
	auth.Post("/login", loginLimiter, authHandler.Login)
	auth.Get("/csrf-token", authHandler.CsrfToken)
	auth.Post("/logout", middleware.RequireCSRF(deriver), authHandler.Logout)

	clientes := api.Group("/clientes",
		middleware.RequireAuth(sessions),
		middleware.RequireCSRF(deriver),
	)
	clientes.Get("/",
		middleware.RequirePermiso(permisos, OpcionClientes, domain.AccesoLeer),
		clienteHandler.List)
	clientes.Get("/:id",
		middleware.RequirePermiso(permisos, OpcionClientes, domain.AccesoLeer),
		clienteHandler.Get)
	clientes.Post("/",
		middleware.RequirePermiso(permisos, OpcionClientes, domain.AccesoCrear),
		clienteHandler.Create)
	clientes.Put("/:id",
		middleware.RequirePermiso(permisos, OpcionClientes, domain.AccesoActualizar),
		clienteHandler.Update)
	clientes.Delete("/:id",
		middleware.RequirePermiso(permisos, OpcionClientes, domain.AccesoEliminar),
		clienteHandler.Delete)
}
