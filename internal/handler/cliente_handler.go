package handler

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/grupo4/clientes-api/internal/handler/middleware"
	"github.com/grupo4/clientes-api/internal/repository"
	"github.com/grupo4/clientes-api/internal/service"
)

type ClienteHandler struct {
	clienteService *service.ClienteService
}

func NewClienteHandler(clienteService *service.ClienteService) *ClienteHandler {
	return &ClienteHandler{clienteService: clienteService}
}

// List returns active customers, optionally filtered by ?nombre=
// GET /api/clientes
func (h *ClienteHandler) List(c *fiber.Ctx) error {
	clientes, err := h.clienteService.Listar(c.Context(), c.Query("nombre"))
	if err != nil {
		log.Printf("Error en GET /api/clientes: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error al listar clientes",
		})
	}

	return c.JSON(clientes)
}

// Get returns a single active customer
// GET /api/clientes/:id
func (h *ClienteHandler) Get(c *fiber.Ctx) error {
	id, ok := clienteID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "ID de cliente inválido.",
		})
	}

	cliente, err := h.clienteService.Obtener(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Cliente no encontrado.",
			})
		}
		log.Printf("Error en GET /api/clientes/:id: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error al obtener cliente",
		})
	}

	return c.JSON(cliente)
}

// Create inserts a customer with the caller as creado_por
// POST /api/clientes
func (h *ClienteHandler) Create(c *fiber.Ctx) error {
	usuario, ok := middleware.UsuarioActual(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "No autenticado",
		})
	}

	var input service.ClienteInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Datos inválidos",
		})
	}

	if errores := input.Validar(); len(errores) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Datos inválidos",
			"errors":  errores,
		})
	}

	cliente, err := h.clienteService.Crear(c.Context(), input, usuario.IDUsuario, c.IP())
	if err != nil {
		log.Printf("Error en POST /api/clientes: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error al crear cliente",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(cliente)
}

// Update replaces a customer's mutable fields
// PUT /api/clientes/:id
func (h *ClienteHandler) Update(c *fiber.Ctx) error {
	usuario, ok := middleware.UsuarioActual(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "No autenticado",
		})
	}

	id, okID := clienteID(c)
	if !okID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "ID de cliente inválido.",
		})
	}

	var input service.ClienteInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Datos inválidos",
		})
	}

	if errores := input.Validar(); len(errores) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Datos inválidos",
			"errors":  errores,
		})
	}

	cliente, err := h.clienteService.Actualizar(c.Context(), id, input, usuario.IDUsuario, c.IP())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Cliente no encontrado.",
			})
		}
		log.Printf("Error en PUT /api/clientes/:id: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error al actualizar cliente",
		})
	}

	return c.JSON(cliente)
}

// Delete deactivates a customer (logical delete)
// DELETE /api/clientes/:id
func (h *ClienteHandler) Delete(c *fiber.Ctx) error {
	usuario, ok := middleware.UsuarioActual(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "No autenticado",
		})
	}

	id, okID := clienteID(c)
	if !okID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "ID de cliente inválido.",
		})
	}

	if err := h.clienteService.Eliminar(c.Context(), id, usuario.IDUsuario, c.IP()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Cliente no encontrado.",
			})
		}
		log.Printf("Error en DELETE /api/clientes/:id: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error al desactivar cliente",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Cliente desactivado correctamente.",
	})
}

func clienteID(c *fiber.Ctx) (int, bool) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
