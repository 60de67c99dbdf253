package handler

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/grupo4/clientes-api/internal/captcha"
	"github.com/grupo4/clientes-api/internal/handler/middleware"
	"github.com/grupo4/clientes-api/internal/service"
	"github.com/grupo4/clientes-api/pkg/validator"
)

type AuthHandler struct {
	authService *service.AuthService
	captchas    *captcha.Service
	validator   *validator.Validator
	secureCookie bool
}

func NewAuthHandler(authService *service.AuthService, captchas *captcha.Service, validator *validator.Validator, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		captchas:     captchas,
		validator:    validator,
		secureCookie: secureCookie,
	}
}

// Captcha issues a fresh human-verification challenge
// GET /api/auth/captcha
func (h *AuthHandler) Captcha(c *fiber.Ctx) error {
	id, question, err := h.captchas.Create(c.Context())
	if err != nil {
		log.Printf("Error en GET /auth/captcha: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error interno generando captcha",
		})
	}

	return c.JSON(fiber.Map{
		"id":       id,
		"question": question,
	})
}

// Login authenticates a user and opens a session
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Usuario o contraseña inválidos.",
		})
	}

	if err := h.validator.Validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Usuario o contraseña inválidos.",
		})
	}

	meta := service.LoginMeta{
		UserAgent: c.Get(fiber.HeaderUserAgent),
		IP:        c.IP(),
	}

	result, err := h.authService.Login(c.Context(), req, meta)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCaptchaInvalido):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Captcha incorrecto o expirado.",
			})
		case errors.Is(err, service.ErrCredencialesInvalidas):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Credenciales inválidas (usuario o contraseña).",
			})
		case errors.Is(err, service.ErrUsuarioInactivo):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Usuario inactivo. Contacte al administrador.",
			})
		default:
			log.Printf("Error en POST /auth/login: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error interno en login",
			})
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieSesion,
		Value:    result.SessionToken,
		Path:     "/",
		Expires:  result.ExpiresAt,
		MaxAge:   int(h.authService.SessionTTL().Seconds()),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(fiber.Map{
		"message":   "Login correcto.",
		"user":      result.User,
		"csrfToken": result.CsrfToken,
	})
}

// CsrfToken recomputes the CSRF token for the current session cookie
// GET /api/auth/csrf-token
func (h *AuthHandler) CsrfToken(c *fiber.Ctx) error {
	sessionToken := c.Cookies(middleware.CookieSesion)
	if sessionToken == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Sesión no válida.",
		})
	}

	return c.JSON(fiber.Map{
		"csrfToken": h.authService.CsrfToken(sessionToken),
	})
}

// Logout soft-revokes the current session. The cookie is cleared and 200
// returned even when the store update fails: logout must never get stuck.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := c.Cookies(middleware.CookieSesion)

	message := "Sesión cerrada."
	if err := h.authService.Logout(c.Context(), token); err != nil {
		log.Printf("Error en POST /auth/logout: %v", err)
		message = "Sesión cerrada (con error interno)."
	}

	h.clearSessionCookie(c)
	return c.JSON(fiber.Map{"message": message})
}

func (h *AuthHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieSesion,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
