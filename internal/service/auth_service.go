package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/grupo4/clientes-api/internal/captcha"
	"github.com/grupo4/clientes-api/internal/domain"
	"github.com/grupo4/clientes-api/internal/repository"
	"github.com/grupo4/clientes-api/pkg/csrf"
	"github.com/grupo4/clientes-api/pkg/hash"
)

// Custom errors
var (
	ErrCaptchaInvalido       = errors.New("captcha incorrecto o expirado")
	ErrCredencialesInvalidas = errors.New("credenciales inválidas")
	ErrUsuarioInactivo       = errors.New("usuario inactivo")
)

const sessionTokenBytes = 48

type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	captchas    *captcha.Service
	csrf        *csrf.Deriver
	auditoria   *AuditoriaService
	sessionTTL  time.Duration
}

type LoginRequest struct {
	Usuario          string `json:"usuario" validate:"required,min=3"`
	Password         string `json:"password" validate:"required,min=8"`
	CaptchaID        string `json:"captchaId" validate:"required"`
	CaptchaRespuesta string `json:"captchaRespuesta" validate:"required"`
}

// LoginMeta carries client metadata stored with the session for audit
// purposes only; it plays no part in authorization.
type LoginMeta struct {
	UserAgent string
	IP        string
}

type LoginResult struct {
	User         *domain.SesionUsuario
	CsrfToken    string
	SessionToken string
	ExpiresAt    time.Time
}

func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	captchas *captcha.Service,
	deriver *csrf.Deriver,
	auditoria *AuditoriaService,
	sessionTTL time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		captchas:    captchas,
		csrf:        deriver,
		auditoria:   auditoria,
		sessionTTL:  sessionTTL,
	}
}

// Login runs the full flow: captcha, credential check, session creation and
// CSRF token issuance. Steps short-circuit on the first failure.
func (s *AuthService) Login(ctx context.Context, req LoginRequest, meta LoginMeta) (*LoginResult, error) {
	// The captcha is consumed here whatever the outcome; a retry needs a
	// fresh challenge.
	if !s.captchas.Verify(ctx, req.CaptchaID, req.CaptchaRespuesta) {
		return nil, ErrCaptchaInvalido
	}

	user, err := s.userRepo.GetByLogin(ctx, strings.TrimSpace(req.Usuario))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Same outcome as a wrong password: no user enumeration.
			return nil, ErrCredencialesInvalidas
		}
		return nil, fmt.Errorf("login lookup: %w", err)
	}

	if !user.Estado {
		return nil, ErrUsuarioInactivo
	}

	valid, err := hash.VerifyPassword(req.Password, user.ContrasenaHash)
	if err != nil {
		// A malformed stored hash is a deployment problem, not a bad login.
		return nil, fmt.Errorf("password verify: %w", err)
	}
	if !valid {
		return nil, ErrCredencialesInvalidas
	}

	token, err := generateSessionToken()
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	now := time.Now()
	expiresAt := now.Add(s.sessionTTL)

	sesion := &domain.Sesion{
		IDUsuario:       user.IDUsuario,
		TokenSesion:     token,
		FechaInicio:     now,
		FechaExpiracion: expiresAt,
		Estado:          true,
	}
	if meta.UserAgent != "" {
		sesion.UserAgent = &meta.UserAgent
	}
	if meta.IP != "" {
		sesion.IPConexion = &meta.IP
	}

	if err := s.sessionRepo.Create(ctx, sesion); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.auditoria.Registrar(ctx, &domain.EventoAuditoria{
		Entidad:      "SESIONES",
		Operacion:    "login",
		RealizadoPor: &user.IDUsuario,
		IP:           sesion.IPConexion,
	})

	return &LoginResult{
		User: &domain.SesionUsuario{
			IDUsuario:      user.IDUsuario,
			NombreCompleto: user.NombreCompleto,
			Correo:         user.Correo,
			UsuarioLogin:   user.UsuarioLogin,
		},
		CsrfToken:    s.csrf.Derive(token),
		SessionToken: token,
		ExpiresAt:    expiresAt,
	}, nil
}

// Logout soft-revokes the session holding the token. Revoking an unknown or
// already-revoked token is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessionRepo.Deactivate(ctx, token)
}

// CsrfToken derives the CSRF token for an existing session token.
func (s *AuthService) CsrfToken(sessionToken string) string {
	return s.csrf.Derive(sessionToken)
}

// SessionTTL exposes the configured session lifetime so the handler can set
// a matching cookie max-age.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

func generateSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
