package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/grupo4/clientes-api/internal/captcha"
	"github.com/grupo4/clientes-api/internal/domain"
	"github.com/grupo4/clientes-api/internal/handler/middleware"
	"github.com/grupo4/clientes-api/internal/repository"
	"github.com/grupo4/clientes-api/internal/service"
	"github.com/grupo4/clientes-api/pkg/csrf"
	"github.com/grupo4/clientes-api/pkg/hash"
	"github.com/grupo4/clientes-api/pkg/validator"
)

const testPassword = "Secreta123!"

var (
	testHashOnce sync.Once
	testHash     string
)

// testPasswordHash memoizes the argon2id hash, which is expensive on purpose.
func testPasswordHash(t *testing.T) string {
	t.Helper()
	testHashOnce.Do(func() {
		h, err := hash.HashPassword(testPassword)
		if err != nil {
			panic(err)
		}
		testHash = h
	})
	return testHash
}

type memUserRepo struct {
	usuarios map[string]*domain.Usuario
}

func (r *memUserRepo) GetByLogin(_ context.Context, login string) (*domain.Usuario, error) {
	u, ok := r.usuarios[login]
	if !ok {
		return nil, fmt.Errorf("user %q: %w", login, repository.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

type memSessionRepo struct {
	mu       sync.Mutex
	usuarios map[int]*domain.SesionUsuario
	sesiones map[string]*domain.Sesion
}

func (r *memSessionRepo) Create(_ context.Context, s *domain.Sesion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.sesiones[s.TokenSesion] = &cp
	return nil
}

func (r *memSessionRepo) GetActiveWithUser(_ context.Context, token string) (*domain.SesionUsuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sesiones[token]
	if !ok || !s.Estado || !s.FechaExpiracion.After(time.Now()) {
		return nil, fmt.Errorf("active session: %w", repository.ErrNotFound)
	}
	u, ok := r.usuarios[s.IDUsuario]
	if !ok {
		return nil, fmt.Errorf("session owner: %w", repository.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (r *memSessionRepo) Deactivate(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sesiones[token]; ok {
		s.Estado = false
	}
	return nil
}

type memPermisoRepo struct {
	grants map[domain.TipoAcceso]bool
}

func (r *memPermisoRepo) HasPermiso(_ context.Context, _ int, _ string, acceso domain.TipoAcceso) (bool, error) {
	return r.grants[acceso], nil
}

type memClienteRepo struct {
	mu    sync.Mutex
	seq   int
	items map[int]*domain.Cliente
}

func (r *memClienteRepo) List(_ context.Context, _ string) ([]domain.Cliente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Cliente{}
	for _, c := range r.items {
		if c.Activo {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memClienteRepo) GetByID(_ context.Context, id int) (*domain.Cliente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok || !c.Activo {
		return nil, fmt.Errorf("cliente %d: %w", id, repository.ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (r *memClienteRepo) Create(_ context.Context, c *domain.Cliente) (*domain.Cliente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	cp := *c
	cp.ClienteID = r.seq
	cp.Activo = true
	cp.FechaCreacion = time.Now()
	r.items[cp.ClienteID] = &cp
	out := cp
	return &out, nil
}

func (r *memClienteRepo) Update(_ context.Context, c *domain.Cliente) (*domain.Cliente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[c.ClienteID]
	if !ok || !existing.Activo {
		return nil, fmt.Errorf("cliente %d: %w", c.ClienteID, repository.ErrNotFound)
	}
	cp := *c
	cp.FechaCreacion = existing.FechaCreacion
	r.items[c.ClienteID] = &cp
	out := cp
	return &out, nil
}

func (r *memClienteRepo) Deactivate(_ context.Context, id, _ int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok || !c.Activo {
		return fmt.Errorf("cliente %d: %w", id, repository.ErrNotFound)
	}
	c.Activo = false
	return nil
}

type memAuditoriaRepo struct{}

func (memAuditoriaRepo) Record(context.Context, *domain.EventoAuditoria) error { return nil }

type testEnv struct {
	app     *fiber.App
	deriver *csrf.Deriver
}

type envOptions struct {
	grants        map[domain.TipoAcceso]bool
	loginAttempts int
}

func allGrants() map[domain.TipoAcceso]bool {
	return map[domain.TipoAcceso]bool{
		domain.AccesoLeer:       true,
		domain.AccesoCrear:      true,
		domain.AccesoActualizar: true,
		domain.AccesoEliminar:   true,
	}
}

func newTestEnv(t *testing.T, opts envOptions) *testEnv {
	t.Helper()

	if opts.grants == nil {
		opts.grants = allGrants()
	}
	if opts.loginAttempts == 0 {
		opts.loginAttempts = 100
	}

	users := &memUserRepo{usuarios: map[string]*domain.Usuario{
		"atorres": {
			IDUsuario:      7,
			UsuarioLogin:   "atorres",
			NombreCompleto: "Ana Torres",
			Correo:         "ana@example.com",
			ContrasenaHash: testPasswordHash(t),
			Estado:         true,
		},
		"inactivo": {
			IDUsuario:      8,
			UsuarioLogin:   "inactivo",
			ContrasenaHash: testPasswordHash(t),
			Estado:         false,
		},
	}}

	sessions := &memSessionRepo{
		usuarios: map[int]*domain.SesionUsuario{
			7: {IDUsuario: 7, NombreCompleto: "Ana Torres", Correo: "ana@example.com", UsuarioLogin: "atorres"},
			8: {IDUsuario: 8, UsuarioLogin: "inactivo"},
		},
		sesiones: make(map[string]*domain.Sesion),
	}

	permisos := &memPermisoRepo{grants: opts.grants}
	clientes := &memClienteRepo{items: make(map[int]*domain.Cliente)}

	deriver := csrf.NewDeriver("clave-de-prueba")
	captchaSvc := captcha.NewService(captcha.NewMemoryStore(100), 5*time.Minute)
	auditoria := service.NewAuditoriaService(memAuditoriaRepo{})

	authSvc := service.NewAuthService(users, sessions, captchaSvc, deriver, auditoria, 2*time.Hour)
	clienteSvc := service.NewClienteService(clientes, auditoria)

	app := fiber.New()
	SetupRoutes(app,
		NewAuthHandler(authSvc, captchaSvc, validator.NewValidator(), false),
		NewClienteHandler(clienteSvc),
		NewHealthHandler(),
		sessions,
		permisos,
		deriver,
		middleware.LoginRateLimiter(opts.loginAttempts, time.Minute),
	)

	return &testEnv{app: app, deriver: deriver}
}

func jsonRequest(method, path string, body any) *http.Request {
	var buf io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		buf = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return req
}

func (env *testEnv) do(t *testing.T, req *http.Request) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var body map[string]any
	if len(raw) > 0 {
		// Top-level arrays (list endpoints) come back as a nil map here;
		// those tests decode the raw bytes themselves.
		_ = json.Unmarshal(raw, &body)
	}
	resp.Body = io.NopCloser(bytes.NewReader(raw))
	return resp, body
}

var captchaQuestion = regexp.MustCompile(`¿Cuánto es (\d+) \+ (\d+)\?`)

// solveCaptcha fetches a challenge and computes its answer from the question.
func (env *testEnv) solveCaptcha(t *testing.T) (id, answer string) {
	t.Helper()

	resp, body := env.do(t, jsonRequest(http.MethodGet, "/api/auth/captcha", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	id, _ = body["id"].(string)
	question, _ := body["question"].(string)
	require.NotEmpty(t, id)

	m := captchaQuestion.FindStringSubmatch(question)
	require.Len(t, m, 3, "unexpected question format: %q", question)
	a, _ := strconv.Atoi(m[1])
	b, _ := strconv.Atoi(m[2])
	return id, strconv.Itoa(a + b)
}

// login runs the captcha and login steps and returns the session cookie plus
// the CSRF token issued with it.
func (env *testEnv) login(t *testing.T) (*http.Cookie, string) {
	t.Helper()

	captchaID, answer := env.solveCaptcha(t)
	resp, body := env.do(t, jsonRequest(http.MethodPost, "/api/auth/login", fiber.Map{
		"usuario":          "atorres",
		"password":         testPassword,
		"captchaId":        captchaID,
		"captchaRespuesta": answer,
	}))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var sid *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == middleware.CookieSesion {
			sid = c
		}
	}
	require.NotNil(t, sid, "login did not set the session cookie")

	token, _ := body["csrfToken"].(string)
	require.NotEmpty(t, token)
	return sid, token
}
