package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/grupo4/clientes-api/internal/domain"
	"github.com/grupo4/clientes-api/internal/repository"
)

type sessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new PostgreSQL session repository
func NewSessionRepository(db *sqlx.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// Create inserts a new session into the database
func (r *sessionRepository) Create(ctx context.Context, sesion *domain.Sesion) error {
	query := `
		INSERT INTO sesiones_seguras (
			id_usuario, token_sesion, fecha_inicio, fecha_expiracion,
			user_agent, ip_conexion, estado
		) VALUES (
			:id_usuario, :token_sesion, :fecha_inicio, :fecha_expiracion,
			:user_agent, :ip_conexion, :estado
		)`

	_, err := r.db.NamedExecContext(ctx, query, sesion)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// GetActiveWithUser resolves a token to the session owner's public fields.
// Expiry is compared against the database clock, not the caller's.
func (r *sessionRepository) GetActiveWithUser(ctx context.Context, token string) (*domain.SesionUsuario, error) {
	query := `
		SELECT u.id_usuario, u.nombre_completo, u.correo, u.usuario_login
		FROM sesiones_seguras s
		INNER JOIN usuarios u ON u.id_usuario = s.id_usuario
		WHERE s.token_sesion = $1
		  AND s.estado = TRUE
		  AND s.fecha_expiracion > NOW()
		LIMIT 1`

	var su domain.SesionUsuario
	err := r.db.GetContext(ctx, &su, query, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("active session: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get session by token: %w", err)
	}

	return &su, nil
}

// Deactivate soft-revokes the session. Matching zero rows is fine: logout
// must be idempotent.
func (r *sessionRepository) Deactivate(ctx context.Context, token string) error {
	query := `UPDATE sesiones_seguras SET estado = FALSE WHERE token_sesion = $1`

	_, err := r.db.ExecContext(ctx, query, token)
	if err != nil {
		return fmt.Errorf("failed to deactivate session: %w", err)
	}

	return nil
}
