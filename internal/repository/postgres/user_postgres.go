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

type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// GetByLogin retrieves a user by exact login name match
func (r *userRepository) GetByLogin(ctx context.Context, login string) (*domain.Usuario, error) {
	query := `
		SELECT id_usuario, usuario_login, nombre_completo, correo, contrasena_hash, estado
		FROM usuarios
		WHERE usuario_login = $1`

	var usuario domain.Usuario
	err := r.db.GetContext(ctx, &usuario, query, login)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", login, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by login: %w", err)
	}

	return &usuario, nil
}
