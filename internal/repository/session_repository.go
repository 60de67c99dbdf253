package repository

import (
	"context"

	"github.com/grupo4/clientes-api/internal/domain"
)

type SessionRepository interface {
	Create(ctx context.Context, sesion *domain.Sesion) error

	// GetActiveWithUser resolves a bearer token to the owning user's public
	// fields. Only sessions with estado=true and an expiry in the future
	// (store clock) match; everything else is ErrNotFound.
	GetActiveWithUser(ctx context.Context, token string) (*domain.SesionUsuario, error)

	// Deactivate soft-revokes the session holding the token. Deactivating a
	// nonexistent or already-inactive session is not an error.
	Deactivate(ctx context.Context, token string) error
}
