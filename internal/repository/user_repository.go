package repository

import (
	"context"

	"github.com/grupo4/clientes-api/internal/domain"
)

type UserRepository interface {
	GetByLogin(ctx context.Context, login string) (*domain.Usuario, error)
}
