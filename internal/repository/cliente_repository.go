package repository

import (
	"context"

	"github.com/grupo4/clientes-api/internal/domain"
)

type ClienteRepository interface {
	// List returns active customers, newest first. A non-empty nombre
	// filters by partial, case-insensitive name match.
	List(ctx context.Context, nombre string) ([]domain.Cliente, error)
	GetByID(ctx context.Context, id int) (*domain.Cliente, error)
	Create(ctx context.Context, cliente *domain.Cliente) (*domain.Cliente, error)
	Update(ctx context.Context, cliente *domain.Cliente) (*domain.Cliente, error)

	// Deactivate performs the logical delete (activo=false).
	Deactivate(ctx context.Context, id, modificadoPor int) error
}
