package repository

import (
	"context"

	"github.com/grupo4/clientes-api/internal/domain"
)

type PermisoRepository interface {
	// HasPermiso reports whether any profile assigned to the user grants the
	// capability over the named menu option.
	HasPermiso(ctx context.Context, userID int, opcion string, acceso domain.TipoAcceso) (bool, error)
}
