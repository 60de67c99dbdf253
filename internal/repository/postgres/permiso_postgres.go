package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/grupo4/clientes-api/internal/domain"
	"github.com/grupo4/clientes-api/internal/repository"
)

type permisoRepository struct {
	db *sqlx.DB
}

// NewPermisoRepository creates a new PostgreSQL permission repository
func NewPermisoRepository(db *sqlx.DB) repository.PermisoRepository {
	return &permisoRepository{db: db}
}

// HasPermiso counts permission rows granting the capability for the
// (user, option) pair across all profiles assigned to the user.
func (r *permisoRepository) HasPermiso(ctx context.Context, userID int, opcion string, acceso domain.TipoAcceso) (bool, error) {
	columna, err := columnaAcceso(acceso)
	if err != nil {
		return false, err
	}

	// columna comes from the fixed switch below, never from caller input.
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM usuarios_perfiles up
		INNER JOIN permisos p      ON p.id_perfil = up.id_perfil
		INNER JOIN opciones_menu o ON o.id_opcion = p.id_opcion
		WHERE up.id_usuario = $1
		  AND o.nombre_opcion = $2
		  AND p.%s = TRUE`, columna)

	var count int
	if err := r.db.GetContext(ctx, &count, query, userID, opcion); err != nil {
		return false, fmt.Errorf("failed to check permission: %w", err)
	}

	return count > 0, nil
}

func columnaAcceso(acceso domain.TipoAcceso) (string, error) {
	switch acceso {
	case domain.AccesoLeer:
		return "permite_leer", nil
	case domain.AccesoCrear:
		return "permite_crear", nil
	case domain.AccesoActualizar:
		return "permite_actualizar", nil
	case domain.AccesoEliminar:
		return "permite_eliminar", nil
	default:
		return "", fmt.Errorf("unknown access kind: %d", acceso)
	}
}
