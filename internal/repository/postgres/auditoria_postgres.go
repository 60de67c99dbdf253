package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/grupo4/clientes-api/internal/domain"
	"github.com/grupo4/clientes-api/internal/repository"
)

type auditoriaRepository struct {
	db *sqlx.DB
}

// NewAuditoriaRepository creates a new PostgreSQL audit repository
func NewAuditoriaRepository(db *sqlx.DB) repository.AuditoriaRepository {
	return &auditoriaRepository{db: db}
}

// Record inserts an audit event
func (r *auditoriaRepository) Record(ctx context.Context, evento *domain.EventoAuditoria) error {
	query := `
		INSERT INTO auditoria (entidad, entidad_id, operacion, realizado_por, detalles, ip)
		VALUES (:entidad, :entidad_id, :operacion, :realizado_por, :detalles, :ip)`

	_, err := r.db.NamedExecContext(ctx, query, evento)
	if err != nil {
		return fmt.Errorf("failed to record audit event: %w", err)
	}

	return nil
}
