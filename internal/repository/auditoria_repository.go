package repository

import (
	"context"

	"github.com/grupo4/clientes-api/internal/domain"
)

type AuditoriaRepository interface {
	Record(ctx context.Context, evento *domain.EventoAuditoria) error
}
