package service

import (
	"context"
	"log"

	"github.com/grupo4/clientes-api/internal/domain"
	"github.com/grupo4/clientes-api/internal/repository"
)

// AuditoriaService records audit events best-effort: a failing audit sink
// must never block or fail the operation being audited.
type AuditoriaService struct {
	repo repository.AuditoriaRepository
}

func NewAuditoriaService(repo repository.AuditoriaRepository) *AuditoriaService {
	return &AuditoriaService{repo: repo}
}

// Registrar writes the event, logging and swallowing any failure.
func (s *AuditoriaService) Registrar(ctx context.Context, evento *domain.EventoAuditoria) {
	if err := s.repo.Record(ctx, evento); err != nil {
		log.Printf("[AUDITORIA] failed to record %s/%s: %v", evento.Entidad, evento.Operacion, err)
	}
}
