package domain

// EventoAuditoria is a best-effort audit trail entry. Recording it must
// never block or fail the operation being audited.
type EventoAuditoria struct {
	Entidad      string  `db:"entidad"`
	EntidadID    *string `db:"entidad_id"`
	Operacion    string  `db:"operacion"`
	RealizadoPor *int    `db:"realizado_por"`
	Detalles     *string `db:"detalles"`
	IP           *string `db:"ip"`
}
