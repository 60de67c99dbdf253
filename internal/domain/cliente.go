package domain

import "time"

// Cliente is a customer record. Deletion is logical: activo=false.
type Cliente struct {
	ClienteID         int        `json:"cliente_id" db:"cliente_id"`
	TipoDocumento     *string    `json:"tipo_documento" db:"tipo_documento"`
	NumeroDocumento   *string    `json:"numero_documento" db:"numero_documento"`
	Nombre            string     `json:"nombre" db:"nombre"`
	Correo            *string    `json:"correo" db:"correo"`
	Telefono          *string    `json:"telefono" db:"telefono"`
	Direccion         *string    `json:"direccion" db:"direccion"`
	DatosExtra        *string    `json:"datos_extra" db:"datos_extra"`
	CreadoPor         *int       `json:"creado_por" db:"creado_por"`
	FechaCreacion     time.Time  `json:"fecha_creacion" db:"fecha_creacion"`
	ModificadoPor     *int       `json:"modificado_por" db:"modificado_por"`
	FechaModificacion *time.Time `json:"fecha_modificacion" db:"fecha_modificacion"`
	Activo            bool       `json:"activo" db:"activo"`
}
