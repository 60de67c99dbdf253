package domain

import "time"

// Sesion binds an opaque bearer token to a user with expiry and revocation
// state. Sessions are soft-revoked (estado=false), never deleted.
type Sesion struct {
	IDSesion        int       `json:"-" db:"id_sesion"`
	IDUsuario       int       `json:"-" db:"id_usuario"`
	TokenSesion     string    `json:"-" db:"token_sesion"`
	FechaInicio     time.Time `json:"fecha_inicio" db:"fecha_inicio"`
	FechaExpiracion time.Time `json:"fecha_expiracion" db:"fecha_expiracion"`
	UserAgent       *string   `json:"user_agent,omitempty" db:"user_agent"`
	IPConexion      *string   `json:"ip_conexion,omitempty" db:"ip_conexion"`
	Estado          bool      `json:"estado" db:"estado"`
}

// Vigente reports whether the session is usable at the given instant.
func (s *Sesion) Vigente(now time.Time) bool {
	return s.Estado && now.Before(s.FechaExpiracion)
}
