package domain

// Usuario is an account identity. Passwords are stored as argon2id hashes
// and must never leave the server.
type Usuario struct {
	IDUsuario      int    `json:"IdUsuario" db:"id_usuario"`
	UsuarioLogin   string `json:"UsuarioLogin" db:"usuario_login"`
	NombreCompleto string `json:"NombreCompleto" db:"nombre_completo"`
	Correo         string `json:"Correo" db:"correo"`
	ContrasenaHash string `json:"-" db:"contrasena_hash"`
	Estado         bool   `json:"-" db:"estado"`
}

// SesionUsuario is the identity resolved by the authentication middleware:
// the public fields of the user that owns the session cookie.
type SesionUsuario struct {
	IDUsuario      int    `json:"IdUsuario" db:"id_usuario"`
	NombreCompleto string `json:"NombreCompleto" db:"nombre_completo"`
	Correo         string `json:"Correo" db:"correo"`
	UsuarioLogin   string `json:"UsuarioLogin" db:"usuario_login"`
}
