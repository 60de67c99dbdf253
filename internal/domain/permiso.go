package domain

// TipoAcceso is the closed set of capabilities a permission row can grant
// over a menu option. It is mapped to a capability column through a fixed
// switch at the repository; caller input never reaches the query text.
type TipoAcceso int

const (
	AccesoLeer TipoAcceso = iota
	AccesoCrear
	AccesoActualizar
	AccesoEliminar
)

func (t TipoAcceso) String() string {
	switch t {
	case AccesoLeer:
		return "leer"
	case AccesoCrear:
		return "crear"
	case AccesoActualizar:
		return "actualizar"
	case AccesoEliminar:
		return "eliminar"
	default:
		return "desconocido"
	}
}
