package domain

// Cargo values as issued by the backend. Matching is exact: the backend is
// the single authority on spelling, accents included.
const (
	CargoOperario       = "Operario de Planta"
	CargoSupervisor     = "Supervisor de Área"
	CargoGerente        = "Gerente de Producción"
	CargoAdministrativo = "Administrativo"
)

// User models the authenticated identity returned by the backend.
type User struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Nombre   string `json:"nombre"`
	Cargo    string `json:"cargo"`
	Telefono string `json:"telefono"`
	Activo   bool   `json:"activo"`
}

// KnownCargo reports whether c is one of the four roles the backend defines.
// Unknown values are not an error anywhere in the client; they simply carry
// no permissions.
func KnownCargo(c string) bool {
	switch c {
	case CargoOperario, CargoSupervisor, CargoGerente, CargoAdministrativo:
		return true
	}
	return false
}
