package domain

// Role allow-lists for each capability, mirroring the permission matrix the
// backend enforces. Checks are fail-closed: a nil user or an unrecognised
// cargo grants nothing.

var (
	createRecordsRoles = roleSet(CargoOperario, CargoSupervisor, CargoGerente)
	viewAllRoles       = roleSet(CargoSupervisor, CargoGerente, CargoAdministrativo)
	reportsRoles       = roleSet(CargoSupervisor, CargoGerente, CargoAdministrativo)
	adminRoles         = roleSet(CargoGerente, CargoAdministrativo)
)

func roleSet(roles ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		s[r] = struct{}{}
	}
	return s
}

func hasRole(u *User, allowed map[string]struct{}) bool {
	if u == nil || u.Cargo == "" {
		return false
	}
	_, ok := allowed[u.Cargo]
	return ok
}

// CanCreateRecords reports whether u may register new production batches.
func CanCreateRecords(u *User) bool { return hasRole(u, createRecordsRoles) }

// CanViewAllRecords reports whether u may list every user's records.
func CanViewAllRecords(u *User) bool { return hasRole(u, viewAllRoles) }

// CanAccessReports reports whether u may open the reporting views.
func CanAccessReports(u *User) bool { return hasRole(u, reportsRoles) }

// CanViewRecordByID reports whether u may fetch a single record. Any
// authenticated user with a non-empty cargo qualifies.
func CanViewRecordByID(u *User) bool { return u != nil && u.Cargo != "" }

// IsAdmin reports whether u holds one of the administrative roles.
func IsAdmin(u *User) bool { return hasRole(u, adminRoles) }

// PermissionsDescription returns the human-readable summary shown on the
// profile screen. Unknown non-empty cargos get the "undefined" message, not
// the "none" one: the distinction matters when the backend adds a role the
// client does not know yet.
func PermissionsDescription(u *User) string {
	if u == nil || u.Cargo == "" {
		return "Sin permisos"
	}
	switch u.Cargo {
	case CargoOperario:
		return "Puede crear registros y ver sus propios registros"
	case CargoSupervisor:
		return "Puede crear y ver todos los registros, acceder a reportes"
	case CargoGerente:
		return "Acceso completo a registros, reportes y administración"
	case CargoAdministrativo:
		return "Acceso completo a reportes y visualización de datos"
	default:
		return "Permisos no definidos"
	}
}
