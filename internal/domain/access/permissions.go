package access

// Níveis fixos. O nível 1 é o administrador: tem todas as permissões,
// independente do que estiver gravado no papel.
const (
	LevelAdmin    = 1
	LevelEmployee = 2
)

const Wildcard = "*"

// Permissões conhecidas (uma por área da aplicação).
const (
	PermUsers     = "perfil_usuarios"
	PermCustomers = "customers"
	PermServices  = "services"
	PermShift     = "shift"
	PermSettings  = "settings"
	PermBackup    = "backup"
)

var catalog = []string{
	PermUsers,
	PermCustomers,
	PermServices,
	PermShift,
	PermSettings,
	PermBackup,
}

func Catalog() []string {
	out := make([]string, len(catalog))
	copy(out, catalog)
	return out
}

func IsKnown(perm string) bool {
	if perm == Wildcard {
		return true
	}
	for _, p := range catalog {
		if p == perm {
			return true
		}
	}
	return false
}

// Grants: a lista concede perm se contém perm ou o curinga.
func Grants(list []string, perm string) bool {
	for _, p := range list {
		if p == perm || p == Wildcard {
			return true
		}
	}
	return false
}

// DefaultEmployeePermissions é o conjunto inicial do papel 2.
func DefaultEmployeePermissions() []string {
	return []string{PermShift, PermCustomers, PermServices}
}
