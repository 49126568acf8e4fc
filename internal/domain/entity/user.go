package entity

// Roles válidos en el claim "role" del JWT.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// ValidRole indica si el rol es uno de los reconocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleBodeguero, RoleVendedor:
		return true
	}
	return false
}
