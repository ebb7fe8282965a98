package domain

type Role string

const (
	// RoleUser is the default role for self-registered accounts.
	RoleUser Role = "user"
	// RoleAdmin grants access to the /admin user management surface.
	RoleAdmin Role = "admin"
)

func IsValidRole(r string) bool {
	return r == string(RoleUser) || r == string(RoleAdmin)
}

// RoleIn reports whether r is one of the allowed roles.
func RoleIn(r string, allowed ...string) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}
