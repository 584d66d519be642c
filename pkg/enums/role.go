package enums

import "fmt"

// SessionRole distinguishes shopper sessions from admin console tokens.
type SessionRole string

const (
	SessionRoleShopper SessionRole = "shopper"
	SessionRoleAdmin   SessionRole = "admin"
)

var validSessionRoles = []SessionRole{
	SessionRoleShopper,
	SessionRoleAdmin,
}

// String implements fmt.Stringer.
func (r SessionRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known SessionRole.
func (r SessionRole) IsValid() bool {
	for _, candidate := range validSessionRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseSessionRole converts raw input into a SessionRole.
func ParseSessionRole(value string) (SessionRole, error) {
	for _, candidate := range validSessionRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid session role %q", value)
}
