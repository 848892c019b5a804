package accounts

import "fmt"

// Role decides which entitlement path applies to an account.
type Role string

const (
	RoleOwner         Role = "owner"
	RoleSeller        Role = "seller"
	RoleInactive      Role = "inactive"
	RoleVirtualSeller Role = "virtual_seller"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleOwner, RoleSeller, RoleInactive, RoleVirtualSeller:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}
