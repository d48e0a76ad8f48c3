package membership

import "fmt"

// Role is a club-scoped permission level.
type Role string

const (
	RoleMember  Role = "member"
	RoleCaptain Role = "captain"
	RoleAdmin   Role = "admin"
)

var AllRoles = map[Role]struct{}{
	RoleMember:  {},
	RoleCaptain: {},
	RoleAdmin:   {},
}

// Membership links a user to a club with a role.
type Membership struct {
	ClubID string
	UserID string
	Role   Role
}

func (m Membership) Validate() error {
	if m.ClubID == "" {
		return fmt.Errorf("membership club id is required")
	}
	if m.UserID == "" {
		return fmt.Errorf("membership user id is required")
	}
	if _, ok := AllRoles[m.Role]; !ok {
		return fmt.Errorf("invalid membership role: %s", m.Role)
	}
	return nil
}

// Allows reports whether the role is one of the accepted roles. Admins pass every check.
func (r Role) Allows(accepted ...Role) bool {
	if r == RoleAdmin {
		return true
	}
	for _, candidate := range accepted {
		if r == candidate {
			return true
		}
	}
	return false
}
