package player

import "fmt"

// Role is a cricket playing role used by role quotas.
type Role string

const (
	RoleWicketKeeper Role = "Wicket-keeper"
	RoleBatter       Role = "Batter"
	RoleAllRounder   Role = "All-rounder"
	RoleBowler       Role = "Bowler"
)

// FillOrder is the order in which role minimums are satisfied.
// It decides who wins ties at the squad-size boundary, so it must not change.
var FillOrder = []Role{
	RoleWicketKeeper,
	RoleBatter,
	RoleAllRounder,
	RoleBowler,
}

var AllRoles = map[Role]struct{}{
	RoleWicketKeeper: {},
	RoleBatter:       {},
	RoleAllRounder:   {},
	RoleBowler:       {},
}

func ParseRole(v string) (Role, error) {
	role := Role(v)
	if _, ok := AllRoles[role]; !ok {
		return "", fmt.Errorf("unknown player role: %q", v)
	}
	return role, nil
}

// Player is a club squad member eligible for selection.
type Player struct {
	ID     string
	ClubID string
	Name   string
	Role   Role
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.ClubID == "" {
		return fmt.Errorf("player club id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllRoles[p.Role]; !ok {
		return fmt.Errorf("invalid player role: %s", p.Role)
	}

	return nil
}
