package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/cricket-club/internal/domain/membership"
)

var (
	// any club member
	readerRoles = []membership.Role{membership.RoleMember, membership.RoleCaptain}
	// captains pick teams and run match day
	selectorRoles = []membership.Role{membership.RoleCaptain}
	// admins only; membership.Role.Allows always lets admins through
	adminRoles []membership.Role
)

type clubAccess struct {
	memberships membership.Repository
}

// require checks that userID holds one of roles in clubID.
func (a clubAccess) require(ctx context.Context, clubID, userID string, roles ...membership.Role) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("%w: caller identity is required", ErrUnauthorized)
	}

	item, exists, err := a.memberships.GetByClubAndUser(ctx, clubID, userID)
	if err != nil {
		return fmt.Errorf("get club membership: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: user %s is not a member of club %s", ErrForbidden, userID, clubID)
	}
	if !item.Role.Allows(roles...) {
		return fmt.Errorf("%w: role %s is not allowed to perform this action", ErrForbidden, item.Role)
	}

	return nil
}
