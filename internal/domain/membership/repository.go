package membership

import "context"

// Repository resolves club memberships for authorization checks.
type Repository interface {
	GetByClubAndUser(ctx context.Context, clubID, userID string) (Membership, bool, error)
}
