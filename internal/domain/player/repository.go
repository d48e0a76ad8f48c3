package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	ListByClub(ctx context.Context, clubID string) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
}
