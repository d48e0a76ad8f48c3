package availability

import "context"

// Repository persists availability. Upsert overwrites any prior record for the same (match, player).
type Repository interface {
	Upsert(ctx context.Context, record Record) error
	ListByMatch(ctx context.Context, matchID string) ([]Record, error)
	CountByPlayer(ctx context.Context, playerID string, status Status) (int, error)
}
