package payment

import "context"

// Repository exposes match fee status for read-only projections.
type Repository interface {
	StatusByMatch(ctx context.Context, matchID string) (map[string]Status, error)
}
