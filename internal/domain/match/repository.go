package match

import (
	"context"
	"time"
)

// Repository exposes fixture reads and the abandonment write used by the lifecycle.
type Repository interface {
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	// ListUpcoming returns upcoming matches of the club starting in [from, until), earliest first.
	// A zero from or until leaves that side unbounded.
	ListUpcoming(ctx context.Context, clubID string, from, until time.Time) ([]Match, error)
	MarkAbandoned(ctx context.Context, matchID string) error
}
