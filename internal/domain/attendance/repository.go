package attendance

import "context"

// Repository upserts practice attendance keyed on (fixture, player).
type Repository interface {
	Upsert(ctx context.Context, records []Record) error
	SummaryByPlayers(ctx context.Context, playerIDs []string) (map[string]Summary, error)
}
