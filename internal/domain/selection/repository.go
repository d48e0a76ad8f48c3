package selection

import "context"

// ConfigRepository stores one config per club. Upsert replaces the whole row.
type ConfigRepository interface {
	GetByClub(ctx context.Context, clubID string) (Config, bool, error)
	Upsert(ctx context.Context, cfg Config) error
}

// OverrideRepository stores at most one override per (club, player).
type OverrideRepository interface {
	ListByClub(ctx context.Context, clubID string) ([]Override, error)
	Upsert(ctx context.Context, item Override) error
	Delete(ctx context.Context, clubID, playerID string) (bool, error)
}

// Repository stores the admin-chosen team selections.
type Repository interface {
	ListByMatch(ctx context.Context, matchID string) ([]TeamSelection, error)
	// ReplaceForMatch deletes the match's selections and stores rows in their place.
	// Callers run it inside a transaction.
	ReplaceForMatch(ctx context.Context, matchID string, rows []TeamSelection) error
	CountByMatch(ctx context.Context, matchID string) (int, error)
	DeleteByMatch(ctx context.Context, matchID string) (int, error)
	// CountsByClub returns selection counts per player across all matches of the club.
	CountsByClub(ctx context.Context, clubID string) (map[string]int, error)
	CountByPlayer(ctx context.Context, playerID string) (int, error)
}
