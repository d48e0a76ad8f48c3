package stats

import "context"

// Provider reads historical per-match figures. It never writes.
type Provider interface {
	// RecentByPlayers returns at most limit rows per player, most recent match first.
	// Players without history are absent from the map.
	RecentByPlayers(ctx context.Context, playerIDs []string, limit int) (map[string][]MatchStat, error)
}
