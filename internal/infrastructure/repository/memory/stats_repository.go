package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/cricket-club/internal/domain/stats"
)

type StatsRepository struct {
	mu       sync.RWMutex
	byPlayer map[string][]stats.MatchStat
}

func NewStatsRepository(rows []stats.MatchStat) *StatsRepository {
	byPlayer := make(map[string][]stats.MatchStat)
	for _, row := range rows {
		byPlayer[row.PlayerID] = append(byPlayer[row.PlayerID], row)
	}
	for playerID := range byPlayer {
		items := byPlayer[playerID]
		sort.SliceStable(items, func(i, j int) bool { return items[i].MatchDate.After(items[j].MatchDate) })
	}
	return &StatsRepository{byPlayer: byPlayer}
}

func (r *StatsRepository) RecentByPlayers(_ context.Context, playerIDs []string, limit int) (map[string][]stats.MatchStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string][]stats.MatchStat, len(playerIDs))
	for _, playerID := range playerIDs {
		items := r.byPlayer[playerID]
		if len(items) == 0 {
			continue
		}
		if limit > 0 && len(items) > limit {
			items = items[:limit]
		}
		out[playerID] = append([]stats.MatchStat(nil), items...)
	}
	return out, nil
}
