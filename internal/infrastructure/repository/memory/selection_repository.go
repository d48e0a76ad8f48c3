package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/cricket-club/internal/domain/selection"
)

// SelectionRepository resolves a selection's club through the match repository.
type SelectionRepository struct {
	mu      sync.RWMutex
	matches *MatchRepository
	items   map[string]selection.TeamSelection
}

func NewSelectionRepository(matches *MatchRepository, rows []selection.TeamSelection) *SelectionRepository {
	items := make(map[string]selection.TeamSelection, len(rows))
	for _, row := range rows {
		items[pairKey(row.MatchID, row.PlayerID)] = row
	}
	return &SelectionRepository{matches: matches, items: items}
}

// Add stores a team selection, replacing any earlier one for the same player and match.
func (r *SelectionRepository) Add(_ context.Context, row selection.TeamSelection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[pairKey(row.MatchID, row.PlayerID)] = row
	return nil
}

func (r *SelectionRepository) ReplaceForMatch(_ context.Context, matchID string, rows []selection.TeamSelection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, item := range r.items {
		if item.MatchID == matchID {
			delete(r.items, key)
		}
	}
	for _, row := range rows {
		row.MatchID = matchID
		r.items[pairKey(matchID, row.PlayerID)] = row
	}
	return nil
}

func (r *SelectionRepository) ListByMatch(_ context.Context, matchID string) ([]selection.TeamSelection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]selection.TeamSelection, 0)
	for _, item := range r.items {
		if item.MatchID == matchID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BattingPosition != out[j].BattingPosition {
			return out[i].BattingPosition < out[j].BattingPosition
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out, nil
}

func (r *SelectionRepository) CountByMatch(_ context.Context, matchID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, item := range r.items {
		if item.MatchID == matchID {
			count++
		}
	}
	return count, nil
}

func (r *SelectionRepository) DeleteByMatch(_ context.Context, matchID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for key, item := range r.items {
		if item.MatchID == matchID {
			delete(r.items, key)
			count++
		}
	}
	return count, nil
}

func (r *SelectionRepository) CountsByClub(_ context.Context, clubID string) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]int)
	for _, item := range r.items {
		owner, ok := r.matches.clubOf(item.MatchID)
		if !ok || owner != clubID {
			continue
		}
		out[item.PlayerID]++
	}
	return out, nil
}

func (r *SelectionRepository) CountByPlayer(_ context.Context, playerID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, item := range r.items {
		if item.PlayerID == playerID {
			count++
		}
	}
	return count, nil
}
