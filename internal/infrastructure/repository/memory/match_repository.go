package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/cricket-club/internal/domain/match"
)

type MatchRepository struct {
	mu    sync.RWMutex
	items map[string]match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	items := make(map[string]match.Match, len(matches))
	for _, m := range matches {
		items[m.ID] = m
	}
	return &MatchRepository{items: items}
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[matchID]
	return item, ok, nil
}

func (r *MatchRepository) ListUpcoming(_ context.Context, clubID string, from, until time.Time) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, item := range r.items {
		if item.ClubID != clubID || item.Status != match.StatusUpcoming {
			continue
		}
		if !from.IsZero() && item.StartsAt.Before(from) {
			continue
		}
		if !until.IsZero() && !item.StartsAt.Before(until) {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartsAt.Equal(out[j].StartsAt) {
			return out[i].StartsAt.Before(out[j].StartsAt)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *MatchRepository) MarkAbandoned(_ context.Context, matchID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[matchID]
	if !ok {
		return nil
	}
	item.Status = match.StatusCancelled
	item.Result = match.ResultAbandoned
	r.items[matchID] = item
	return nil
}

func (r *MatchRepository) clubOf(matchID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[matchID]
	return item.ClubID, ok
}
