package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/cricket-club/internal/domain/availability"
)

type AvailabilityRepository struct {
	mu    sync.RWMutex
	items map[string]availability.Record
}

func NewAvailabilityRepository(records []availability.Record) *AvailabilityRepository {
	items := make(map[string]availability.Record, len(records))
	for _, record := range records {
		items[pairKey(record.MatchID, record.PlayerID)] = record
	}
	return &AvailabilityRepository{items: items}
}

func (r *AvailabilityRepository) Upsert(_ context.Context, record availability.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[pairKey(record.MatchID, record.PlayerID)] = record
	return nil
}

func (r *AvailabilityRepository) ListByMatch(_ context.Context, matchID string) ([]availability.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]availability.Record, 0)
	for _, item := range r.items {
		if item.MatchID == matchID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}

func (r *AvailabilityRepository) CountByPlayer(_ context.Context, playerID string, status availability.Status) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, item := range r.items {
		if item.PlayerID == playerID && item.Status == status {
			count++
		}
	}
	return count, nil
}
