package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/cricket-club/internal/domain/selection"
)

type SelectionConfigRepository struct {
	mu    sync.RWMutex
	items map[string]selection.Config
}

func NewSelectionConfigRepository() *SelectionConfigRepository {
	return &SelectionConfigRepository{items: make(map[string]selection.Config)}
}

func (r *SelectionConfigRepository) GetByClub(_ context.Context, clubID string) (selection.Config, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[clubID]
	if !ok {
		return selection.Config{}, false, nil
	}
	return item.Clone(), true, nil
}

func (r *SelectionConfigRepository) Upsert(_ context.Context, cfg selection.Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[cfg.ClubID] = cfg.Clone()
	return nil
}

type ScoreOverrideRepository struct {
	mu    sync.RWMutex
	items map[string]selection.Override
}

func NewScoreOverrideRepository() *ScoreOverrideRepository {
	return &ScoreOverrideRepository{items: make(map[string]selection.Override)}
}

func (r *ScoreOverrideRepository) ListByClub(_ context.Context, clubID string) ([]selection.Override, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]selection.Override, 0)
	for _, item := range r.items {
		if item.ClubID == clubID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}

func (r *ScoreOverrideRepository) Upsert(_ context.Context, item selection.Override) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[pairKey(item.ClubID, item.PlayerID)] = item
	return nil
}

func (r *ScoreOverrideRepository) Delete(_ context.Context, clubID, playerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairKey(clubID, playerID)
	if _, ok := r.items[key]; !ok {
		return false, nil
	}
	delete(r.items, key)
	return true, nil
}
