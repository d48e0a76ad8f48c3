package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/cricket-club/internal/domain/withdrawal"
)

type WithdrawalRepository struct {
	mu    sync.RWMutex
	items map[string]withdrawal.Withdrawal
}

func NewWithdrawalRepository() *WithdrawalRepository {
	return &WithdrawalRepository{items: make(map[string]withdrawal.Withdrawal)}
}

func (r *WithdrawalRepository) Upsert(_ context.Context, item withdrawal.Withdrawal) (withdrawal.Withdrawal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[pairKey(item.MatchID, item.PlayerID)] = item
	return item, nil
}

func (r *WithdrawalRepository) Get(_ context.Context, matchID, playerID string) (withdrawal.Withdrawal, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[pairKey(matchID, playerID)]
	return item, ok, nil
}

func (r *WithdrawalRepository) LateCountsByPlayers(_ context.Context, playerIDs []string) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		wanted[id] = struct{}{}
	}

	out := make(map[string]int)
	for _, item := range r.items {
		if !item.IsLate {
			continue
		}
		if _, ok := wanted[item.PlayerID]; ok {
			out[item.PlayerID]++
		}
	}
	return out, nil
}

func (r *WithdrawalRepository) CountByPlayer(_ context.Context, playerID string) (int, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total, late := 0, 0
	for _, item := range r.items {
		if item.PlayerID != playerID {
			continue
		}
		total++
		if item.IsLate {
			late++
		}
	}
	return total, late, nil
}
