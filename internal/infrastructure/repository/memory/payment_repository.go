package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/cricket-club/internal/domain/payment"
)

type PaymentRepository struct {
	mu    sync.RWMutex
	items map[string]map[string]payment.Status
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{items: make(map[string]map[string]payment.Status)}
}

// Set records a player's fee status for a match.
func (r *PaymentRepository) Set(matchID, playerID string, status payment.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[matchID]; !ok {
		r.items[matchID] = make(map[string]payment.Status)
	}
	r.items[matchID][playerID] = status
}

func (r *PaymentRepository) StatusByMatch(_ context.Context, matchID string) (map[string]payment.Status, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]payment.Status, len(r.items[matchID]))
	for playerID, status := range r.items[matchID] {
		out[playerID] = status
	}
	return out, nil
}
