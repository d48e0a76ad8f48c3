package memory

import (
	"context"
	"sync"
)

// Transactor serialises writers against snapshot readers. The memory store has no rollback;
// repositories apply each call atomically under their own locks.
type Transactor struct {
	mu sync.RWMutex
}

func NewTransactor() *Transactor {
	return &Transactor{}
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return fn(ctx)
}

func (t *Transactor) WithinReadTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return fn(ctx)
}
