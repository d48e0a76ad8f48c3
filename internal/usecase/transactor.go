package usecase

import "context"

// Transactor runs fn inside one storage transaction. Repositories called with the ctx handed to fn
// join that transaction; an error returned by fn rolls everything back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
	// WithinReadTx gives fn a read-only, repeatable-read view of the store.
	WithinReadTx(ctx context.Context, fn func(ctx context.Context) error) error
}
