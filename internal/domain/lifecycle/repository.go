package lifecycle

import "context"

// Repository persists participation rows and the append-only audit log.
// Callers that need a transition to be atomic run Save inside a transaction.
type Repository interface {
	ListByMatch(ctx context.Context, matchID string) ([]Participation, error)
	Save(ctx context.Context, rows []Participation, audit []AuditEntry) error
	ListAudit(ctx context.Context, matchID string, limit, offset int) ([]AuditEntry, error)
	CountsByPlayer(ctx context.Context, playerID string) (Counts, error)
}
