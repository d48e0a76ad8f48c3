package withdrawal

import "context"

// Repository is the withdrawal ledger. Upsert keys on (match, player).
type Repository interface {
	Upsert(ctx context.Context, item Withdrawal) (Withdrawal, error)
	Get(ctx context.Context, matchID, playerID string) (Withdrawal, bool, error)
	// LateCountsByPlayers counts late withdrawals ever recorded for each player.
	LateCountsByPlayers(ctx context.Context, playerIDs []string) (map[string]int, error)
	CountByPlayer(ctx context.Context, playerID string) (total int, late int, err error)
}
