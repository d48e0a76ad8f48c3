package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cricket-club/internal/domain/withdrawal"
	qb "github.com/riskibarqy/cricket-club/internal/platform/querybuilder"
)

var withdrawalColumns = []string{
	"match_public_id",
	"player_public_id",
	"match_time",
	"withdrawn_at",
	"is_late",
	"penalty_applied",
	"reason",
}

type WithdrawalRepository struct {
	db *sqlx.DB
}

func NewWithdrawalRepository(db *sqlx.DB) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

func (r *WithdrawalRepository) Upsert(ctx context.Context, item withdrawal.Withdrawal) (withdrawal.Withdrawal, error) {
	query, args, err := qb.InsertModel("selection_withdrawals", withdrawalTableModel{
		MatchID:        item.MatchID,
		PlayerID:       item.PlayerID,
		MatchTime:      item.MatchTime.UTC(),
		WithdrawnAt:    item.WithdrawnAt.UTC(),
		IsLate:         item.IsLate,
		PenaltyApplied: item.PenaltyApplied,
		Reason:         nullableString(item.Reason),
	}).
		OnConflict("match_public_id", "player_public_id").
		DoUpdateExcluded().
		Returning(withdrawalColumns...).
		ToSQL()
	if err != nil {
		return withdrawal.Withdrawal{}, fmt.Errorf("build upsert withdrawal query: %w", err)
	}

	var row withdrawalTableModel
	if err := conn(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		return withdrawal.Withdrawal{}, wrapWriteErr(err, "upsert withdrawal")
	}
	return withdrawalFromRow(row), nil
}

func (r *WithdrawalRepository) Get(ctx context.Context, matchID, playerID string) (withdrawal.Withdrawal, bool, error) {
	query, args, err := qb.Select(withdrawalColumns...).From("selection_withdrawals").
		Where(
			qb.Eq("match_public_id", matchID),
			qb.Eq("player_public_id", playerID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return withdrawal.Withdrawal{}, false, fmt.Errorf("build get withdrawal query: %w", err)
	}

	var row withdrawalTableModel
	if err := conn(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return withdrawal.Withdrawal{}, false, nil
		}
		return withdrawal.Withdrawal{}, false, fmt.Errorf("get withdrawal: %w", err)
	}
	return withdrawalFromRow(row), true, nil
}

func withdrawalFromRow(row withdrawalTableModel) withdrawal.Withdrawal {
	return withdrawal.Withdrawal{
		MatchID:        row.MatchID,
		PlayerID:       row.PlayerID,
		MatchTime:      row.MatchTime.UTC(),
		WithdrawnAt:    row.WithdrawnAt.UTC(),
		IsLate:         row.IsLate,
		PenaltyApplied: row.PenaltyApplied,
		Reason:         row.Reason.String,
	}
}

func (r *WithdrawalRepository) LateCountsByPlayers(ctx context.Context, playerIDs []string) (map[string]int, error) {
	out := make(map[string]int, len(playerIDs))
	if len(playerIDs) == 0 {
		return out, nil
	}

	query, args, err := qb.Select("player_public_id", "COUNT(1) AS total").
		From("selection_withdrawals").
		Where(
			qb.In("player_public_id", stringSliceToAny(playerIDs)),
			qb.Eq("is_late", true),
		).
		GroupBy("player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build count late withdrawals query: %w", err)
	}

	var rows []playerCountModel
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("count late withdrawals: %w", err)
	}
	for _, row := range rows {
		out[row.PlayerID] = row.Total
	}
	return out, nil
}

func (r *WithdrawalRepository) CountByPlayer(ctx context.Context, playerID string) (int, int, error) {
	query, args, err := qb.Select(
		"COUNT(1) AS total",
		"COUNT(1) FILTER (WHERE is_late) AS late",
	).From("selection_withdrawals").
		Where(qb.Eq("player_public_id", playerID)).
		ToSQL()
	if err != nil {
		return 0, 0, fmt.Errorf("build count withdrawals by player query: %w", err)
	}

	var row struct {
		Total int `db:"total"`
		Late  int `db:"late"`
	}
	if err := conn(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		return 0, 0, fmt.Errorf("count withdrawals by player: %w", err)
	}
	return row.Total, row.Late, nil
}
