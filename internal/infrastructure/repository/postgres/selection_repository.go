package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cricket-club/internal/domain/selection"
	qb "github.com/riskibarqy/cricket-club/internal/platform/querybuilder"
)

type SelectionRepository struct {
	db *sqlx.DB
}

func NewSelectionRepository(db *sqlx.DB) *SelectionRepository {
	return &SelectionRepository{db: db}
}

func (r *SelectionRepository) ListByMatch(ctx context.Context, matchID string) ([]selection.TeamSelection, error) {
	query, args, err := qb.Select(
		"match_public_id",
		"player_public_id",
		"batting_position",
		"is_captain",
		"is_wicketkeeper",
		"confirmed",
		"created_at",
	).From("team_selections").
		Where(qb.Eq("match_public_id", matchID)).
		OrderBy("batting_position", "player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list selections by match query: %w", err)
	}

	var rows []teamSelectionTableModel
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list selections by match: %w", err)
	}

	out := make([]selection.TeamSelection, 0, len(rows))
	for _, row := range rows {
		out = append(out, selection.TeamSelection{
			MatchID:         row.MatchID,
			PlayerID:        row.PlayerID,
			BattingPosition: row.BattingPosition,
			IsCaptain:       row.IsCaptain,
			IsWicketkeeper:  row.IsWicketkeeper,
			Confirmed:       row.Confirmed,
			CreatedAt:       row.CreatedAt.UTC(),
		})
	}
	return out, nil
}

func (r *SelectionRepository) ReplaceForMatch(ctx context.Context, matchID string, rows []selection.TeamSelection) error {
	if _, err := r.DeleteByMatch(ctx, matchID); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	builder := qb.InsertInto("team_selections")
	for _, row := range rows {
		builder = builder.Model(teamSelectionTableModel{
			MatchID:         matchID,
			PlayerID:        row.PlayerID,
			BattingPosition: row.BattingPosition,
			IsCaptain:       row.IsCaptain,
			IsWicketkeeper:  row.IsWicketkeeper,
			Confirmed:       row.Confirmed,
			CreatedAt:       row.CreatedAt.UTC(),
		})
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert selections query: %w", err)
	}

	if _, err := conn(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return wrapWriteErr(err, "insert selections")
	}
	return nil
}

func (r *SelectionRepository) CountByMatch(ctx context.Context, matchID string) (int, error) {
	return r.count(ctx, "match", qb.Eq("match_public_id", matchID))
}

func (r *SelectionRepository) CountByPlayer(ctx context.Context, playerID string) (int, error) {
	return r.count(ctx, "player", qb.Eq("player_public_id", playerID))
}

func (r *SelectionRepository) count(ctx context.Context, scope string, cond qb.Condition) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From("team_selections").Where(cond).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count selections by %s query: %w", scope, err)
	}

	var count int
	if err := conn(ctx, r.db).GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count selections by %s: %w", scope, err)
	}
	return count, nil
}

func (r *SelectionRepository) DeleteByMatch(ctx context.Context, matchID string) (int, error) {
	query, args, err := qb.DeleteFrom("team_selections").
		Where(qb.Eq("match_public_id", matchID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete selections by match query: %w", err)
	}

	res, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, wrapWriteErr(err, "delete selections by match")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read deleted selections count: %w", err)
	}
	return int(affected), nil
}

func (r *SelectionRepository) CountsByClub(ctx context.Context, clubID string) (map[string]int, error) {
	query, args, err := qb.Select("ts.player_public_id", "COUNT(1) AS total").
		From("team_selections ts JOIN matches m ON m.public_id = ts.match_public_id").
		Where(qb.Eq("m.club_public_id", clubID)).
		GroupBy("ts.player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build count selections by club query: %w", err)
	}

	var rows []playerCountModel
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("count selections by club: %w", err)
	}

	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.PlayerID] = row.Total
	}
	return out, nil
}
