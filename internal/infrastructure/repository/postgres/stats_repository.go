package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cricket-club/internal/domain/stats"
	qb "github.com/riskibarqy/cricket-club/internal/platform/querybuilder"
)

var matchStatColumns = []string{
	"player_public_id",
	"match_public_id",
	"match_date",
	"runs_scored",
	"balls_faced",
	"not_out",
	"overs_bowled",
	"runs_conceded",
	"wickets",
	"catches",
	"run_outs",
	"stumpings",
}

const recentRankColumn = "ROW_NUMBER() OVER (PARTITION BY player_public_id ORDER BY match_date DESC, match_public_id DESC) AS recent_rank"

type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) RecentByPlayers(ctx context.Context, playerIDs []string, limit int) (map[string][]stats.MatchStat, error) {
	out := make(map[string][]stats.MatchStat, len(playerIDs))
	if len(playerIDs) == 0 {
		return out, nil
	}

	query, args, err := recentStatsQuery(playerIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("build recent stats by players query: %w", err)
	}

	var rows []matchStatTableModel
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select recent stats by players: %w", err)
	}

	for _, row := range rows {
		out[row.PlayerID] = append(out[row.PlayerID], stats.MatchStat{
			PlayerID:     row.PlayerID,
			MatchID:      row.MatchID,
			MatchDate:    row.MatchDate.UTC(),
			RunsScored:   row.RunsScored,
			BallsFaced:   row.BallsFaced,
			NotOut:       row.NotOut,
			OversBowled:  row.OversBowled,
			RunsConceded: row.RunsConceded,
			Wickets:      row.Wickets,
			Catches:      row.Catches,
			RunOuts:      row.RunOuts,
			Stumpings:    row.Stumpings,
		})
	}
	return out, nil
}

// recentStatsQuery ranks each player's rows newest first and keeps the top limit per player.
func recentStatsQuery(playerIDs []string, limit int) (string, []any, error) {
	inner, args, err := qb.Select(append(append([]string{}, matchStatColumns...), recentRankColumn)...).
		From("player_match_stats").
		Where(qb.In("player_public_id", stringSliceToAny(playerIDs))).
		ToSQL()
	if err != nil {
		return "", nil, err
	}

	var buf strings.Builder
	buf.WriteString("SELECT ")
	buf.WriteString(strings.Join(matchStatColumns, ", "))
	buf.WriteString(" FROM (")
	buf.WriteString(inner)
	buf.WriteString(") ranked")
	if limit > 0 {
		fmt.Fprintf(&buf, " WHERE recent_rank <= %d", limit)
	}
	buf.WriteString(" ORDER BY player_public_id, match_date DESC, match_public_id DESC")
	return buf.String(), args, nil
}
