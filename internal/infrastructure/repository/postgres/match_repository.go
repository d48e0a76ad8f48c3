package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cricket-club/internal/domain/match"
	qb "github.com/riskibarqy/cricket-club/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

var matchSelectColumns = []string{
	"public_id",
	"club_public_id",
	"team_name",
	"opponent",
	"venue",
	"match_type",
	"starts_at",
	"status",
	"result",
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select(matchSelectColumns...).From("matches").
		Where(
			qb.Eq("public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := conn(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}
	return matchFromRow(row), true, nil
}

func (r *MatchRepository) ListUpcoming(ctx context.Context, clubID string, from, until time.Time) ([]match.Match, error) {
	conditions := []qb.Condition{
		qb.Eq("club_public_id", clubID),
		qb.Eq("status", string(match.StatusUpcoming)),
		qb.IsNull("deleted_at"),
	}
	if !from.IsZero() {
		conditions = append(conditions, qb.Expr("starts_at >= ?", from.UTC()))
	}
	if !until.IsZero() {
		conditions = append(conditions, qb.Expr("starts_at < ?", until.UTC()))
	}

	query, args, err := qb.Select(matchSelectColumns...).From("matches").
		Where(conditions...).
		OrderBy("starts_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list upcoming matches query: %w", err)
	}

	var rows []matchTableModel
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list upcoming matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) MarkAbandoned(ctx context.Context, matchID string) error {
	query, args, err := qb.Update("matches").
		Set("status", string(match.StatusCancelled)).
		Set("result", match.ResultAbandoned).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build mark match abandoned query: %w", err)
	}

	if _, err := conn(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return wrapWriteErr(err, "mark match abandoned")
	}
	return nil
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:       row.PublicID,
		ClubID:   row.ClubID,
		TeamName: row.TeamName,
		Opponent: row.Opponent,
		Venue:    row.Venue,
		Type:     row.MatchType,
		StartsAt: row.StartsAt.UTC(),
		Status:   match.Status(row.Status),
		Result:   row.Result.String,
	}
}
