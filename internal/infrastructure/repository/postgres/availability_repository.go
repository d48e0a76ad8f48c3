package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cricket-club/internal/domain/availability"
	qb "github.com/riskibarqy/cricket-club/internal/platform/querybuilder"
)

type AvailabilityRepository struct {
	db *sqlx.DB
}

func NewAvailabilityRepository(db *sqlx.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

func (r *AvailabilityRepository) Upsert(ctx context.Context, record availability.Record) error {
	query, args, err := qb.InsertModel("match_availability", availabilityTableModel{
		MatchID:   record.MatchID,
		PlayerID:  record.PlayerID,
		Status:    string(record.Status),
		UpdatedAt: record.UpdatedAt.UTC(),
	}).
		OnConflict("match_public_id", "player_public_id").
		DoUpdateExcluded().
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert availability query: %w", err)
	}

	if _, err := conn(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return wrapWriteErr(err, "upsert availability")
	}
	return nil
}

func (r *AvailabilityRepository) ListByMatch(ctx context.Context, matchID string) ([]availability.Record, error) {
	query, args, err := qb.Select("match_public_id", "player_public_id", "status", "updated_at").
		From("match_availability").
		Where(qb.Eq("match_public_id", matchID)).
		OrderBy("player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list availability by match query: %w", err)
	}

	var rows []availabilityTableModel
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list availability by match: %w", err)
	}

	out := make([]availability.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, availability.Record{
			MatchID:   row.MatchID,
			PlayerID:  row.PlayerID,
			Status:    availability.Status(row.Status),
			UpdatedAt: row.UpdatedAt.UTC(),
		})
	}
	return out, nil
}

func (r *AvailabilityRepository) CountByPlayer(ctx context.Context, playerID string, status availability.Status) (int, error) {
	query, args, err := qb.Select("COUNT(1)").
		From("match_availability").
		Where(
			qb.Eq("player_public_id", playerID),
			qb.Eq("status", string(status)),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count availability by player query: %w", err)
	}

	var count int
	if err := conn(ctx, r.db).GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count availability by player: %w", err)
	}
	return count, nil
}
