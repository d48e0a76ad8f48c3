package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cricket-club/internal/domain/lifecycle"
	qb "github.com/riskibarqy/cricket-club/internal/platform/querybuilder"
)

var participationColumns = []string{
	"match_public_id",
	"player_public_id",
	"status",
	"was_substitute",
	"substitute_for_player_public_id",
	"withdrawal_reason",
	"no_show_reason",
	"confirmed_at",
}

var auditColumns = []string{
	"public_id",
	"match_public_id",
	"player_public_id",
	"action",
	"previous_state",
	"new_state",
	"actor_user_id",
	"reason",
	"details::text AS details",
	"created_at",
}

type LifecycleRepository struct {
	db *sqlx.DB
}

func NewLifecycleRepository(db *sqlx.DB) *LifecycleRepository {
	return &LifecycleRepository{db: db}
}

func (r *LifecycleRepository) ListByMatch(ctx context.Context, matchID string) ([]lifecycle.Participation, error) {
	query, args, err := qb.Select(participationColumns...).From("match_participation").
		Where(qb.Eq("match_public_id", matchID)).
		OrderBy("player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list participation by match query: %w", err)
	}

	var rows []participationTableModel
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list participation by match: %w", err)
	}

	out := make([]lifecycle.Participation, 0, len(rows))
	for _, row := range rows {
		out = append(out, lifecycle.Participation{
			MatchID:               row.MatchID,
			PlayerID:              row.PlayerID,
			Status:                lifecycle.Status(row.Status),
			WasSubstitute:         row.WasSubstitute,
			SubstituteForPlayerID: row.SubstituteForPlayerID.String,
			WithdrawalReason:      row.WithdrawalReason.String,
			NoShowReason:          row.NoShowReason.String,
			ConfirmedAt:           row.ConfirmedAt.UTC(),
		})
	}
	return out, nil
}

// Save writes rows then audit entries on the caller's connection. Atomicity comes from the
// surrounding transaction.
func (r *LifecycleRepository) Save(ctx context.Context, rows []lifecycle.Participation, audit []lifecycle.AuditEntry) error {
	q := conn(ctx, r.db)

	for _, row := range rows {
		query, args, err := qb.InsertModel("match_participation", participationTableModel{
			MatchID:               row.MatchID,
			PlayerID:              row.PlayerID,
			Status:                string(row.Status),
			WasSubstitute:         row.WasSubstitute,
			SubstituteForPlayerID: nullableString(row.SubstituteForPlayerID),
			WithdrawalReason:      nullableString(row.WithdrawalReason),
			NoShowReason:          nullableString(row.NoShowReason),
			ConfirmedAt:           row.ConfirmedAt.UTC(),
		}).
			OnConflict("match_public_id", "player_public_id").
			DoUpdateExcluded().
			DoUpdateExpr("updated_at", "NOW()").
			ToSQL()
		if err != nil {
			return fmt.Errorf("build upsert participation query: %w", err)
		}
		if _, err := q.ExecContext(ctx, query, args...); err != nil {
			return wrapWriteErr(err, "upsert participation")
		}
	}

	for _, entry := range audit {
		details, err := encodeAuditDetails(entry.Details)
		if err != nil {
			return err
		}
		query, args, err := qb.InsertModel("participation_audit_log", auditTableModel{
			PublicID:      entry.ID,
			MatchID:       entry.MatchID,
			PlayerID:      nullableString(entry.PlayerID),
			Action:        string(entry.Action),
			PreviousState: nullableString(entry.PreviousState),
			NewState:      entry.NewState,
			ActorUserID:   nullableString(entry.ActorID),
			Reason:        nullableString(entry.Reason),
			Details:       details,
			CreatedAt:     entry.CreatedAt.UTC(),
		}).ToSQL()
		if err != nil {
			return fmt.Errorf("build insert audit entry query: %w", err)
		}
		if _, err := q.ExecContext(ctx, query, args...); err != nil {
			return wrapWriteErr(err, "insert audit entry")
		}
	}
	return nil
}

func (r *LifecycleRepository) ListAudit(ctx context.Context, matchID string, limit, offset int) ([]lifecycle.AuditEntry, error) {
	query, args, err := qb.Select(auditColumns...).From("participation_audit_log").
		Where(qb.Eq("match_public_id", matchID)).
		OrderBy("created_at DESC", "seq DESC").
		Limit(limit).
		Offset(offset).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list audit query: %w", err)
	}

	var rows []auditTableModel
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}

	out := make([]lifecycle.AuditEntry, 0, len(rows))
	for _, row := range rows {
		details := map[string]any{}
		if row.Details != "" {
			if err := sonic.UnmarshalString(row.Details, &details); err != nil {
				return nil, fmt.Errorf("decode audit details %s: %w", row.PublicID, err)
			}
		}
		out = append(out, lifecycle.AuditEntry{
			ID:            row.PublicID,
			MatchID:       row.MatchID,
			PlayerID:      row.PlayerID.String,
			Action:        lifecycle.Action(row.Action),
			PreviousState: row.PreviousState.String,
			NewState:      row.NewState,
			ActorID:       row.ActorUserID.String,
			Reason:        row.Reason.String,
			Details:       details,
			CreatedAt:     row.CreatedAt.UTC(),
		})
	}
	return out, nil
}

func (r *LifecycleRepository) CountsByPlayer(ctx context.Context, playerID string) (lifecycle.Counts, error) {
	query, args, err := qb.Select(
		fmt.Sprintf("COUNT(1) FILTER (WHERE status = %s) AS played", quoteLiteral(string(lifecycle.StatusPlayed))),
		fmt.Sprintf("COUNT(1) FILTER (WHERE status = %s) AS no_shows", quoteLiteral(string(lifecycle.StatusNoShow))),
		fmt.Sprintf("COUNT(1) FILTER (WHERE status = %s) AS withdrawals", quoteLiteral(string(lifecycle.StatusWithdrawn))),
	).From("match_participation").
		Where(qb.Eq("player_public_id", playerID)).
		ToSQL()
	if err != nil {
		return lifecycle.Counts{}, fmt.Errorf("build count participation by player query: %w", err)
	}

	var row participationCountsModel
	if err := conn(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		return lifecycle.Counts{}, fmt.Errorf("count participation by player: %w", err)
	}
	return lifecycle.Counts{Played: row.Played, NoShows: row.NoShows, Withdrawals: row.Withdrawals}, nil
}

func encodeAuditDetails(details map[string]any) (string, error) {
	if len(details) == 0 {
		return "{}", nil
	}
	out, err := sonic.MarshalString(details)
	if err != nil {
		return "", fmt.Errorf("encode audit details: %w", err)
	}
	return out, nil
}
