package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cricket-club/internal/domain/attendance"
	"github.com/riskibarqy/cricket-club/internal/domain/payment"
	qb "github.com/riskibarqy/cricket-club/internal/platform/querybuilder"
)

type attendanceTableModel struct {
	FixtureID  string    `db:"fixture_public_id"`
	PlayerID   string    `db:"player_public_id"`
	Status     string    `db:"status"`
	Notes      string    `db:"notes"`
	RecordedAt time.Time `db:"recorded_at"`
}

type AttendanceRepository struct {
	db *sqlx.DB
}

func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) Upsert(ctx context.Context, records []attendance.Record) error {
	if len(records) == 0 {
		return nil
	}

	q := conn(ctx, r.db)
	for _, record := range records {
		query, args, err := qb.InsertModel("practice_attendance", attendanceTableModel{
			FixtureID:  record.FixtureID,
			PlayerID:   record.PlayerID,
			Status:     string(record.Status),
			Notes:      record.Notes,
			RecordedAt: record.RecordedAt.UTC(),
		}).
			OnConflict("fixture_public_id", "player_public_id").
			DoUpdateExcluded().
			ToSQL()
		if err != nil {
			return fmt.Errorf("build upsert attendance query: %w", err)
		}
		if _, err := q.ExecContext(ctx, query, args...); err != nil {
			return wrapWriteErr(err, "upsert attendance")
		}
	}
	return nil
}

func (r *AttendanceRepository) SummaryByPlayers(ctx context.Context, playerIDs []string) (map[string]attendance.Summary, error) {
	out := make(map[string]attendance.Summary, len(playerIDs))
	if len(playerIDs) == 0 {
		return out, nil
	}

	query, args, err := qb.Select(
		"player_public_id",
		fmt.Sprintf("COUNT(1) FILTER (WHERE status = %s) AS attended", quoteLiteral(string(attendance.StatusAttended))),
		"COUNT(1) AS recorded",
	).From("practice_attendance").
		Where(qb.In("player_public_id", stringSliceToAny(playerIDs))).
		GroupBy("player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build summarize attendance query: %w", err)
	}

	var rows []attendanceSummaryModel
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("summarize attendance: %w", err)
	}
	for _, row := range rows {
		out[row.PlayerID] = attendance.Summary{Attended: row.Attended, Recorded: row.Recorded}
	}
	return out, nil
}

type PaymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) StatusByMatch(ctx context.Context, matchID string) (map[string]payment.Status, error) {
	query, args, err := qb.Select("player_public_id", "status").
		From("match_payments").
		Where(qb.Eq("match_public_id", matchID)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list match payments query: %w", err)
	}

	var rows []struct {
		PlayerID string `db:"player_public_id"`
		Status   string `db:"status"`
	}
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list match payments: %w", err)
	}

	out := make(map[string]payment.Status, len(rows))
	for _, row := range rows {
		out[row.PlayerID] = payment.Status(row.Status)
	}
	return out, nil
}
