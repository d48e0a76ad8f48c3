package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cricket-club/internal/domain/player"
	"github.com/riskibarqy/cricket-club/internal/domain/selection"
	qb "github.com/riskibarqy/cricket-club/internal/platform/querybuilder"
)

var selectionConfigColumns = []string{
	"club_public_id",
	"performance_weight",
	"fairness_weight",
	"attendance_weight",
	"reliability_weight",
	"season_distribution_weight",
	"late_withdrawal_hours",
	"late_withdrawal_penalty",
	"max_late_withdrawal_penalty",
	"role_quotas::text AS role_quotas",
	"squad_size",
	"reserve_count",
	"min_bowling_options",
	"default_base_score",
	"performance_bonus_runs_threshold",
	"performance_bonus_runs_points",
	"performance_bonus_wickets_threshold",
	"performance_bonus_wickets_points",
	"min_attendance_score",
	"max_attendance_bonus",
	"absence_penalty_points",
	"default_match_overs",
	"auto_select_captain",
	"auto_select_vice_captain",
	"updated_at",
}

type SelectionConfigRepository struct {
	db *sqlx.DB
}

func NewSelectionConfigRepository(db *sqlx.DB) *SelectionConfigRepository {
	return &SelectionConfigRepository{db: db}
}

func (r *SelectionConfigRepository) GetByClub(ctx context.Context, clubID string) (selection.Config, bool, error) {
	query, args, err := qb.Select(selectionConfigColumns...).From("team_selection_configs").
		Where(qb.Eq("club_public_id", clubID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return selection.Config{}, false, fmt.Errorf("build get selection config query: %w", err)
	}

	var row selectionConfigTableModel
	if err := conn(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return selection.Config{}, false, nil
		}
		return selection.Config{}, false, fmt.Errorf("get selection config: %w", err)
	}

	cfg, err := selectionConfigFromRow(row)
	if err != nil {
		return selection.Config{}, false, err
	}
	return cfg, true, nil
}

func (r *SelectionConfigRepository) Upsert(ctx context.Context, cfg selection.Config) error {
	row, err := selectionConfigToRow(cfg)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel("team_selection_configs", row).
		OnConflict("club_public_id").
		DoUpdateExcluded().
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert selection config query: %w", err)
	}

	if _, err := conn(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return wrapWriteErr(err, "upsert selection config")
	}
	return nil
}

func selectionConfigToRow(cfg selection.Config) (selectionConfigTableModel, error) {
	quotas := make(map[string]roleQuotaJSON, len(cfg.Quotas))
	for role, q := range cfg.Quotas {
		quotas[string(role)] = roleQuotaJSON{Min: q.Min, Max: q.Max}
	}
	encoded, err := sonic.MarshalString(quotas)
	if err != nil {
		return selectionConfigTableModel{}, fmt.Errorf("encode role quotas: %w", err)
	}

	updatedAt := cfg.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	return selectionConfigTableModel{
		ClubID:                           cfg.ClubID,
		PerformanceWeight:                cfg.Weights.Performance,
		FairnessWeight:                   cfg.Weights.Fairness,
		AttendanceWeight:                 cfg.Weights.Attendance,
		ReliabilityWeight:                cfg.Weights.Reliability,
		SeasonDistributionWeight:         cfg.Weights.SeasonDistribution,
		LateWithdrawalHours:              cfg.LateWithdrawalHours,
		LateWithdrawalPenalty:            cfg.LateWithdrawalPenalty,
		MaxLateWithdrawalPenalty:         cfg.MaxLateWithdrawalPenalty,
		RoleQuotas:                       encoded,
		SquadSize:                        cfg.SquadSize,
		ReserveCount:                     cfg.ReserveCount,
		MinBowlingOptions:                cfg.MinBowlingOptions,
		DefaultBaseScore:                 cfg.DefaultBaseScore,
		PerformanceBonusRunsThreshold:    cfg.PerformanceBonusRunsThreshold,
		PerformanceBonusRunsPoints:       cfg.PerformanceBonusRunsPoints,
		PerformanceBonusWicketsThreshold: cfg.PerformanceBonusWicketsThreshold,
		PerformanceBonusWicketsPoints:    cfg.PerformanceBonusWicketsPoints,
		MinAttendanceScore:               cfg.MinAttendanceScore,
		MaxAttendanceBonus:               cfg.MaxAttendanceBonus,
		AbsencePenaltyPoints:             cfg.AbsencePenaltyPoints,
		DefaultMatchOvers:                cfg.DefaultMatchOvers,
		AutoSelectCaptain:                cfg.AutoSelectCaptain,
		AutoSelectViceCaptain:            cfg.AutoSelectViceCaptain,
		UpdatedAt:                        updatedAt.UTC(),
	}, nil
}

func selectionConfigFromRow(row selectionConfigTableModel) (selection.Config, error) {
	var quotas map[string]roleQuotaJSON
	if row.RoleQuotas != "" {
		if err := sonic.UnmarshalString(row.RoleQuotas, &quotas); err != nil {
			return selection.Config{}, fmt.Errorf("decode role quotas for club %s: %w", row.ClubID, err)
		}
	}

	cfg := selection.Config{
		ClubID: row.ClubID,
		Weights: selection.Weights{
			Performance:        row.PerformanceWeight,
			Fairness:           row.FairnessWeight,
			Attendance:         row.AttendanceWeight,
			Reliability:        row.ReliabilityWeight,
			SeasonDistribution: row.SeasonDistributionWeight,
		},
		LateWithdrawalHours:              row.LateWithdrawalHours,
		LateWithdrawalPenalty:            row.LateWithdrawalPenalty,
		MaxLateWithdrawalPenalty:         row.MaxLateWithdrawalPenalty,
		Quotas:                           make(map[player.Role]selection.RoleQuota, len(quotas)),
		SquadSize:                        row.SquadSize,
		ReserveCount:                     row.ReserveCount,
		MinBowlingOptions:                row.MinBowlingOptions,
		DefaultBaseScore:                 row.DefaultBaseScore,
		PerformanceBonusRunsThreshold:    row.PerformanceBonusRunsThreshold,
		PerformanceBonusRunsPoints:       row.PerformanceBonusRunsPoints,
		PerformanceBonusWicketsThreshold: row.PerformanceBonusWicketsThreshold,
		PerformanceBonusWicketsPoints:    row.PerformanceBonusWicketsPoints,
		MinAttendanceScore:               row.MinAttendanceScore,
		MaxAttendanceBonus:               row.MaxAttendanceBonus,
		AbsencePenaltyPoints:             row.AbsencePenaltyPoints,
		DefaultMatchOvers:                row.DefaultMatchOvers,
		AutoSelectCaptain:                row.AutoSelectCaptain,
		AutoSelectViceCaptain:            row.AutoSelectViceCaptain,
		UpdatedAt:                        row.UpdatedAt.UTC(),
	}
	for role, q := range quotas {
		cfg.Quotas[player.Role(role)] = selection.RoleQuota{Min: q.Min, Max: q.Max}
	}
	return cfg, nil
}

type ScoreOverrideRepository struct {
	db *sqlx.DB
}

func NewScoreOverrideRepository(db *sqlx.DB) *ScoreOverrideRepository {
	return &ScoreOverrideRepository{db: db}
}

func (r *ScoreOverrideRepository) ListByClub(ctx context.Context, clubID string) ([]selection.Override, error) {
	query, args, err := qb.Select("club_public_id", "player_public_id", "base_score", "notes", "updated_at").
		From("player_selection_overrides").
		Where(qb.Eq("club_public_id", clubID)).
		OrderBy("player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list score overrides query: %w", err)
	}

	var rows []scoreOverrideTableModel
	if err := conn(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list score overrides: %w", err)
	}

	out := make([]selection.Override, 0, len(rows))
	for _, row := range rows {
		out = append(out, selection.Override{
			ClubID:    row.ClubID,
			PlayerID:  row.PlayerID,
			BaseScore: row.BaseScore,
			Notes:     row.Notes.String,
			UpdatedAt: row.UpdatedAt.UTC(),
		})
	}
	return out, nil
}

func (r *ScoreOverrideRepository) Upsert(ctx context.Context, item selection.Override) error {
	query, args, err := qb.InsertModel("player_selection_overrides", scoreOverrideTableModel{
		ClubID:    item.ClubID,
		PlayerID:  item.PlayerID,
		BaseScore: item.BaseScore,
		Notes:     nullableString(item.Notes),
		UpdatedAt: item.UpdatedAt.UTC(),
	}).
		OnConflict("club_public_id", "player_public_id").
		DoUpdateExcluded().
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert score override query: %w", err)
	}

	if _, err := conn(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return wrapWriteErr(err, "upsert score override")
	}
	return nil
}

func (r *ScoreOverrideRepository) Delete(ctx context.Context, clubID, playerID string) (bool, error) {
	query, args, err := qb.DeleteFrom("player_selection_overrides").
		Where(
			qb.Eq("club_public_id", clubID),
			qb.Eq("player_public_id", playerID),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete score override query: %w", err)
	}

	res, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return false, wrapWriteErr(err, "delete score override")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read deleted score override count: %w", err)
	}
	return affected > 0, nil
}
