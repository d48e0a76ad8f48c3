package httpapi

import (
	"net/http"
	"sort"

	"github.com/riskibarqy/cricket-club/internal/domain/selection"
	"github.com/riskibarqy/cricket-club/internal/usecase"
	"github.com/shopspring/decimal"
)

type roleQuotaRequest struct {
	Min *int `json:"min" validate:"omitempty,gte=0"`
	Max *int `json:"max" validate:"omitempty,gte=0"`
}

// selectionConfigRequest is a partial update: absent fields keep their stored value.
type selectionConfigRequest struct {
	PerformanceWeight                *decimal.Decimal            `json:"performance_weight"`
	FairnessWeight                   *decimal.Decimal            `json:"fairness_weight"`
	AttendanceWeight                 *decimal.Decimal            `json:"attendance_weight"`
	ReliabilityWeight                *decimal.Decimal            `json:"reliability_weight"`
	SeasonDistributionWeight         *decimal.Decimal            `json:"season_distribution_weight"`
	LateWithdrawalHours              *int                        `json:"late_withdrawal_hours" validate:"omitempty,gte=0"`
	LateWithdrawalPenalty            *decimal.Decimal            `json:"late_withdrawal_penalty"`
	MaxLateWithdrawalPenalty         *decimal.Decimal            `json:"max_late_withdrawal_penalty"`
	RoleQuotas                       map[string]roleQuotaRequest `json:"role_quotas" validate:"omitempty,dive"`
	SquadSize                        *int                        `json:"squad_size" validate:"omitempty,gte=1"`
	ReserveCount                     *int                        `json:"reserve_count" validate:"omitempty,gte=0"`
	MinBowlingOptions                *int                        `json:"min_bowling_options" validate:"omitempty,gte=0"`
	DefaultBaseScore                 *decimal.Decimal            `json:"default_base_score"`
	PerformanceBonusRunsThreshold    *int                        `json:"performance_bonus_runs_threshold" validate:"omitempty,gte=0"`
	PerformanceBonusRunsPoints       *decimal.Decimal            `json:"performance_bonus_runs_points"`
	PerformanceBonusWicketsThreshold *int                        `json:"performance_bonus_wickets_threshold" validate:"omitempty,gte=0"`
	PerformanceBonusWicketsPoints    *decimal.Decimal            `json:"performance_bonus_wickets_points"`
	MinAttendanceScore               *decimal.Decimal            `json:"min_attendance_score"`
	MaxAttendanceBonus               *decimal.Decimal            `json:"max_attendance_bonus"`
	AbsencePenaltyPoints             *decimal.Decimal            `json:"absence_penalty_points"`
	DefaultMatchOvers                *int                        `json:"default_match_overs" validate:"omitempty,gte=0"`
	AutoSelectCaptain                *bool                       `json:"auto_select_captain"`
	AutoSelectViceCaptain            *bool                       `json:"auto_select_vice_captain"`
}

func (req selectionConfigRequest) toPatch() selection.ConfigPatch {
	patch := selection.ConfigPatch{
		PerformanceWeight:                req.PerformanceWeight,
		FairnessWeight:                   req.FairnessWeight,
		AttendanceWeight:                 req.AttendanceWeight,
		ReliabilityWeight:                req.ReliabilityWeight,
		SeasonDistributionWeight:         req.SeasonDistributionWeight,
		LateWithdrawalHours:              req.LateWithdrawalHours,
		LateWithdrawalPenalty:            req.LateWithdrawalPenalty,
		MaxLateWithdrawalPenalty:         req.MaxLateWithdrawalPenalty,
		SquadSize:                        req.SquadSize,
		ReserveCount:                     req.ReserveCount,
		MinBowlingOptions:                req.MinBowlingOptions,
		DefaultBaseScore:                 req.DefaultBaseScore,
		PerformanceBonusRunsThreshold:    req.PerformanceBonusRunsThreshold,
		PerformanceBonusRunsPoints:       req.PerformanceBonusRunsPoints,
		PerformanceBonusWicketsThreshold: req.PerformanceBonusWicketsThreshold,
		PerformanceBonusWicketsPoints:    req.PerformanceBonusWicketsPoints,
		MinAttendanceScore:               req.MinAttendanceScore,
		MaxAttendanceBonus:               req.MaxAttendanceBonus,
		AbsencePenaltyPoints:             req.AbsencePenaltyPoints,
		DefaultMatchOvers:                req.DefaultMatchOvers,
		AutoSelectCaptain:                req.AutoSelectCaptain,
		AutoSelectViceCaptain:            req.AutoSelectViceCaptain,
	}
	if len(req.RoleQuotas) > 0 {
		patch.Quotas = make(map[string]selection.QuotaPatch, len(req.RoleQuotas))
		for role, q := range req.RoleQuotas {
			patch.Quotas[role] = selection.QuotaPatch{Min: q.Min, Max: q.Max}
		}
	}
	return patch
}

type upsertOverrideRequest struct {
	PlayerID  string          `json:"player_id" validate:"required"`
	BaseScore decimal.Decimal `json:"base_score"`
	Notes     string          `json:"notes" validate:"omitempty,max=500"`
}

func (h *Handler) GetSelectionConfig(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSelectionConfig")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	clubID := r.PathValue("clubID")
	cfg, err := h.selectionConfigService.GetConfig(ctx, principal.UserID, clubID)
	if err != nil {
		h.fail(ctx, w, "get selection config failed", err, "club_id", clubID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, selectionConfigToDTO(cfg))
}

func (h *Handler) UpsertSelectionConfig(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertSelectionConfig")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req selectionConfigRequest
	if err := h.decodeRequest(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	clubID := r.PathValue("clubID")
	cfg, err := h.selectionConfigService.UpsertConfig(ctx, principal.UserID, clubID, req.toPatch())
	if err != nil {
		h.fail(ctx, w, "upsert selection config failed", err, "club_id", clubID, "user_id", principal.UserID)
		return
	}

	h.logger.InfoContext(ctx, "selection config updated", "club_id", clubID, "user_id", principal.UserID)
	writeSuccess(ctx, w, http.StatusOK, selectionConfigToDTO(cfg))
}

func (h *Handler) ListOverrides(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListOverrides")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	clubID := r.PathValue("clubID")
	overrides, err := h.selectionConfigService.ListOverrides(ctx, principal.UserID, clubID)
	if err != nil {
		h.fail(ctx, w, "list overrides failed", err, "club_id", clubID)
		return
	}

	items := make([]overrideDTO, 0, len(overrides))
	for _, o := range overrides {
		items = append(items, overrideToDTO(o))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].PlayerID < items[j].PlayerID })
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) UpsertOverride(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertOverride")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req upsertOverrideRequest
	if err := h.decodeRequest(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	clubID := r.PathValue("clubID")
	item, err := h.selectionConfigService.UpsertOverride(ctx, principal.UserID, usecase.UpsertOverrideInput{
		ClubID:    clubID,
		PlayerID:  req.PlayerID,
		BaseScore: req.BaseScore,
		Notes:     req.Notes,
	})
	if err != nil {
		h.fail(ctx, w, "upsert override failed", err, "club_id", clubID, "player_id", req.PlayerID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, overrideToDTO(item))
}

func (h *Handler) DeleteOverride(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteOverride")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	clubID := r.PathValue("clubID")
	playerID := r.PathValue("playerID")
	if err := h.selectionConfigService.DeleteOverride(ctx, principal.UserID, clubID, playerID); err != nil {
		h.fail(ctx, w, "delete override failed", err, "club_id", clubID, "player_id", playerID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"club_id": clubID, "player_id": playerID, "deleted": true})
}
