package httpapi

import (
	"net/http"

	"github.com/riskibarqy/cricket-club/internal/usecase"
)

type confirmParticipationRequest struct {
	Entries []confirmParticipationEntryRequest `json:"entries" validate:"required,min=1,dive"`
}

type confirmParticipationEntryRequest struct {
	PlayerID              string `json:"player_id" validate:"required"`
	Status                string `json:"status" validate:"required,oneof=played no_show withdrawn substitute match_abandoned"`
	WasSubstitute         bool   `json:"was_substitute"`
	SubstituteForPlayerID string `json:"substitute_for_player_id"`
	NoShowReason          string `json:"no_show_reason" validate:"omitempty,max=500"`
}

type withdrawParticipationRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	Reason   string `json:"reason" validate:"omitempty,max=500"`
}

type addSubstituteRequest struct {
	PlayerID         string `json:"player_id" validate:"required"`
	ReplacesPlayerID string `json:"replaces_player_id" validate:"omitempty,nefield=PlayerID"`
}

type abandonMatchRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

func (h *Handler) ConfirmParticipation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ConfirmParticipation")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req confirmParticipationRequest
	if err := h.decodeRequest(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	entries := make([]usecase.ConfirmParticipationEntry, 0, len(req.Entries))
	for _, e := range req.Entries {
		entries = append(entries, usecase.ConfirmParticipationEntry{
			PlayerID:              e.PlayerID,
			Status:                e.Status,
			WasSubstitute:         e.WasSubstitute,
			SubstituteForPlayerID: e.SubstituteForPlayerID,
			NoShowReason:          e.NoShowReason,
		})
	}

	matchID := r.PathValue("matchID")
	rows, err := h.lifecycleService.Confirm(ctx, principal.UserID, matchID, entries)
	if err != nil {
		h.fail(ctx, w, "confirm participation failed", err, "match_id", matchID, "user_id", principal.UserID)
		return
	}

	items := make([]participationDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, participationToDTO(row))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) WithdrawParticipation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.WithdrawParticipation")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req withdrawParticipationRequest
	if err := h.decodeRequest(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := r.PathValue("matchID")
	row, err := h.lifecycleService.RecordWithdrawal(ctx, principal.UserID, matchID, req.PlayerID, req.Reason)
	if err != nil {
		h.fail(ctx, w, "record withdrawal failed", err, "match_id", matchID, "player_id", req.PlayerID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, participationToDTO(row))
}

func (h *Handler) AddSubstitute(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddSubstitute")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req addSubstituteRequest
	if err := h.decodeRequest(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := r.PathValue("matchID")
	row, err := h.lifecycleService.AddSubstitute(ctx, principal.UserID, matchID, req.PlayerID, req.ReplacesPlayerID)
	if err != nil {
		h.fail(ctx, w, "add substitute failed", err, "match_id", matchID, "player_id", req.PlayerID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, participationToDTO(row))
}

func (h *Handler) FinalizeSelection(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FinalizeSelection")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := r.PathValue("matchID")
	result, err := h.lifecycleService.Finalize(ctx, principal.UserID, matchID)
	if err != nil {
		h.fail(ctx, w, "finalize selection failed", err, "match_id", matchID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"match_id":      matchID,
		"player_count":  result.PlayerCount,
		"created_count": result.CreatedCount,
	})
}

func (h *Handler) AbandonMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AbandonMatch")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req abandonMatchRequest
	if err := h.decodeRequest(ctx, r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := r.PathValue("matchID")
	result, err := h.lifecycleService.RecordAbandoned(ctx, principal.UserID, matchID, req.Reason)
	if err != nil {
		h.fail(ctx, w, "record abandoned failed", err, "match_id", matchID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"match_id":                   matchID,
		"participations_overwritten": result.ParticipationsOverwritten,
	})
}

func (h *Handler) GetMatchLifecycle(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchLifecycle")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := r.PathValue("matchID")
	rows, err := h.lifecycleService.GetMatchLifecycle(ctx, principal.UserID, matchID)
	if err != nil {
		h.fail(ctx, w, "get match lifecycle failed", err, "match_id", matchID)
		return
	}

	items := make([]playerLifecycleDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, playerLifecycleToDTO(row))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetParticipation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetParticipation")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := r.PathValue("matchID")
	rows, err := h.lifecycleService.GetParticipation(ctx, principal.UserID, matchID)
	if err != nil {
		h.fail(ctx, w, "get participation failed", err, "match_id", matchID)
		return
	}

	items := make([]participationDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, participationViewToDTO(row))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAuditLog")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := r.PathValue("matchID")
	rows, err := h.lifecycleService.GetAuditLog(ctx, principal.UserID, matchID, limit, offset)
	if err != nil {
		h.fail(ctx, w, "get audit log failed", err, "match_id", matchID)
		return
	}

	items := make([]auditEntryDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, auditEntryToDTO(row))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetDeadlineAlerts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDeadlineAlerts")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	clubID := r.PathValue("clubID")
	alerts, err := h.lifecycleService.GetDeadlineAlerts(ctx, principal.UserID, clubID)
	if err != nil {
		h.fail(ctx, w, "get deadline alerts failed", err, "club_id", clubID)
		return
	}

	items := make([]deadlineAlertDTO, 0, len(alerts))
	for _, a := range alerts {
		items = append(items, deadlineAlertToDTO(a))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetSelectionStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSelectionStats")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	playerID := r.PathValue("playerID")
	result, err := h.lifecycleService.GetSelectionStats(ctx, principal.UserID, playerID)
	if err != nil {
		h.fail(ctx, w, "get selection stats failed", err, "player_id", playerID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, selectionStatsToDTO(result))
}
