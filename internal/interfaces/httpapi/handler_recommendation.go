package httpapi

import (
	"net/http"
	"time"

	"github.com/riskibarqy/cricket-club/internal/usecase"
)

type recommendNextMatchRequest struct {
	AfterDate string `json:"after_date" validate:"omitempty"`
}

type recordSelectionWithdrawalRequest struct {
	PlayerID  string `json:"player_id" validate:"required"`
	MatchTime string `json:"match_time" validate:"omitempty"`
	Reason    string `json:"reason" validate:"omitempty,max=500"`
}

func (h *Handler) GetRecommendation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRecommendation")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := r.PathValue("matchID")
	players, err := h.recommendationService.GetRecommendation(ctx, principal.UserID, matchID)
	if err != nil {
		h.fail(ctx, w, "get recommendation failed", err, "match_id", matchID, "user_id", principal.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, recommendationToDTO(matchID, players))
}

func (h *Handler) ClearSelections(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearSelections")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := r.PathValue("matchID")
	cleared, err := h.recommendationService.ClearSelections(ctx, principal.UserID, matchID)
	if err != nil {
		h.fail(ctx, w, "clear selections failed", err, "match_id", matchID, "user_id", principal.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"match_id": matchID, "cleared": cleared})
}

func (h *Handler) RecommendNextMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecommendNextMatch")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req recommendNextMatchRequest
	if err := h.decodeRequest(ctx, r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	var afterDate *time.Time
	if req.AfterDate != "" {
		parsed, err := parseDateOrTime("after_date", req.AfterDate)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		afterDate = &parsed
	}

	clubID := r.PathValue("clubID")
	result, err := h.recommendationService.RecommendNextMatch(ctx, principal.UserID, clubID, afterDate)
	if err != nil {
		h.fail(ctx, w, "recommend next match failed", err, "club_id", clubID, "user_id", principal.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, nextMatchToDTO(result))
}

func (h *Handler) ResetSelections(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetSelections")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	clubID := r.PathValue("clubID")
	result, err := h.recommendationService.ResetSelectionsFirstMatch(ctx, principal.UserID, clubID)
	if err != nil {
		h.fail(ctx, w, "reset selections failed", err, "club_id", clubID, "user_id", principal.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, nextMatchToDTO(result))
}

func (h *Handler) GetSimulationStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSimulationStatus")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	clubID := r.PathValue("clubID")
	status, err := h.recommendationService.GetSimulationStatus(ctx, principal.UserID, clubID)
	if err != nil {
		h.fail(ctx, w, "get simulation status failed", err, "club_id", clubID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, simulationStatusToDTO(status))
}

func (h *Handler) RecordSelectionWithdrawal(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordSelectionWithdrawal")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req recordSelectionWithdrawalRequest
	if err := h.decodeRequest(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	input := usecase.RecordSelectionWithdrawalInput{
		MatchID:  r.PathValue("matchID"),
		PlayerID: req.PlayerID,
		Reason:   req.Reason,
	}
	if req.MatchTime != "" {
		input.MatchTime, err = parseDateOrTime("match_time", req.MatchTime)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	item, err := h.withdrawalService.Record(ctx, principal.UserID, input)
	if err != nil {
		h.fail(ctx, w, "record selection withdrawal failed", err, "match_id", input.MatchID, "player_id", input.PlayerID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, withdrawalToDTO(item))
}
