package httpapi

import (
	"net/http"

	"github.com/riskibarqy/cricket-club/internal/usecase"
)

type replaceSelectionsRequest struct {
	Selections []teamSelectionRequest `json:"selections" validate:"max=40,dive"`
}

type teamSelectionRequest struct {
	PlayerID        string `json:"player_id" validate:"required"`
	BattingPosition int    `json:"batting_position" validate:"min=0,max=11"`
	IsCaptain       bool   `json:"is_captain"`
	IsWicketkeeper  bool   `json:"is_wicketkeeper"`
}

func (h *Handler) ListSelections(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSelections")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := r.PathValue("matchID")
	items, err := h.selectionService.List(ctx, principal.UserID, matchID)
	if err != nil {
		h.fail(ctx, w, "list selections failed", err, "match_id", matchID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamSelectionsToDTO(items))
}

func (h *Handler) ReplaceSelections(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReplaceSelections")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req replaceSelectionsRequest
	if err := h.decodeRequest(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	entries := make([]usecase.TeamSelectionEntry, 0, len(req.Selections))
	for _, s := range req.Selections {
		entries = append(entries, usecase.TeamSelectionEntry{
			PlayerID:        s.PlayerID,
			BattingPosition: s.BattingPosition,
			IsCaptain:       s.IsCaptain,
			IsWicketkeeper:  s.IsWicketkeeper,
		})
	}

	matchID := r.PathValue("matchID")
	items, err := h.selectionService.Replace(ctx, principal.UserID, matchID, entries)
	if err != nil {
		h.fail(ctx, w, "replace selections failed", err, "match_id", matchID, "user_id", principal.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamSelectionsToDTO(items))
}
