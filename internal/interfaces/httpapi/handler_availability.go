package httpapi

import (
	"net/http"

	"github.com/riskibarqy/cricket-club/internal/usecase"
)

type setAvailabilityRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	Status   string `json:"status" validate:"required,oneof=available unavailable pending"`
}

type practiceAttendanceRequest struct {
	Entries []practiceAttendanceEntryRequest `json:"entries" validate:"required,min=1,dive"`
}

type practiceAttendanceEntryRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	Status   string `json:"status" validate:"required,oneof=attended absent excused"`
	Notes    string `json:"notes" validate:"omitempty,max=500"`
}

func (h *Handler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetAvailability")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req setAvailabilityRequest
	if err := h.decodeRequest(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := r.PathValue("matchID")
	record, err := h.availabilityService.Set(ctx, principal.UserID, usecase.SetAvailabilityInput{
		MatchID:  matchID,
		PlayerID: req.PlayerID,
		Status:   req.Status,
	})
	if err != nil {
		h.fail(ctx, w, "set availability failed", err, "match_id", matchID, "player_id", req.PlayerID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, availabilityToDTO(record))
}

func (h *Handler) RecordPracticeAttendance(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordPracticeAttendance")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req practiceAttendanceRequest
	if err := h.decodeRequest(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	entries := make([]usecase.AttendanceEntry, 0, len(req.Entries))
	for _, e := range req.Entries {
		entries = append(entries, usecase.AttendanceEntry{PlayerID: e.PlayerID, Status: e.Status, Notes: e.Notes})
	}

	fixtureID := r.PathValue("fixtureID")
	records, err := h.attendanceService.Record(ctx, principal.UserID, fixtureID, entries)
	if err != nil {
		h.fail(ctx, w, "record practice attendance failed", err, "fixture_id", fixtureID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, attendanceRecordsToDTO(records))
}
