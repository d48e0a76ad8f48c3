package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	authed := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, RequireAuth(verifier, fn))
	}

	authed("GET /v1/matches/{matchID}/recommendation", handler.GetRecommendation)
	authed("GET /v1/matches/{matchID}/selections", handler.ListSelections)
	authed("PUT /v1/matches/{matchID}/selections", handler.ReplaceSelections)
	authed("POST /v1/matches/{matchID}/clear-selections", handler.ClearSelections)
	authed("POST /v1/matches/{matchID}/selection-withdrawal", handler.RecordSelectionWithdrawal)
	authed("PUT /v1/matches/{matchID}/availability", handler.SetAvailability)

	authed("GET /v1/matches/{matchID}/lifecycle", handler.GetMatchLifecycle)
	authed("GET /v1/matches/{matchID}/participation", handler.GetParticipation)
	authed("GET /v1/matches/{matchID}/audit-log", handler.GetAuditLog)
	authed("POST /v1/matches/{matchID}/participation/confirm", handler.ConfirmParticipation)
	authed("POST /v1/matches/{matchID}/participation/withdraw", handler.WithdrawParticipation)
	authed("POST /v1/matches/{matchID}/participation/substitute", handler.AddSubstitute)
	authed("POST /v1/matches/{matchID}/participation/finalize", handler.FinalizeSelection)
	authed("POST /v1/matches/{matchID}/participation/abandon", handler.AbandonMatch)

	authed("POST /v1/fixtures/{fixtureID}/practice-attendance", handler.RecordPracticeAttendance)
}

func registerClubRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	authed := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, RequireAuth(verifier, fn))
	}

	authed("GET /v1/clubs/{clubID}/team-selection-config", handler.GetSelectionConfig)
	authed("POST /v1/clubs/{clubID}/team-selection-config", handler.UpsertSelectionConfig)
	authed("GET /v1/clubs/{clubID}/player-selection-overrides", handler.ListOverrides)
	authed("POST /v1/clubs/{clubID}/player-selection-overrides", handler.UpsertOverride)
	authed("DELETE /v1/clubs/{clubID}/player-selection-overrides/{playerID}", handler.DeleteOverride)

	authed("POST /v1/clubs/{clubID}/recommend-next-match", handler.RecommendNextMatch)
	authed("POST /v1/clubs/{clubID}/reset-selections", handler.ResetSelections)
	authed("GET /v1/clubs/{clubID}/simulation-status", handler.GetSimulationStatus)
	authed("GET /v1/clubs/{clubID}/deadline-alerts", handler.GetDeadlineAlerts)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/players/{playerID}/selection-stats", RequireAuth(verifier, http.HandlerFunc(handler.GetSelectionStats)))
}
