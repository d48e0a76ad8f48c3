package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/cricket-club/internal/domain/user"
	"github.com/riskibarqy/cricket-club/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/cricket-club/internal/platform/id"
	"github.com/riskibarqy/cricket-club/internal/platform/logging"
	"github.com/riskibarqy/cricket-club/internal/usecase"
)

type staticVerifier map[string]string

func (v staticVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	userID, ok := v[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return user.Principal{UserID: userID}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	now := time.Now()
	logger := logging.NewNop()
	matches := memory.NewMatchRepository(memory.SeedMatches(now))
	players := memory.NewPlayerRepository(memory.SeedPlayers())
	memberships := memory.NewMembershipRepository(memory.SeedMemberships())
	availabilityRepo := memory.NewAvailabilityRepository(memory.SeedAvailability(now))
	selections := memory.NewSelectionRepository(matches, nil)
	configs := memory.NewSelectionConfigRepository()
	overrides := memory.NewScoreOverrideRepository()
	withdrawals := memory.NewWithdrawalRepository()
	attendanceRepo := memory.NewAttendanceRepository()
	payments := memory.NewPaymentRepository()
	tx := memory.NewTransactor()

	services := Services{
		Recommendation: usecase.NewRecommendationService(usecase.RecommendationRepositories{
			Matches:      matches,
			Players:      players,
			Availability: availabilityRepo,
			Selections:   selections,
			Configs:      configs,
			Overrides:    overrides,
			Attendance:   attendanceRepo,
			Withdrawals:  withdrawals,
			Payments:     payments,
			Stats:        memory.NewStatsRepository(memory.SeedStats(now)),
			Memberships:  memberships,
		}, tx, logger, 2),
		Lifecycle: usecase.NewLifecycleService(matches, players, memory.NewLifecycleRepository(), selections,
			availabilityRepo, payments, withdrawals, configs, memberships, tx, idgen.NewUUIDGenerator()),
		SelectionConfig: usecase.NewSelectionConfigService(configs, overrides, players, memberships),
		Selection:       usecase.NewSelectionService(matches, players, selections, memberships, tx),
		Withdrawal:      usecase.NewWithdrawalService(matches, players, configs, withdrawals, memberships),
		Availability:    usecase.NewAvailabilityService(matches, players, availabilityRepo, memberships),
		Attendance:      usecase.NewAttendanceService(matches, players, attendanceRepo, memberships),
	}

	verifier := staticVerifier{
		"admin-token":    memory.UserIDRiversideAdmin,
		"captain-token":  memory.UserIDRiversideCaptain,
		"member-token":   memory.UserIDRiversideMember,
		"stranger-token": "user-stranger",
	}
	return NewRouter(NewHandler(services, logger), verifier, logger, []string{"*"})
}

func doRequest(t *testing.T, router http.Handler, method, path, token, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var payload map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal %s %s response: %v body=%s", method, path, err, rec.Body.String())
	}
	return rec.Code, payload
}

func errorStatus(payload map[string]any) string {
	errObj, _ := payload["error"].(map[string]any)
	status, _ := errObj["status"].(string)
	return status
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	code, payload := doRequest(t, router, http.MethodGet, "/healthz", "", "")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	data, _ := payload["data"].(map[string]any)
	if data["status"] != "ok" {
		t.Fatalf("unexpected health payload: %v", payload)
	}
}

func TestRouter_AuthAndAccess(t *testing.T) {
	router := newTestRouter(t)
	path := "/v1/matches/" + memory.MatchIDRiversideNext + "/recommendation"

	tests := []struct {
		name   string
		token  string
		code   int
		status string
	}{
		{name: "missing token", token: "", code: http.StatusUnauthorized, status: "UNAUTHENTICATED"},
		{name: "unknown token", token: "forged", code: http.StatusUnauthorized, status: "UNAUTHENTICATED"},
		{name: "non member", token: "stranger-token", code: http.StatusForbidden, status: "PERMISSION_DENIED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, payload := doRequest(t, router, http.MethodGet, path, tt.token, "")
			if code != tt.code || errorStatus(payload) != tt.status {
				t.Fatalf("expected %d/%s, got %d/%s", tt.code, tt.status, code, errorStatus(payload))
			}
		})
	}
}

func TestRouter_GetRecommendation(t *testing.T) {
	router := newTestRouter(t)

	code, payload := doRequest(t, router, http.MethodGet, "/v1/matches/"+memory.MatchIDRiversideNext+"/recommendation", "member-token", "")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d payload=%v", code, payload)
	}
	data, _ := payload["data"].(map[string]any)
	if got, _ := data["recommended_count"].(float64); got != 11 {
		t.Fatalf("expected 11 recommended, got %v", data["recommended_count"])
	}
	if got, _ := data["reserve_count"].(float64); got != 2 {
		t.Fatalf("expected 2 reserves, got %v", data["reserve_count"])
	}
	players, _ := data["players"].([]any)
	if len(players) != 15 {
		t.Fatalf("expected 15 scored players, got %d", len(players))
	}
	first, _ := players[0].(map[string]any)
	composite, _ := first["composite_score"].(string)
	if composite == "" || !strings.Contains(composite, ".") || len(composite[strings.Index(composite, ".")+1:]) != 2 {
		t.Fatalf("expected composite_score as a two-decimal string, got %v", first["composite_score"])
	}
}

func TestRouter_MissingMatchIsNotFound(t *testing.T) {
	router := newTestRouter(t)

	code, payload := doRequest(t, router, http.MethodGet, "/v1/matches/match-missing/lifecycle", "member-token", "")
	if code != http.StatusNotFound || errorStatus(payload) != "NOT_FOUND" {
		t.Fatalf("expected 404 NOT_FOUND, got %d/%s", code, errorStatus(payload))
	}
}

func TestRouter_SelectionConfig(t *testing.T) {
	router := newTestRouter(t)
	path := "/v1/clubs/" + memory.ClubIDRiverside + "/team-selection-config"

	code, payload := doRequest(t, router, http.MethodGet, path, "member-token", "")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	data, _ := payload["data"].(map[string]any)
	if data["performance_weight"] != "0.30" || data["squad_size"] != float64(11) {
		t.Fatalf("expected default config, got %v", data)
	}

	code, payload = doRequest(t, router, http.MethodPost, path, "captain-token", `{"performance_weight":"0.40"}`)
	if code != http.StatusForbidden {
		t.Fatalf("expected captain to be forbidden, got %d payload=%v", code, payload)
	}

	code, payload = doRequest(t, router, http.MethodPost, path, "admin-token", `{"performance_weight":"0.40","reserve_count":3}`)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d payload=%v", code, payload)
	}
	data, _ = payload["data"].(map[string]any)
	if data["performance_weight"] != "0.40" || data["reserve_count"] != float64(3) || data["fairness_weight"] != "0.25" {
		t.Fatalf("expected patched config, got %v", data)
	}

	code, _ = doRequest(t, router, http.MethodPost, path, "admin-token", `{"unknown_field":1}`)
	if code != http.StatusBadRequest {
		t.Fatalf("expected unknown fields to be rejected, got %d", code)
	}
}

func TestRouter_ParticipationFlow(t *testing.T) {
	router := newTestRouter(t)
	base := "/v1/matches/" + memory.MatchIDRiversideNext

	code, payload := doRequest(t, router, http.MethodPost, base+"/participation/confirm", "captain-token",
		`{"entries":[{"player_id":"rv-bat-01","status":"played"},{"player_id":"rv-bat-02","status":"played"}]}`)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d payload=%v", code, payload)
	}
	rows, _ := payload["data"].([]any)
	if len(rows) != 2 {
		t.Fatalf("expected 2 confirmed rows, got %d", len(rows))
	}

	code, payload = doRequest(t, router, http.MethodPost, base+"/participation/confirm", "member-token",
		`{"entries":[{"player_id":"rv-bat-03","status":"played"}]}`)
	if code != http.StatusForbidden {
		t.Fatalf("expected member confirm to be forbidden, got %d payload=%v", code, payload)
	}

	code, _ = doRequest(t, router, http.MethodPost, base+"/participation/confirm", "captain-token",
		`{"entries":[{"player_id":"rv-bat-03","status":"retired_hurt"}]}`)
	if code != http.StatusBadRequest {
		t.Fatalf("expected unknown status to be rejected, got %d", code)
	}

	code, payload = doRequest(t, router, http.MethodPost, base+"/participation/withdraw", "captain-token",
		`{"player_id":"rv-bat-02","reason":"hamstring"}`)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d payload=%v", code, payload)
	}

	code, payload = doRequest(t, router, http.MethodGet, base+"/audit-log?limit=1", "member-token", "")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d payload=%v", code, payload)
	}
	entries, _ := payload["data"].([]any)
	if len(entries) != 1 {
		t.Fatalf("expected one audit entry, got %d", len(entries))
	}

	code, _ = doRequest(t, router, http.MethodGet, base+"/audit-log?limit=abc", "member-token", "")
	if code != http.StatusBadRequest {
		t.Fatalf("expected bad limit to be rejected, got %d", code)
	}
}

func TestRouter_Selections(t *testing.T) {
	router := newTestRouter(t)
	path := "/v1/matches/" + memory.MatchIDRiversideNext + "/selections"

	code, payload := doRequest(t, router, http.MethodPut, path, "captain-token",
		`{"selections":[{"player_id":"rv-bat-02","batting_position":2},{"player_id":"rv-bat-01","batting_position":1,"is_captain":true}]}`)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d payload=%v", code, payload)
	}
	rows, _ := payload["data"].([]any)
	if len(rows) != 2 {
		t.Fatalf("expected 2 selections, got %d", len(rows))
	}
	first, _ := rows[0].(map[string]any)
	if first["player_id"] != "rv-bat-01" || first["is_captain"] != true || first["batting_position"] != float64(1) {
		t.Fatalf("unexpected first selection: %v", first)
	}

	code, payload = doRequest(t, router, http.MethodGet, path, "member-token", "")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d payload=%v", code, payload)
	}
	rows, _ = payload["data"].([]any)
	if len(rows) != 2 {
		t.Fatalf("expected 2 listed selections, got %d", len(rows))
	}

	tests := []struct {
		name  string
		token string
		body  string
		code  int
	}{
		{name: "member cannot write", token: "member-token", body: `{"selections":[]}`, code: http.StatusForbidden},
		{name: "missing player id", token: "captain-token", body: `{"selections":[{"batting_position":1}]}`, code: http.StatusBadRequest},
		{name: "batting slot out of range", token: "captain-token", body: `{"selections":[{"player_id":"rv-bat-01","batting_position":12}]}`, code: http.StatusBadRequest},
		{name: "duplicate player", token: "captain-token", body: `{"selections":[{"player_id":"rv-bat-01"},{"player_id":"rv-bat-01"}]}`, code: http.StatusBadRequest},
		{name: "unknown player", token: "captain-token", body: `{"selections":[{"player_id":"rv-ghost"}]}`, code: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, payload := doRequest(t, router, http.MethodPut, path, tt.token, tt.body)
			if code != tt.code {
				t.Fatalf("expected %d, got %d payload=%v", tt.code, code, payload)
			}
		})
	}

	code, payload = doRequest(t, router, http.MethodPut, path, "admin-token", `{"selections":[]}`)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d payload=%v", code, payload)
	}
	rows, _ = payload["data"].([]any)
	if len(rows) != 0 {
		t.Fatalf("expected selections cleared, got %d", len(rows))
	}
}

func TestRouter_SubstituteWithoutReplacedPlayer(t *testing.T) {
	router := newTestRouter(t)
	path := "/v1/matches/" + memory.MatchIDRiversideNext + "/participation/substitute"

	code, payload := doRequest(t, router, http.MethodPost, path, "captain-token", `{"player_id":"rv-bat-05"}`)
	if code != http.StatusOK {
		t.Fatalf("expected substitute without replaced player to succeed, got %d payload=%v", code, payload)
	}

	code, _ = doRequest(t, router, http.MethodPost, path, "captain-token", `{"player_id":"rv-bat-05","replaces_player_id":"rv-bat-05"}`)
	if code != http.StatusBadRequest {
		t.Fatalf("expected self replacement to be rejected, got %d", code)
	}
}

func TestRouter_SetAvailabilityRequiresSelector(t *testing.T) {
	router := newTestRouter(t)
	path := "/v1/matches/" + memory.MatchIDRiversideNext + "/availability"
	body := `{"player_id":"rv-bat-01","status":"unavailable"}`

	code, _ := doRequest(t, router, http.MethodPut, path, "member-token", body)
	if code != http.StatusForbidden {
		t.Fatalf("expected member to be forbidden, got %d", code)
	}
	code, payload := doRequest(t, router, http.MethodPut, path, "captain-token", body)
	if code != http.StatusOK {
		t.Fatalf("expected captain to set availability, got %d payload=%v", code, payload)
	}
}
