package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/cricket-club/internal/platform/logging"
)

func TestCORS(t *testing.T) {
	const path = "/v1/clubs/club-riverside/team-selection-config"

	tests := []struct {
		name        string
		allowed     []string
		method      string
		origin      string
		wantCode    int
		wantAllow   string
		wantVary    bool
		wantMethods bool
	}{
		{name: "listed origin", allowed: []string{"https://club.example.com"}, method: http.MethodGet, origin: "https://club.example.com", wantCode: http.StatusOK, wantAllow: "https://club.example.com", wantVary: true, wantMethods: true},
		{name: "wildcard preflight", allowed: []string{"*"}, method: http.MethodOptions, origin: "https://club.example.com", wantCode: http.StatusNoContent, wantAllow: "*", wantMethods: true},
		{name: "unlisted origin", allowed: []string{"https://club.example.com"}, method: http.MethodGet, origin: "https://other.example.com", wantCode: http.StatusOK},
		{name: "unlisted preflight still short circuits", allowed: []string{" "}, method: http.MethodOptions, origin: "https://other.example.com", wantCode: http.StatusNoContent},
		{name: "no origin header", allowed: []string{"*"}, method: http.MethodOptions, origin: "", wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			req := httptest.NewRequest(tt.method, path, nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()

			CORS(tt.allowed, next).ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected status %d, got %d", tt.wantCode, rec.Code)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
			}
			if got := rec.Header().Get("Vary") == "Origin"; got != tt.wantVary {
				t.Fatalf("unexpected Vary header: %q", rec.Header().Get("Vary"))
			}
			if got := rec.Header().Get("Access-Control-Allow-Methods") != ""; got != tt.wantMethods {
				t.Fatalf("unexpected Access-Control-Allow-Methods: %q", rec.Header().Get("Access-Control-Allow-Methods"))
			}
		})
	}
}

func TestRecoverPanic(t *testing.T) {
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("nil selection config")
	})
	req := httptest.NewRequest(http.MethodGet, "/v1/matches/match-riverside-01/recommendation", nil)
	rec := httptest.NewRecorder()

	recoverPanic(logging.NewNop(), next).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestRequestLogging_RecordsStatus(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	RequestLogging(logging.NewNop(), next).ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected handler status to pass through, got %d", rec.Code)
	}
}
