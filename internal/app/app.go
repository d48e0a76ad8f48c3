package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/cricket-club/internal/config"
	"github.com/riskibarqy/cricket-club/internal/infrastructure/account/anubis"
	"github.com/riskibarqy/cricket-club/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/cricket-club/internal/platform/id"
	"github.com/riskibarqy/cricket-club/internal/platform/logging"
	"github.com/riskibarqy/cricket-club/internal/platform/resilience"
	"github.com/riskibarqy/cricket-club/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewHTTPServer wires storage, services and the router. The returned func releases storage.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	st, err := newStorage(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	ids := idgen.NewUUIDGenerator()

	recommendationSvc := usecase.NewRecommendationService(usecase.RecommendationRepositories{
		Matches:      st.matches,
		Players:      st.players,
		Availability: st.availability,
		Selections:   st.selections,
		Configs:      st.configs,
		Overrides:    st.overrides,
		Attendance:   st.attendance,
		Withdrawals:  st.withdrawals,
		Payments:     st.payments,
		Stats:        st.stats,
		Memberships:  st.memberships,
	}, st.tx, logger, cfg.ReadFanoutWorkers)
	lifecycleSvc := usecase.NewLifecycleService(
		st.matches,
		st.players,
		st.lifecycle,
		st.selections,
		st.availability,
		st.payments,
		st.withdrawals,
		st.configs,
		st.memberships,
		st.tx,
		ids,
	)
	configSvc := usecase.NewSelectionConfigService(st.configs, st.overrides, st.players, st.memberships)
	selectionSvc := usecase.NewSelectionService(st.matches, st.players, st.selections, st.memberships, st.tx)
	withdrawalSvc := usecase.NewWithdrawalService(st.matches, st.players, st.configs, st.withdrawals, st.memberships)
	availabilitySvc := usecase.NewAvailabilityService(st.matches, st.players, st.availability, st.memberships)
	attendanceSvc := usecase.NewAttendanceService(st.matches, st.players, st.attendance, st.memberships)

	anubisClient := anubis.NewClient(
		&http.Client{
			Timeout:   cfg.AnubisTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		cfg.AnubisBaseURL,
		cfg.AnubisIntrospectURL,
		cfg.AnubisAdminKey,
		resilience.CircuitBreakerConfig{
			Enabled:          cfg.AnubisCircuitEnabled,
			FailureThreshold: cfg.AnubisCircuitFailureCount,
			OpenTimeout:      cfg.AnubisCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AnubisCircuitHalfOpenMaxReq,
		},
		anubis.Options{CacheTTL: cfg.AnubisCacheTTL},
		logger,
	)

	handler := httpapi.NewHandler(httpapi.Services{
		Recommendation:  recommendationSvc,
		Lifecycle:       lifecycleSvc,
		SelectionConfig: configSvc,
		Selection:       selectionSvc,
		Withdrawal:      withdrawalSvc,
		Availability:    availabilitySvc,
		Attendance:      attendanceSvc,
	}, logger)
	router := httpapi.NewRouter(handler, anubisClient, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, st.close, nil
}
