package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cricket-club/internal/config"
	"github.com/riskibarqy/cricket-club/internal/domain/attendance"
	"github.com/riskibarqy/cricket-club/internal/domain/availability"
	"github.com/riskibarqy/cricket-club/internal/domain/lifecycle"
	"github.com/riskibarqy/cricket-club/internal/domain/match"
	"github.com/riskibarqy/cricket-club/internal/domain/membership"
	"github.com/riskibarqy/cricket-club/internal/domain/payment"
	"github.com/riskibarqy/cricket-club/internal/domain/player"
	"github.com/riskibarqy/cricket-club/internal/domain/selection"
	"github.com/riskibarqy/cricket-club/internal/domain/stats"
	"github.com/riskibarqy/cricket-club/internal/domain/withdrawal"
	cacherepo "github.com/riskibarqy/cricket-club/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/cricket-club/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/cricket-club/internal/infrastructure/repository/postgres"
	basecache "github.com/riskibarqy/cricket-club/internal/platform/cache"
	"github.com/riskibarqy/cricket-club/internal/platform/logging"
	"github.com/riskibarqy/cricket-club/internal/usecase"
)

type storage struct {
	matches      match.Repository
	players      player.Repository
	memberships  membership.Repository
	availability availability.Repository
	selections   selection.Repository
	configs      selection.ConfigRepository
	overrides    selection.OverrideRepository
	withdrawals  withdrawal.Repository
	attendance   attendance.Repository
	payments     payment.Repository
	stats        stats.Provider
	lifecycle    lifecycle.Repository
	tx           usecase.Transactor
	close        func() error
}

func newStorage(ctx context.Context, cfg config.Config, logger *logging.Logger) (storage, error) {
	var (
		st  storage
		err error
	)
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		st = newMemoryStorage(time.Now())
		logger.Info("storage ready", "driver", config.StorageDriverMemory)
	case config.StorageDriverPostgres:
		st, err = newPostgresStorage(ctx, cfg, logger)
		if err != nil {
			return storage{}, err
		}
	default:
		return storage{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		st.players = cacherepo.NewPlayerRepository(st.players, store)
		st.memberships = cacherepo.NewMembershipRepository(st.memberships, store)
		st.configs = cacherepo.NewSelectionConfigRepository(st.configs, store)
		logger.Info("repository cache enabled", "ttl", cfg.CacheTTL.String())
	}

	return st, nil
}

// newMemoryStorage serves the seeded demo club out of process memory.
func newMemoryStorage(now time.Time) storage {
	matches := memory.NewMatchRepository(memory.SeedMatches(now))
	return storage{
		matches:      matches,
		players:      memory.NewPlayerRepository(memory.SeedPlayers()),
		memberships:  memory.NewMembershipRepository(memory.SeedMemberships()),
		availability: memory.NewAvailabilityRepository(memory.SeedAvailability(now)),
		selections:   memory.NewSelectionRepository(matches, nil),
		configs:      memory.NewSelectionConfigRepository(),
		overrides:    memory.NewScoreOverrideRepository(),
		withdrawals:  memory.NewWithdrawalRepository(),
		attendance:   memory.NewAttendanceRepository(),
		payments:     memory.NewPaymentRepository(),
		stats:        memory.NewStatsRepository(memory.SeedStats(now)),
		lifecycle:    memory.NewLifecycleRepository(),
		tx:           memory.NewTransactor(),
		close:        func() error { return nil },
	}
}

func newPostgresStorage(ctx context.Context, cfg config.Config, logger *logging.Logger) (storage, error) {
	db, err := openDB(ctx, cfg)
	if err != nil {
		return storage{}, err
	}

	if cfg.DBBootstrapSeed {
		if err := postgres.BootstrapSeed(ctx, db, time.Now()); err != nil {
			_ = db.Close()
			return storage{}, fmt.Errorf("bootstrap seed: %w", err)
		}
	}
	logger.Info("storage ready",
		"driver", config.StorageDriverPostgres,
		"dsn", redactedDSN(cfg.DBURL),
		"bootstrap_seed", cfg.DBBootstrapSeed,
	)

	return postgresStorage(db), nil
}

func postgresStorage(db *sqlx.DB) storage {
	return storage{
		matches:      postgres.NewMatchRepository(db),
		players:      postgres.NewPlayerRepository(db),
		memberships:  postgres.NewMembershipRepository(db),
		availability: postgres.NewAvailabilityRepository(db),
		selections:   postgres.NewSelectionRepository(db),
		configs:      postgres.NewSelectionConfigRepository(db),
		overrides:    postgres.NewScoreOverrideRepository(db),
		withdrawals:  postgres.NewWithdrawalRepository(db),
		attendance:   postgres.NewAttendanceRepository(db),
		payments:     postgres.NewPaymentRepository(db),
		stats:        postgres.NewStatsRepository(db),
		lifecycle:    postgres.NewLifecycleRepository(db),
		tx:           postgres.NewTransactor(db),
		close:        db.Close,
	}
}
