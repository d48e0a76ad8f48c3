package usecase

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/cricket-club/internal/domain/stats"
	"github.com/riskibarqy/cricket-club/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/cricket-club/internal/platform/logging"
)

var testNow = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

type sequenceIDGenerator struct {
	next atomic.Int64
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	return fmt.Sprintf("audit-%03d", g.next.Add(1)), nil
}

// testEnv wires every service to one shared in-memory store seeded with the demo club.
type testEnv struct {
	matches      *memory.MatchRepository
	players      *memory.PlayerRepository
	memberships  *memory.MembershipRepository
	availability *memory.AvailabilityRepository
	selections   *memory.SelectionRepository
	configs      *memory.SelectionConfigRepository
	overrides    *memory.ScoreOverrideRepository
	attendance   *memory.AttendanceRepository
	withdrawals  *memory.WithdrawalRepository
	payments     *memory.PaymentRepository
	stats        *memory.StatsRepository
	lifecycle    *memory.LifecycleRepository
	tx           *memory.Transactor
}

func newTestEnv() *testEnv {
	matches := memory.NewMatchRepository(memory.SeedMatches(testNow))
	return &testEnv{
		matches:      matches,
		players:      memory.NewPlayerRepository(memory.SeedPlayers()),
		memberships:  memory.NewMembershipRepository(memory.SeedMemberships()),
		availability: memory.NewAvailabilityRepository(memory.SeedAvailability(testNow)),
		selections:   memory.NewSelectionRepository(matches, nil),
		configs:      memory.NewSelectionConfigRepository(),
		overrides:    memory.NewScoreOverrideRepository(),
		attendance:   memory.NewAttendanceRepository(),
		withdrawals:  memory.NewWithdrawalRepository(),
		payments:     memory.NewPaymentRepository(),
		stats:        memory.NewStatsRepository(memory.SeedStats(testNow)),
		lifecycle:    memory.NewLifecycleRepository(),
		tx:           memory.NewTransactor(),
	}
}

func (e *testEnv) recommendationService(provider stats.Provider) *RecommendationService {
	if provider == nil {
		provider = e.stats
	}
	svc := NewRecommendationService(RecommendationRepositories{
		Matches:      e.matches,
		Players:      e.players,
		Availability: e.availability,
		Selections:   e.selections,
		Configs:      e.configs,
		Overrides:    e.overrides,
		Attendance:   e.attendance,
		Withdrawals:  e.withdrawals,
		Payments:     e.payments,
		Stats:        provider,
		Memberships:  e.memberships,
	}, e.tx, logging.NewNop(), 4)
	svc.now = fixedNow
	return svc
}

func (e *testEnv) lifecycleService() *LifecycleService {
	svc := NewLifecycleService(
		e.matches,
		e.players,
		e.lifecycle,
		e.selections,
		e.availability,
		e.payments,
		e.withdrawals,
		e.configs,
		e.memberships,
		e.tx,
		&sequenceIDGenerator{},
	)
	svc.now = fixedNow
	return svc
}

func (e *testEnv) configService() *SelectionConfigService {
	svc := NewSelectionConfigService(e.configs, e.overrides, e.players, e.memberships)
	svc.now = fixedNow
	return svc
}

func (e *testEnv) withdrawalService() *WithdrawalService {
	svc := NewWithdrawalService(e.matches, e.players, e.configs, e.withdrawals, e.memberships)
	svc.now = fixedNow
	return svc
}

func (e *testEnv) attendanceService() *AttendanceService {
	svc := NewAttendanceService(e.matches, e.players, e.attendance, e.memberships)
	svc.now = fixedNow
	return svc
}

func (e *testEnv) availabilityService() *AvailabilityService {
	svc := NewAvailabilityService(e.matches, e.players, e.availability, e.memberships)
	svc.now = fixedNow
	return svc
}

func (e *testEnv) selectionService() *SelectionService {
	svc := NewSelectionService(e.matches, e.players, e.selections, e.memberships, e.tx)
	svc.now = fixedNow
	return svc
}
