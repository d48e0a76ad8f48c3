package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/cricket-club/internal/domain/attendance"
	"github.com/riskibarqy/cricket-club/internal/domain/availability"
	"github.com/riskibarqy/cricket-club/internal/domain/match"
	"github.com/riskibarqy/cricket-club/internal/domain/membership"
	"github.com/riskibarqy/cricket-club/internal/domain/payment"
	"github.com/riskibarqy/cricket-club/internal/domain/player"
	"github.com/riskibarqy/cricket-club/internal/domain/recommendation"
	"github.com/riskibarqy/cricket-club/internal/domain/selection"
	"github.com/riskibarqy/cricket-club/internal/domain/stats"
	"github.com/riskibarqy/cricket-club/internal/domain/withdrawal"
	"github.com/riskibarqy/cricket-club/internal/platform/cache"
	"github.com/riskibarqy/cricket-club/internal/platform/logging"
	"github.com/shopspring/decimal"
)

const (
	defaultFanoutWorkers   = 8
	noUpcomingMatchMessage = "No upcoming matches found"
)

// RecommendationRepositories groups the stores the recommendation orchestrator reads.
type RecommendationRepositories struct {
	Matches      match.Repository
	Players      player.Repository
	Availability availability.Repository
	Selections   selection.Repository
	Configs      selection.ConfigRepository
	Overrides    selection.OverrideRepository
	Attendance   attendance.Repository
	Withdrawals  withdrawal.Repository
	Payments     payment.Repository
	Stats        stats.Provider
	Memberships  membership.Repository
	Distribution recommendation.DistributionPolicy
}

type NextMatchRecommendation struct {
	MatchID            string
	MatchDate          time.Time
	Opponent           string
	TeamName           string
	PlayersRecommended int
	Message            string
}

type SimulationStatus struct {
	TotalUpcomingMatches     int
	MatchesWithSelections    int
	MatchesWithoutSelections int
	NextMatchDate            *time.Time
	NextMatchOpponent        string
	NextMatchHasSelections   bool
}

type RecommendationService struct {
	repos        RecommendationRepositories
	tx           Transactor
	logger       *logging.Logger
	workers      int
	access       clubAccess
	now          func() time.Time
}

func NewRecommendationService(
	repos RecommendationRepositories,
	tx Transactor,
	logger *logging.Logger,
	workers int,
) *RecommendationService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = defaultFanoutWorkers
	}
	if repos.Distribution == nil {
		repos.Distribution = recommendation.FairnessDistribution{}
	}

	return &RecommendationService{
		repos:        repos,
		tx:           tx,
		logger:       logger,
		workers:      workers,
		access:       clubAccess{memberships: repos.Memberships},
		now:          time.Now,
	}
}

// GetRecommendation scores every available player of the match and assembles the squad.
// The result is recomputed on each call.
func (s *RecommendationService) GetRecommendation(ctx context.Context, userID, matchID string) (_ []recommendation.ScoredPlayer, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecommendationService.GetRecommendation", matchAttr(matchID))
	defer func() { endSpan(span, err) }()

	m, err := getMatch(ctx, s.repos.Matches, matchID)
	if err != nil {
		return nil, err
	}
	if err := s.access.require(ctx, m.ClubID, userID, readerRoles...); err != nil {
		return nil, err
	}

	return s.recommend(ctx, m)
}

// scoringInputs is the consistent snapshot of mutable club state a recommendation is built from.
type scoringInputs struct {
	cfg        selection.Config
	candidates []recommendation.Candidate
	maxSel     int
}

func (s *RecommendationService) recommend(ctx context.Context, m match.Match) ([]recommendation.ScoredPlayer, error) {
	var in scoringInputs
	err := s.tx.WithinReadTx(ctx, func(ctx context.Context) error {
		var err error
		in, err = s.loadInputs(cache.Bypass(ctx), m)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(in.candidates) == 0 {
		return []recommendation.ScoredPlayer{}, nil
	}

	scored := recommendation.NewScorer(in.cfg, s.repos.Distribution).Score(in.candidates, in.maxSel)
	assembly := recommendation.Assemble(scored, in.cfg)
	assembly = recommendation.AssignLeadership(assembly, in.cfg.AutoSelectCaptain, in.cfg.AutoSelectViceCaptain)

	s.logger.DebugContext(ctx, "recommendation computed",
		"match_id", m.ID,
		"candidates", len(in.candidates),
		"recommended", len(assembly.Recommended),
		"reserves", len(assembly.Reserves),
	)

	return assembly.Players(), nil
}

func (s *RecommendationService) loadInputs(ctx context.Context, m match.Match) (scoringInputs, error) {
	cfg, err := loadClubConfig(ctx, s.repos.Configs, m.ClubID)
	if err != nil {
		return scoringInputs{}, err
	}

	records, err := s.repos.Availability.ListByMatch(ctx, m.ID)
	if err != nil {
		return scoringInputs{}, fmt.Errorf("list availability: %w", err)
	}
	available := make(map[string]struct{}, len(records))
	for _, record := range records {
		if record.Status == availability.StatusAvailable {
			available[record.PlayerID] = struct{}{}
		}
	}
	if len(available) == 0 {
		return scoringInputs{cfg: cfg}, nil
	}

	players, err := s.repos.Players.ListByClub(ctx, m.ClubID)
	if err != nil {
		return scoringInputs{}, fmt.Errorf("list club players: %w", err)
	}
	candidates := make([]recommendation.Candidate, 0, len(available))
	playerIDs := make([]string, 0, len(available))
	for _, p := range players {
		if _, ok := available[p.ID]; !ok {
			continue
		}
		candidates = append(candidates, recommendation.Candidate{Player: p})
		playerIDs = append(playerIDs, p.ID)
	}

	overrides, err := s.repos.Overrides.ListByClub(ctx, m.ClubID)
	if err != nil {
		return scoringInputs{}, fmt.Errorf("list score overrides: %w", err)
	}
	overrideByPlayer := make(map[string]decimal.Decimal, len(overrides))
	for _, item := range overrides {
		overrideByPlayer[item.PlayerID] = item.BaseScore
	}

	selectionCounts, err := s.repos.Selections.CountsByClub(ctx, m.ClubID)
	if err != nil {
		return scoringInputs{}, fmt.Errorf("count club selections: %w", err)
	}
	attendanceByPlayer, err := s.repos.Attendance.SummaryByPlayers(ctx, playerIDs)
	if err != nil {
		return scoringInputs{}, fmt.Errorf("summarise practice attendance: %w", err)
	}
	lateByPlayer, err := s.repos.Withdrawals.LateCountsByPlayers(ctx, playerIDs)
	if err != nil {
		return scoringInputs{}, fmt.Errorf("count late withdrawals: %w", err)
	}
	payments, err := s.repos.Payments.StatusByMatch(ctx, m.ID)
	if err != nil {
		return scoringInputs{}, fmt.Errorf("get payment status: %w", err)
	}

	// last read of the snapshot: a failed stats query leaves the transaction unusable
	recent, err := s.repos.Stats.RecentByPlayers(ctx, playerIDs, recommendation.RecentMatchWindow)
	if err != nil {
		s.logger.WarnContext(ctx, "load recent stats failed, scoring without history",
			"match_id", m.ID,
			"error", err,
		)
		recent = nil
	}

	for i := range candidates {
		id := candidates[i].Player.ID
		candidates[i].RecentStats = recent[id]
		if base, ok := overrideByPlayer[id]; ok {
			base := base
			candidates[i].BaseOverride = &base
		}
		candidates[i].Selections = selectionCounts[id]
		candidates[i].Attendance = attendanceByPlayer[id]
		candidates[i].LateWithdrawals = lateByPlayer[id]
		candidates[i].IsPaid = payments[id] == payment.StatusPaid
	}

	return scoringInputs{
		cfg:        cfg,
		candidates: candidates,
		maxSel:     recommendation.MaxSelections(selectionCounts),
	}, nil
}

// RecommendNextMatch recomputes the recommendation for the club's next upcoming match.
// With afterDate set, only matches on later calendar days qualify.
func (s *RecommendationService) RecommendNextMatch(ctx context.Context, userID, clubID string, afterDate *time.Time) (_ NextMatchRecommendation, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecommendationService.RecommendNextMatch", clubAttr(clubID))
	defer func() { endSpan(span, err) }()

	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return NextMatchRecommendation{}, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}
	if err := s.access.require(ctx, clubID, userID, selectorRoles...); err != nil {
		return NextMatchRecommendation{}, err
	}

	from := startOfDay(s.now())
	if afterDate != nil {
		from = startOfDay(*afterDate).AddDate(0, 0, 1)
	}

	next, found, err := s.firstUpcoming(ctx, clubID, from)
	if err != nil {
		return NextMatchRecommendation{}, err
	}
	if !found {
		return NextMatchRecommendation{Message: noUpcomingMatchMessage}, nil
	}

	players, err := s.recommend(ctx, next)
	if err != nil {
		return NextMatchRecommendation{}, err
	}

	return nextMatchResult(next, players), nil
}

// ResetSelectionsFirstMatch clears the admin selections of the first upcoming match and
// recomputes its recommendation.
func (s *RecommendationService) ResetSelectionsFirstMatch(ctx context.Context, userID, clubID string) (NextMatchRecommendation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecommendationService.ResetSelectionsFirstMatch", clubAttr(clubID))
	defer span.End()

	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return NextMatchRecommendation{}, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}
	if err := s.access.require(ctx, clubID, userID, selectorRoles...); err != nil {
		return NextMatchRecommendation{}, err
	}

	next, found, err := s.firstUpcoming(ctx, clubID, startOfDay(s.now()))
	if err != nil {
		return NextMatchRecommendation{}, err
	}
	if !found {
		return NextMatchRecommendation{Message: noUpcomingMatchMessage}, nil
	}

	cleared := 0
	if err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		cleared, err = s.repos.Selections.DeleteByMatch(ctx, next.ID)
		return err
	}); err != nil {
		return NextMatchRecommendation{}, fmt.Errorf("clear team selections: %w", err)
	}
	s.logger.InfoContext(ctx, "team selections reset", "match_id", next.ID, "cleared", cleared)

	players, err := s.recommend(ctx, next)
	if err != nil {
		return NextMatchRecommendation{}, err
	}

	return nextMatchResult(next, players), nil
}

// ClearSelections deletes every admin selection of the match and returns how many were removed.
func (s *RecommendationService) ClearSelections(ctx context.Context, userID, matchID string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecommendationService.ClearSelections", matchAttr(matchID))
	defer span.End()

	m, err := getMatch(ctx, s.repos.Matches, matchID)
	if err != nil {
		return 0, err
	}
	if err := s.access.require(ctx, m.ClubID, userID, selectorRoles...); err != nil {
		return 0, err
	}

	cleared := 0
	if err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		cleared, err = s.repos.Selections.DeleteByMatch(ctx, m.ID)
		return err
	}); err != nil {
		return 0, fmt.Errorf("clear team selections: %w", err)
	}

	return cleared, nil
}

func (s *RecommendationService) GetSimulationStatus(ctx context.Context, userID, clubID string) (SimulationStatus, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecommendationService.GetSimulationStatus", clubAttr(clubID))
	defer span.End()

	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return SimulationStatus{}, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}
	if err := s.access.require(ctx, clubID, userID, readerRoles...); err != nil {
		return SimulationStatus{}, err
	}

	upcoming, err := s.repos.Matches.ListUpcoming(ctx, clubID, startOfDay(s.now()), time.Time{})
	if err != nil {
		return SimulationStatus{}, fmt.Errorf("list upcoming matches: %w", err)
	}

	counts, err := s.countSelections(ctx, upcoming)
	if err != nil {
		return SimulationStatus{}, err
	}

	out := SimulationStatus{TotalUpcomingMatches: len(upcoming)}
	for i, m := range upcoming {
		count := counts[i]
		if count > 0 {
			out.MatchesWithSelections++
		}
		if i == 0 {
			startsAt := m.StartsAt
			out.NextMatchDate = &startsAt
			out.NextMatchOpponent = m.Opponent
			out.NextMatchHasSelections = count > 0
		}
	}
	out.MatchesWithoutSelections = out.TotalUpcomingMatches - out.MatchesWithSelections

	return out, nil
}

// countSelections counts the team selections of each match on a bounded worker pool.
func (s *RecommendationService) countSelections(ctx context.Context, matches []match.Match) ([]int, error) {
	counts := make([]int, len(matches))
	if len(matches) == 0 {
		return counts, nil
	}

	pool, err := ants.NewPool(min(s.workers, len(matches)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu       sync.Mutex
		workers  sync.WaitGroup
		firstErr error
	)
	for i, m := range matches {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			count, err := s.repos.Selections.CountByMatch(ctx, m.ID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("count team selections: %w", err)
				}
				return
			}
			counts[i] = count
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return counts, nil
}

func (s *RecommendationService) firstUpcoming(ctx context.Context, clubID string, from time.Time) (match.Match, bool, error) {
	items, err := s.repos.Matches.ListUpcoming(ctx, clubID, from, time.Time{})
	if err != nil {
		return match.Match{}, false, fmt.Errorf("list upcoming matches: %w", err)
	}
	if len(items) == 0 {
		return match.Match{}, false, nil
	}
	return items[0], true, nil
}

func nextMatchResult(m match.Match, players []recommendation.ScoredPlayer) NextMatchRecommendation {
	recommended := 0
	for _, p := range players {
		if p.IsRecommended {
			recommended++
		}
	}
	return NextMatchRecommendation{
		MatchID:            m.ID,
		MatchDate:          m.StartsAt,
		Opponent:           m.Opponent,
		TeamName:           m.TeamName,
		PlayersRecommended: recommended,
	}
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
