package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/cricket-club/internal/domain/match"
	"github.com/riskibarqy/cricket-club/internal/domain/membership"
	"github.com/riskibarqy/cricket-club/internal/domain/player"
	"github.com/riskibarqy/cricket-club/internal/domain/selection"
	"github.com/riskibarqy/cricket-club/internal/domain/withdrawal"
)

type RecordSelectionWithdrawalInput struct {
	MatchID  string
	PlayerID string
	// MatchTime defaults to the match kickoff when zero.
	MatchTime time.Time
	Reason    string
}

// WithdrawalService writes the penalty ledger. It is independent of the lifecycle withdrawal.
type WithdrawalService struct {
	matchRepo      match.Repository
	playerRepo     player.Repository
	configRepo     selection.ConfigRepository
	withdrawalRepo withdrawal.Repository
	access         clubAccess
	now            func() time.Time
}

func NewWithdrawalService(
	matchRepo match.Repository,
	playerRepo player.Repository,
	configRepo selection.ConfigRepository,
	withdrawalRepo withdrawal.Repository,
	membershipRepo membership.Repository,
) *WithdrawalService {
	return &WithdrawalService{
		matchRepo:      matchRepo,
		playerRepo:     playerRepo,
		configRepo:     configRepo,
		withdrawalRepo: withdrawalRepo,
		access:         clubAccess{memberships: membershipRepo},
		now:            time.Now,
	}
}

// Record evaluates lateness against the club policy in force now and stores the snapshot.
func (s *WithdrawalService) Record(ctx context.Context, userID string, input RecordSelectionWithdrawalInput) (withdrawal.Withdrawal, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WithdrawalService.Record")
	defer span.End()

	input.PlayerID = strings.TrimSpace(input.PlayerID)
	if input.PlayerID == "" {
		return withdrawal.Withdrawal{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	m, err := getMatch(ctx, s.matchRepo, input.MatchID)
	if err != nil {
		return withdrawal.Withdrawal{}, err
	}
	if err := s.access.require(ctx, m.ClubID, userID, selectorRoles...); err != nil {
		return withdrawal.Withdrawal{}, err
	}
	if _, err := clubPlayer(ctx, s.playerRepo, m.ClubID, input.PlayerID); err != nil {
		return withdrawal.Withdrawal{}, err
	}

	cfg, err := loadClubConfig(ctx, s.configRepo, m.ClubID)
	if err != nil {
		return withdrawal.Withdrawal{}, err
	}

	matchTime := input.MatchTime
	if matchTime.IsZero() {
		matchTime = m.StartsAt
	}
	now := s.now().UTC()
	isLate, penalty := withdrawal.Evaluate(matchTime, now, withdrawal.Policy{
		LateHours: cfg.LateWithdrawalHours,
		Penalty:   cfg.LateWithdrawalPenalty,
	})

	item, err := s.withdrawalRepo.Upsert(ctx, withdrawal.Withdrawal{
		MatchID:        m.ID,
		PlayerID:       input.PlayerID,
		MatchTime:      matchTime.UTC(),
		WithdrawnAt:    now,
		IsLate:         isLate,
		PenaltyApplied: penalty,
		Reason:         strings.TrimSpace(input.Reason),
	})
	if err != nil {
		return withdrawal.Withdrawal{}, fmt.Errorf("upsert selection withdrawal: %w", err)
	}

	return item, nil
}
