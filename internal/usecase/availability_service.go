package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/cricket-club/internal/domain/availability"
	"github.com/riskibarqy/cricket-club/internal/domain/match"
	"github.com/riskibarqy/cricket-club/internal/domain/membership"
	"github.com/riskibarqy/cricket-club/internal/domain/player"
)

type SetAvailabilityInput struct {
	MatchID  string
	PlayerID string
	Status   string
}

type AvailabilityService struct {
	matchRepo        match.Repository
	playerRepo       player.Repository
	availabilityRepo availability.Repository
	access           clubAccess
	now              func() time.Time
}

func NewAvailabilityService(
	matchRepo match.Repository,
	playerRepo player.Repository,
	availabilityRepo availability.Repository,
	membershipRepo membership.Repository,
) *AvailabilityService {
	return &AvailabilityService{
		matchRepo:        matchRepo,
		playerRepo:       playerRepo,
		availabilityRepo: availabilityRepo,
		access:           clubAccess{memberships: membershipRepo},
		now:              time.Now,
	}
}

// Set records a player's availability response for a match, replacing any earlier response.
// Captains and admins enter responses on behalf of their players.
func (s *AvailabilityService) Set(ctx context.Context, userID string, input SetAvailabilityInput) (availability.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AvailabilityService.Set")
	defer span.End()

	input.PlayerID = strings.TrimSpace(input.PlayerID)
	if input.PlayerID == "" {
		return availability.Record{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	status, err := availability.ParseStatus(strings.TrimSpace(input.Status))
	if err != nil {
		return availability.Record{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	m, err := getMatch(ctx, s.matchRepo, input.MatchID)
	if err != nil {
		return availability.Record{}, err
	}
	if err := s.access.require(ctx, m.ClubID, userID, selectorRoles...); err != nil {
		return availability.Record{}, err
	}
	if _, err := clubPlayer(ctx, s.playerRepo, m.ClubID, input.PlayerID); err != nil {
		return availability.Record{}, err
	}

	record := availability.Record{
		MatchID:   m.ID,
		PlayerID:  input.PlayerID,
		Status:    status,
		UpdatedAt: s.now().UTC(),
	}
	if err := s.availabilityRepo.Upsert(ctx, record); err != nil {
		return availability.Record{}, fmt.Errorf("upsert availability: %w", err)
	}

	return record, nil
}
