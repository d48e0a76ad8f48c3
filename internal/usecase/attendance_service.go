package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/cricket-club/internal/domain/attendance"
	"github.com/riskibarqy/cricket-club/internal/domain/match"
	"github.com/riskibarqy/cricket-club/internal/domain/membership"
	"github.com/riskibarqy/cricket-club/internal/domain/player"
)

type AttendanceEntry struct {
	PlayerID string
	Status   string
	Notes    string
}

type AttendanceService struct {
	matchRepo      match.Repository
	playerRepo     player.Repository
	attendanceRepo attendance.Repository
	access         clubAccess
	now            func() time.Time
}

func NewAttendanceService(
	matchRepo match.Repository,
	playerRepo player.Repository,
	attendanceRepo attendance.Repository,
	membershipRepo membership.Repository,
) *AttendanceService {
	return &AttendanceService{
		matchRepo:      matchRepo,
		playerRepo:     playerRepo,
		attendanceRepo: attendanceRepo,
		access:         clubAccess{memberships: membershipRepo},
		now:            time.Now,
	}
}

// Record upserts practice attendance for every entry of the fixture.
func (s *AttendanceService) Record(ctx context.Context, userID, fixtureID string, entries []AttendanceEntry) ([]attendance.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AttendanceService.Record")
	defer span.End()

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: at least one attendance entry is required", ErrInvalidInput)
	}

	fixture, err := getMatch(ctx, s.matchRepo, fixtureID)
	if err != nil {
		return nil, err
	}
	if err := s.access.require(ctx, fixture.ClubID, userID, selectorRoles...); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	seen := make(map[string]struct{}, len(entries))
	records := make([]attendance.Record, 0, len(entries))
	for _, entry := range entries {
		playerID := strings.TrimSpace(entry.PlayerID)
		if playerID == "" {
			return nil, fmt.Errorf("%w: player id is required", ErrInvalidInput)
		}
		if _, dup := seen[playerID]; dup {
			return nil, fmt.Errorf("%w: duplicate attendance entry for player=%s", ErrInvalidInput, playerID)
		}
		seen[playerID] = struct{}{}

		status, err := attendance.ParseStatus(strings.TrimSpace(entry.Status))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if _, err := clubPlayer(ctx, s.playerRepo, fixture.ClubID, playerID); err != nil {
			return nil, err
		}

		records = append(records, attendance.Record{
			FixtureID:  fixture.ID,
			PlayerID:   playerID,
			Status:     status,
			Notes:      strings.TrimSpace(entry.Notes),
			RecordedAt: now,
		})
	}

	if err := s.attendanceRepo.Upsert(ctx, records); err != nil {
		return nil, fmt.Errorf("upsert practice attendance: %w", err)
	}

	return records, nil
}
