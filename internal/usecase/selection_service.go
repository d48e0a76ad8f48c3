package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/cricket-club/internal/domain/match"
	"github.com/riskibarqy/cricket-club/internal/domain/membership"
	"github.com/riskibarqy/cricket-club/internal/domain/player"
	"github.com/riskibarqy/cricket-club/internal/domain/selection"
)

type TeamSelectionEntry struct {
	PlayerID        string
	BattingPosition int
	IsCaptain       bool
	IsWicketkeeper  bool
}

// SelectionService reads and writes the team captains pick for a match.
type SelectionService struct {
	matchRepo     match.Repository
	playerRepo    player.Repository
	selectionRepo selection.Repository
	tx            Transactor
	access        clubAccess
	now           func() time.Time
}

func NewSelectionService(
	matchRepo match.Repository,
	playerRepo player.Repository,
	selectionRepo selection.Repository,
	membershipRepo membership.Repository,
	tx Transactor,
) *SelectionService {
	return &SelectionService{
		matchRepo:     matchRepo,
		playerRepo:    playerRepo,
		selectionRepo: selectionRepo,
		tx:            tx,
		access:        clubAccess{memberships: membershipRepo},
		now:           time.Now,
	}
}

func (s *SelectionService) List(ctx context.Context, userID, matchID string) ([]selection.TeamSelection, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.List", matchAttr(matchID))
	defer span.End()

	m, err := getMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return nil, err
	}
	if err := s.access.require(ctx, m.ClubID, userID, readerRoles...); err != nil {
		return nil, err
	}

	items, err := s.selectionRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("list team selections: %w", err)
	}
	return items, nil
}

// Replace swaps the whole selection list of the match for entries. An empty list clears it.
func (s *SelectionService) Replace(ctx context.Context, userID, matchID string, entries []TeamSelectionEntry) (_ []selection.TeamSelection, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.Replace", matchAttr(matchID))
	defer func() { endSpan(span, err) }()

	m, err := getMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return nil, err
	}
	if err := s.access.require(ctx, m.ClubID, userID, selectorRoles...); err != nil {
		return nil, err
	}

	createdAt := s.now().UTC()
	rows := make([]selection.TeamSelection, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, selection.TeamSelection{
			MatchID:         m.ID,
			PlayerID:        strings.TrimSpace(e.PlayerID),
			BattingPosition: e.BattingPosition,
			IsCaptain:       e.IsCaptain,
			IsWicketkeeper:  e.IsWicketkeeper,
			CreatedAt:       createdAt,
		})
	}
	if err := selection.ValidateTeam(rows); err != nil {
		if errors.Is(err, selection.ErrInvalidTeam) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, err
	}
	if err := s.requireClubPlayers(ctx, m.ClubID, rows); err != nil {
		return nil, err
	}

	if err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.selectionRepo.ReplaceForMatch(ctx, m.ID, rows)
	}); err != nil {
		return nil, fmt.Errorf("replace team selections: %w", err)
	}

	items, err := s.selectionRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("list team selections: %w", err)
	}
	return items, nil
}

func (s *SelectionService) requireClubPlayers(ctx context.Context, clubID string, rows []selection.TeamSelection) error {
	if len(rows) == 0 {
		return nil
	}
	players, err := s.playerRepo.ListByClub(ctx, clubID)
	if err != nil {
		return fmt.Errorf("list club players: %w", err)
	}
	known := make(map[string]struct{}, len(players))
	for _, p := range players {
		known[p.ID] = struct{}{}
	}
	for _, row := range rows {
		if _, ok := known[row.PlayerID]; !ok {
			return fmt.Errorf("%w: player=%s", ErrNotFound, row.PlayerID)
		}
	}
	return nil
}
