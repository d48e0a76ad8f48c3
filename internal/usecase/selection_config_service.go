package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/cricket-club/internal/domain/membership"
	"github.com/riskibarqy/cricket-club/internal/domain/player"
	"github.com/riskibarqy/cricket-club/internal/domain/selection"
	"github.com/shopspring/decimal"
)

type UpsertOverrideInput struct {
	ClubID    string
	PlayerID  string
	BaseScore decimal.Decimal
	Notes     string
}

type SelectionConfigService struct {
	configRepo   selection.ConfigRepository
	overrideRepo selection.OverrideRepository
	playerRepo   player.Repository
	access       clubAccess
	now          func() time.Time
}

func NewSelectionConfigService(
	configRepo selection.ConfigRepository,
	overrideRepo selection.OverrideRepository,
	playerRepo player.Repository,
	membershipRepo membership.Repository,
) *SelectionConfigService {
	return &SelectionConfigService{
		configRepo:   configRepo,
		overrideRepo: overrideRepo,
		playerRepo:   playerRepo,
		access:       clubAccess{memberships: membershipRepo},
		now:          time.Now,
	}
}

// GetConfig returns the stored config for the club, or the defaults when none was saved yet.
func (s *SelectionConfigService) GetConfig(ctx context.Context, userID, clubID string) (selection.Config, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionConfigService.GetConfig", clubAttr(clubID))
	defer span.End()

	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return selection.Config{}, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}
	if err := s.access.require(ctx, clubID, userID, readerRoles...); err != nil {
		return selection.Config{}, err
	}

	return loadClubConfig(ctx, s.configRepo, clubID)
}

// UpsertConfig merges patch into the current config. Omitted fields keep their value.
func (s *SelectionConfigService) UpsertConfig(ctx context.Context, userID, clubID string, patch selection.ConfigPatch) (selection.Config, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionConfigService.UpsertConfig", clubAttr(clubID))
	defer span.End()

	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return selection.Config{}, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}
	if err := s.access.require(ctx, clubID, userID, adminRoles...); err != nil {
		return selection.Config{}, err
	}

	current, err := loadClubConfig(ctx, s.configRepo, clubID)
	if err != nil {
		return selection.Config{}, err
	}

	next, err := patch.Apply(current)
	if err != nil {
		if errors.Is(err, selection.ErrInvalidConfig) {
			return selection.Config{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return selection.Config{}, err
	}
	next.ClubID = clubID
	next.UpdatedAt = s.now().UTC()

	if err := s.configRepo.Upsert(ctx, next); err != nil {
		return selection.Config{}, fmt.Errorf("upsert selection config: %w", err)
	}

	return next, nil
}

func (s *SelectionConfigService) ListOverrides(ctx context.Context, userID, clubID string) ([]selection.Override, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionConfigService.ListOverrides", clubAttr(clubID))
	defer span.End()

	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return nil, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}
	if err := s.access.require(ctx, clubID, userID, readerRoles...); err != nil {
		return nil, err
	}

	items, err := s.overrideRepo.ListByClub(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("list score overrides: %w", err)
	}

	return items, nil
}

// UpsertOverride creates or replaces the base score override of one player.
func (s *SelectionConfigService) UpsertOverride(ctx context.Context, userID string, input UpsertOverrideInput) (selection.Override, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionConfigService.UpsertOverride")
	defer span.End()

	input.ClubID = strings.TrimSpace(input.ClubID)
	input.PlayerID = strings.TrimSpace(input.PlayerID)
	input.Notes = strings.TrimSpace(input.Notes)
	if input.ClubID == "" || input.PlayerID == "" {
		return selection.Override{}, fmt.Errorf("%w: club id and player id are required", ErrInvalidInput)
	}
	if err := selection.ValidateBaseScore(input.BaseScore); err != nil {
		return selection.Override{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.access.require(ctx, input.ClubID, userID, adminRoles...); err != nil {
		return selection.Override{}, err
	}
	if _, err := clubPlayer(ctx, s.playerRepo, input.ClubID, input.PlayerID); err != nil {
		return selection.Override{}, err
	}

	item := selection.Override{
		ClubID:    input.ClubID,
		PlayerID:  input.PlayerID,
		BaseScore: input.BaseScore,
		Notes:     input.Notes,
		UpdatedAt: s.now().UTC(),
	}
	if err := s.overrideRepo.Upsert(ctx, item); err != nil {
		return selection.Override{}, fmt.Errorf("upsert score override: %w", err)
	}

	return item, nil
}

func (s *SelectionConfigService) DeleteOverride(ctx context.Context, userID, clubID, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionConfigService.DeleteOverride")
	defer span.End()

	clubID = strings.TrimSpace(clubID)
	playerID = strings.TrimSpace(playerID)
	if clubID == "" || playerID == "" {
		return fmt.Errorf("%w: club id and player id are required", ErrInvalidInput)
	}
	if err := s.access.require(ctx, clubID, userID, adminRoles...); err != nil {
		return err
	}

	deleted, err := s.overrideRepo.Delete(ctx, clubID, playerID)
	if err != nil {
		return fmt.Errorf("delete score override: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: no override for player=%s in club=%s", ErrNotFound, playerID, clubID)
	}

	return nil
}

func loadClubConfig(ctx context.Context, repo selection.ConfigRepository, clubID string) (selection.Config, error) {
	cfg, exists, err := repo.GetByClub(ctx, clubID)
	if err != nil {
		return selection.Config{}, fmt.Errorf("get selection config: %w", err)
	}
	if !exists {
		return selection.DefaultConfig(clubID), nil
	}

	return cfg, nil
}

func clubPlayer(ctx context.Context, repo player.Repository, clubID, playerID string) (player.Player, error) {
	item, exists, err := repo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by id: %w", err)
	}
	if !exists || item.ClubID != clubID {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	return item, nil
}
