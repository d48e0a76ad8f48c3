package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/cricket-club/internal/domain/membership"
	"github.com/riskibarqy/cricket-club/internal/domain/selection"
	"github.com/riskibarqy/cricket-club/internal/infrastructure/repository/memory"
	membershipmock "github.com/riskibarqy/cricket-club/internal/mocks/domain/membership"
	selectionmock "github.com/riskibarqy/cricket-club/internal/mocks/domain/selection"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func TestSelectionConfigService_GetConfigDefaultsUntilSaved(t *testing.T) {
	env := newTestEnv()
	svc := env.configService()
	ctx := context.Background()

	cfg, err := svc.GetConfig(ctx, memory.UserIDRiversideMember, memory.ClubIDRiverside)
	if err != nil {
		t.Fatalf("get config: %v", err)
	}
	if cfg.SquadSize != 11 || cfg.ReserveCount != 2 || !cfg.UpdatedAt.IsZero() {
		t.Fatalf("expected default config, got=%+v", cfg)
	}

	squad := 12
	reserves := 3
	fairness := decimal.RequireFromString("0.40")
	saved, err := svc.UpsertConfig(ctx, memory.UserIDRiversideAdmin, memory.ClubIDRiverside, selection.ConfigPatch{
		SquadSize:      &squad,
		ReserveCount:   &reserves,
		FairnessWeight: &fairness,
	})
	if err != nil {
		t.Fatalf("upsert config: %v", err)
	}
	if !saved.UpdatedAt.Equal(testNow) || saved.ClubID != memory.ClubIDRiverside {
		t.Fatalf("unexpected saved metadata: club=%s updated=%s", saved.ClubID, saved.UpdatedAt)
	}

	cfg, err = svc.GetConfig(ctx, memory.UserIDRiversideCaptain, memory.ClubIDRiverside)
	if err != nil {
		t.Fatalf("get config: %v", err)
	}
	if cfg.SquadSize != 12 || cfg.ReserveCount != 3 || !cfg.Weights.Fairness.Equal(fairness) {
		t.Fatalf("expected patched fields, got=%+v", cfg)
	}
	if cfg.LateWithdrawalHours != 48 {
		t.Fatalf("expected untouched fields to keep defaults, got=%d", cfg.LateWithdrawalHours)
	}
}

func TestSelectionConfigService_UpsertConfigRejectsInvalidAndNonAdmins(t *testing.T) {
	svc := newTestEnv().configService()
	ctx := context.Background()

	squad := 3
	if _, err := svc.UpsertConfig(ctx, memory.UserIDRiversideAdmin, memory.ClubIDRiverside, selection.ConfigPatch{SquadSize: &squad}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput when minimums exceed squad size, got=%v", err)
	}

	weight := decimal.NewFromInt(100)
	if _, err := svc.UpsertConfig(ctx, memory.UserIDRiversideAdmin, memory.ClubIDRiverside, selection.ConfigPatch{PerformanceWeight: &weight}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for out of range weight, got=%v", err)
	}

	squad = 12
	if _, err := svc.UpsertConfig(ctx, memory.UserIDRiversideCaptain, memory.ClubIDRiverside, selection.ConfigPatch{SquadSize: &squad}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for captain, got=%v", err)
	}
	if _, err := svc.GetConfig(ctx, "user-stranger", memory.ClubIDRiverside); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non member, got=%v", err)
	}
}

func TestSelectionConfigService_OverridesFeedRecommendationBaseScore(t *testing.T) {
	env := newTestEnv()
	svc := env.configService()
	ctx := context.Background()

	if _, err := svc.UpsertOverride(ctx, memory.UserIDRiversideAdmin, UpsertOverrideInput{
		ClubID:    memory.ClubIDRiverside,
		PlayerID:  "rv-bat-01",
		BaseScore: decimal.NewFromInt(80),
		Notes:     " county trialist ",
	}); err != nil {
		t.Fatalf("upsert override: %v", err)
	}

	items, err := svc.ListOverrides(ctx, memory.UserIDRiversideMember, memory.ClubIDRiverside)
	if err != nil {
		t.Fatalf("list overrides: %v", err)
	}
	if len(items) != 1 || items[0].Notes != "county trialist" {
		t.Fatalf("unexpected overrides: %+v", items)
	}

	players, err := env.recommendationService(nil).GetRecommendation(ctx, memory.UserIDRiversideMember, memory.MatchIDRiversideNext)
	if err != nil {
		t.Fatalf("get recommendation: %v", err)
	}
	for _, p := range players {
		want := decimal.NewFromInt(50)
		if p.PlayerID == "rv-bat-01" {
			want = decimal.NewFromInt(80)
		}
		if !p.BaseScore.Equal(want) {
			t.Fatalf("unexpected base score for %s: got=%s want=%s", p.PlayerID, p.BaseScore, want)
		}
	}

	if err := svc.DeleteOverride(ctx, memory.UserIDRiversideAdmin, memory.ClubIDRiverside, "rv-bat-01"); err != nil {
		t.Fatalf("delete override: %v", err)
	}
	if err := svc.DeleteOverride(ctx, memory.UserIDRiversideAdmin, memory.ClubIDRiverside, "rv-bat-01"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting absent override, got=%v", err)
	}
}

func TestSelectionConfigService_UpsertOverrideValidation(t *testing.T) {
	svc := newTestEnv().configService()
	ctx := context.Background()

	if _, err := svc.UpsertOverride(ctx, memory.UserIDRiversideAdmin, UpsertOverrideInput{
		ClubID:    memory.ClubIDRiverside,
		PlayerID:  "rv-bat-01",
		BaseScore: decimal.NewFromInt(-1),
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative score, got=%v", err)
	}
	if _, err := svc.UpsertOverride(ctx, memory.UserIDRiversideAdmin, UpsertOverrideInput{
		ClubID:    memory.ClubIDRiverside,
		PlayerID:  "rv-bat-01",
		BaseScore: decimal.NewFromInt(1_000_000),
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for out of range score, got=%v", err)
	}
	if _, err := svc.UpsertOverride(ctx, memory.UserIDRiversideAdmin, UpsertOverrideInput{
		ClubID:    memory.ClubIDRiverside,
		PlayerID:  "rv-ghost",
		BaseScore: decimal.NewFromInt(60),
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown player, got=%v", err)
	}
}

func TestSelectionConfigService_GetConfigReadsStoredConfig(t *testing.T) {
	configRepo := selectionmock.NewConfigRepository(t)
	membershipRepo := membershipmock.NewRepository(t)
	svc := NewSelectionConfigService(configRepo, nil, nil, membershipRepo)

	stored := selection.DefaultConfig("club-a")
	stored.SquadSize = 9

	membershipRepo.On("GetByClubAndUser", mock.MatchedBy(func(ctx context.Context) bool { return ctx != nil }), "club-a", "user-1").
		Return(membership.Membership{ClubID: "club-a", UserID: "user-1", Role: membership.RoleMember}, true, nil).
		Once()
	configRepo.On("GetByClub", mock.MatchedBy(func(ctx context.Context) bool { return ctx != nil }), "club-a").
		Return(stored, true, nil).
		Once()

	got, err := svc.GetConfig(context.Background(), "user-1", " club-a ")
	if err != nil {
		t.Fatalf("get config: %v", err)
	}
	if got.SquadSize != 9 {
		t.Fatalf("expected stored squad size, got=%d", got.SquadSize)
	}
}

func TestSelectionConfigService_GetConfigPropagatesRepositoryError(t *testing.T) {
	configRepo := selectionmock.NewConfigRepository(t)
	membershipRepo := membershipmock.NewRepository(t)
	svc := NewSelectionConfigService(configRepo, nil, nil, membershipRepo)

	membershipRepo.On("GetByClubAndUser", mock.Anything, "club-a", "user-1").
		Return(membership.Membership{ClubID: "club-a", UserID: "user-1", Role: membership.RoleAdmin}, true, nil).
		Once()
	configRepo.On("GetByClub", mock.Anything, "club-a").
		Return(selection.Config{}, false, errors.New("connection reset")).
		Once()

	if _, err := svc.GetConfig(context.Background(), "user-1", "club-a"); err == nil {
		t.Fatalf("expected repository error")
	}
}
