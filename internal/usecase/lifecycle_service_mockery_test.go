package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/cricket-club/internal/domain/match"
	"github.com/riskibarqy/cricket-club/internal/infrastructure/repository/memory"
	lifecyclemock "github.com/riskibarqy/cricket-club/internal/mocks/domain/lifecycle"
	matchmock "github.com/riskibarqy/cricket-club/internal/mocks/domain/match"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newMockedLifecycleService(t *testing.T, matchRepo match.Repository, lifecycleRepo *lifecyclemock.Repository) *LifecycleService {
	t.Helper()

	env := newTestEnv()
	svc := NewLifecycleService(
		matchRepo,
		env.players,
		lifecycleRepo,
		env.selections,
		env.availability,
		env.payments,
		env.withdrawals,
		env.configs,
		env.memberships,
		env.tx,
		&sequenceIDGenerator{},
	)
	svc.now = fixedNow
	return svc
}

func TestLifecycleService_ConfirmPropagatesMatchLookupError(t *testing.T) {
	matchRepo := matchmock.NewRepository(t)
	lifecycleRepo := lifecyclemock.NewRepository(t)
	dbErr := errors.New("connection reset")

	matchRepo.On("GetByID", mock.Anything, "match-1").Return(match.Match{}, false, dbErr).Once()

	svc := newMockedLifecycleService(t, matchRepo, lifecycleRepo)
	_, err := svc.Confirm(context.Background(), memory.UserIDRiversideCaptain, "match-1", []ConfirmParticipationEntry{
		{PlayerID: "rv-bat-01", Status: "played"},
	})

	require.ErrorIs(t, err, dbErr)
	require.NotErrorIs(t, err, ErrNotFound)
	lifecycleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestLifecycleService_ConfirmSaveFailureIsReturned(t *testing.T) {
	matchRepo := matchmock.NewRepository(t)
	lifecycleRepo := lifecyclemock.NewRepository(t)
	saveErr := errors.New("deadlock detected")

	matchRepo.On("GetByID", mock.Anything, "match-1").
		Return(match.Match{ID: "match-1", ClubID: memory.ClubIDRiverside, StartsAt: testNow.AddDate(0, 0, 3), Status: match.StatusUpcoming}, true, nil)
	lifecycleRepo.On("ListByMatch", mock.Anything, "match-1").Return(nil, nil)
	lifecycleRepo.On("Save", mock.Anything, mock.Anything, mock.Anything).Return(saveErr).Once()

	svc := newMockedLifecycleService(t, matchRepo, lifecycleRepo)
	_, err := svc.Confirm(context.Background(), memory.UserIDRiversideCaptain, "match-1", []ConfirmParticipationEntry{
		{PlayerID: "rv-bat-01", Status: "played"},
	})

	require.ErrorIs(t, err, saveErr)
}

func TestLifecycleService_GetAuditLogWrapsRepositoryError(t *testing.T) {
	matchRepo := matchmock.NewRepository(t)
	lifecycleRepo := lifecyclemock.NewRepository(t)
	listErr := errors.New("statement timeout")

	matchRepo.On("GetByID", mock.Anything, "match-1").
		Return(match.Match{ID: "match-1", ClubID: memory.ClubIDRiverside, StartsAt: testNow, Status: match.StatusUpcoming}, true, nil)
	lifecycleRepo.On("ListAudit", mock.Anything, "match-1", defaultAuditLogLimit, 0).Return(nil, listErr).Once()

	svc := newMockedLifecycleService(t, matchRepo, lifecycleRepo)
	_, err := svc.GetAuditLog(context.Background(), memory.UserIDRiversideMember, "match-1", 0, 0)

	require.ErrorIs(t, err, listErr)
	require.ErrorContains(t, err, "list audit log")
}

func TestLifecycleService_GetAuditLogRejectsLimitBeforeLookup(t *testing.T) {
	matchRepo := matchmock.NewRepository(t)
	lifecycleRepo := lifecyclemock.NewRepository(t)

	svc := newMockedLifecycleService(t, matchRepo, lifecycleRepo)
	_, err := svc.GetAuditLog(context.Background(), memory.UserIDRiversideMember, "match-1", maxAuditLogLimit+1, 0)

	require.ErrorIs(t, err, ErrInvalidInput)
	matchRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
