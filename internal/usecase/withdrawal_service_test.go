package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/cricket-club/internal/domain/selection"
	"github.com/riskibarqy/cricket-club/internal/infrastructure/repository/memory"
	"github.com/shopspring/decimal"
)

func TestWithdrawalService_RecordSnapshotsLateness(t *testing.T) {
	env := newTestEnv()
	svc := env.withdrawalService()
	ctx := context.Background()

	// seeded match starts 98 hours after testNow
	early, err := svc.Record(ctx, memory.UserIDRiversideCaptain, RecordSelectionWithdrawalInput{
		MatchID:  memory.MatchIDRiversideNext,
		PlayerID: "rv-bat-01",
		Reason:   " wedding ",
	})
	if err != nil {
		t.Fatalf("record withdrawal: %v", err)
	}
	if early.IsLate || !early.PenaltyApplied.IsZero() || early.Reason != "wedding" {
		t.Fatalf("expected on-time withdrawal, got=%+v", early)
	}
	if !early.WithdrawnAt.Equal(testNow) {
		t.Fatalf("unexpected withdrawn at: %s", early.WithdrawnAt)
	}

	late, err := svc.Record(ctx, memory.UserIDRiversideCaptain, RecordSelectionWithdrawalInput{
		MatchID:   memory.MatchIDRiversideNext,
		PlayerID:  "rv-bat-02",
		MatchTime: testNow.Add(47 * time.Hour),
	})
	if err != nil {
		t.Fatalf("record withdrawal: %v", err)
	}
	if !late.IsLate || !late.PenaltyApplied.Equal(decimal.RequireFromString("0.10")) {
		t.Fatalf("expected late withdrawal with default penalty, got=%+v", late)
	}

	// a later policy change must not rewrite the stored snapshot
	penalty := decimal.RequireFromString("0.30")
	if _, err := env.configService().UpsertConfig(ctx, memory.UserIDRiversideAdmin, memory.ClubIDRiverside, selection.ConfigPatch{
		LateWithdrawalPenalty: &penalty,
	}); err != nil {
		t.Fatalf("upsert config: %v", err)
	}
	late2, err := svc.Record(ctx, memory.UserIDRiversideCaptain, RecordSelectionWithdrawalInput{
		MatchID:   memory.MatchIDRiversideNext,
		PlayerID:  "rv-bat-03",
		MatchTime: testNow.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("record withdrawal: %v", err)
	}
	if !late2.PenaltyApplied.Equal(penalty) {
		t.Fatalf("expected new penalty for new withdrawal, got=%s", late2.PenaltyApplied)
	}
	stored, found, err := env.withdrawals.Get(ctx, memory.MatchIDRiversideNext, "rv-bat-02")
	if err != nil || !found {
		t.Fatalf("get stored withdrawal: found=%v err=%v", found, err)
	}
	if !stored.IsLate || !stored.PenaltyApplied.Equal(decimal.RequireFromString("0.10")) {
		t.Fatalf("expected stored snapshot to keep the old penalty, got=%+v", stored)
	}

	counts, err := env.withdrawals.LateCountsByPlayers(ctx, []string{"rv-bat-01", "rv-bat-02", "rv-bat-03"})
	if err != nil {
		t.Fatalf("late counts: %v", err)
	}
	if counts["rv-bat-01"] != 0 || counts["rv-bat-02"] != 1 || counts["rv-bat-03"] != 1 {
		t.Fatalf("unexpected late counts: %v", counts)
	}
}

func TestWithdrawalService_RecordValidation(t *testing.T) {
	svc := newTestEnv().withdrawalService()
	ctx := context.Background()

	if _, err := svc.Record(ctx, memory.UserIDRiversideCaptain, RecordSelectionWithdrawalInput{MatchID: memory.MatchIDRiversideNext}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got=%v", err)
	}
	if _, err := svc.Record(ctx, memory.UserIDRiversideMember, RecordSelectionWithdrawalInput{MatchID: memory.MatchIDRiversideNext, PlayerID: "rv-bat-01"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got=%v", err)
	}
	if _, err := svc.Record(ctx, memory.UserIDRiversideCaptain, RecordSelectionWithdrawalInput{MatchID: memory.MatchIDRiversideNext, PlayerID: "rv-ghost"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got=%v", err)
	}
}

func TestAttendanceService_RecordFeedsAttendanceScore(t *testing.T) {
	env := newTestEnv()
	svc := env.attendanceService()
	ctx := context.Background()

	records, err := svc.Record(ctx, memory.UserIDRiversideCaptain, memory.MatchIDRiversidePast, []AttendanceEntry{
		{PlayerID: "rv-bat-01", Status: "attended"},
		{PlayerID: "rv-bat-02", Status: "absent", Notes: " no reply "},
	})
	if err != nil {
		t.Fatalf("record attendance: %v", err)
	}
	if len(records) != 2 || records[1].Notes != "no reply" || !records[0].RecordedAt.Equal(testNow) {
		t.Fatalf("unexpected records: %+v", records)
	}

	players, err := env.recommendationService(nil).GetRecommendation(ctx, memory.UserIDRiversideMember, memory.MatchIDRiversideNext)
	if err != nil {
		t.Fatalf("get recommendation: %v", err)
	}
	for _, p := range players {
		want := decimal.NewFromInt(50)
		switch p.PlayerID {
		case "rv-bat-01":
			want = decimal.NewFromInt(100)
		case "rv-bat-02":
			want = decimal.Zero
		}
		if !p.Attendance.Equal(want) {
			t.Fatalf("unexpected attendance score for %s: got=%s want=%s", p.PlayerID, p.Attendance, want)
		}
	}
}

func TestAttendanceService_RecordValidation(t *testing.T) {
	svc := newTestEnv().attendanceService()
	ctx := context.Background()
	fixtureID := memory.MatchIDRiversidePast

	tests := []struct {
		name    string
		entries []AttendanceEntry
		want    error
	}{
		{name: "empty", entries: nil, want: ErrInvalidInput},
		{name: "duplicate", entries: []AttendanceEntry{{PlayerID: "rv-bat-01", Status: "attended"}, {PlayerID: "rv-bat-01", Status: "absent"}}, want: ErrInvalidInput},
		{name: "unknown status", entries: []AttendanceEntry{{PlayerID: "rv-bat-01", Status: "late"}}, want: ErrInvalidInput},
		{name: "unknown player", entries: []AttendanceEntry{{PlayerID: "rv-ghost", Status: "attended"}}, want: ErrNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Record(ctx, memory.UserIDRiversideCaptain, fixtureID, tc.entries); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got=%v", tc.want, err)
			}
		})
	}
}

func TestAvailabilityService_SetMakesPlayerCandidate(t *testing.T) {
	env := newTestEnv()
	svc := env.availabilityService()
	ctx := context.Background()

	record, err := svc.Set(ctx, memory.UserIDRiversideCaptain, SetAvailabilityInput{
		MatchID:  memory.MatchIDRiversideNext,
		PlayerID: "rv-bowl-05",
		Status:   "available",
	})
	if err != nil {
		t.Fatalf("set availability: %v", err)
	}
	if !record.UpdatedAt.Equal(testNow) {
		t.Fatalf("unexpected updated at: %s", record.UpdatedAt)
	}

	players, err := env.recommendationService(nil).GetRecommendation(ctx, memory.UserIDRiversideMember, memory.MatchIDRiversideNext)
	if err != nil {
		t.Fatalf("get recommendation: %v", err)
	}
	if len(players) != 16 {
		t.Fatalf("expected 16 candidates after availability change, got=%d", len(players))
	}

	if _, err := svc.Set(ctx, memory.UserIDRiversideCaptain, SetAvailabilityInput{
		MatchID:  memory.MatchIDRiversideNext,
		PlayerID: "rv-bowl-05",
		Status:   "perhaps",
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got=%v", err)
	}
}

func TestAvailabilityService_SetRequiresSelector(t *testing.T) {
	env := newTestEnv()
	svc := env.availabilityService()
	ctx := context.Background()
	input := SetAvailabilityInput{
		MatchID:  memory.MatchIDRiversideNext,
		PlayerID: "rv-bat-01",
		Status:   "unavailable",
	}

	tests := []struct {
		name   string
		userID string
		want   error
	}{
		{name: "anonymous", userID: "", want: ErrUnauthorized},
		{name: "stranger", userID: "user-stranger", want: ErrForbidden},
		{name: "plain member", userID: memory.UserIDRiversideMember, want: ErrForbidden},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Set(ctx, tc.userID, input); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got=%v", tc.want, err)
			}
		})
	}

	records, err := env.availability.ListByMatch(ctx, memory.MatchIDRiversideNext)
	if err != nil {
		t.Fatalf("list availability: %v", err)
	}
	for _, record := range records {
		if record.PlayerID == "rv-bat-01" && record.Status != "available" {
			t.Fatalf("rejected writes must not change availability, got=%s", record.Status)
		}
	}

	if _, err := svc.Set(ctx, memory.UserIDRiversideAdmin, input); err != nil {
		t.Fatalf("expected admin to set availability: %v", err)
	}
}
