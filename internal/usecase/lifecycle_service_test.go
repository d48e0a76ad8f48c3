package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/cricket-club/internal/domain/lifecycle"
	"github.com/riskibarqy/cricket-club/internal/domain/match"
	"github.com/riskibarqy/cricket-club/internal/domain/selection"
	"github.com/riskibarqy/cricket-club/internal/infrastructure/repository/memory"
)

func TestLifecycleService_MatchDayFlowWritesAuditNewestFirst(t *testing.T) {
	env := newTestEnv()
	svc := env.lifecycleService()
	ctx := context.Background()
	captain := memory.UserIDRiversideCaptain
	matchID := memory.MatchIDRiversideNext

	written, err := svc.Confirm(ctx, captain, matchID, []ConfirmParticipationEntry{
		{PlayerID: "rv-bat-01", Status: "played"},
		{PlayerID: "rv-bat-02", Status: "played"},
	})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("expected 2 participations, got=%d", len(written))
	}

	withdrawn, err := svc.RecordWithdrawal(ctx, captain, matchID, "rv-bat-02", " hamstring ")
	if err != nil {
		t.Fatalf("record withdrawal: %v", err)
	}
	if withdrawn.Status != lifecycle.StatusWithdrawn || withdrawn.WithdrawalReason != "hamstring" {
		t.Fatalf("unexpected withdrawal row: %+v", withdrawn)
	}

	sub, err := svc.AddSubstitute(ctx, captain, matchID, "rv-bat-03", "rv-bat-02")
	if err != nil {
		t.Fatalf("add substitute: %v", err)
	}
	if sub.Status != lifecycle.StatusSubstitute || !sub.WasSubstitute || sub.SubstituteForPlayerID != "rv-bat-02" {
		t.Fatalf("unexpected substitute row: %+v", sub)
	}

	entries, err := svc.GetAuditLog(ctx, memory.UserIDRiversideMember, matchID, 0, 0)
	if err != nil {
		t.Fatalf("get audit log: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("expected 4 audit entries, got=%d", len(entries))
	}
	if entries[0].Action != lifecycle.ActionSubstituteAdded || entries[0].PlayerName != "Leo Hart" {
		t.Fatalf("expected newest entry to be the substitution, got=%+v", entries[0])
	}
	if entries[0].ID != "audit-004" || entries[0].ActorID != captain {
		t.Fatalf("unexpected audit metadata: id=%s actor=%s", entries[0].ID, entries[0].ActorID)
	}
	if entries[1].Action != lifecycle.ActionWithdrawal || entries[1].PreviousState != string(lifecycle.StatusPlayed) {
		t.Fatalf("unexpected withdrawal audit: %+v", entries[1])
	}
	if entries[3].Action != lifecycle.ActionConfirmParticipation {
		t.Fatalf("expected oldest entry to be a confirmation, got=%s", entries[3].Action)
	}

	page, err := svc.GetAuditLog(ctx, memory.UserIDRiversideMember, matchID, 2, 1)
	if err != nil {
		t.Fatalf("get audit page: %v", err)
	}
	if len(page) != 2 || page[0].ID != entries[1].ID || page[1].ID != entries[2].ID {
		t.Fatalf("unexpected audit page: %+v", page)
	}

	views, err := svc.GetParticipation(ctx, memory.UserIDRiversideMember, matchID)
	if err != nil {
		t.Fatalf("get participation: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("expected 3 participation rows, got=%d", len(views))
	}
	if views[0].PlayerName != "Imran Qureshi" || views[0].Status != lifecycle.StatusWithdrawn {
		t.Fatalf("expected rows ordered by player name, got=%+v", views[0])
	}
}

func TestLifecycleService_FinalizeOnlyCreatesMissingRows(t *testing.T) {
	env := newTestEnv()
	svc := env.lifecycleService()
	ctx := context.Background()
	matchID := memory.MatchIDRiversideNext

	for _, playerID := range []string{"rv-bat-01", "rv-bat-03", "rv-bowl-01"} {
		if err := env.selections.Add(ctx, selection.TeamSelection{MatchID: matchID, PlayerID: playerID}); err != nil {
			t.Fatalf("add selection: %v", err)
		}
	}
	if _, err := svc.RecordWithdrawal(ctx, memory.UserIDRiversideCaptain, matchID, "rv-bat-01", "work"); err != nil {
		t.Fatalf("record withdrawal: %v", err)
	}

	result, err := svc.Finalize(ctx, memory.UserIDRiversideCaptain, matchID)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if result.PlayerCount != 3 || result.CreatedCount != 2 {
		t.Fatalf("unexpected finalize result: %+v", result)
	}

	rows, err := env.lifecycle.ListByMatch(ctx, matchID)
	if err != nil {
		t.Fatalf("list participations: %v", err)
	}
	statuses := make(map[string]lifecycle.Status, len(rows))
	for _, row := range rows {
		statuses[row.PlayerID] = row.Status
	}
	if statuses["rv-bat-01"] != lifecycle.StatusWithdrawn {
		t.Fatalf("finalize must not overwrite an existing row, got=%s", statuses["rv-bat-01"])
	}
	if statuses["rv-bat-03"] != lifecycle.StatusPlayed || statuses["rv-bowl-01"] != lifecycle.StatusPlayed {
		t.Fatalf("expected selected players to be marked played, got=%v", statuses)
	}
}

func TestLifecycleService_RecordAbandonedCancelsMatch(t *testing.T) {
	env := newTestEnv()
	svc := env.lifecycleService()
	ctx := context.Background()
	matchID := memory.MatchIDRiversideNext

	if _, err := svc.Confirm(ctx, memory.UserIDRiversideCaptain, matchID, []ConfirmParticipationEntry{
		{PlayerID: "rv-bat-01", Status: "played"},
		{PlayerID: "rv-bat-02", Status: "no_show", NoShowReason: "car trouble"},
		{PlayerID: "rv-bowl-01", Status: "withdrawn"},
	}); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	result, err := svc.RecordAbandoned(ctx, memory.UserIDRiversideCaptain, matchID, "rain")
	if err != nil {
		t.Fatalf("record abandoned: %v", err)
	}
	if result.ParticipationsOverwritten != 3 {
		t.Fatalf("expected 3 overwritten rows, got=%d", result.ParticipationsOverwritten)
	}

	m, _, err := env.matches.GetByID(ctx, matchID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if m.Status != match.StatusCancelled || m.Result != "abandoned" {
		t.Fatalf("expected cancelled abandoned match, got status=%s result=%s", m.Status, m.Result)
	}

	rows, err := env.lifecycle.ListByMatch(ctx, matchID)
	if err != nil {
		t.Fatalf("list participations: %v", err)
	}
	for _, row := range rows {
		if row.Status != lifecycle.StatusMatchAbandoned {
			t.Fatalf("expected match_abandoned for %s, got=%s", row.PlayerID, row.Status)
		}
	}

	entries, err := svc.GetAuditLog(ctx, memory.UserIDRiversideCaptain, matchID, 10, 0)
	if err != nil {
		t.Fatalf("get audit log: %v", err)
	}
	if entries[0].Action != lifecycle.ActionMatchAbandoned || entries[0].PlayerID != "" || entries[0].Reason != "rain" {
		t.Fatalf("unexpected abandon audit entry: %+v", entries[0])
	}
}

func TestLifecycleService_ValidationAndAccess(t *testing.T) {
	svc := newTestEnv().lifecycleService()
	ctx := context.Background()
	matchID := memory.MatchIDRiversideNext

	if _, err := svc.Confirm(ctx, memory.UserIDRiversideMember, matchID, []ConfirmParticipationEntry{{PlayerID: "rv-bat-01", Status: "played"}}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for member, got=%v", err)
	}
	if _, err := svc.Confirm(ctx, memory.UserIDRiversideCaptain, matchID, []ConfirmParticipationEntry{{PlayerID: "rv-bat-01", Status: "unconfirmed"}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unconfirmed status, got=%v", err)
	}
	if _, err := svc.Confirm(ctx, memory.UserIDRiversideCaptain, matchID, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty confirmation, got=%v", err)
	}
	if _, err := svc.RecordWithdrawal(ctx, memory.UserIDRiversideCaptain, matchID, "rv-ghost", "ill"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown player, got=%v", err)
	}
	if _, err := svc.AddSubstitute(ctx, memory.UserIDRiversideCaptain, matchID, "rv-bat-01", "rv-ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown replaced player, got=%v", err)
	}
	if _, err := svc.AddSubstitute(ctx, memory.UserIDRiversideCaptain, matchID, "rv-bat-01", "rv-bat-01"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for self substitution, got=%v", err)
	}
	if _, err := svc.Finalize(ctx, memory.UserIDRiversideCaptain, "match-missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown match, got=%v", err)
	}
	if _, err := svc.GetAuditLog(ctx, memory.UserIDRiversideMember, matchID, maxAuditLogLimit+1, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for oversized limit, got=%v", err)
	}
	if _, err := svc.GetAuditLog(ctx, memory.UserIDRiversideMember, matchID, 10, -1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative offset, got=%v", err)
	}
}

func TestLifecycleService_GetMatchLifecycle(t *testing.T) {
	env := newTestEnv()
	svc := env.lifecycleService()
	ctx := context.Background()
	matchID := memory.MatchIDRiversideNext

	if err := env.selections.Add(ctx, selection.TeamSelection{MatchID: matchID, PlayerID: "rv-wk-01"}); err != nil {
		t.Fatalf("add selection: %v", err)
	}
	if _, err := svc.Confirm(ctx, memory.UserIDRiversideCaptain, matchID, []ConfirmParticipationEntry{
		{PlayerID: "rv-wk-01", Status: "played"},
	}); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	rows, err := svc.GetMatchLifecycle(ctx, memory.UserIDRiversideMember, matchID)
	if err != nil {
		t.Fatalf("get match lifecycle: %v", err)
	}
	if len(rows) != 16 {
		t.Fatalf("expected every club player, got=%d", len(rows))
	}
	for _, row := range rows {
		switch row.Player.ID {
		case "rv-wk-01":
			if !row.IsSelected || row.ParticipationStatus != lifecycle.StatusPlayed {
				t.Fatalf("unexpected keeper lifecycle: %+v", row)
			}
		case "rv-bowl-05":
			if row.AvailabilityStatus != "unavailable" || row.IsSelected {
				t.Fatalf("unexpected unavailable player lifecycle: %+v", row)
			}
		default:
			if row.ParticipationStatus != "" {
				t.Fatalf("expected no participation for %s, got=%s", row.Player.ID, row.ParticipationStatus)
			}
		}
	}
}

func TestLifecycleService_GetDeadlineAlerts(t *testing.T) {
	env := newTestEnv()
	svc := env.lifecycleService()
	ctx := context.Background()
	if err := env.selections.Add(ctx, selection.TeamSelection{MatchID: memory.MatchIDRiversideNext, PlayerID: "rv-bat-01"}); err != nil {
		t.Fatalf("add selection: %v", err)
	}

	alerts, err := svc.GetDeadlineAlerts(ctx, memory.UserIDRiversideMember, memory.ClubIDRiverside)
	if err != nil {
		t.Fatalf("get deadline alerts: %v", err)
	}
	if len(alerts) != 1 {
		t.Fatalf("expected only the match inside seven days, got=%d", len(alerts))
	}
	alert := alerts[0]
	if alert.Match.ID != memory.MatchIDRiversideNext {
		t.Fatalf("unexpected alert match: %s", alert.Match.ID)
	}
	if !alert.DeadlineAt.Equal(alert.Match.StartsAt.Add(-48 * time.Hour)) {
		t.Fatalf("unexpected deadline: %s", alert.DeadlineAt)
	}
	if alert.HoursUntilDeadline != 50 {
		t.Fatalf("expected 50 hours until deadline, got=%v", alert.HoursUntilDeadline)
	}
	if alert.AvailableCount != 15 || alert.SelectedCount != 1 || alert.TargetPlayers != 11 {
		t.Fatalf("unexpected alert counts: %+v", alert)
	}
}

func TestLifecycleService_GetDeadlineAlerts_WindowIsDayGranular(t *testing.T) {
	env := newTestEnv()
	day7 := startOfDay(testNow).AddDate(0, 0, 7)
	extra := []match.Match{
		{ID: "rv-overdue", ClubID: memory.ClubIDRiverside, Opponent: "Late Starters", StartsAt: testNow.Add(-2 * time.Hour), Status: match.StatusUpcoming},
		{ID: "rv-day7-evening", ClubID: memory.ClubIDRiverside, Opponent: "Twilight XI", StartsAt: day7.Add(20 * time.Hour), Status: match.StatusUpcoming},
		{ID: "rv-day8-dawn", ClubID: memory.ClubIDRiverside, Opponent: "Early Birds", StartsAt: day7.AddDate(0, 0, 1).Add(30 * time.Minute), Status: match.StatusUpcoming},
	}
	env.matches = memory.NewMatchRepository(append(memory.SeedMatches(testNow), extra...))
	svc := env.lifecycleService()

	alerts, err := svc.GetDeadlineAlerts(context.Background(), memory.UserIDRiversideMember, memory.ClubIDRiverside)
	if err != nil {
		t.Fatalf("get deadline alerts: %v", err)
	}
	got := make([]string, 0, len(alerts))
	for _, alert := range alerts {
		got = append(got, alert.Match.ID)
	}
	want := []string{"rv-overdue", memory.MatchIDRiversideNext, "rv-day7-evening"}
	if len(got) != len(want) {
		t.Fatalf("unexpected alert matches: got=%v want=%v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected alert matches: got=%v want=%v", got, want)
		}
	}
	if alerts[0].HoursUntilDeadline != 0 {
		t.Fatalf("expected overdue match to report zero hours, got=%v", alerts[0].HoursUntilDeadline)
	}
}

func TestLifecycleService_GetSelectionStats(t *testing.T) {
	env := newTestEnv()
	svc := env.lifecycleService()
	ctx := context.Background()

	if err := env.selections.Add(ctx, selection.TeamSelection{MatchID: memory.MatchIDRiversideNext, PlayerID: "rv-bat-01"}); err != nil {
		t.Fatalf("add selection: %v", err)
	}
	if _, err := svc.Confirm(ctx, memory.UserIDRiversideCaptain, memory.MatchIDRiversideNext, []ConfirmParticipationEntry{
		{PlayerID: "rv-bat-01", Status: "played"},
	}); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if _, err := env.withdrawalService().Record(ctx, memory.UserIDRiversideCaptain, RecordSelectionWithdrawalInput{
		MatchID:   memory.MatchIDRiversideNext,
		PlayerID:  "rv-bat-01",
		MatchTime: testNow.Add(12 * time.Hour),
	}); err != nil {
		t.Fatalf("record selection withdrawal: %v", err)
	}

	got, err := svc.GetSelectionStats(ctx, memory.UserIDRiversideMember, "rv-bat-01")
	if err != nil {
		t.Fatalf("get selection stats: %v", err)
	}
	if got.MatchesAvailable != 1 || got.MatchesSelected != 1 || got.MatchesPlayed != 1 {
		t.Fatalf("unexpected counts: %+v", got)
	}
	if got.SelectionRate != 100 || got.LateWithdrawals != 1 {
		t.Fatalf("unexpected rate or late count: %+v", got)
	}

	none, err := svc.GetSelectionStats(ctx, memory.UserIDRiversideMember, "rv-bowl-05")
	if err != nil {
		t.Fatalf("get selection stats: %v", err)
	}
	if none.MatchesAvailable != 0 || none.SelectionRate != 0 {
		t.Fatalf("expected zero rate without availability, got=%+v", none)
	}

	if _, err := svc.GetSelectionStats(ctx, memory.UserIDRiversideMember, "rv-ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got=%v", err)
	}
}
