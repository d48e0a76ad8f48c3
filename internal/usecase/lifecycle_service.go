package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/cricket-club/internal/domain/availability"
	"github.com/riskibarqy/cricket-club/internal/domain/lifecycle"
	"github.com/riskibarqy/cricket-club/internal/domain/match"
	"github.com/riskibarqy/cricket-club/internal/domain/membership"
	"github.com/riskibarqy/cricket-club/internal/domain/payment"
	"github.com/riskibarqy/cricket-club/internal/domain/player"
	"github.com/riskibarqy/cricket-club/internal/domain/selection"
	"github.com/riskibarqy/cricket-club/internal/domain/withdrawal"
	idgen "github.com/riskibarqy/cricket-club/internal/platform/id"
)

const (
	defaultAuditLogLimit  = 50
	maxAuditLogLimit      = 200
	deadlineAlertDays     = 7
	selectionDeadlineLead = 48 * time.Hour
)

type ConfirmParticipationEntry struct {
	PlayerID              string
	Status                string
	WasSubstitute         bool
	SubstituteForPlayerID string
	NoShowReason          string
}

type FinalizeResult struct {
	PlayerCount  int
	CreatedCount int
}

type AbandonResult struct {
	ParticipationsOverwritten int
}

// PlayerLifecycle is one club player's journey for a match, from availability to payment.
type PlayerLifecycle struct {
	Player              player.Player
	AvailabilityStatus  availability.Status
	IsSelected          bool
	ParticipationStatus lifecycle.Status
	WasSubstitute       bool
	PaymentStatus       payment.Status
}

type ParticipationView struct {
	lifecycle.Participation
	PlayerName string
	PlayerRole player.Role
}

type AuditLogEntry struct {
	lifecycle.AuditEntry
	PlayerName string
}

type DeadlineAlert struct {
	Match              match.Match
	DeadlineAt         time.Time
	HoursUntilDeadline float64
	AvailableCount     int
	SelectedCount      int
	TargetPlayers      int
}

type SelectionStats struct {
	PlayerID         string
	MatchesAvailable int
	MatchesSelected  int
	MatchesPlayed    int
	SelectionRate    float64
	NoShows          int
	Withdrawals      int
	LateWithdrawals  int
}

type LifecycleService struct {
	matchRepo        match.Repository
	playerRepo       player.Repository
	lifecycleRepo    lifecycle.Repository
	selectionRepo    selection.Repository
	availabilityRepo availability.Repository
	paymentRepo      payment.Repository
	withdrawalRepo   withdrawal.Repository
	configRepo       selection.ConfigRepository
	tx               Transactor
	idGen            idgen.Generator
	access           clubAccess
	now              func() time.Time
}

func NewLifecycleService(
	matchRepo match.Repository,
	playerRepo player.Repository,
	lifecycleRepo lifecycle.Repository,
	selectionRepo selection.Repository,
	availabilityRepo availability.Repository,
	paymentRepo payment.Repository,
	withdrawalRepo withdrawal.Repository,
	configRepo selection.ConfigRepository,
	membershipRepo membership.Repository,
	tx Transactor,
	idGen idgen.Generator,
) *LifecycleService {
	return &LifecycleService{
		matchRepo:        matchRepo,
		playerRepo:       playerRepo,
		lifecycleRepo:    lifecycleRepo,
		selectionRepo:    selectionRepo,
		availabilityRepo: availabilityRepo,
		paymentRepo:      paymentRepo,
		withdrawalRepo:   withdrawalRepo,
		configRepo:       configRepo,
		tx:               tx,
		idGen:            idGen,
		access:           clubAccess{memberships: membershipRepo},
		now:              time.Now,
	}
}

func (s *LifecycleService) Confirm(ctx context.Context, userID, matchID string, entries []ConfirmParticipationEntry) (_ []lifecycle.Participation, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LifecycleService.Confirm", matchAttr(matchID))
	defer func() { endSpan(span, err) }()

	m, err := s.selectorMatch(ctx, userID, matchID)
	if err != nil {
		return nil, err
	}

	event := lifecycle.Confirm{Entries: make([]lifecycle.ConfirmEntry, 0, len(entries))}
	for _, entry := range entries {
		status, err := lifecycle.ParseStatus(strings.TrimSpace(entry.Status))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		playerID := strings.TrimSpace(entry.PlayerID)
		if err := s.requirePlayers(ctx, m.ClubID, playerID, strings.TrimSpace(entry.SubstituteForPlayerID)); err != nil {
			return nil, err
		}
		event.Entries = append(event.Entries, lifecycle.ConfirmEntry{
			PlayerID:              playerID,
			Status:                status,
			WasSubstitute:         entry.WasSubstitute,
			SubstituteForPlayerID: entry.SubstituteForPlayerID,
			NoShowReason:          entry.NoShowReason,
		})
	}

	out, err := s.commit(ctx, userID, m, func(context.Context) (lifecycle.Event, error) { return event, nil })
	if err != nil {
		return nil, err
	}

	return out.Writes, nil
}

// RecordWithdrawal marks the player withdrawn for the match. It does not touch the penalty ledger.
func (s *LifecycleService) RecordWithdrawal(ctx context.Context, userID, matchID, playerID, reason string) (_ lifecycle.Participation, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LifecycleService.RecordWithdrawal", matchAttr(matchID), playerAttr(playerID))
	defer func() { endSpan(span, err) }()

	m, err := s.selectorMatch(ctx, userID, matchID)
	if err != nil {
		return lifecycle.Participation{}, err
	}
	playerID = strings.TrimSpace(playerID)
	if err := s.requirePlayers(ctx, m.ClubID, playerID); err != nil {
		return lifecycle.Participation{}, err
	}

	out, err := s.commit(ctx, userID, m, func(context.Context) (lifecycle.Event, error) {
		return lifecycle.Withdraw{PlayerID: playerID, Reason: reason}, nil
	})
	if err != nil {
		return lifecycle.Participation{}, err
	}

	return out.Writes[0], nil
}

func (s *LifecycleService) AddSubstitute(ctx context.Context, userID, matchID, playerID, replacesPlayerID string) (_ lifecycle.Participation, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LifecycleService.AddSubstitute", matchAttr(matchID), playerAttr(playerID))
	defer func() { endSpan(span, err) }()

	m, err := s.selectorMatch(ctx, userID, matchID)
	if err != nil {
		return lifecycle.Participation{}, err
	}
	playerID = strings.TrimSpace(playerID)
	replacesPlayerID = strings.TrimSpace(replacesPlayerID)
	if err := s.requirePlayers(ctx, m.ClubID, playerID, replacesPlayerID); err != nil {
		return lifecycle.Participation{}, err
	}

	out, err := s.commit(ctx, userID, m, func(context.Context) (lifecycle.Event, error) {
		return lifecycle.AddSubstitute{PlayerID: playerID, ReplacesPlayerID: replacesPlayerID}, nil
	})
	if err != nil {
		return lifecycle.Participation{}, err
	}

	return out.Writes[0], nil
}

// Finalize creates a played row for every selected player that has no participation yet.
func (s *LifecycleService) Finalize(ctx context.Context, userID, matchID string) (_ FinalizeResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LifecycleService.Finalize", matchAttr(matchID))
	defer func() { endSpan(span, err) }()

	m, err := s.selectorMatch(ctx, userID, matchID)
	if err != nil {
		return FinalizeResult{}, err
	}

	var selectedCount int
	out, err := s.commit(ctx, userID, m, func(ctx context.Context) (lifecycle.Event, error) {
		rows, err := s.selectionRepo.ListByMatch(ctx, m.ID)
		if err != nil {
			return nil, fmt.Errorf("list team selections: %w", err)
		}
		ids := make([]string, 0, len(rows))
		for _, row := range rows {
			ids = append(ids, row.PlayerID)
		}
		selectedCount = len(ids)
		return lifecycle.Finalize{SelectedPlayerIDs: ids}, nil
	})
	if err != nil {
		return FinalizeResult{}, err
	}

	return FinalizeResult{PlayerCount: selectedCount, CreatedCount: len(out.Writes)}, nil
}

// RecordAbandoned cancels the match and overwrites every participation with match_abandoned.
func (s *LifecycleService) RecordAbandoned(ctx context.Context, userID, matchID, reason string) (_ AbandonResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LifecycleService.RecordAbandoned", matchAttr(matchID))
	defer func() { endSpan(span, err) }()

	m, err := s.selectorMatch(ctx, userID, matchID)
	if err != nil {
		return AbandonResult{}, err
	}

	out, err := s.commit(ctx, userID, m, func(context.Context) (lifecycle.Event, error) {
		return lifecycle.Abandon{Reason: reason}, nil
	})
	if err != nil {
		return AbandonResult{}, err
	}

	return AbandonResult{ParticipationsOverwritten: len(out.Writes)}, nil
}

// commit applies the event to the current rows and stores the writes with their audit entries
// in one transaction.
func (s *LifecycleService) commit(
	ctx context.Context,
	actorID string,
	m match.Match,
	buildEvent func(ctx context.Context) (lifecycle.Event, error),
) (lifecycle.Outcome, error) {
	var out lifecycle.Outcome
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		event, err := buildEvent(ctx)
		if err != nil {
			return err
		}

		rows, err := s.lifecycleRepo.ListByMatch(ctx, m.ID)
		if err != nil {
			return fmt.Errorf("list participations: %w", err)
		}

		out, err = lifecycle.Apply(
			lifecycle.NewState(m.ID, string(m.Status), rows),
			event,
			lifecycle.Meta{ActorID: strings.TrimSpace(actorID), At: s.now().UTC()},
		)
		if err != nil {
			if errors.Is(err, lifecycle.ErrInvalidEvent) || errors.Is(err, lifecycle.ErrUnknownStatus) {
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			return err
		}

		for i := range out.Audit {
			auditID, err := s.idGen.NewID()
			if err != nil {
				return fmt.Errorf("generate audit id: %w", err)
			}
			out.Audit[i].ID = auditID
		}

		if out.AbandonMatch {
			if err := s.matchRepo.MarkAbandoned(ctx, m.ID); err != nil {
				return fmt.Errorf("mark match abandoned: %w", err)
			}
		}
		if err := s.lifecycleRepo.Save(ctx, out.Writes, out.Audit); err != nil {
			return fmt.Errorf("save participation transition: %w", err)
		}
		return nil
	})
	if err != nil {
		return lifecycle.Outcome{}, err
	}

	return out, nil
}

func (s *LifecycleService) selectorMatch(ctx context.Context, userID, matchID string) (match.Match, error) {
	m, err := getMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if err := s.access.require(ctx, m.ClubID, userID, selectorRoles...); err != nil {
		return match.Match{}, err
	}
	return m, nil
}

func (s *LifecycleService) readerMatch(ctx context.Context, userID, matchID string) (match.Match, error) {
	m, err := getMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if err := s.access.require(ctx, m.ClubID, userID, readerRoles...); err != nil {
		return match.Match{}, err
	}
	return m, nil
}

// requirePlayers checks that every non-empty id is a player of the club. The first id is mandatory.
func (s *LifecycleService) requirePlayers(ctx context.Context, clubID string, playerIDs ...string) error {
	for i, playerID := range playerIDs {
		if playerID == "" {
			if i == 0 {
				return fmt.Errorf("%w: player id is required", ErrInvalidInput)
			}
			continue
		}
		if _, err := clubPlayer(ctx, s.playerRepo, clubID, playerID); err != nil {
			return err
		}
	}
	return nil
}

// GetMatchLifecycle projects availability, selection, participation and payment for every club player.
func (s *LifecycleService) GetMatchLifecycle(ctx context.Context, userID, matchID string) ([]PlayerLifecycle, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LifecycleService.GetMatchLifecycle", matchAttr(matchID))
	defer span.End()

	m, err := s.readerMatch(ctx, userID, matchID)
	if err != nil {
		return nil, err
	}

	players, err := s.playerRepo.ListByClub(ctx, m.ClubID)
	if err != nil {
		return nil, fmt.Errorf("list club players: %w", err)
	}
	avail, err := s.availabilityRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	selections, err := s.selectionRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("list team selections: %w", err)
	}
	participations, err := s.lifecycleRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("list participations: %w", err)
	}
	payments, err := s.paymentRepo.StatusByMatch(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("get payment status: %w", err)
	}

	availByPlayer := make(map[string]availability.Status, len(avail))
	for _, item := range avail {
		availByPlayer[item.PlayerID] = item.Status
	}
	selected := make(map[string]struct{}, len(selections))
	for _, item := range selections {
		selected[item.PlayerID] = struct{}{}
	}
	partByPlayer := make(map[string]lifecycle.Participation, len(participations))
	for _, item := range participations {
		partByPlayer[item.PlayerID] = item
	}

	out := make([]PlayerLifecycle, 0, len(players))
	for _, p := range players {
		_, isSelected := selected[p.ID]
		row := PlayerLifecycle{
			Player:             p,
			AvailabilityStatus: availByPlayer[p.ID],
			IsSelected:         isSelected,
			PaymentStatus:      payments[p.ID],
		}
		if part, ok := partByPlayer[p.ID]; ok {
			row.ParticipationStatus = part.Status
			row.WasSubstitute = part.WasSubstitute
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Player.Name < out[j].Player.Name
	})

	return out, nil
}

func (s *LifecycleService) GetParticipation(ctx context.Context, userID, matchID string) ([]ParticipationView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LifecycleService.GetParticipation", matchAttr(matchID))
	defer span.End()

	m, err := s.readerMatch(ctx, userID, matchID)
	if err != nil {
		return nil, err
	}

	rows, err := s.lifecycleRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("list participations: %w", err)
	}
	players, err := s.playersByID(ctx, m.ClubID)
	if err != nil {
		return nil, err
	}

	out := make([]ParticipationView, 0, len(rows))
	for _, row := range rows {
		p := players[row.PlayerID]
		out = append(out, ParticipationView{Participation: row, PlayerName: p.Name, PlayerRole: p.Role})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PlayerName < out[j].PlayerName
	})

	return out, nil
}

// GetAuditLog pages through the match audit log, newest first.
func (s *LifecycleService) GetAuditLog(ctx context.Context, userID, matchID string, limit, offset int) ([]AuditLogEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LifecycleService.GetAuditLog", matchAttr(matchID))
	defer span.End()

	if limit == 0 {
		limit = defaultAuditLogLimit
	}
	if limit < 1 || limit > maxAuditLogLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, maxAuditLogLimit)
	}
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset must be >= 0", ErrInvalidInput)
	}

	m, err := s.readerMatch(ctx, userID, matchID)
	if err != nil {
		return nil, err
	}

	entries, err := s.lifecycleRepo.ListAudit(ctx, m.ID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit log: %w", err)
	}
	players, err := s.playersByID(ctx, m.ClubID)
	if err != nil {
		return nil, err
	}

	out := make([]AuditLogEntry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, AuditLogEntry{AuditEntry: entry, PlayerName: players[entry.PlayerID].Name})
	}

	return out, nil
}

// GetDeadlineAlerts lists upcoming matches dated up to seven days ahead with their squad progress.
func (s *LifecycleService) GetDeadlineAlerts(ctx context.Context, userID, clubID string) ([]DeadlineAlert, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LifecycleService.GetDeadlineAlerts", clubAttr(clubID))
	defer span.End()

	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return nil, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}
	if err := s.access.require(ctx, clubID, userID, readerRoles...); err != nil {
		return nil, err
	}

	cfg, err := loadClubConfig(ctx, s.configRepo, clubID)
	if err != nil {
		return nil, err
	}

	// still-upcoming matches through the last calendar day of the window, overdue kickoffs included
	now := s.now().UTC()
	until := startOfDay(now).AddDate(0, 0, deadlineAlertDays+1)
	matches, err := s.matchRepo.ListUpcoming(ctx, clubID, time.Time{}, until)
	if err != nil {
		return nil, fmt.Errorf("list upcoming matches: %w", err)
	}

	out := make([]DeadlineAlert, 0, len(matches))
	for _, m := range matches {
		records, err := s.availabilityRepo.ListByMatch(ctx, m.ID)
		if err != nil {
			return nil, fmt.Errorf("list availability: %w", err)
		}
		availableCount := 0
		for _, record := range records {
			if record.Status == availability.StatusAvailable {
				availableCount++
			}
		}
		selectedCount, err := s.selectionRepo.CountByMatch(ctx, m.ID)
		if err != nil {
			return nil, fmt.Errorf("count team selections: %w", err)
		}

		deadline := m.SelectionDeadline(selectionDeadlineLead)
		hours := math.Max(0, deadline.Sub(now).Hours())
		out = append(out, DeadlineAlert{
			Match:              m,
			DeadlineAt:         deadline,
			HoursUntilDeadline: math.Round(hours*10) / 10,
			AvailableCount:     availableCount,
			SelectedCount:      selectedCount,
			TargetPlayers:      cfg.SquadSize,
		})
	}

	return out, nil
}

func (s *LifecycleService) GetSelectionStats(ctx context.Context, userID, playerID string) (SelectionStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LifecycleService.GetSelectionStats", playerAttr(playerID))
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return SelectionStats{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return SelectionStats{}, fmt.Errorf("get player by id: %w", err)
	}
	if !exists {
		return SelectionStats{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	if err := s.access.require(ctx, p.ClubID, userID, readerRoles...); err != nil {
		return SelectionStats{}, err
	}

	available, err := s.availabilityRepo.CountByPlayer(ctx, playerID, availability.StatusAvailable)
	if err != nil {
		return SelectionStats{}, fmt.Errorf("count availability: %w", err)
	}
	selected, err := s.selectionRepo.CountByPlayer(ctx, playerID)
	if err != nil {
		return SelectionStats{}, fmt.Errorf("count team selections: %w", err)
	}
	counts, err := s.lifecycleRepo.CountsByPlayer(ctx, playerID)
	if err != nil {
		return SelectionStats{}, fmt.Errorf("count participations: %w", err)
	}
	_, late, err := s.withdrawalRepo.CountByPlayer(ctx, playerID)
	if err != nil {
		return SelectionStats{}, fmt.Errorf("count selection withdrawals: %w", err)
	}

	rate := 0.0
	if available > 0 {
		rate = math.Round(float64(selected)/float64(available)*1000) / 10
	}

	return SelectionStats{
		PlayerID:         playerID,
		MatchesAvailable: available,
		MatchesSelected:  selected,
		MatchesPlayed:    counts.Played,
		SelectionRate:    rate,
		NoShows:          counts.NoShows,
		Withdrawals:      counts.Withdrawals,
		LateWithdrawals:  late,
	}, nil
}

func (s *LifecycleService) playersByID(ctx context.Context, clubID string) (map[string]player.Player, error) {
	players, err := s.playerRepo.ListByClub(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("list club players: %w", err)
	}
	out := make(map[string]player.Player, len(players))
	for _, p := range players {
		out[p.ID] = p
	}
	return out, nil
}
