package httpapi

import (
	"sort"
	"time"

	"github.com/riskibarqy/cricket-club/internal/domain/attendance"
	"github.com/riskibarqy/cricket-club/internal/domain/availability"
	"github.com/riskibarqy/cricket-club/internal/domain/lifecycle"
	"github.com/riskibarqy/cricket-club/internal/domain/match"
	"github.com/riskibarqy/cricket-club/internal/domain/recommendation"
	"github.com/riskibarqy/cricket-club/internal/domain/selection"
	"github.com/riskibarqy/cricket-club/internal/domain/withdrawal"
	"github.com/riskibarqy/cricket-club/internal/usecase"
	"github.com/shopspring/decimal"
)

func money(v decimal.Decimal) string {
	return v.StringFixed(2)
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

type scoredPlayerDTO struct {
	PlayerID                string `json:"player_id"`
	Name                    string `json:"name"`
	Role                    string `json:"role"`
	IsPaid                  bool   `json:"is_paid"`
	BaseScore               string `json:"base_score"`
	PerformanceScore        string `json:"performance_score"`
	FairnessScore           string `json:"fairness_score"`
	AttendanceScore         string `json:"attendance_score"`
	ReliabilityScore        string `json:"reliability_score"`
	SeasonDistributionScore string `json:"season_distribution_score"`
	BattingScore            string `json:"batting_score"`
	BowlingScore            string `json:"bowling_score"`
	CompositeScore          string `json:"composite_score"`
	IsRecommended           bool   `json:"is_recommended"`
	IsReserve               bool   `json:"is_reserve"`
	ReservePriority         int    `json:"reserve_priority,omitempty"`
	Reason                  string `json:"reason,omitempty"`
	BattingSlot             int    `json:"batting_slot,omitempty"`
	BowlingSlot             int    `json:"bowling_slot,omitempty"`
	IsCaptain               bool   `json:"is_captain"`
	IsViceCaptain           bool   `json:"is_vice_captain"`
}

type recommendationDTO struct {
	MatchID          string            `json:"match_id"`
	RecommendedCount int               `json:"recommended_count"`
	ReserveCount     int               `json:"reserve_count"`
	Players          []scoredPlayerDTO `json:"players"`
}

func recommendationToDTO(matchID string, players []recommendation.ScoredPlayer) recommendationDTO {
	out := recommendationDTO{
		MatchID: matchID,
		Players: make([]scoredPlayerDTO, 0, len(players)),
	}
	for _, p := range players {
		if p.IsRecommended {
			out.RecommendedCount++
		}
		if p.IsReserve {
			out.ReserveCount++
		}
		out.Players = append(out.Players, scoredPlayerDTO{
			PlayerID:                p.PlayerID,
			Name:                    p.Name,
			Role:                    string(p.Role),
			IsPaid:                  p.IsPaid,
			BaseScore:               money(p.BaseScore),
			PerformanceScore:        money(p.Performance),
			FairnessScore:           money(p.Fairness),
			AttendanceScore:         money(p.Attendance),
			ReliabilityScore:        money(p.Reliability),
			SeasonDistributionScore: money(p.SeasonDistribution),
			BattingScore:            money(p.Batting),
			BowlingScore:            money(p.Bowling),
			CompositeScore:          money(p.Composite),
			IsRecommended:           p.IsRecommended,
			IsReserve:               p.IsReserve,
			ReservePriority:         p.ReservePriority,
			Reason:                  p.Reason,
			BattingSlot:             p.BattingSlot,
			BowlingSlot:             p.BowlingSlot,
			IsCaptain:               p.IsCaptain,
			IsViceCaptain:           p.IsViceCaptain,
		})
	}
	return out
}

type nextMatchDTO struct {
	MatchID            string `json:"match_id,omitempty"`
	MatchDate          string `json:"match_date,omitempty"`
	Opponent           string `json:"opponent,omitempty"`
	TeamName           string `json:"team_name,omitempty"`
	PlayersRecommended int    `json:"players_recommended"`
	Message            string `json:"message,omitempty"`
}

func nextMatchToDTO(v usecase.NextMatchRecommendation) nextMatchDTO {
	return nextMatchDTO{
		MatchID:            v.MatchID,
		MatchDate:          timestamp(v.MatchDate),
		Opponent:           v.Opponent,
		TeamName:           v.TeamName,
		PlayersRecommended: v.PlayersRecommended,
		Message:            v.Message,
	}
}

type simulationStatusDTO struct {
	TotalUpcomingMatches     int    `json:"total_upcoming_matches"`
	MatchesWithSelections    int    `json:"matches_with_selections"`
	MatchesWithoutSelections int    `json:"matches_without_selections"`
	NextMatchDate            string `json:"next_match_date,omitempty"`
	NextMatchOpponent        string `json:"next_match_opponent,omitempty"`
	NextMatchHasSelections   bool   `json:"next_match_has_selections"`
}

func simulationStatusToDTO(v usecase.SimulationStatus) simulationStatusDTO {
	out := simulationStatusDTO{
		TotalUpcomingMatches:     v.TotalUpcomingMatches,
		MatchesWithSelections:    v.MatchesWithSelections,
		MatchesWithoutSelections: v.MatchesWithoutSelections,
		NextMatchOpponent:        v.NextMatchOpponent,
		NextMatchHasSelections:   v.NextMatchHasSelections,
	}
	if v.NextMatchDate != nil {
		out.NextMatchDate = timestamp(*v.NextMatchDate)
	}
	return out
}

type roleQuotaDTO struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type selectionConfigDTO struct {
	ClubID                           string                  `json:"club_id"`
	PerformanceWeight                string                  `json:"performance_weight"`
	FairnessWeight                   string                  `json:"fairness_weight"`
	AttendanceWeight                 string                  `json:"attendance_weight"`
	ReliabilityWeight                string                  `json:"reliability_weight"`
	SeasonDistributionWeight         string                  `json:"season_distribution_weight"`
	LateWithdrawalHours              int                     `json:"late_withdrawal_hours"`
	LateWithdrawalPenalty            string                  `json:"late_withdrawal_penalty"`
	MaxLateWithdrawalPenalty         string                  `json:"max_late_withdrawal_penalty"`
	RoleQuotas                       map[string]roleQuotaDTO `json:"role_quotas"`
	SquadSize                        int                     `json:"squad_size"`
	ReserveCount                     int                     `json:"reserve_count"`
	MinBowlingOptions                int                     `json:"min_bowling_options"`
	DefaultBaseScore                 string                  `json:"default_base_score"`
	PerformanceBonusRunsThreshold    int                     `json:"performance_bonus_runs_threshold"`
	PerformanceBonusRunsPoints       string                  `json:"performance_bonus_runs_points"`
	PerformanceBonusWicketsThreshold int                     `json:"performance_bonus_wickets_threshold"`
	PerformanceBonusWicketsPoints    string                  `json:"performance_bonus_wickets_points"`
	MinAttendanceScore               string                  `json:"min_attendance_score"`
	MaxAttendanceBonus               string                  `json:"max_attendance_bonus"`
	AbsencePenaltyPoints             string                  `json:"absence_penalty_points"`
	DefaultMatchOvers                int                     `json:"default_match_overs"`
	AutoSelectCaptain                bool                    `json:"auto_select_captain"`
	AutoSelectViceCaptain            bool                    `json:"auto_select_vice_captain"`
	UpdatedAt                        string                  `json:"updated_at,omitempty"`
}

func selectionConfigToDTO(cfg selection.Config) selectionConfigDTO {
	quotas := make(map[string]roleQuotaDTO, len(cfg.Quotas))
	for role, q := range cfg.Quotas {
		quotas[string(role)] = roleQuotaDTO{Min: q.Min, Max: q.Max}
	}
	return selectionConfigDTO{
		ClubID:                           cfg.ClubID,
		PerformanceWeight:                money(cfg.Weights.Performance),
		FairnessWeight:                   money(cfg.Weights.Fairness),
		AttendanceWeight:                 money(cfg.Weights.Attendance),
		ReliabilityWeight:                money(cfg.Weights.Reliability),
		SeasonDistributionWeight:         money(cfg.Weights.SeasonDistribution),
		LateWithdrawalHours:              cfg.LateWithdrawalHours,
		LateWithdrawalPenalty:            money(cfg.LateWithdrawalPenalty),
		MaxLateWithdrawalPenalty:         money(cfg.MaxLateWithdrawalPenalty),
		RoleQuotas:                       quotas,
		SquadSize:                        cfg.SquadSize,
		ReserveCount:                     cfg.ReserveCount,
		MinBowlingOptions:                cfg.MinBowlingOptions,
		DefaultBaseScore:                 money(cfg.DefaultBaseScore),
		PerformanceBonusRunsThreshold:    cfg.PerformanceBonusRunsThreshold,
		PerformanceBonusRunsPoints:       money(cfg.PerformanceBonusRunsPoints),
		PerformanceBonusWicketsThreshold: cfg.PerformanceBonusWicketsThreshold,
		PerformanceBonusWicketsPoints:    money(cfg.PerformanceBonusWicketsPoints),
		MinAttendanceScore:               money(cfg.MinAttendanceScore),
		MaxAttendanceBonus:               money(cfg.MaxAttendanceBonus),
		AbsencePenaltyPoints:             money(cfg.AbsencePenaltyPoints),
		DefaultMatchOvers:                cfg.DefaultMatchOvers,
		AutoSelectCaptain:                cfg.AutoSelectCaptain,
		AutoSelectViceCaptain:            cfg.AutoSelectViceCaptain,
		UpdatedAt:                        timestamp(cfg.UpdatedAt),
	}
}

type overrideDTO struct {
	ClubID    string `json:"club_id"`
	PlayerID  string `json:"player_id"`
	BaseScore string `json:"base_score"`
	Notes     string `json:"notes,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

func overrideToDTO(o selection.Override) overrideDTO {
	return overrideDTO{
		ClubID:    o.ClubID,
		PlayerID:  o.PlayerID,
		BaseScore: money(o.BaseScore),
		Notes:     o.Notes,
		UpdatedAt: timestamp(o.UpdatedAt),
	}
}

type withdrawalDTO struct {
	MatchID        string `json:"match_id"`
	PlayerID       string `json:"player_id"`
	MatchTime      string `json:"match_time"`
	WithdrawnAt    string `json:"withdrawn_at"`
	IsLate         bool   `json:"is_late"`
	PenaltyApplied string `json:"penalty_applied"`
	Reason         string `json:"reason,omitempty"`
}

func withdrawalToDTO(w withdrawal.Withdrawal) withdrawalDTO {
	return withdrawalDTO{
		MatchID:        w.MatchID,
		PlayerID:       w.PlayerID,
		MatchTime:      timestamp(w.MatchTime),
		WithdrawnAt:    timestamp(w.WithdrawnAt),
		IsLate:         w.IsLate,
		PenaltyApplied: money(w.PenaltyApplied),
		Reason:         w.Reason,
	}
}

type participationDTO struct {
	MatchID               string `json:"match_id"`
	PlayerID              string `json:"player_id"`
	PlayerName            string `json:"player_name,omitempty"`
	PlayerRole            string `json:"player_role,omitempty"`
	Status                string `json:"status"`
	WasSubstitute         bool   `json:"was_substitute"`
	SubstituteForPlayerID string `json:"substitute_for_player_id,omitempty"`
	WithdrawalReason      string `json:"withdrawal_reason,omitempty"`
	NoShowReason          string `json:"no_show_reason,omitempty"`
	ConfirmedAt           string `json:"confirmed_at,omitempty"`
}

func participationToDTO(p lifecycle.Participation) participationDTO {
	return participationDTO{
		MatchID:               p.MatchID,
		PlayerID:              p.PlayerID,
		Status:                string(p.Status),
		WasSubstitute:         p.WasSubstitute,
		SubstituteForPlayerID: p.SubstituteForPlayerID,
		WithdrawalReason:      p.WithdrawalReason,
		NoShowReason:          p.NoShowReason,
		ConfirmedAt:           timestamp(p.ConfirmedAt),
	}
}

func participationViewToDTO(v usecase.ParticipationView) participationDTO {
	out := participationToDTO(v.Participation)
	out.PlayerName = v.PlayerName
	out.PlayerRole = string(v.PlayerRole)
	return out
}

type playerLifecycleDTO struct {
	PlayerID            string `json:"player_id"`
	PlayerName          string `json:"player_name"`
	PlayerRole          string `json:"player_role"`
	AvailabilityStatus  string `json:"availability_status"`
	IsSelected          bool   `json:"is_selected"`
	ParticipationStatus string `json:"participation_status"`
	WasSubstitute       bool   `json:"was_substitute"`
	PaymentStatus       string `json:"payment_status,omitempty"`
}

func playerLifecycleToDTO(v usecase.PlayerLifecycle) playerLifecycleDTO {
	return playerLifecycleDTO{
		PlayerID:            v.Player.ID,
		PlayerName:          v.Player.Name,
		PlayerRole:          string(v.Player.Role),
		AvailabilityStatus:  string(v.AvailabilityStatus),
		IsSelected:          v.IsSelected,
		ParticipationStatus: string(v.ParticipationStatus),
		WasSubstitute:       v.WasSubstitute,
		PaymentStatus:       string(v.PaymentStatus),
	}
}

type auditEntryDTO struct {
	ID            string         `json:"id"`
	MatchID       string         `json:"match_id"`
	PlayerID      string         `json:"player_id,omitempty"`
	PlayerName    string         `json:"player_name,omitempty"`
	Action        string         `json:"action"`
	PreviousState string         `json:"previous_state,omitempty"`
	NewState      string         `json:"new_state,omitempty"`
	ActorID       string         `json:"actor_id"`
	Reason        string         `json:"reason,omitempty"`
	Details       map[string]any `json:"details,omitempty"`
	CreatedAt     string         `json:"created_at"`
}

func auditEntryToDTO(v usecase.AuditLogEntry) auditEntryDTO {
	return auditEntryDTO{
		ID:            v.ID,
		MatchID:       v.MatchID,
		PlayerID:      v.PlayerID,
		PlayerName:    v.PlayerName,
		Action:        string(v.Action),
		PreviousState: v.PreviousState,
		NewState:      v.NewState,
		ActorID:       v.ActorID,
		Reason:        v.Reason,
		Details:       v.Details,
		CreatedAt:     timestamp(v.CreatedAt),
	}
}

type matchDTO struct {
	ID       string `json:"id"`
	ClubID   string `json:"club_id"`
	TeamName string `json:"team_name"`
	Opponent string `json:"opponent"`
	Venue    string `json:"venue,omitempty"`
	StartsAt string `json:"starts_at"`
	Status   string `json:"status"`
}

func matchToDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:       m.ID,
		ClubID:   m.ClubID,
		TeamName: m.TeamName,
		Opponent: m.Opponent,
		Venue:    m.Venue,
		StartsAt: timestamp(m.StartsAt),
		Status:   string(m.Status),
	}
}

type deadlineAlertDTO struct {
	Match              matchDTO `json:"match"`
	DeadlineAt         string   `json:"deadline_at"`
	HoursUntilDeadline float64  `json:"hours_until_deadline"`
	AvailableCount     int      `json:"available_count"`
	SelectedCount      int      `json:"selected_count"`
	TargetPlayers      int      `json:"target_players"`
}

func deadlineAlertToDTO(v usecase.DeadlineAlert) deadlineAlertDTO {
	return deadlineAlertDTO{
		Match:              matchToDTO(v.Match),
		DeadlineAt:         timestamp(v.DeadlineAt),
		HoursUntilDeadline: v.HoursUntilDeadline,
		AvailableCount:     v.AvailableCount,
		SelectedCount:      v.SelectedCount,
		TargetPlayers:      v.TargetPlayers,
	}
}

type selectionStatsDTO struct {
	PlayerID         string  `json:"player_id"`
	MatchesAvailable int     `json:"matches_available"`
	MatchesSelected  int     `json:"matches_selected"`
	MatchesPlayed    int     `json:"matches_played"`
	SelectionRate    float64 `json:"selection_rate"`
	NoShows          int     `json:"no_shows"`
	Withdrawals      int     `json:"withdrawals"`
	LateWithdrawals  int     `json:"late_withdrawals"`
}

func selectionStatsToDTO(v usecase.SelectionStats) selectionStatsDTO {
	return selectionStatsDTO{
		PlayerID:         v.PlayerID,
		MatchesAvailable: v.MatchesAvailable,
		MatchesSelected:  v.MatchesSelected,
		MatchesPlayed:    v.MatchesPlayed,
		SelectionRate:    v.SelectionRate,
		NoShows:          v.NoShows,
		Withdrawals:      v.Withdrawals,
		LateWithdrawals:  v.LateWithdrawals,
	}
}

type teamSelectionDTO struct {
	MatchID         string `json:"match_id"`
	PlayerID        string `json:"player_id"`
	BattingPosition int    `json:"batting_position,omitempty"`
	IsCaptain       bool   `json:"is_captain"`
	IsWicketkeeper  bool   `json:"is_wicketkeeper"`
	Confirmed       bool   `json:"confirmed"`
	CreatedAt       string `json:"created_at"`
}

func teamSelectionsToDTO(items []selection.TeamSelection) []teamSelectionDTO {
	out := make([]teamSelectionDTO, 0, len(items))
	for _, v := range items {
		out = append(out, teamSelectionDTO{
			MatchID:         v.MatchID,
			PlayerID:        v.PlayerID,
			BattingPosition: v.BattingPosition,
			IsCaptain:       v.IsCaptain,
			IsWicketkeeper:  v.IsWicketkeeper,
			Confirmed:       v.Confirmed,
			CreatedAt:       timestamp(v.CreatedAt),
		})
	}
	return out
}

type availabilityDTO struct {
	MatchID   string `json:"match_id"`
	PlayerID  string `json:"player_id"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updated_at"`
}

func availabilityToDTO(v availability.Record) availabilityDTO {
	return availabilityDTO{
		MatchID:   v.MatchID,
		PlayerID:  v.PlayerID,
		Status:    string(v.Status),
		UpdatedAt: timestamp(v.UpdatedAt),
	}
}

type attendanceDTO struct {
	FixtureID  string `json:"fixture_id"`
	PlayerID   string `json:"player_id"`
	Status     string `json:"status"`
	Notes      string `json:"notes,omitempty"`
	RecordedAt string `json:"recorded_at"`
}

func attendanceRecordsToDTO(items []attendance.Record) []attendanceDTO {
	out := make([]attendanceDTO, 0, len(items))
	for _, v := range items {
		out = append(out, attendanceDTO{
			FixtureID:  v.FixtureID,
			PlayerID:   v.PlayerID,
			Status:     string(v.Status),
			Notes:      v.Notes,
			RecordedAt: timestamp(v.RecordedAt),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out
}
