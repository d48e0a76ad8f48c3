package postgres

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

type playerTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	ClubID    string     `db:"club_public_id"`
	Name      string     `db:"name"`
	Role      string     `db:"role"`
	IsActive  bool       `db:"is_active"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type matchTableModel struct {
	PublicID  string         `db:"public_id"`
	ClubID    string         `db:"club_public_id"`
	TeamName  string         `db:"team_name"`
	Opponent  string         `db:"opponent"`
	Venue     string         `db:"venue"`
	MatchType string         `db:"match_type"`
	StartsAt  time.Time      `db:"starts_at"`
	Status    string         `db:"status"`
	Result    sql.NullString `db:"result"`
}

type membershipTableModel struct {
	ClubID string `db:"club_public_id"`
	UserID string `db:"user_id"`
	Role   string `db:"role"`
}

type availabilityTableModel struct {
	MatchID   string    `db:"match_public_id"`
	PlayerID  string    `db:"player_public_id"`
	Status    string    `db:"status"`
	UpdatedAt time.Time `db:"updated_at"`
}

type teamSelectionTableModel struct {
	MatchID         string    `db:"match_public_id"`
	PlayerID        string    `db:"player_public_id"`
	BattingPosition int       `db:"batting_position"`
	IsCaptain       bool      `db:"is_captain"`
	IsWicketkeeper  bool      `db:"is_wicketkeeper"`
	Confirmed       bool      `db:"confirmed"`
	CreatedAt       time.Time `db:"created_at"`
}

type selectionConfigTableModel struct {
	ClubID                           string          `db:"club_public_id"`
	PerformanceWeight                decimal.Decimal `db:"performance_weight"`
	FairnessWeight                   decimal.Decimal `db:"fairness_weight"`
	AttendanceWeight                 decimal.Decimal `db:"attendance_weight"`
	ReliabilityWeight                decimal.Decimal `db:"reliability_weight"`
	SeasonDistributionWeight         decimal.Decimal `db:"season_distribution_weight"`
	LateWithdrawalHours              int             `db:"late_withdrawal_hours"`
	LateWithdrawalPenalty            decimal.Decimal `db:"late_withdrawal_penalty"`
	MaxLateWithdrawalPenalty         decimal.Decimal `db:"max_late_withdrawal_penalty"`
	RoleQuotas                       string          `db:"role_quotas"`
	SquadSize                        int             `db:"squad_size"`
	ReserveCount                     int             `db:"reserve_count"`
	MinBowlingOptions                int             `db:"min_bowling_options"`
	DefaultBaseScore                 decimal.Decimal `db:"default_base_score"`
	PerformanceBonusRunsThreshold    int             `db:"performance_bonus_runs_threshold"`
	PerformanceBonusRunsPoints       decimal.Decimal `db:"performance_bonus_runs_points"`
	PerformanceBonusWicketsThreshold int             `db:"performance_bonus_wickets_threshold"`
	PerformanceBonusWicketsPoints    decimal.Decimal `db:"performance_bonus_wickets_points"`
	MinAttendanceScore               decimal.Decimal `db:"min_attendance_score"`
	MaxAttendanceBonus               decimal.Decimal `db:"max_attendance_bonus"`
	AbsencePenaltyPoints             decimal.Decimal `db:"absence_penalty_points"`
	DefaultMatchOvers                int             `db:"default_match_overs"`
	AutoSelectCaptain                bool            `db:"auto_select_captain"`
	AutoSelectViceCaptain            bool            `db:"auto_select_vice_captain"`
	UpdatedAt                        time.Time       `db:"updated_at"`
}

type roleQuotaJSON struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type scoreOverrideTableModel struct {
	ClubID    string          `db:"club_public_id"`
	PlayerID  string          `db:"player_public_id"`
	BaseScore decimal.Decimal `db:"base_score"`
	Notes     sql.NullString  `db:"notes"`
	UpdatedAt time.Time       `db:"updated_at"`
}

type withdrawalTableModel struct {
	MatchID        string          `db:"match_public_id"`
	PlayerID       string          `db:"player_public_id"`
	MatchTime      time.Time       `db:"match_time"`
	WithdrawnAt    time.Time       `db:"withdrawn_at"`
	IsLate         bool            `db:"is_late"`
	PenaltyApplied decimal.Decimal `db:"penalty_applied"`
	Reason         sql.NullString  `db:"reason"`
}

type matchStatTableModel struct {
	PlayerID     string          `db:"player_public_id"`
	MatchID      string          `db:"match_public_id"`
	MatchDate    time.Time       `db:"match_date"`
	RunsScored   int             `db:"runs_scored"`
	BallsFaced   int             `db:"balls_faced"`
	NotOut       bool            `db:"not_out"`
	OversBowled  decimal.Decimal `db:"overs_bowled"`
	RunsConceded int             `db:"runs_conceded"`
	Wickets      int             `db:"wickets"`
	Catches      int             `db:"catches"`
	RunOuts      int             `db:"run_outs"`
	Stumpings    int             `db:"stumpings"`
}

type participationTableModel struct {
	MatchID               string         `db:"match_public_id"`
	PlayerID              string         `db:"player_public_id"`
	Status                string         `db:"status"`
	WasSubstitute         bool           `db:"was_substitute"`
	SubstituteForPlayerID sql.NullString `db:"substitute_for_player_public_id"`
	WithdrawalReason      sql.NullString `db:"withdrawal_reason"`
	NoShowReason          sql.NullString `db:"no_show_reason"`
	ConfirmedAt           time.Time      `db:"confirmed_at"`
}

type auditTableModel struct {
	PublicID      string         `db:"public_id"`
	MatchID       string         `db:"match_public_id"`
	PlayerID      sql.NullString `db:"player_public_id"`
	Action        string         `db:"action"`
	PreviousState sql.NullString `db:"previous_state"`
	NewState      string         `db:"new_state"`
	ActorUserID   sql.NullString `db:"actor_user_id"`
	Reason        sql.NullString `db:"reason"`
	Details       string         `db:"details"`
	CreatedAt     time.Time      `db:"created_at"`
}

type participationCountsModel struct {
	Played      int `db:"played"`
	NoShows     int `db:"no_shows"`
	Withdrawals int `db:"withdrawals"`
}

type playerCountModel struct {
	PlayerID string `db:"player_public_id"`
	Total    int    `db:"total"`
}

type attendanceSummaryModel struct {
	PlayerID string `db:"player_public_id"`
	Attended int    `db:"attended"`
	Recorded int    `db:"recorded"`
}
