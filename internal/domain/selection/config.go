package selection

import (
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/cricket-club/internal/domain/player"
	"github.com/shopspring/decimal"
)

var ErrInvalidConfig = errors.New("invalid selection config")

// Upper bounds for stored decimals: ratios are NUMERIC(6,4) columns, points NUMERIC(8,2).
var (
	maxRatio  = decimal.NewFromInt(10)
	maxPoints = decimal.NewFromInt(10000)
)

// Weights scale each 0-100 component before it is added to the base score.
// They are not required to sum to one.
type Weights struct {
	Performance        decimal.Decimal
	Fairness           decimal.Decimal
	Attendance         decimal.Decimal
	Reliability        decimal.Decimal
	SeasonDistribution decimal.Decimal
}

type RoleQuota struct {
	Min int
	Max int
}

// Config holds the per-club tunables for recommendation and withdrawal policy.
type Config struct {
	ClubID                           string
	Weights                          Weights
	LateWithdrawalHours              int
	LateWithdrawalPenalty            decimal.Decimal
	MaxLateWithdrawalPenalty         decimal.Decimal
	Quotas                           map[player.Role]RoleQuota
	SquadSize                        int
	ReserveCount                     int
	MinBowlingOptions                int
	DefaultBaseScore                 decimal.Decimal
	PerformanceBonusRunsThreshold    int
	PerformanceBonusRunsPoints       decimal.Decimal
	PerformanceBonusWicketsThreshold int
	PerformanceBonusWicketsPoints    decimal.Decimal
	MinAttendanceScore               decimal.Decimal
	MaxAttendanceBonus               decimal.Decimal
	AbsencePenaltyPoints             decimal.Decimal
	DefaultMatchOvers                int
	AutoSelectCaptain                bool
	AutoSelectViceCaptain            bool
	UpdatedAt                        time.Time
}

// DefaultConfig returns the documented defaults applied when a club has no stored config.
func DefaultConfig(clubID string) Config {
	return Config{
		ClubID: clubID,
		Weights: Weights{
			Performance:        decimal.RequireFromString("0.30"),
			Fairness:           decimal.RequireFromString("0.25"),
			Attendance:         decimal.RequireFromString("0.20"),
			Reliability:        decimal.RequireFromString("0.15"),
			SeasonDistribution: decimal.RequireFromString("0.10"),
		},
		LateWithdrawalHours:      48,
		LateWithdrawalPenalty:    decimal.RequireFromString("0.10"),
		MaxLateWithdrawalPenalty: decimal.RequireFromString("0.50"),
		Quotas: map[player.Role]RoleQuota{
			player.RoleWicketKeeper: {Min: 1, Max: 1},
			player.RoleBatter:       {Min: 4, Max: 6},
			player.RoleAllRounder:   {Min: 1, Max: 3},
			player.RoleBowler:       {Min: 3, Max: 5},
		},
		SquadSize:                        11,
		ReserveCount:                     2,
		MinBowlingOptions:                5,
		DefaultBaseScore:                 decimal.NewFromInt(50),
		PerformanceBonusRunsThreshold:    50,
		PerformanceBonusRunsPoints:       decimal.NewFromInt(5),
		PerformanceBonusWicketsThreshold: 3,
		PerformanceBonusWicketsPoints:    decimal.NewFromInt(5),
		MinAttendanceScore:               decimal.Zero,
		MaxAttendanceBonus:               decimal.RequireFromString("0.20"),
		AbsencePenaltyPoints:             decimal.NewFromInt(2),
		DefaultMatchOvers:                50,
	}
}

// Quota returns the quota for role; unknown roles get no minimum and no cap beyond squad size.
func (c Config) Quota(role player.Role) RoleQuota {
	if q, ok := c.Quotas[role]; ok {
		return q
	}
	return RoleQuota{Min: 0, Max: c.SquadSize}
}

func (c Config) Validate() error {
	w := c.Weights
	ratios := []namedDecimal{
		{"performance weight", w.Performance},
		{"fairness weight", w.Fairness},
		{"attendance weight", w.Attendance},
		{"reliability weight", w.Reliability},
		{"season_distribution weight", w.SeasonDistribution},
		{"late withdrawal penalty", c.LateWithdrawalPenalty},
		{"max late withdrawal penalty", c.MaxLateWithdrawalPenalty},
		{"max attendance bonus", c.MaxAttendanceBonus},
	}
	for _, v := range ratios {
		if err := v.within(maxRatio); err != nil {
			return err
		}
	}
	points := []namedDecimal{
		{"default base score", c.DefaultBaseScore},
		{"performance bonus runs points", c.PerformanceBonusRunsPoints},
		{"performance bonus wickets points", c.PerformanceBonusWicketsPoints},
		{"min attendance score", c.MinAttendanceScore},
		{"absence penalty points", c.AbsencePenaltyPoints},
	}
	for _, v := range points {
		if err := v.within(maxPoints); err != nil {
			return err
		}
	}
	if c.SquadSize < 1 {
		return fmt.Errorf("%w: squad size must be >= 1", ErrInvalidConfig)
	}
	if c.ReserveCount < 0 {
		return fmt.Errorf("%w: reserve count must be >= 0", ErrInvalidConfig)
	}
	if c.LateWithdrawalHours < 0 {
		return fmt.Errorf("%w: late withdrawal hours must be >= 0", ErrInvalidConfig)
	}
	if c.LateWithdrawalPenalty.GreaterThan(c.MaxLateWithdrawalPenalty) {
		return fmt.Errorf("%w: late withdrawal penalty cannot exceed max late withdrawal penalty", ErrInvalidConfig)
	}
	if c.MinBowlingOptions < 0 || c.DefaultMatchOvers < 0 {
		return fmt.Errorf("%w: bowling options and match overs must be >= 0", ErrInvalidConfig)
	}
	if c.PerformanceBonusRunsThreshold < 0 || c.PerformanceBonusWicketsThreshold < 0 {
		return fmt.Errorf("%w: performance bonus thresholds must be >= 0", ErrInvalidConfig)
	}

	minTotal := 0
	for role, q := range c.Quotas {
		if _, ok := player.AllRoles[role]; !ok {
			return fmt.Errorf("%w: unknown role %q in quotas", ErrInvalidConfig, role)
		}
		if q.Min < 0 || q.Max < 0 {
			return fmt.Errorf("%w: %s quota cannot be negative", ErrInvalidConfig, role)
		}
		if q.Min > q.Max {
			return fmt.Errorf("%w: %s minimum %d exceeds maximum %d", ErrInvalidConfig, role, q.Min, q.Max)
		}
		minTotal += q.Min
	}
	if minTotal > c.SquadSize {
		return fmt.Errorf("%w: role minimums total %d exceeds squad size %d", ErrInvalidConfig, minTotal, c.SquadSize)
	}

	return nil
}

// ValidateBaseScore checks a per-player base score override.
func ValidateBaseScore(v decimal.Decimal) error {
	return namedDecimal{"base score", v}.within(maxPoints)
}

type namedDecimal struct {
	name  string
	value decimal.Decimal
}

func (d namedDecimal) within(limit decimal.Decimal) error {
	if d.value.IsNegative() || d.value.GreaterThan(limit) {
		return fmt.Errorf("%w: %s must be between 0 and %s", ErrInvalidConfig, d.name, limit)
	}
	return nil
}

func (c Config) Clone() Config {
	out := c
	out.Quotas = make(map[player.Role]RoleQuota, len(c.Quotas))
	for role, q := range c.Quotas {
		out.Quotas[role] = q
	}
	return out
}
