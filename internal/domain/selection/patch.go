package selection

import (
	"fmt"

	"github.com/riskibarqy/cricket-club/internal/domain/player"
	"github.com/shopspring/decimal"
)

// QuotaPatch updates one role's bounds; nil fields keep the prior value.
type QuotaPatch struct {
	Min *int
	Max *int
}

// ConfigPatch is a partial update: every non-nil field replaces the stored value.
type ConfigPatch struct {
	PerformanceWeight                *decimal.Decimal
	FairnessWeight                   *decimal.Decimal
	AttendanceWeight                 *decimal.Decimal
	ReliabilityWeight                *decimal.Decimal
	SeasonDistributionWeight         *decimal.Decimal
	LateWithdrawalHours              *int
	LateWithdrawalPenalty            *decimal.Decimal
	MaxLateWithdrawalPenalty         *decimal.Decimal
	Quotas                           map[string]QuotaPatch
	SquadSize                        *int
	ReserveCount                     *int
	MinBowlingOptions                *int
	DefaultBaseScore                 *decimal.Decimal
	PerformanceBonusRunsThreshold    *int
	PerformanceBonusRunsPoints       *decimal.Decimal
	PerformanceBonusWicketsThreshold *int
	PerformanceBonusWicketsPoints    *decimal.Decimal
	MinAttendanceScore               *decimal.Decimal
	MaxAttendanceBonus               *decimal.Decimal
	AbsencePenaltyPoints             *decimal.Decimal
	DefaultMatchOvers                *int
	AutoSelectCaptain                *bool
	AutoSelectViceCaptain            *bool
}

// Apply returns a copy of base with the patch merged in. The result is validated.
func (p ConfigPatch) Apply(base Config) (Config, error) {
	out := base.Clone()

	setDecimal(&out.Weights.Performance, p.PerformanceWeight)
	setDecimal(&out.Weights.Fairness, p.FairnessWeight)
	setDecimal(&out.Weights.Attendance, p.AttendanceWeight)
	setDecimal(&out.Weights.Reliability, p.ReliabilityWeight)
	setDecimal(&out.Weights.SeasonDistribution, p.SeasonDistributionWeight)
	setInt(&out.LateWithdrawalHours, p.LateWithdrawalHours)
	setDecimal(&out.LateWithdrawalPenalty, p.LateWithdrawalPenalty)
	setDecimal(&out.MaxLateWithdrawalPenalty, p.MaxLateWithdrawalPenalty)
	setInt(&out.SquadSize, p.SquadSize)
	setInt(&out.ReserveCount, p.ReserveCount)
	setInt(&out.MinBowlingOptions, p.MinBowlingOptions)
	setDecimal(&out.DefaultBaseScore, p.DefaultBaseScore)
	setInt(&out.PerformanceBonusRunsThreshold, p.PerformanceBonusRunsThreshold)
	setDecimal(&out.PerformanceBonusRunsPoints, p.PerformanceBonusRunsPoints)
	setInt(&out.PerformanceBonusWicketsThreshold, p.PerformanceBonusWicketsThreshold)
	setDecimal(&out.PerformanceBonusWicketsPoints, p.PerformanceBonusWicketsPoints)
	setDecimal(&out.MinAttendanceScore, p.MinAttendanceScore)
	setDecimal(&out.MaxAttendanceBonus, p.MaxAttendanceBonus)
	setDecimal(&out.AbsencePenaltyPoints, p.AbsencePenaltyPoints)
	setInt(&out.DefaultMatchOvers, p.DefaultMatchOvers)
	if p.AutoSelectCaptain != nil {
		out.AutoSelectCaptain = *p.AutoSelectCaptain
	}
	if p.AutoSelectViceCaptain != nil {
		out.AutoSelectViceCaptain = *p.AutoSelectViceCaptain
	}

	for name, qp := range p.Quotas {
		role, err := player.ParseRole(name)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		q := out.Quota(role)
		setInt(&q.Min, qp.Min)
		setInt(&q.Max, qp.Max)
		out.Quotas[role] = q
	}

	if err := out.Validate(); err != nil {
		return Config{}, err
	}
	return out, nil
}

func setDecimal(dst *decimal.Decimal, v *decimal.Decimal) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
