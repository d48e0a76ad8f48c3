package withdrawal

import (
	"time"

	"github.com/shopspring/decimal"
)

// Withdrawal records a player pulling out of a selected squad.
// IsLate and PenaltyApplied are evaluated once and never recomputed.
type Withdrawal struct {
	MatchID        string
	PlayerID       string
	MatchTime      time.Time
	WithdrawnAt    time.Time
	IsLate         bool
	PenaltyApplied decimal.Decimal
	Reason         string
}

// Policy is the slice of club config that governs lateness.
type Policy struct {
	LateHours int
	Penalty   decimal.Decimal
}

// Evaluate decides lateness for a withdrawal made at now for a match starting at matchTime.
// A withdrawal is late when less than LateHours remain before the match.
func Evaluate(matchTime, now time.Time, policy Policy) (bool, decimal.Decimal) {
	remaining := matchTime.Sub(now)
	if remaining < time.Duration(policy.LateHours)*time.Hour {
		return true, policy.Penalty
	}
	return false, decimal.Zero
}
