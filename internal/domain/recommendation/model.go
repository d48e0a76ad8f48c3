package recommendation

import (
	"github.com/riskibarqy/cricket-club/internal/domain/attendance"
	"github.com/riskibarqy/cricket-club/internal/domain/player"
	"github.com/riskibarqy/cricket-club/internal/domain/stats"
	"github.com/shopspring/decimal"
)

const (
	ReasonTopScorer = "Top scorer"
	ReasonReserve   = "Reserve"
)

// Candidate is everything the scoring engine needs about one available player.
type Candidate struct {
	Player          player.Player
	BaseOverride    *decimal.Decimal
	RecentStats     []stats.MatchStat
	Selections      int
	Attendance      attendance.Summary
	LateWithdrawals int
	IsPaid          bool
}

// ScoredPlayer is a candidate with its component scores and assembly flags.
// Score fields hold unrounded values; callers round for display.
type ScoredPlayer struct {
	PlayerID string
	Name     string
	Role     player.Role
	IsPaid   bool

	BaseScore          decimal.Decimal
	Performance        decimal.Decimal
	Fairness           decimal.Decimal
	Attendance         decimal.Decimal
	Reliability        decimal.Decimal
	SeasonDistribution decimal.Decimal
	Batting            decimal.Decimal
	Bowling            decimal.Decimal
	Composite          decimal.Decimal

	IsRecommended   bool
	IsReserve       bool
	ReservePriority int
	Reason          string
	BattingSlot     int
	BowlingSlot     int
	IsCaptain       bool
	IsViceCaptain   bool
}

// Assembly partitions ranked candidates. Recommended keeps admission order.
type Assembly struct {
	Recommended []ScoredPlayer
	Reserves    []ScoredPlayer
	Unselected  []ScoredPlayer
}

// Players returns recommended, then reserves, then the rest.
func (a Assembly) Players() []ScoredPlayer {
	out := make([]ScoredPlayer, 0, len(a.Recommended)+len(a.Reserves)+len(a.Unselected))
	out = append(out, a.Recommended...)
	out = append(out, a.Reserves...)
	out = append(out, a.Unselected...)
	return out
}

// Round2 rounds a score for display.
func Round2(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}
