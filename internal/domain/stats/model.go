package stats

import (
	"time"

	"github.com/shopspring/decimal"
)

// MatchStat is one player's scorecard line for a completed match.
type MatchStat struct {
	PlayerID     string
	MatchID      string
	MatchDate    time.Time
	RunsScored   int
	BallsFaced   int
	NotOut       bool
	OversBowled  decimal.Decimal
	RunsConceded int
	Wickets      int
	Catches      int
	RunOuts      int
	Stumpings    int
}
