package recommendation

import (
	"sort"

	"github.com/riskibarqy/cricket-club/internal/domain/selection"
	"github.com/shopspring/decimal"
)

// RecentMatchWindow is how many of a player's latest matches feed the performance score.
const RecentMatchWindow = 5

var (
	hundred            = decimal.NewFromInt(100)
	goodInningsRuns    = decimal.NewFromInt(50)
	goodSpellWickets   = decimal.NewFromInt(3)
	neutralAttendance  = decimal.NewFromInt(50)
	latePenaltyPerItem = decimal.NewFromInt(20)
	two                = decimal.NewFromInt(2)
)

// DistributionPolicy scores how under-represented a player has been this season.
type DistributionPolicy interface {
	Score(c Candidate, fairness decimal.Decimal) decimal.Decimal
}

// FairnessDistribution mirrors the fairness score.
type FairnessDistribution struct{}

func (FairnessDistribution) Score(_ Candidate, fairness decimal.Decimal) decimal.Decimal {
	return fairness
}

type Scorer struct {
	cfg    selection.Config
	policy DistributionPolicy
}

func NewScorer(cfg selection.Config, policy DistributionPolicy) *Scorer {
	if policy == nil {
		policy = FairnessDistribution{}
	}
	return &Scorer{cfg: cfg, policy: policy}
}

// MaxSelections returns the highest selection count in counts, or 1 when nobody was selected.
func MaxSelections(counts map[string]int) int {
	maxSel := 1
	for _, n := range counts {
		if n > maxSel {
			maxSel = n
		}
	}
	return maxSel
}

// Score computes every candidate and returns them ranked by composite score.
func (s *Scorer) Score(candidates []Candidate, maxSelections int) []ScoredPlayer {
	if maxSelections < 1 {
		maxSelections = 1
	}

	out := make([]ScoredPlayer, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, s.scoreOne(c, maxSelections))
	}
	return Rank(out)
}

func (s *Scorer) scoreOne(c Candidate, maxSelections int) ScoredPlayer {
	base := s.cfg.DefaultBaseScore
	if c.BaseOverride != nil {
		base = *c.BaseOverride
	}

	batting, bowling, performance := performanceScores(c)
	fairness := fairnessScore(c.Selections, maxSelections)
	att := attendanceScore(c.Attendance.Attended, c.Attendance.Recorded)
	reliability := reliabilityScore(c.LateWithdrawals)
	distribution := s.policy.Score(c, fairness)

	w := s.cfg.Weights
	composite := base.
		Add(performance.Mul(w.Performance)).
		Add(fairness.Mul(w.Fairness)).
		Add(att.Mul(w.Attendance)).
		Add(reliability.Mul(w.Reliability)).
		Add(distribution.Mul(w.SeasonDistribution))

	return ScoredPlayer{
		PlayerID:           c.Player.ID,
		Name:               c.Player.Name,
		Role:               c.Player.Role,
		IsPaid:             c.IsPaid,
		BaseScore:          base,
		Performance:        performance,
		Fairness:           fairness,
		Attendance:         att,
		Reliability:        reliability,
		SeasonDistribution: distribution,
		Batting:            batting,
		Bowling:            bowling,
		Composite:          composite,
	}
}

func performanceScores(c Candidate) (batting, bowling, performance decimal.Decimal) {
	recent := c.RecentStats
	if len(recent) > RecentMatchWindow {
		recent = recent[:RecentMatchWindow]
	}
	if len(recent) == 0 {
		return decimal.Zero, decimal.Zero, decimal.Zero
	}

	var runs, wickets int64
	for _, item := range recent {
		runs += int64(item.RunsScored)
		wickets += int64(item.Wickets)
	}
	n := decimal.NewFromInt(int64(len(recent)))

	batting = decimal.Min(decimal.NewFromInt(runs).Div(n).Div(goodInningsRuns).Mul(hundred), hundred)
	bowling = decimal.Min(decimal.NewFromInt(wickets).Div(n).Div(goodSpellWickets).Mul(hundred), hundred)
	return batting, bowling, batting.Add(bowling).Div(two)
}

func fairnessScore(selections, maxSelections int) decimal.Decimal {
	ratio := decimal.NewFromInt(int64(selections)).Div(decimal.NewFromInt(int64(maxSelections)))
	return decimal.Max(decimal.Zero, hundred.Sub(ratio.Mul(hundred)))
}

func attendanceScore(attended, recorded int) decimal.Decimal {
	if recorded <= 0 {
		return neutralAttendance
	}
	return decimal.NewFromInt(int64(attended)).Div(decimal.NewFromInt(int64(recorded))).Mul(hundred)
}

func reliabilityScore(lateWithdrawals int) decimal.Decimal {
	return decimal.Max(decimal.Zero, hundred.Sub(latePenaltyPerItem.Mul(decimal.NewFromInt(int64(lateWithdrawals)))))
}

// Rank returns a copy of players ordered by unrounded composite desc, then name, then id.
func Rank(players []ScoredPlayer) []ScoredPlayer {
	out := append([]ScoredPlayer(nil), players...)
	sort.SliceStable(out, func(i, j int) bool {
		if cmp := out[i].Composite.Cmp(out[j].Composite); cmp != 0 {
			return cmp > 0
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}
