package recommendation

import (
	"fmt"
	"sort"

	"github.com/riskibarqy/cricket-club/internal/domain/player"
	"github.com/riskibarqy/cricket-club/internal/domain/selection"
)

// Assemble builds the recommended squad from ranked candidates.
// Role minimums are filled first in player.FillOrder, then the remaining slots go to the best
// scorers whose role is under its maximum. ranked is not modified.
func Assemble(ranked []ScoredPlayer, cfg selection.Config) Assembly {
	pool := Rank(ranked)
	for i := range pool {
		pool[i].IsRecommended = false
		pool[i].IsReserve = false
		pool[i].ReservePriority = 0
		pool[i].Reason = ""
	}

	taken := make([]bool, len(pool))
	roleCounts := make(map[player.Role]int, len(player.FillOrder))
	out := Assembly{}

	admit := func(idx int, reason string) {
		taken[idx] = true
		item := pool[idx]
		item.IsRecommended = true
		item.Reason = reason
		roleCounts[item.Role]++
		out.Recommended = append(out.Recommended, item)
	}

	for _, role := range player.FillOrder {
		minimum := cfg.Quota(role).Min
		filled := 0
		for idx, item := range pool {
			if filled >= minimum || len(out.Recommended) >= cfg.SquadSize {
				break
			}
			if taken[idx] || item.Role != role {
				continue
			}
			admit(idx, fmt.Sprintf("Role minimum (%s)", role))
			filled++
		}
	}

	for idx, item := range pool {
		if taken[idx] {
			continue
		}
		if len(out.Recommended) < cfg.SquadSize && roleCounts[item.Role] < cfg.Quota(item.Role).Max {
			admit(idx, ReasonTopScorer)
			continue
		}
		if len(out.Reserves) < cfg.ReserveCount {
			item.IsReserve = true
			item.ReservePriority = len(out.Reserves) + 1
			item.Reason = ReasonReserve
			out.Reserves = append(out.Reserves, item)
			continue
		}
		out.Unselected = append(out.Unselected, item)
	}

	assignSlots(out.Recommended, cfg.MinBowlingOptions)
	return out
}

// assignSlots ranks the recommended players by batting score, and by bowling score for those
// with any bowling output, capped at minBowlingOptions.
func assignSlots(recommended []ScoredPlayer, minBowlingOptions int) {
	order := make([]int, len(recommended))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		return recommended[order[a]].Batting.GreaterThan(recommended[order[b]].Batting)
	})
	for rank, idx := range order {
		recommended[idx].BattingSlot = rank + 1
	}

	sort.SliceStable(order, func(a, b int) bool {
		return recommended[order[a]].Bowling.GreaterThan(recommended[order[b]].Bowling)
	})
	slot := 0
	for _, idx := range order {
		if slot >= minBowlingOptions || !recommended[idx].Bowling.IsPositive() {
			break
		}
		slot++
		recommended[idx].BowlingSlot = slot
	}
}

// AssignLeadership marks the highest composite recommended player captain and the next vice
// captain when enabled. The ordering of a is unchanged.
func AssignLeadership(a Assembly, captain, viceCaptain bool) Assembly {
	if !captain && !viceCaptain {
		return a
	}

	best := Rank(a.Recommended)
	flags := make(map[string]string, 2)
	next := 0
	if captain && next < len(best) {
		flags[best[next].PlayerID] = "captain"
		next++
	}
	if viceCaptain && next < len(best) {
		flags[best[next].PlayerID] = "vice"
	}

	out := Assembly{
		Recommended: append([]ScoredPlayer(nil), a.Recommended...),
		Reserves:    a.Reserves,
		Unselected:  a.Unselected,
	}
	for i := range out.Recommended {
		switch flags[out.Recommended[i].PlayerID] {
		case "captain":
			out.Recommended[i].IsCaptain = true
		case "vice":
			out.Recommended[i].IsViceCaptain = true
		}
	}
	return out
}
