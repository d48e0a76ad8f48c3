package recommendation

import (
	"fmt"
	"testing"

	"github.com/riskibarqy/cricket-club/internal/domain/player"
	"github.com/riskibarqy/cricket-club/internal/domain/selection"
	"github.com/stretchr/testify/require"
)

func scored(id string, role player.Role, composite string) ScoredPlayer {
	return ScoredPlayer{PlayerID: id, Name: "Player " + id, Role: role, Composite: dec(composite)}
}

func findPlayer(t *testing.T, players []ScoredPlayer, id string) ScoredPlayer {
	t.Helper()
	for _, item := range players {
		if item.PlayerID == id {
			return item
		}
	}
	t.Fatalf("player %s not found", id)
	return ScoredPlayer{}
}

func TestAssemble_FourthBowlerNeverDisplacesMinimums(t *testing.T) {
	cfg := selection.DefaultConfig("club-1")
	candidates := []ScoredPlayer{
		scored("wk1", player.RoleWicketKeeper, "95"),
		scored("bat1", player.RoleBatter, "99"),
		scored("bat2", player.RoleBatter, "98"),
		scored("bat3", player.RoleBatter, "97"),
		scored("bat4", player.RoleBatter, "96"),
		scored("bat5", player.RoleBatter, "85"),
		scored("bat6", player.RoleBatter, "84"),
		scored("ar1", player.RoleAllRounder, "75"),
		scored("ar2", player.RoleAllRounder, "60"),
		scored("bowl1", player.RoleBowler, "90"),
		scored("bowl2", player.RoleBowler, "80"),
		scored("bowl3", player.RoleBowler, "70"),
		scored("bowl4", player.RoleBowler, "10"),
		scored("bat7", player.RoleBatter, "5"),
	}

	out := Assemble(candidates, cfg)

	require.Len(t, out.Recommended, 11)
	for _, id := range []string{"bowl1", "bowl2", "bowl3"} {
		require.True(t, findPlayer(t, out.Recommended, id).IsRecommended, id)
	}
	for _, item := range out.Recommended {
		require.NotEqual(t, "bowl4", item.PlayerID)
	}

	require.Len(t, out.Reserves, 2)
	require.Equal(t, "ar2", out.Reserves[0].PlayerID)
	require.Equal(t, 1, out.Reserves[0].ReservePriority)
	require.Equal(t, "bowl4", out.Reserves[1].PlayerID)
	require.Equal(t, 2, out.Reserves[1].ReservePriority)
	require.Equal(t, ReasonReserve, out.Reserves[1].Reason)

	require.Len(t, out.Unselected, 1)
	require.Equal(t, "bat7", out.Unselected[0].PlayerID)
	require.False(t, out.Unselected[0].IsRecommended)
	require.False(t, out.Unselected[0].IsReserve)
}

func TestAssemble_MinimumFillRunsInRoleOrder(t *testing.T) {
	cfg := selection.DefaultConfig("club-1")
	candidates := []ScoredPlayer{
		scored("bowl1", player.RoleBowler, "99"),
		scored("bat1", player.RoleBatter, "50"),
		scored("wk1", player.RoleWicketKeeper, "10"),
		scored("ar1", player.RoleAllRounder, "20"),
	}

	out := Assemble(candidates, cfg)

	require.Len(t, out.Recommended, 4)
	require.Equal(t, []string{"wk1", "bat1", "ar1", "bowl1"}, []string{
		out.Recommended[0].PlayerID,
		out.Recommended[1].PlayerID,
		out.Recommended[2].PlayerID,
		out.Recommended[3].PlayerID,
	})
	require.Equal(t, "Role minimum (Wicket-keeper)", out.Recommended[0].Reason)
	require.Equal(t, "Role minimum (Bowler)", out.Recommended[3].Reason)
}

func TestAssemble_MinimumFillStopsAtSquadSize(t *testing.T) {
	cfg := selection.DefaultConfig("club-1")
	cfg.SquadSize = 2
	candidates := []ScoredPlayer{
		scored("bat1", player.RoleBatter, "90"),
		scored("bat2", player.RoleBatter, "80"),
		scored("wk1", player.RoleWicketKeeper, "10"),
		scored("bowl1", player.RoleBowler, "95"),
	}

	out := Assemble(candidates, cfg)

	require.Len(t, out.Recommended, 2)
	require.Equal(t, "wk1", out.Recommended[0].PlayerID)
	require.Equal(t, "bat1", out.Recommended[1].PlayerID)
	require.Len(t, out.Reserves, 2)
	require.Equal(t, "bowl1", out.Reserves[0].PlayerID)
}

func TestAssemble_BestFillRespectsRoleMaximum(t *testing.T) {
	cfg := selection.DefaultConfig("club-1")
	cfg.Quotas[player.RoleBatter] = selection.RoleQuota{Min: 0, Max: 6}
	candidates := []ScoredPlayer{
		scored("wk1", player.RoleWicketKeeper, "99"),
		scored("wk2", player.RoleWicketKeeper, "98"),
		scored("bat1", player.RoleBatter, "40"),
	}

	out := Assemble(candidates, cfg)

	require.Len(t, out.Recommended, 2)
	require.Equal(t, ReasonTopScorer, findPlayer(t, out.Recommended, "bat1").Reason)
	require.Len(t, out.Reserves, 1)
	require.Equal(t, "wk2", out.Reserves[0].PlayerID)
}

func TestAssemble_PartitionsCoverInputWithoutMutation(t *testing.T) {
	cfg := selection.DefaultConfig("club-1")
	roles := []player.Role{player.RoleBatter, player.RoleBowler, player.RoleAllRounder, player.RoleWicketKeeper}
	candidates := make([]ScoredPlayer, 0, 20)
	for i := 0; i < 20; i++ {
		candidates = append(candidates, scored(fmt.Sprintf("p%02d", i), roles[i%len(roles)], fmt.Sprintf("%d", 40+i)))
	}
	snapshot := append([]ScoredPlayer(nil), candidates...)

	out := Assemble(candidates, cfg)

	require.Equal(t, snapshot, candidates)
	require.LessOrEqual(t, len(out.Recommended), cfg.SquadSize)
	require.LessOrEqual(t, len(out.Reserves), cfg.ReserveCount)

	all := out.Players()
	require.Len(t, all, len(candidates))
	seen := make(map[string]struct{}, len(all))
	for _, item := range all {
		_, dup := seen[item.PlayerID]
		require.False(t, dup, item.PlayerID)
		seen[item.PlayerID] = struct{}{}
	}

	roleCounts := map[player.Role]int{}
	for _, item := range out.Recommended {
		roleCounts[item.Role]++
	}
	for role, count := range roleCounts {
		require.LessOrEqual(t, count, cfg.Quota(role).Max, string(role))
	}
}

func TestAssemble_EmptyInput(t *testing.T) {
	out := Assemble(nil, selection.DefaultConfig("club-1"))
	require.Empty(t, out.Players())
}

func TestAssemble_AssignsBattingAndBowlingSlots(t *testing.T) {
	cfg := selection.DefaultConfig("club-1")
	cfg.MinBowlingOptions = 1

	bat := scored("bat1", player.RoleBatter, "90")
	bat.Batting = dec("80")
	wk := scored("wk1", player.RoleWicketKeeper, "70")
	wk.Batting = dec("40")
	bowl := scored("bowl1", player.RoleBowler, "60")
	bowl.Batting = dec("10")
	bowl.Bowling = dec("66.67")
	ar := scored("ar1", player.RoleAllRounder, "50")
	ar.Batting = dec("30")
	ar.Bowling = dec("33.33")

	out := Assemble([]ScoredPlayer{bat, wk, bowl, ar}, cfg)

	require.Equal(t, 1, findPlayer(t, out.Recommended, "bat1").BattingSlot)
	require.Equal(t, 2, findPlayer(t, out.Recommended, "wk1").BattingSlot)
	require.Equal(t, 3, findPlayer(t, out.Recommended, "ar1").BattingSlot)
	require.Equal(t, 4, findPlayer(t, out.Recommended, "bowl1").BattingSlot)
	require.Equal(t, 1, findPlayer(t, out.Recommended, "bowl1").BowlingSlot)
	require.Equal(t, 0, findPlayer(t, out.Recommended, "ar1").BowlingSlot)
	require.Equal(t, 0, findPlayer(t, out.Recommended, "bat1").BowlingSlot)
}

func TestAssignLeadership_KeepsOrdering(t *testing.T) {
	cfg := selection.DefaultConfig("club-1")
	out := Assemble([]ScoredPlayer{
		scored("bat1", player.RoleBatter, "60"),
		scored("wk1", player.RoleWicketKeeper, "70"),
		scored("bowl1", player.RoleBowler, "90"),
	}, cfg)
	before := out.Players()

	led := AssignLeadership(out, true, true)
	after := led.Players()

	require.Len(t, after, len(before))
	for i := range before {
		require.Equal(t, before[i].PlayerID, after[i].PlayerID)
	}
	require.True(t, findPlayer(t, after, "bowl1").IsCaptain)
	require.True(t, findPlayer(t, after, "wk1").IsViceCaptain)
	require.False(t, findPlayer(t, out.Recommended, "bowl1").IsCaptain)

	none := AssignLeadership(out, false, false)
	require.False(t, findPlayer(t, none.Recommended, "bowl1").IsCaptain)
}
