package memory

import (
	"fmt"
	"time"

	"github.com/riskibarqy/cricket-club/internal/domain/availability"
	"github.com/riskibarqy/cricket-club/internal/domain/match"
	"github.com/riskibarqy/cricket-club/internal/domain/membership"
	"github.com/riskibarqy/cricket-club/internal/domain/player"
	"github.com/riskibarqy/cricket-club/internal/domain/stats"
	"github.com/shopspring/decimal"
)

const (
	ClubIDRiverside = "club-riverside"

	UserIDRiversideAdmin   = "user-riverside-admin"
	UserIDRiversideCaptain = "user-riverside-captain"
	UserIDRiversideMember  = "user-riverside-member"

	MatchIDRiversideNext  = "match-riverside-01"
	MatchIDRiversideLater = "match-riverside-02"
	MatchIDRiversidePast  = "match-riverside-00"
)

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "rv-wk-01", ClubID: ClubIDRiverside, Name: "Tom Ashby", Role: player.RoleWicketKeeper},
		{ID: "rv-wk-02", ClubID: ClubIDRiverside, Name: "Priya Nair", Role: player.RoleWicketKeeper},
		{ID: "rv-bat-01", ClubID: ClubIDRiverside, Name: "Sam Cole", Role: player.RoleBatter},
		{ID: "rv-bat-02", ClubID: ClubIDRiverside, Name: "Imran Qureshi", Role: player.RoleBatter},
		{ID: "rv-bat-03", ClubID: ClubIDRiverside, Name: "Leo Hart", Role: player.RoleBatter},
		{ID: "rv-bat-04", ClubID: ClubIDRiverside, Name: "Ravi Menon", Role: player.RoleBatter},
		{ID: "rv-bat-05", ClubID: ClubIDRiverside, Name: "Owen Price", Role: player.RoleBatter},
		{ID: "rv-bat-06", ClubID: ClubIDRiverside, Name: "Dan Fletcher", Role: player.RoleBatter},
		{ID: "rv-ar-01", ClubID: ClubIDRiverside, Name: "Kofi Mensah", Role: player.RoleAllRounder},
		{ID: "rv-ar-02", ClubID: ClubIDRiverside, Name: "Jack Rowe", Role: player.RoleAllRounder},
		{ID: "rv-ar-03", ClubID: ClubIDRiverside, Name: "Harpreet Gill", Role: player.RoleAllRounder},
		{ID: "rv-bowl-01", ClubID: ClubIDRiverside, Name: "Matt Doyle", Role: player.RoleBowler},
		{ID: "rv-bowl-02", ClubID: ClubIDRiverside, Name: "Ali Shah", Role: player.RoleBowler},
		{ID: "rv-bowl-03", ClubID: ClubIDRiverside, Name: "Ben Carter", Role: player.RoleBowler},
		{ID: "rv-bowl-04", ClubID: ClubIDRiverside, Name: "Chris Wood", Role: player.RoleBowler},
		{ID: "rv-bowl-05", ClubID: ClubIDRiverside, Name: "Nathan Lyle", Role: player.RoleBowler},
	}
}

func SeedMemberships() []membership.Membership {
	return []membership.Membership{
		{ClubID: ClubIDRiverside, UserID: UserIDRiversideAdmin, Role: membership.RoleAdmin},
		{ClubID: ClubIDRiverside, UserID: UserIDRiversideCaptain, Role: membership.RoleCaptain},
		{ClubID: ClubIDRiverside, UserID: UserIDRiversideMember, Role: membership.RoleMember},
	}
}

// SeedMatches schedules fixtures relative to now so the demo club always has upcoming games.
func SeedMatches(now time.Time) []match.Match {
	day := time.Date(now.Year(), now.Month(), now.Day(), 11, 0, 0, 0, time.UTC)
	return []match.Match{
		{
			ID:       MatchIDRiversidePast,
			ClubID:   ClubIDRiverside,
			TeamName: "Riverside 1st XI",
			Opponent: "Hillcrest CC",
			Venue:    "Home",
			Type:     "league",
			StartsAt: day.AddDate(0, 0, -7),
			Status:   match.StatusCompleted,
		},
		{
			ID:       MatchIDRiversideNext,
			ClubID:   ClubIDRiverside,
			TeamName: "Riverside 1st XI",
			Opponent: "Meadowbank CC",
			Venue:    "Away",
			Type:     "league",
			StartsAt: day.AddDate(0, 0, 4),
			Status:   match.StatusUpcoming,
		},
		{
			ID:       MatchIDRiversideLater,
			ClubID:   ClubIDRiverside,
			TeamName: "Riverside 1st XI",
			Opponent: "Oakfield Town",
			Venue:    "Home",
			Type:     "friendly",
			StartsAt: day.AddDate(0, 0, 11),
			Status:   match.StatusUpcoming,
		},
	}
}

// SeedAvailability marks every seeded player available for the next match except the last bowler.
func SeedAvailability(now time.Time) []availability.Record {
	players := SeedPlayers()
	out := make([]availability.Record, 0, len(players))
	for i, p := range players {
		status := availability.StatusAvailable
		if i == len(players)-1 {
			status = availability.StatusUnavailable
		}
		out = append(out, availability.Record{
			MatchID:   MatchIDRiversideNext,
			PlayerID:  p.ID,
			Status:    status,
			UpdatedAt: now.UTC(),
		})
	}
	return out
}

// SeedStats gives each seeded player a short history with role-shaped figures.
func SeedStats(now time.Time) []stats.MatchStat {
	out := make([]stats.MatchStat, 0)
	for i, p := range SeedPlayers() {
		for game := 0; game < 3; game++ {
			row := stats.MatchStat{
				PlayerID:    p.ID,
				MatchID:     fmt.Sprintf("hist-%02d", game),
				MatchDate:   now.AddDate(0, 0, -7*(game+2)).UTC(),
				OversBowled: decimal.Zero,
			}
			switch p.Role {
			case player.RoleBatter, player.RoleWicketKeeper:
				row.RunsScored = 15 + (i*7+game*11)%45
				row.BallsFaced = row.RunsScored + 10
			case player.RoleAllRounder:
				row.RunsScored = 10 + (i*5+game*3)%30
				row.BallsFaced = row.RunsScored + 8
				row.Wickets = (i + game) % 3
				row.OversBowled = decimal.NewFromInt(6)
				row.RunsConceded = 28
			case player.RoleBowler:
				row.RunsScored = (i + game) % 12
				row.BallsFaced = row.RunsScored + 4
				row.Wickets = 1 + (i+game)%3
				row.OversBowled = decimal.NewFromInt(8)
				row.RunsConceded = 34
			}
			out = append(out, row)
		}
	}
	return out
}
