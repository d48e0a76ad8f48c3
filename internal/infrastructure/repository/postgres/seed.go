package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cricket-club/internal/infrastructure/repository/memory"
)

const seedClubName = "Riverside CC"

// BootstrapSeed loads the demo club when the database has no clubs yet.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, now time.Time) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM clubs WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count clubs for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	exec := func(label, query string, arg map[string]any) error {
		sqlQuery, args, err := sqlx.Named(query, arg)
		if err != nil {
			return fmt.Errorf("bind seed %s query: %w", label, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(sqlQuery), args...); err != nil {
			return fmt.Errorf("seed %s: %w", label, err)
		}
		return nil
	}

	if err := exec("club "+memory.ClubIDRiverside, `
INSERT INTO clubs (public_id, name)
VALUES (:public_id, :name)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
		"public_id": memory.ClubIDRiverside,
		"name":      seedClubName,
	}); err != nil {
		return err
	}

	for _, m := range memory.SeedMemberships() {
		if err := exec("membership "+m.UserID, `
INSERT INTO club_memberships (club_public_id, user_id, role)
VALUES (:club_public_id, :user_id, :role)
ON CONFLICT (club_public_id, user_id) DO NOTHING`, map[string]any{
			"club_public_id": m.ClubID,
			"user_id":        m.UserID,
			"role":           string(m.Role),
		}); err != nil {
			return err
		}
	}

	for _, p := range memory.SeedPlayers() {
		if err := exec("player "+p.ID, `
INSERT INTO players (public_id, club_public_id, name, role, is_active)
VALUES (:public_id, :club_public_id, :name, :role, TRUE)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":      p.ID,
			"club_public_id": p.ClubID,
			"name":           p.Name,
			"role":           string(p.Role),
		}); err != nil {
			return err
		}
	}

	for _, m := range memory.SeedMatches(now) {
		if err := exec("match "+m.ID, `
INSERT INTO matches (public_id, club_public_id, team_name, opponent, venue, match_type, starts_at, status)
VALUES (:public_id, :club_public_id, :team_name, :opponent, :venue, :match_type, :starts_at, :status)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":      m.ID,
			"club_public_id": m.ClubID,
			"team_name":      m.TeamName,
			"opponent":       m.Opponent,
			"venue":          m.Venue,
			"match_type":     m.Type,
			"starts_at":      m.StartsAt.UTC(),
			"status":         string(m.Status),
		}); err != nil {
			return err
		}
	}

	for _, a := range memory.SeedAvailability(now) {
		if err := exec("availability "+a.PlayerID, `
INSERT INTO match_availability (match_public_id, player_public_id, status, updated_at)
VALUES (:match_public_id, :player_public_id, :status, :updated_at)
ON CONFLICT (match_public_id, player_public_id) DO NOTHING`, map[string]any{
			"match_public_id":  a.MatchID,
			"player_public_id": a.PlayerID,
			"status":           string(a.Status),
			"updated_at":       a.UpdatedAt.UTC(),
		}); err != nil {
			return err
		}
	}

	for _, s := range memory.SeedStats(now) {
		if err := exec("stats "+s.PlayerID+"/"+s.MatchID, `
INSERT INTO player_match_stats (
	player_public_id, match_public_id, match_date, runs_scored, balls_faced, not_out,
	overs_bowled, runs_conceded, wickets, catches, run_outs, stumpings
)
VALUES (
	:player_public_id, :match_public_id, :match_date, :runs_scored, :balls_faced, :not_out,
	:overs_bowled, :runs_conceded, :wickets, :catches, :run_outs, :stumpings
)
ON CONFLICT (player_public_id, match_public_id) DO NOTHING`, map[string]any{
			"player_public_id": s.PlayerID,
			"match_public_id":  s.MatchID,
			"match_date":       s.MatchDate.UTC(),
			"runs_scored":      s.RunsScored,
			"balls_faced":      s.BallsFaced,
			"not_out":          s.NotOut,
			"overs_bowled":     s.OversBowled,
			"runs_conceded":    s.RunsConceded,
			"wickets":          s.Wickets,
			"catches":          s.Catches,
			"run_outs":         s.RunOuts,
			"stumpings":        s.Stumpings,
		}); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
