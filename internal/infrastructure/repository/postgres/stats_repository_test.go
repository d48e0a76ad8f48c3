package postgres

import (
	"strings"
	"testing"
)

func TestRecentStatsQuery(t *testing.T) {
	query, args, err := recentStatsQuery([]string{"rv-bat-01", "rv-bowl-01"}, 5)
	if err != nil {
		t.Fatalf("build query: %v", err)
	}

	for _, part := range []string{
		"ROW_NUMBER() OVER (PARTITION BY player_public_id ORDER BY match_date DESC, match_public_id DESC) AS recent_rank",
		"FROM player_match_stats WHERE player_public_id IN ($1, $2)) ranked",
		"WHERE recent_rank <= 5",
		"ORDER BY player_public_id, match_date DESC, match_public_id DESC",
	} {
		if !strings.Contains(query, part) {
			t.Fatalf("expected %q in query: %s", part, query)
		}
	}
	if !strings.HasPrefix(query, "SELECT player_public_id, match_public_id, match_date,") {
		t.Fatalf("outer select must not expose the rank column: %s", query)
	}
	if len(args) != 2 || args[0] != "rv-bat-01" || args[1] != "rv-bowl-01" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestRecentStatsQuery_NoLimitKeepsEveryRow(t *testing.T) {
	query, _, err := recentStatsQuery([]string{"rv-bat-01"}, 0)
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	if strings.Contains(query, "recent_rank <=") {
		t.Fatalf("expected no rank filter, got: %s", query)
	}
}
