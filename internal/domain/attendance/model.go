package attendance

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusAttended Status = "attended"
	StatusAbsent   Status = "absent"
	StatusExcused  Status = "excused"
)

func ParseStatus(v string) (Status, error) {
	switch Status(v) {
	case StatusAttended, StatusAbsent, StatusExcused:
		return Status(v), nil
	default:
		return "", fmt.Errorf("unknown practice attendance status: %q", v)
	}
}

// Record is one player's attendance at a practice fixture.
type Record struct {
	FixtureID  string
	PlayerID   string
	Status     Status
	Notes      string
	RecordedAt time.Time
}

// Summary aggregates a player's practice history.
type Summary struct {
	Attended int
	Recorded int
}
