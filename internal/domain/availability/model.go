package availability

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusAvailable   Status = "available"
	StatusUnavailable Status = "unavailable"
	StatusPending     Status = "pending"
)

func ParseStatus(v string) (Status, error) {
	switch Status(v) {
	case StatusAvailable, StatusUnavailable, StatusPending:
		return Status(v), nil
	default:
		return "", fmt.Errorf("unknown availability status: %q", v)
	}
}

// Record is a player's self-reported availability for one match.
// There is at most one record per (match, player).
type Record struct {
	MatchID   string
	PlayerID  string
	Status    Status
	UpdatedAt time.Time
}
