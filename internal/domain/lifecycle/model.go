package lifecycle

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnknownStatus = errors.New("unknown participation status")
	ErrInvalidEvent  = errors.New("invalid lifecycle event")
)

// Status is a player's recorded outcome for a match.
type Status string

const (
	// StatusUnconfirmed is implicit: it is never stored, it means no participation row exists.
	StatusUnconfirmed    Status = "unconfirmed"
	StatusPlayed         Status = "played"
	StatusNoShow         Status = "no_show"
	StatusWithdrawn      Status = "withdrawn"
	StatusSubstitute     Status = "substitute"
	StatusMatchAbandoned Status = "match_abandoned"
)

var storedStatuses = map[Status]struct{}{
	StatusPlayed:         {},
	StatusNoShow:         {},
	StatusWithdrawn:      {},
	StatusSubstitute:     {},
	StatusMatchAbandoned: {},
}

func ParseStatus(v string) (Status, error) {
	status := Status(v)
	if _, ok := storedStatuses[status]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, v)
	}
	return status, nil
}

// Action names the transition recorded in the audit log.
type Action string

const (
	ActionConfirmParticipation Action = "confirm_participation"
	ActionWithdrawal           Action = "withdrawal"
	ActionSubstituteAdded      Action = "substitute_added"
	ActionFinalizeSelection    Action = "finalize_selection"
	ActionMatchAbandoned       Action = "match_abandoned"
)

const (
	auditStateFinalized = "finalized"
	auditStateAbandoned = "abandoned"
)

// Participation is the single lifecycle row for a (match, player) pair.
type Participation struct {
	MatchID               string
	PlayerID              string
	Status                Status
	WasSubstitute         bool
	SubstituteForPlayerID string
	WithdrawalReason      string
	NoShowReason          string
	ConfirmedAt           time.Time
}

// AuditEntry is an immutable record of one transition. PlayerID is empty for match-level actions.
type AuditEntry struct {
	ID            string
	MatchID       string
	PlayerID      string
	Action        Action
	PreviousState string
	NewState      string
	ActorID       string
	Reason        string
	Details       map[string]any
	CreatedAt     time.Time
}

// Counts summarises a player's participation history.
type Counts struct {
	Played      int
	NoShows     int
	Withdrawals int
}
