package match

import "time"

type Status string

const (
	StatusUpcoming   Status = "upcoming"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

const ResultAbandoned = "abandoned"

// Match is a scheduled fixture for one of a club's teams.
type Match struct {
	ID       string
	ClubID   string
	TeamName string
	Opponent string
	Venue    string
	Type     string
	StartsAt time.Time
	Status   Status
	Result   string
}

// SelectionDeadline is the cut-off for finalising the squad.
func (m Match) SelectionDeadline(lead time.Duration) time.Time {
	return m.StartsAt.Add(-lead)
}
