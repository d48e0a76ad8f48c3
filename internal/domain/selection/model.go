package selection

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Override replaces the club default base score for one player.
type Override struct {
	ClubID    string
	PlayerID  string
	BaseScore decimal.Decimal
	Notes     string
	UpdatedAt time.Time
}

// TeamSelection is a player chosen by an admin or captain for a match.
type TeamSelection struct {
	MatchID         string
	PlayerID        string
	BattingPosition int
	IsCaptain       bool
	IsWicketkeeper  bool
	Confirmed       bool
	CreatedAt       time.Time
}

var ErrInvalidTeam = errors.New("invalid team selection")

// MaxBattingPosition is the last slot of a batting order. Zero leaves a player unslotted.
const MaxBattingPosition = 11

// ValidateTeam checks a full replacement list for one match.
func ValidateTeam(rows []TeamSelection) error {
	players := make(map[string]struct{}, len(rows))
	slots := make(map[int]string, len(rows))
	captain := ""
	for _, row := range rows {
		if strings.TrimSpace(row.PlayerID) == "" {
			return fmt.Errorf("%w: player id is required", ErrInvalidTeam)
		}
		if _, dup := players[row.PlayerID]; dup {
			return fmt.Errorf("%w: player %s is listed twice", ErrInvalidTeam, row.PlayerID)
		}
		players[row.PlayerID] = struct{}{}

		if row.BattingPosition < 0 || row.BattingPosition > MaxBattingPosition {
			return fmt.Errorf("%w: batting position %d is outside 0-%d", ErrInvalidTeam, row.BattingPosition, MaxBattingPosition)
		}
		if row.BattingPosition > 0 {
			if other, taken := slots[row.BattingPosition]; taken {
				return fmt.Errorf("%w: batting position %d is shared by %s and %s", ErrInvalidTeam, row.BattingPosition, other, row.PlayerID)
			}
			slots[row.BattingPosition] = row.PlayerID
		}

		if row.IsCaptain {
			if captain != "" {
				return fmt.Errorf("%w: %s and %s are both marked captain", ErrInvalidTeam, captain, row.PlayerID)
			}
			captain = row.PlayerID
		}
	}
	return nil
}
