package lifecycle

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// State is the current participation picture for one match.
type State struct {
	MatchID        string
	MatchStatus    string
	Participations map[string]Participation
}

func NewState(matchID, matchStatus string, rows []Participation) State {
	byPlayer := make(map[string]Participation, len(rows))
	for _, row := range rows {
		byPlayer[row.PlayerID] = row
	}
	return State{MatchID: matchID, MatchStatus: matchStatus, Participations: byPlayer}
}

func (s State) statusOf(playerID string) Status {
	if row, ok := s.Participations[playerID]; ok {
		return row.Status
	}
	return StatusUnconfirmed
}

// Meta carries who triggered an event and when.
type Meta struct {
	ActorID string
	At      time.Time
}

// Event is a lifecycle command. The concrete types below are the only implementations.
type Event interface {
	action() Action
}

type ConfirmEntry struct {
	PlayerID              string
	Status                Status
	WasSubstitute         bool
	SubstituteForPlayerID string
	NoShowReason          string
}

type Confirm struct {
	Entries []ConfirmEntry
}

type Withdraw struct {
	PlayerID string
	Reason   string
}

type AddSubstitute struct {
	PlayerID         string
	ReplacesPlayerID string
}

type Finalize struct {
	SelectedPlayerIDs []string
}

type Abandon struct {
	Reason string
}

func (Confirm) action() Action       { return ActionConfirmParticipation }
func (Withdraw) action() Action      { return ActionWithdrawal }
func (AddSubstitute) action() Action { return ActionSubstituteAdded }
func (Finalize) action() Action      { return ActionFinalizeSelection }
func (Abandon) action() Action       { return ActionMatchAbandoned }

// Outcome is everything a transition must persist. Writes and Audit are stored together or not at all.
type Outcome struct {
	Writes       []Participation
	Audit        []AuditEntry
	AbandonMatch bool
}

// Apply computes the effect of event on state without side effects.
func Apply(state State, event Event, meta Meta) (Outcome, error) {
	switch ev := event.(type) {
	case Confirm:
		return applyConfirm(state, ev, meta)
	case Withdraw:
		return applyWithdraw(state, ev, meta)
	case AddSubstitute:
		return applySubstitute(state, ev, meta)
	case Finalize:
		return applyFinalize(state, ev, meta)
	case Abandon:
		return applyAbandon(state, ev, meta), nil
	default:
		return Outcome{}, fmt.Errorf("%w: unsupported event %T", ErrInvalidEvent, event)
	}
}

func applyConfirm(state State, ev Confirm, meta Meta) (Outcome, error) {
	if len(ev.Entries) == 0 {
		return Outcome{}, fmt.Errorf("%w: at least one participation entry is required", ErrInvalidEvent)
	}

	seen := make(map[string]struct{}, len(ev.Entries))
	out := Outcome{
		Writes: make([]Participation, 0, len(ev.Entries)),
		Audit:  make([]AuditEntry, 0, len(ev.Entries)),
	}
	for _, entry := range ev.Entries {
		playerID := strings.TrimSpace(entry.PlayerID)
		if playerID == "" {
			return Outcome{}, fmt.Errorf("%w: player id is required", ErrInvalidEvent)
		}
		if _, dup := seen[playerID]; dup {
			return Outcome{}, fmt.Errorf("%w: duplicate player %s", ErrInvalidEvent, playerID)
		}
		seen[playerID] = struct{}{}
		if _, ok := storedStatuses[entry.Status]; !ok {
			return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownStatus, entry.Status)
		}

		row := state.Participations[playerID]
		row.MatchID = state.MatchID
		row.PlayerID = playerID
		row.Status = entry.Status
		row.WasSubstitute = entry.WasSubstitute
		row.SubstituteForPlayerID = strings.TrimSpace(entry.SubstituteForPlayerID)
		row.NoShowReason = strings.TrimSpace(entry.NoShowReason)
		row.ConfirmedAt = meta.At

		out.Writes = append(out.Writes, row)
		out.Audit = append(out.Audit, AuditEntry{
			MatchID:       state.MatchID,
			PlayerID:      playerID,
			Action:        ActionConfirmParticipation,
			PreviousState: string(state.statusOf(playerID)),
			NewState:      string(entry.Status),
			ActorID:       meta.ActorID,
			Details:       map[string]any{},
			CreatedAt:     meta.At,
		})
	}

	return out, nil
}

func applyWithdraw(state State, ev Withdraw, meta Meta) (Outcome, error) {
	playerID := strings.TrimSpace(ev.PlayerID)
	if playerID == "" {
		return Outcome{}, fmt.Errorf("%w: player id is required", ErrInvalidEvent)
	}
	reason := strings.TrimSpace(ev.Reason)

	row := state.Participations[playerID]
	row.MatchID = state.MatchID
	row.PlayerID = playerID
	row.Status = StatusWithdrawn
	row.WithdrawalReason = reason
	row.ConfirmedAt = meta.At

	return Outcome{
		Writes: []Participation{row},
		Audit: []AuditEntry{{
			MatchID:       state.MatchID,
			PlayerID:      playerID,
			Action:        ActionWithdrawal,
			PreviousState: string(state.statusOf(playerID)),
			NewState:      string(StatusWithdrawn),
			ActorID:       meta.ActorID,
			Reason:        reason,
			Details:       map[string]any{},
			CreatedAt:     meta.At,
		}},
	}, nil
}

func applySubstitute(state State, ev AddSubstitute, meta Meta) (Outcome, error) {
	playerID := strings.TrimSpace(ev.PlayerID)
	replaces := strings.TrimSpace(ev.ReplacesPlayerID)
	if playerID == "" {
		return Outcome{}, fmt.Errorf("%w: player id is required", ErrInvalidEvent)
	}
	if replaces == playerID {
		return Outcome{}, fmt.Errorf("%w: a player cannot substitute for themselves", ErrInvalidEvent)
	}

	details := map[string]any{}
	if replaces != "" {
		details["replaces_player_id"] = replaces
	}

	return Outcome{
		Writes: []Participation{{
			MatchID:               state.MatchID,
			PlayerID:              playerID,
			Status:                StatusSubstitute,
			WasSubstitute:         true,
			SubstituteForPlayerID: replaces,
			ConfirmedAt:           meta.At,
		}},
		Audit: []AuditEntry{{
			MatchID:       state.MatchID,
			PlayerID:      playerID,
			Action:        ActionSubstituteAdded,
			PreviousState: string(state.statusOf(playerID)),
			NewState:      string(StatusSubstitute),
			ActorID:       meta.ActorID,
			Details:       details,
			CreatedAt:     meta.At,
		}},
	}, nil
}

func applyFinalize(state State, ev Finalize, meta Meta) (Outcome, error) {
	out := Outcome{}
	seen := make(map[string]struct{}, len(ev.SelectedPlayerIDs))
	for _, playerID := range ev.SelectedPlayerIDs {
		if _, dup := seen[playerID]; dup {
			continue
		}
		seen[playerID] = struct{}{}

		// never downgrade an existing outcome
		if _, exists := state.Participations[playerID]; exists {
			continue
		}
		out.Writes = append(out.Writes, Participation{
			MatchID:     state.MatchID,
			PlayerID:    playerID,
			Status:      StatusPlayed,
			ConfirmedAt: meta.At,
		})
	}

	out.Audit = []AuditEntry{{
		MatchID:  state.MatchID,
		Action:   ActionFinalizeSelection,
		NewState: auditStateFinalized,
		ActorID:  meta.ActorID,
		Details: map[string]any{
			"player_count":  len(seen),
			"created_count": len(out.Writes),
		},
		CreatedAt: meta.At,
	}}

	return out, nil
}

func applyAbandon(state State, ev Abandon, meta Meta) Outcome {
	out := Outcome{
		Writes:       make([]Participation, 0, len(state.Participations)),
		AbandonMatch: true,
	}
	for _, row := range state.Participations {
		row.Status = StatusMatchAbandoned
		row.ConfirmedAt = meta.At
		out.Writes = append(out.Writes, row)
	}
	sort.Slice(out.Writes, func(i, j int) bool {
		return out.Writes[i].PlayerID < out.Writes[j].PlayerID
	})

	out.Audit = []AuditEntry{{
		MatchID:       state.MatchID,
		Action:        ActionMatchAbandoned,
		PreviousState: state.MatchStatus,
		NewState:      auditStateAbandoned,
		ActorID:       meta.ActorID,
		Reason:        strings.TrimSpace(ev.Reason),
		Details:       map[string]any{"participations_overwritten": len(out.Writes)},
		CreatedAt:     meta.At,
	}}

	return out
}
