package selection

import (
	"errors"
	"testing"
)

func TestValidateTeam(t *testing.T) {
	tests := []struct {
		name      string
		rows      []TeamSelection
		targetErr error
	}{
		{name: "empty list clears the team", rows: nil},
		{
			name: "valid team",
			rows: []TeamSelection{
				{PlayerID: "p1", BattingPosition: 1, IsCaptain: true},
				{PlayerID: "p2", BattingPosition: 2, IsWicketkeeper: true},
				{PlayerID: "p3"},
				{PlayerID: "p4"},
			},
		},
		{name: "blank player", rows: []TeamSelection{{PlayerID: " "}}, targetErr: ErrInvalidTeam},
		{name: "duplicate player", rows: []TeamSelection{{PlayerID: "p1"}, {PlayerID: "p1"}}, targetErr: ErrInvalidTeam},
		{name: "slot above order", rows: []TeamSelection{{PlayerID: "p1", BattingPosition: 12}}, targetErr: ErrInvalidTeam},
		{name: "negative slot", rows: []TeamSelection{{PlayerID: "p1", BattingPosition: -1}}, targetErr: ErrInvalidTeam},
		{
			name:      "shared slot",
			rows:      []TeamSelection{{PlayerID: "p1", BattingPosition: 3}, {PlayerID: "p2", BattingPosition: 3}},
			targetErr: ErrInvalidTeam,
		},
		{
			name:      "two captains",
			rows:      []TeamSelection{{PlayerID: "p1", IsCaptain: true}, {PlayerID: "p2", IsCaptain: true}},
			targetErr: ErrInvalidTeam,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTeam(tc.rows)
			if tc.targetErr == nil && err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}
			if tc.targetErr != nil && !errors.Is(err, tc.targetErr) {
				t.Fatalf("expected error %v, got %v", tc.targetErr, err)
			}
		})
	}
}
