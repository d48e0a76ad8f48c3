package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/cricket-club/internal/domain/attendance"
)

type AttendanceRepository struct {
	mu    sync.RWMutex
	items map[string]attendance.Record
}

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{items: make(map[string]attendance.Record)}
}

func (r *AttendanceRepository) Upsert(_ context.Context, records []attendance.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, record := range records {
		r.items[pairKey(record.FixtureID, record.PlayerID)] = record
	}
	return nil
}

func (r *AttendanceRepository) SummaryByPlayers(_ context.Context, playerIDs []string) (map[string]attendance.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		wanted[id] = struct{}{}
	}

	out := make(map[string]attendance.Summary)
	for _, item := range r.items {
		if _, ok := wanted[item.PlayerID]; !ok {
			continue
		}
		summary := out[item.PlayerID]
		summary.Recorded++
		if item.Status == attendance.StatusAttended {
			summary.Attended++
		}
		out[item.PlayerID] = summary
	}
	return out, nil
}
