package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/cricket-club/internal/domain/lifecycle"
)

type LifecycleRepository struct {
	mu             sync.RWMutex
	participations map[string]lifecycle.Participation
	audit          []lifecycle.AuditEntry
}

func NewLifecycleRepository() *LifecycleRepository {
	return &LifecycleRepository{participations: make(map[string]lifecycle.Participation)}
}

func (r *LifecycleRepository) ListByMatch(_ context.Context, matchID string) ([]lifecycle.Participation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]lifecycle.Participation, 0)
	for _, item := range r.participations {
		if item.MatchID == matchID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}

// Save applies rows and appends audit under one lock, so readers never see one without the other.
func (r *LifecycleRepository) Save(_ context.Context, rows []lifecycle.Participation, audit []lifecycle.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range rows {
		r.participations[pairKey(row.MatchID, row.PlayerID)] = row
	}
	for _, entry := range audit {
		r.audit = append(r.audit, cloneAuditEntry(entry))
	}
	return nil
}

func (r *LifecycleRepository) ListAudit(_ context.Context, matchID string, limit, offset int) ([]lifecycle.AuditEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// walk backwards so entries sharing a timestamp come out newest insert first
	matched := make([]lifecycle.AuditEntry, 0)
	for i := len(r.audit) - 1; i >= 0; i-- {
		if r.audit[i].MatchID == matchID {
			matched = append(matched, cloneAuditEntry(r.audit[i]))
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if offset >= len(matched) {
		return []lifecycle.AuditEntry{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (r *LifecycleRepository) CountsByPlayer(_ context.Context, playerID string) (lifecycle.Counts, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out lifecycle.Counts
	for _, item := range r.participations {
		if item.PlayerID != playerID {
			continue
		}
		switch item.Status {
		case lifecycle.StatusPlayed:
			out.Played++
		case lifecycle.StatusNoShow:
			out.NoShows++
		case lifecycle.StatusWithdrawn:
			out.Withdrawals++
		}
	}
	return out, nil
}

func cloneAuditEntry(entry lifecycle.AuditEntry) lifecycle.AuditEntry {
	copied := entry
	copied.Details = make(map[string]any, len(entry.Details))
	for k, v := range entry.Details {
		copied.Details[k] = v
	}
	return copied
}
