package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/cricket-club/internal/domain/membership"
)

type MembershipRepository struct {
	mu    sync.RWMutex
	items map[string]membership.Membership
}

func NewMembershipRepository(items []membership.Membership) *MembershipRepository {
	index := make(map[string]membership.Membership, len(items))
	for _, item := range items {
		index[pairKey(item.ClubID, item.UserID)] = item
	}
	return &MembershipRepository{items: index}
}

func (r *MembershipRepository) GetByClubAndUser(_ context.Context, clubID, userID string) (membership.Membership, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[pairKey(clubID, userID)]
	return item, ok, nil
}

func pairKey(a, b string) string {
	return a + "::" + b
}
