package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/cricket-club/internal/domain/player"
)

type PlayerRepository struct {
	mu            sync.RWMutex
	playersByClub map[string][]player.Player
	index         map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	playersByClub := make(map[string][]player.Player)
	index := make(map[string]player.Player, len(players))

	for _, p := range players {
		playersByClub[p.ClubID] = append(playersByClub[p.ClubID], p)
		index[p.ID] = p
	}
	for clubID := range playersByClub {
		items := playersByClub[clubID]
		sort.SliceStable(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	}

	return &PlayerRepository{
		playersByClub: playersByClub,
		index:         index,
	}
}

func (r *PlayerRepository) ListByClub(_ context.Context, clubID string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	players := r.playersByClub[clubID]
	out := make([]player.Player, 0, len(players))
	out = append(out, players...)

	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.index[playerID]
	return p, ok, nil
}
