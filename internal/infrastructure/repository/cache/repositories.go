package cache

import (
	"context"

	"github.com/riskibarqy/cricket-club/internal/domain/membership"
	"github.com/riskibarqy/cricket-club/internal/domain/player"
	"github.com/riskibarqy/cricket-club/internal/domain/selection"
	basecache "github.com/riskibarqy/cricket-club/internal/platform/cache"
)

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) ListByClub(ctx context.Context, clubID string) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, "player:list:"+clubID, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByClub(ctx, clubID)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, "player:id:"+playerID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		if err != nil {
			return nil, err
		}
		return cachedPlayerByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	cached, _ := v.(cachedPlayerByID)
	return cached.value, cached.exists, nil
}

type cachedPlayerByID struct {
	value  player.Player
	exists bool
}

type MembershipRepository struct {
	next  membership.Repository
	cache *basecache.Store
}

func NewMembershipRepository(next membership.Repository, cache *basecache.Store) *MembershipRepository {
	return &MembershipRepository{next: next, cache: cache}
}

func (r *MembershipRepository) GetByClubAndUser(ctx context.Context, clubID, userID string) (membership.Membership, bool, error) {
	key := "membership:" + clubID + ":" + userID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByClubAndUser(ctx, clubID, userID)
		if err != nil {
			return nil, err
		}
		return cachedMembership{value: item, exists: exists}, nil
	})
	if err != nil {
		return membership.Membership{}, false, err
	}

	cached, _ := v.(cachedMembership)
	return cached.value, cached.exists, nil
}

type cachedMembership struct {
	value  membership.Membership
	exists bool
}

// SelectionConfigRepository drops the cached club config on every write.
type SelectionConfigRepository struct {
	next  selection.ConfigRepository
	cache *basecache.Store
}

func NewSelectionConfigRepository(next selection.ConfigRepository, cache *basecache.Store) *SelectionConfigRepository {
	return &SelectionConfigRepository{next: next, cache: cache}
}

func (r *SelectionConfigRepository) GetByClub(ctx context.Context, clubID string) (selection.Config, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, selectionConfigKey(clubID), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByClub(ctx, clubID)
		if err != nil {
			return nil, err
		}
		return cachedSelectionConfig{value: item.Clone(), exists: exists}, nil
	})
	if err != nil {
		return selection.Config{}, false, err
	}

	cached, _ := v.(cachedSelectionConfig)
	return cached.value.Clone(), cached.exists, nil
}

func (r *SelectionConfigRepository) Upsert(ctx context.Context, cfg selection.Config) error {
	r.cache.Delete(ctx, selectionConfigKey(cfg.ClubID))
	if err := r.next.Upsert(ctx, cfg); err != nil {
		return err
	}
	r.cache.Delete(ctx, selectionConfigKey(cfg.ClubID))
	return nil
}

func selectionConfigKey(clubID string) string {
	return "selection:config:" + clubID
}

type cachedSelectionConfig struct {
	value  selection.Config
	exists bool
}
