package cache

import (
	"context"

	"github.com/kaduregel/matchday/internal/domain/player"
	basecache "github.com/kaduregel/matchday/internal/platform/cache"
)

// PlayerRepository is a read-through cache over another player repository.
// Writes invalidate every player key since the registry is tiny.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) Exists(ctx context.Context, name string) (bool, error) {
	_, exists, err := r.GetCharacteristic(ctx, name)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *PlayerRepository) GetCharacteristic(ctx context.Context, name string) (player.Characteristic, bool, error) {
	key := "player:name:" + name
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		characteristic, exists, err := r.next.GetCharacteristic(ctx, name)
		if err != nil {
			return nil, err
		}
		return cachedCharacteristic{value: characteristic, exists: exists}, nil
	})
	if err != nil {
		return "", false, err
	}

	cached, _ := v.(cachedCharacteristic)
	return cached.value, cached.exists, nil
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, "player:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
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

func (r *PlayerRepository) Insert(ctx context.Context, p player.Player) error {
	if err := r.next.Insert(ctx, p); err != nil {
		return err
	}
	r.invalidate(ctx)

	return nil
}

func (r *PlayerRepository) SetCharacteristic(ctx context.Context, name string, characteristic player.Characteristic) (bool, bool, error) {
	found, modified, err := r.next.SetCharacteristic(ctx, name, characteristic)
	if err != nil {
		return false, false, err
	}
	if modified {
		r.invalidate(ctx)
	}

	return found, modified, nil
}

func (r *PlayerRepository) invalidate(ctx context.Context) {
	r.cache.Delete(ctx, "player:list")
	r.cache.DeletePrefix(ctx, "player:name:")
}

type cachedCharacteristic struct {
	value  player.Characteristic
	exists bool
}
