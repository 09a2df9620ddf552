package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/kaduregel/matchday/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	index := make(map[string]player.Player, len(players))
	for _, p := range players {
		index[p.Name] = p
	}

	return &PlayerRepository{players: index}
}

func (r *PlayerRepository) Exists(_ context.Context, name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.players[name]

	return ok, nil
}

func (r *PlayerRepository) GetCharacteristic(_ context.Context, name string) (player.Characteristic, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.players[name]
	if !ok {
		return "", false, nil
	}

	return p.Characteristic, true, nil
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

func (r *PlayerRepository) Insert(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.players[p.Name] = p

	return nil
}

func (r *PlayerRepository) SetCharacteristic(_ context.Context, name string, characteristic player.Characteristic) (bool, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[name]
	if !ok {
		return false, false, nil
	}
	if p.Characteristic == characteristic {
		return true, false, nil
	}

	p.Characteristic = characteristic
	r.players[name] = p

	return true, true, nil
}
