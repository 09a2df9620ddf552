package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/kaduregel/matchday/internal/domain/ranking"
)

type RankingRepository struct {
	mu       sync.RWMutex
	rankings map[string]map[string]float64
}

func NewRankingRepository() *RankingRepository {
	return &RankingRepository{rankings: make(map[string]map[string]float64)}
}

func (r *RankingRepository) GetUserRankings(_ context.Context, rankerID string) (map[string]float64, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.rankings[rankerID]
	if !ok {
		return nil, false, nil
	}

	out := make(map[string]float64, len(stored))
	for name, value := range stored {
		out[name] = value
	}

	return out, true, nil
}

// SetUserRankings merges the given entries into the ranker's sheet. It
// reports whether the ranker exists and whether any stored value changed.
func (r *RankingRepository) SetUserRankings(_ context.Context, rankerID string, rankings map[string]float64) (bool, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.rankings[rankerID]
	if !ok {
		return false, false, nil
	}

	modified := false
	for name, value := range rankings {
		if previous, seen := stored[name]; !seen || previous != value {
			modified = true
		}
		stored[name] = value
	}

	return true, modified, nil
}

func (r *RankingRepository) ListAll(_ context.Context) ([]ranking.UserRankings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ranking.UserRankings, 0, len(r.rankings))
	for rankerID, stored := range r.rankings {
		copied := make(map[string]float64, len(stored))
		for name, value := range stored {
			copied[name] = value
		}
		out = append(out, ranking.UserRankings{RankerID: rankerID, Rankings: copied})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RankerID < out[j].RankerID })

	return out, nil
}

func (r *RankingRepository) InsertRanker(_ context.Context, rankerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rankings[rankerID]; !ok {
		r.rankings[rankerID] = make(map[string]float64)
	}

	return nil
}
