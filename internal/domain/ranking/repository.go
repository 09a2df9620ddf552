package ranking

import "context"

// UserRankings is one ranker's full set of submitted ratings.
type UserRankings struct {
	RankerID string
	Rankings map[string]float64
}

// Repository describes ranking persistence needs from use cases.
// SetUserRankings merges the given entries into the ranker's existing map
// and reports whether the ranker exists and whether anything changed.
type Repository interface {
	GetUserRankings(ctx context.Context, rankerID string) (map[string]float64, bool, error)
	SetUserRankings(ctx context.Context, rankerID string, rankings map[string]float64) (found bool, modified bool, err error)
	ListAll(ctx context.Context) ([]UserRankings, error)
	InsertRanker(ctx context.Context, rankerID string) error
}
