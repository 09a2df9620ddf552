package matchday

import (
	"context"
	"time"
)

// Repository describes matchday persistence needs from use cases.
type Repository interface {
	GetByDate(ctx context.Context, date time.Time) (Matchday, bool, error)
	Exists(ctx context.Context, date time.Time) (bool, error)
	Insert(ctx context.Context, m Matchday) error
	SetTeams(ctx context.Context, date time.Time, teams []Team) (bool, error)
}
