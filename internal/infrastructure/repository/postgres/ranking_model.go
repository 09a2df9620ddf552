package postgres

import (
	"time"
)

type rankingTableModel struct {
	ID        int64     `db:"id"`
	RankerID  string    `db:"ranker_id"`
	Rankings  []byte    `db:"rankings"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type rankingInsertModel struct {
	RankerID string `db:"ranker_id"`
	Rankings []byte `db:"rankings"`
}
