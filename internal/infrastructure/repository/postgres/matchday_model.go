package postgres

import (
	"time"

	"github.com/lib/pq"
)

type matchdayTableModel struct {
	ID              int64          `db:"id"`
	MatchDate       time.Time      `db:"match_date"`
	Location        string         `db:"location"`
	OriginalMessage string         `db:"original_message"`
	Roster          pq.StringArray `db:"roster"`
	Teams           []byte         `db:"teams"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

type matchdayInsertModel struct {
	MatchDate       time.Time      `db:"match_date"`
	Location        string         `db:"location"`
	OriginalMessage string         `db:"original_message"`
	Roster          pq.StringArray `db:"roster"`
}

type teamMemberRecord struct {
	Name           string  `json:"name"`
	Characteristic string  `json:"characteristic"`
	Rating         float64 `json:"rating"`
}

type teamRecord struct {
	Members     []teamMemberRecord `json:"members"`
	TotalRating float64            `json:"totalRating"`
}
