package postgres

import (
	"time"
)

type playerTableModel struct {
	ID             int64     `db:"id"`
	Name           string    `db:"name"`
	Characteristic string    `db:"characteristic"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type playerInsertModel struct {
	Name           string `db:"name"`
	Characteristic string `db:"characteristic"`
}
