package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kaduregel/matchday/internal/domain/player"
	qb "github.com/kaduregel/matchday/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) Exists(ctx context.Context, name string) (bool, error) {
	query, args, err := qb.Select("1").From("players").
		Where(qb.Eq("name", name)).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build player exists query: %w", err)
	}

	var one int
	if err := r.db.GetContext(ctx, &one, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("check player exists: %w", err)
	}

	return true, nil
}

func (r *PlayerRepository) GetCharacteristic(ctx context.Context, name string) (player.Characteristic, bool, error) {
	query, args, err := qb.Select("characteristic").From("players").
		Where(qb.Eq("name", name)).
		Limit(1).
		ToSQL()
	if err != nil {
		return "", false, fmt.Errorf("build get characteristic query: %w", err)
	}

	var characteristic string
	if err := r.db.GetContext(ctx, &characteristic, query, args...); err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get characteristic: %w", err)
	}

	return player.Characteristic(characteristic), true, nil
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select("id", "name", "characteristic", "created_at", "updated_at").
		From("players").
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.Player{
			Name:           row.Name,
			Characteristic: player.Characteristic(row.Characteristic),
		})
	}

	return out, nil
}

func (r *PlayerRepository) Insert(ctx context.Context, p player.Player) error {
	insertModel := playerInsertModel{
		Name:           p.Name,
		Characteristic: string(p.Characteristic),
	}

	query, args, err := qb.InsertModel("players", insertModel, "ON CONFLICT (name) DO NOTHING")
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert player: %w", err)
	}

	return nil
}

func (r *PlayerRepository) SetCharacteristic(ctx context.Context, name string, characteristic player.Characteristic) (bool, bool, error) {
	current, found, err := r.GetCharacteristic(ctx, name)
	if err != nil {
		return false, false, err
	}
	if !found {
		return false, false, nil
	}
	if current == characteristic {
		return true, false, nil
	}

	query, args, err := qb.Update("players").
		Set("characteristic", string(characteristic)).
		Set("updated_at", time.Now().UTC()).
		Where(qb.Eq("name", name)).
		ToSQL()
	if err != nil {
		return false, false, fmt.Errorf("build update characteristic query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return false, false, fmt.Errorf("update characteristic: %w", err)
	}

	return true, true, nil
}
