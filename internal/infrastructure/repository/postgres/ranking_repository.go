package postgres

import (
	"context"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/kaduregel/matchday/internal/domain/ranking"
	qb "github.com/kaduregel/matchday/internal/platform/querybuilder"
)

type RankingRepository struct {
	db *sqlx.DB
}

func NewRankingRepository(db *sqlx.DB) *RankingRepository {
	return &RankingRepository{db: db}
}

func (r *RankingRepository) GetUserRankings(ctx context.Context, rankerID string) (map[string]float64, bool, error) {
	query, args, err := qb.Select("rankings").From("rankings").
		Where(qb.Eq("ranker_id", rankerID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, false, fmt.Errorf("build get rankings query: %w", err)
	}

	var raw []byte
	if err := r.db.GetContext(ctx, &raw, query, args...); err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get rankings: %w", err)
	}

	rankings, err := decodeRankings(raw)
	if err != nil {
		return nil, false, err
	}

	return rankings, true, nil
}

// SetUserRankings merges the given entries into the ranker's stored sheet.
// The read-merge-write runs in a transaction so concurrent submits for one
// ranker cannot drop each other's entries.
func (r *RankingRepository) SetUserRankings(ctx context.Context, rankerID string, rankings map[string]float64) (bool, bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, false, fmt.Errorf("begin set rankings tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query, args, err := qb.Select("rankings").From("rankings").
		Where(qb.Eq("ranker_id", rankerID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, false, fmt.Errorf("build get rankings query: %w", err)
	}
	query += " FOR UPDATE"

	var raw []byte
	if err := tx.GetContext(ctx, &raw, query, args...); err != nil {
		if isNotFound(err) {
			return false, false, nil
		}
		return false, false, fmt.Errorf("get rankings for update: %w", err)
	}

	stored, err := decodeRankings(raw)
	if err != nil {
		return false, false, err
	}

	modified := false
	for name, value := range rankings {
		if previous, seen := stored[name]; !seen || previous != value {
			modified = true
		}
		stored[name] = value
	}
	if !modified {
		return true, false, nil
	}

	encoded, err := sonic.Marshal(stored)
	if err != nil {
		return false, false, fmt.Errorf("encode rankings: %w", err)
	}

	updateQuery, updateArgs, err := qb.Update("rankings").
		Set("rankings", encoded).
		Set("updated_at", time.Now().UTC()).
		Where(qb.Eq("ranker_id", rankerID)).
		ToSQL()
	if err != nil {
		return false, false, fmt.Errorf("build update rankings query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, updateQuery, updateArgs...); err != nil {
		return false, false, fmt.Errorf("update rankings: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, false, fmt.Errorf("commit set rankings tx: %w", err)
	}

	return true, true, nil
}

func (r *RankingRepository) ListAll(ctx context.Context) ([]ranking.UserRankings, error) {
	query, args, err := qb.Select("id", "ranker_id", "rankings", "created_at", "updated_at").
		From("rankings").
		OrderBy("ranker_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list rankings query: %w", err)
	}

	var rows []rankingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list rankings: %w", err)
	}

	out := make([]ranking.UserRankings, 0, len(rows))
	for _, row := range rows {
		decoded, err := decodeRankings(row.Rankings)
		if err != nil {
			return nil, err
		}
		out = append(out, ranking.UserRankings{RankerID: row.RankerID, Rankings: decoded})
	}

	return out, nil
}

func (r *RankingRepository) InsertRanker(ctx context.Context, rankerID string) error {
	insertModel := rankingInsertModel{
		RankerID: rankerID,
		Rankings: []byte("{}"),
	}

	query, args, err := qb.InsertModel("rankings", insertModel, "ON CONFLICT (ranker_id) DO NOTHING")
	if err != nil {
		return fmt.Errorf("build insert ranker query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert ranker: %w", err)
	}

	return nil
}

func decodeRankings(raw []byte) (map[string]float64, error) {
	rankings := make(map[string]float64)
	if len(raw) == 0 {
		return rankings, nil
	}
	if err := sonic.Unmarshal(raw, &rankings); err != nil {
		return nil, fmt.Errorf("decode rankings: %w", err)
	}

	return rankings, nil
}
