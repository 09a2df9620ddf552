package postgres

import (
	"context"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/kaduregel/matchday/internal/domain/matchday"
	"github.com/kaduregel/matchday/internal/domain/player"
	qb "github.com/kaduregel/matchday/internal/platform/querybuilder"
	"github.com/lib/pq"
)

type MatchdayRepository struct {
	db *sqlx.DB
}

var matchdaySelectColumns = []string{
	"id",
	"match_date",
	"location",
	"original_message",
	"roster",
	"teams",
	"created_at",
	"updated_at",
}

func NewMatchdayRepository(db *sqlx.DB) *MatchdayRepository {
	return &MatchdayRepository{db: db}
}

func (r *MatchdayRepository) GetByDate(ctx context.Context, date time.Time) (matchday.Matchday, bool, error) {
	query, args, err := qb.Select(matchdaySelectColumns...).From("matchdays").
		Where(qb.Eq("match_date", dateOnly(date))).
		Limit(1).
		ToSQL()
	if err != nil {
		return matchday.Matchday{}, false, fmt.Errorf("build get matchday query: %w", err)
	}

	var row matchdayTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return matchday.Matchday{}, false, nil
		}
		return matchday.Matchday{}, false, fmt.Errorf("get matchday: %w", err)
	}

	m, err := matchdayFromRow(row)
	if err != nil {
		return matchday.Matchday{}, false, err
	}

	return m, true, nil
}

func (r *MatchdayRepository) Exists(ctx context.Context, date time.Time) (bool, error) {
	query, args, err := qb.Select("1").From("matchdays").
		Where(qb.Eq("match_date", dateOnly(date))).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build matchday exists query: %w", err)
	}

	var one int
	if err := r.db.GetContext(ctx, &one, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("check matchday exists: %w", err)
	}

	return true, nil
}

// Insert stores the matchday. A second announcement for the same date
// replaces the stored record and clears any generated teams.
func (r *MatchdayRepository) Insert(ctx context.Context, m matchday.Matchday) error {
	insertModel := matchdayInsertModel{
		MatchDate:       dateOnly(m.Date),
		Location:        m.Location,
		OriginalMessage: m.OriginalMessage,
		Roster:          pqStringArray(m.Roster),
	}

	query, args, err := qb.InsertModel("matchdays", insertModel, `ON CONFLICT (match_date)
DO UPDATE SET
    location = EXCLUDED.location,
    original_message = EXCLUDED.original_message,
    roster = EXCLUDED.roster,
    teams = NULL,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert matchday query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert matchday: %w", err)
	}

	return nil
}

func (r *MatchdayRepository) SetTeams(ctx context.Context, date time.Time, teams []matchday.Team) (bool, error) {
	records := make([]teamRecord, 0, len(teams))
	for _, t := range teams {
		members := make([]teamMemberRecord, 0, len(t.Members))
		for _, member := range t.Members {
			members = append(members, teamMemberRecord{
				Name:           member.Name,
				Characteristic: string(member.Characteristic),
				Rating:         member.Rating,
			})
		}
		records = append(records, teamRecord{Members: members, TotalRating: t.TotalRating})
	}

	encoded, err := sonic.Marshal(records)
	if err != nil {
		return false, fmt.Errorf("encode teams: %w", err)
	}

	query, args, err := qb.Update("matchdays").
		Set("teams", encoded).
		Set("updated_at", time.Now().UTC()).
		Where(qb.Eq("match_date", dateOnly(date))).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build set teams query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("set teams: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("set teams rows affected: %w", err)
	}

	return affected > 0, nil
}

func matchdayFromRow(row matchdayTableModel) (matchday.Matchday, error) {
	m := matchday.Matchday{
		Date:            dateOnly(row.MatchDate),
		Location:        row.Location,
		OriginalMessage: row.OriginalMessage,
		Roster:          []string(row.Roster),
	}

	if len(row.Teams) > 0 {
		var records []teamRecord
		if err := sonic.Unmarshal(row.Teams, &records); err != nil {
			return matchday.Matchday{}, fmt.Errorf("decode teams: %w", err)
		}
		m.Teams = make([]matchday.Team, 0, len(records))
		for _, record := range records {
			members := make([]matchday.TeamMember, 0, len(record.Members))
			for _, member := range record.Members {
				members = append(members, matchday.TeamMember{
					Name:           member.Name,
					Characteristic: player.Characteristic(member.Characteristic),
					Rating:         member.Rating,
				})
			}
			m.Teams = append(m.Teams, matchday.Team{Members: members, TotalRating: record.TotalRating})
		}
	}

	return m, nil
}

func pqStringArray(items []string) pq.StringArray {
	if items == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(items)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
