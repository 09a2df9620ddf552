package memory

import (
	"context"
	"sync"
	"time"

	"github.com/kaduregel/matchday/internal/domain/matchday"
)

type MatchdayRepository struct {
	mu        sync.RWMutex
	matchdays map[string]matchday.Matchday
}

func NewMatchdayRepository() *MatchdayRepository {
	return &MatchdayRepository{matchdays: make(map[string]matchday.Matchday)}
}

func (r *MatchdayRepository) GetByDate(_ context.Context, date time.Time) (matchday.Matchday, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.matchdays[matchday.FormatDate(date)]
	if !ok {
		return matchday.Matchday{}, false, nil
	}

	return cloneMatchday(m), true, nil
}

func (r *MatchdayRepository) Exists(_ context.Context, date time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.matchdays[matchday.FormatDate(date)]

	return ok, nil
}

// Insert stores the matchday, replacing any record for the same date.
func (r *MatchdayRepository) Insert(_ context.Context, m matchday.Matchday) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.matchdays[matchday.FormatDate(m.Date)] = cloneMatchday(m)

	return nil
}

func (r *MatchdayRepository) SetTeams(_ context.Context, date time.Time, teams []matchday.Team) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := matchday.FormatDate(date)
	m, ok := r.matchdays[key]
	if !ok {
		return false, nil
	}

	m.Teams = cloneTeams(teams)
	r.matchdays[key] = m

	return true, nil
}

func cloneMatchday(m matchday.Matchday) matchday.Matchday {
	out := m
	out.Roster = append([]string(nil), m.Roster...)
	out.Teams = cloneTeams(m.Teams)

	return out
}

func cloneTeams(teams []matchday.Team) []matchday.Team {
	if teams == nil {
		return nil
	}

	out := make([]matchday.Team, 0, len(teams))
	for _, t := range teams {
		copied := t
		copied.Members = append([]matchday.TeamMember(nil), t.Members...)
		out = append(out, copied)
	}

	return out
}
