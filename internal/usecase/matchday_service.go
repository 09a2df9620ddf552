package usecase

import (
	"context"
	cryptorand "crypto/rand"
	"encoding/binary"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/kaduregel/matchday/internal/balance"
	"github.com/kaduregel/matchday/internal/domain/matchday"
	"github.com/kaduregel/matchday/internal/domain/player"
	"github.com/kaduregel/matchday/internal/domain/ranking"
	"github.com/kaduregel/matchday/internal/platform/logging"
	"github.com/kaduregel/matchday/internal/platform/resilience"
	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/panics"
)

// Delivery pushes rendered text to the group chat once an asynchronous
// generation run finishes. A nil Delivery disables pushes.
type Delivery interface {
	SendMessage(ctx context.Context, text string) error
}

type MatchdayServiceConfig struct {
	TeamCount int
	Workers   int
}

// MatchdayService ingests announcements and runs team generation. Solves
// run off the request path on a bounded worker pool; triggering returns as
// soon as the roster snapshot is validated. Concurrent triggers for one date
// collapse into a single in-flight solve.
type MatchdayService struct {
	matchdayRepo matchday.Repository
	playerRepo   player.Repository
	rankingRepo  ranking.Repository
	generator    *balance.Generator
	delivery     Delivery
	logger       *logging.Logger

	pool     *ants.Pool
	inflight sync.WaitGroup
	flight   resilience.SingleFlight

	teamCount int
	newSeed   func() int64
}

func NewMatchdayService(
	matchdayRepo matchday.Repository,
	playerRepo player.Repository,
	rankingRepo ranking.Repository,
	generator *balance.Generator,
	delivery Delivery,
	cfg MatchdayServiceConfig,
	logger *logging.Logger,
) (*MatchdayService, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if generator == nil {
		generator = balance.NewGenerator(nil)
	}

	teamCount := cfg.TeamCount
	if teamCount <= 0 {
		teamCount = balance.DefaultTeamCount
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 2
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}

	return &MatchdayService{
		matchdayRepo: matchdayRepo,
		playerRepo:   playerRepo,
		rankingRepo:  rankingRepo,
		generator:    generator,
		delivery:     delivery,
		logger:       logger,
		pool:         pool,
		teamCount:    teamCount,
		newSeed:      cryptoSeed,
	}, nil
}

// Close drains in-flight generation runs and releases the worker pool.
func (s *MatchdayService) Close() {
	s.inflight.Wait()
	s.pool.Release()
}

// Ingest parses a raw announcement into a matchday record and stores it,
// replacing any previous record for the same date.
func (s *MatchdayService) Ingest(ctx context.Context, message string) (matchday.Matchday, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.Ingest")
	defer span.End()

	if strings.TrimSpace(message) == "" {
		return matchday.Matchday{}, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}

	parsed, err := matchday.ParseMessage(message)
	if err != nil {
		return matchday.Matchday{}, fmt.Errorf("parse announcement: %w", err)
	}
	if !parsed.HasDate {
		return matchday.Matchday{}, fmt.Errorf("%w: announcement contains no date", ErrInvalidInput)
	}

	m := matchday.Matchday{
		Date:            parsed.Date,
		Location:        parsed.Location,
		OriginalMessage: message,
		Roster:          parsed.Roster,
	}
	if err := s.matchdayRepo.Insert(ctx, m); err != nil {
		return matchday.Matchday{}, fmt.Errorf("%w: insert matchday: %v", ErrDataAccess, err)
	}

	s.logger.InfoContext(ctx, "matchday ingested",
		"date", matchday.FormatDate(m.Date),
		"location", m.Location,
		"roster_size", len(m.Roster),
	)

	return m, nil
}

func (s *MatchdayService) Get(ctx context.Context, date time.Time) (matchday.Matchday, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.Get")
	defer span.End()

	m, found, err := s.matchdayRepo.GetByDate(ctx, date)
	if err != nil {
		return matchday.Matchday{}, fmt.Errorf("%w: get matchday: %v", ErrDataAccess, err)
	}
	if !found {
		return matchday.Matchday{}, fmt.Errorf("%w: matchday=%s", ErrNotFound, matchday.FormatDate(date))
	}

	return m, nil
}

// Summary renders the matchday for delivery: the rated roster before teams
// exist, the generated teams after.
func (s *MatchdayService) Summary(ctx context.Context, date time.Time) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.Summary")
	defer span.End()

	m, err := s.Get(ctx, date)
	if err != nil {
		return "", err
	}

	var roster []matchday.RosterEntry
	if len(m.Teams) == 0 {
		averages, err := s.averageRatings(ctx)
		if err != nil {
			return "", err
		}
		roster = make([]matchday.RosterEntry, 0, len(m.Roster))
		for _, name := range m.Roster {
			rating := averages[name]
			if rating != 0 {
				// A goalkeeper always reads 0, even with ratings collected
				// before the player switched characteristic.
				characteristic, exists, err := s.playerRepo.GetCharacteristic(ctx, name)
				if err != nil {
					return "", fmt.Errorf("%w: get characteristic: %v", ErrDataAccess, err)
				}
				if exists && characteristic == player.CharacteristicGoalkeeper {
					rating = 0
				}
			}
			roster = append(roster, matchday.RosterEntry{Name: name, Rating: rating})
		}
	}

	return matchday.RenderSummary(m, roster), nil
}

// GenerateTeams validates the roster, snapshots ratings and schedules the
// solve on the worker pool. It returns once the run is accepted; the result
// lands in the store and is pushed through the delivery client.
func (s *MatchdayService) GenerateTeams(ctx context.Context, date time.Time) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.GenerateTeams")
	defer span.End()

	snapshot, err := s.snapshotRoster(ctx, date)
	if err != nil {
		return err
	}

	seed := s.newSeed()
	dateKey := matchday.FormatDate(date)
	background := context.WithoutCancel(ctx)

	s.inflight.Add(1)
	if err := s.pool.Submit(func() {
		defer s.inflight.Done()

		recovered := panics.Try(func() {
			_, err, shared := s.flight.Do(dateKey, func() (any, error) {
				return nil, s.runGeneration(background, date, snapshot, seed)
			})
			if shared {
				s.logger.InfoContext(background, "generation joined in-flight run", "date", dateKey)
				return
			}
			if err != nil {
				s.logger.ErrorContext(background, "team generation failed", "date", dateKey, "error", err)
			}
		})
		if recovered != nil {
			s.logger.ErrorContext(background, "team generation panicked", "date", dateKey, "panic", recovered.String())
		}
	}); err != nil {
		s.inflight.Done()
		return fmt.Errorf("%w: submit generation: %v", ErrDependencyUnavailable, err)
	}

	s.logger.InfoContext(ctx, "team generation scheduled", "date", dateKey, "roster_size", len(snapshot))
	return nil
}

// GenerateTeamsWithSeed runs a generation synchronously with a fixed seed.
// The result is deterministic for a given roster snapshot and seed.
func (s *MatchdayService) GenerateTeamsWithSeed(ctx context.Context, date time.Time, seed int64) ([]matchday.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.GenerateTeamsWithSeed")
	defer span.End()

	snapshot, err := s.snapshotRoster(ctx, date)
	if err != nil {
		return nil, err
	}
	if err := s.runGeneration(ctx, date, snapshot, seed); err != nil {
		return nil, err
	}

	m, err := s.Get(ctx, date)
	if err != nil {
		return nil, err
	}

	return m.Teams, nil
}

// snapshotRoster resolves the stored roster against the registry into the
// read-only view the balancer consumes. Blank entries are filtered here;
// unregistered names block generation.
func (s *MatchdayService) snapshotRoster(ctx context.Context, date time.Time) ([]balance.Player, error) {
	m, found, err := s.matchdayRepo.GetByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("%w: get matchday: %v", ErrDataAccess, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: matchday=%s", ErrNotFound, matchday.FormatDate(date))
	}

	averages, err := s.averageRatings(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(m.Roster))
	snapshot := make([]balance.Player, 0, len(m.Roster))
	var unknown []string
	for _, name := range m.Roster {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		characteristic, exists, err := s.playerRepo.GetCharacteristic(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("%w: get characteristic: %v", ErrDataAccess, err)
		}
		if !exists {
			unknown = append(unknown, name)
			continue
		}

		rating := averages[name]
		if characteristic == player.CharacteristicGoalkeeper {
			rating = 0
		}
		snapshot = append(snapshot, balance.Player{
			Name:           name,
			Characteristic: characteristic,
			Rating:         rating,
		})
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: roster contains unregistered players: %s", ErrInvalidInput, strings.Join(unknown, ", "))
	}

	return snapshot, nil
}

func (s *MatchdayService) runGeneration(ctx context.Context, date time.Time, snapshot []balance.Player, seed int64) error {
	useRankings := false
	for _, p := range snapshot {
		if p.Rating > 0 {
			useRankings = true
			break
		}
	}

	teams, err := s.generator.Generate(snapshot, balance.Options{
		TeamCount:   s.teamCount,
		UseRankings: useRankings,
		Seed:        seed,
	})
	if err != nil {
		return fmt.Errorf("generate teams: %w", err)
	}

	stored := make([]matchday.Team, 0, len(teams))
	for _, team := range teams {
		members := make([]matchday.TeamMember, 0, len(team.Players))
		for _, p := range team.Players {
			members = append(members, matchday.TeamMember{
				Name:           p.Name,
				Characteristic: p.Characteristic,
				Rating:         p.Rating,
			})
		}
		stored = append(stored, matchday.Team{Members: members, TotalRating: team.TotalRating})
	}

	found, err := s.matchdayRepo.SetTeams(ctx, date, stored)
	if err != nil {
		return fmt.Errorf("%w: store teams: %v", ErrDataAccess, err)
	}
	if !found {
		return fmt.Errorf("%w: matchday=%s", ErrNotFound, matchday.FormatDate(date))
	}

	s.logger.InfoContext(ctx, "teams generated",
		"date", matchday.FormatDate(date),
		"teams", len(stored),
		"use_rankings", useRankings,
		"seed", seed,
	)

	if s.delivery != nil {
		summary, err := s.Summary(ctx, date)
		if err != nil {
			return err
		}
		if err := s.delivery.SendMessage(ctx, summary); err != nil {
			s.logger.ErrorContext(ctx, "summary delivery failed", "date", matchday.FormatDate(date), "error", err)
		}
	}

	return nil
}

// averageRatings folds every ranker's sheet into one name-to-mean map.
func (s *MatchdayService) averageRatings(ctx context.Context) (map[string]float64, error) {
	all, err := s.rankingRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list rankings: %v", ErrDataAccess, err)
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, user := range all {
		for name, value := range user.Rankings {
			sums[name] += value
			counts[name]++
		}
	}

	averages := make(map[string]float64, len(sums))
	for name, sum := range sums {
		averages[name] = sum / float64(counts[name])
	}

	return averages, nil
}

func cryptoSeed() int64 {
	var b [8]byte
	if _, err := cryptorand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]) &^ (1 << 63))
}
