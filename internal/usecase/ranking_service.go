package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/kaduregel/matchday/internal/domain/player"
	"github.com/kaduregel/matchday/internal/domain/ranking"
	"github.com/kaduregel/matchday/internal/platform/logging"
)

// SubmitRankingsResult reports how one filled-in template was committed.
// Dropped names targeted goalkeepers or players missing from the registry;
// skipped names carried an explicit 0 and were left untouched.
type SubmitRankingsResult struct {
	Accepted []string
	Dropped  []string
	Skipped  []string
	Modified bool
}

type RankingService struct {
	playerRepo  player.Repository
	rankingRepo ranking.Repository
	logger      *logging.Logger
}

func NewRankingService(playerRepo player.Repository, rankingRepo ranking.Repository, logger *logging.Logger) *RankingService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RankingService{
		playerRepo:  playerRepo,
		rankingRepo: rankingRepo,
		logger:      logger,
	}
}

// Template builds the fill-in rankings message for one ranker, listing their
// stored ratings first and every still-unrated player after.
func (s *RankingService) Template(ctx context.Context, rankerID string) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.Template")
	defer span.End()

	rankerID = strings.TrimSpace(rankerID)
	if rankerID == "" {
		return "", fmt.Errorf("%w: ranker id is required", ErrInvalidInput)
	}

	rankings, found, err := s.rankingRepo.GetUserRankings(ctx, rankerID)
	if err != nil {
		return "", fmt.Errorf("%w: get rankings: %v", ErrDataAccess, err)
	}
	if !found {
		return "", fmt.Errorf("%w: ranker=%s", ErrNotFound, rankerID)
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: list players: %v", ErrDataAccess, err)
	}

	names := make([]string, 0, len(players))
	for _, p := range players {
		names = append(names, p.Name)
	}

	return ranking.GenerateTemplate(names, rankings), nil
}

// Submit parses a filled-in template and commits the surviving entries.
// Values aimed at goalkeepers or unregistered names are dropped before the
// write; a 0 value means "explicitly skip this player". Garbage lines never
// fail the call, only the aggregate result tells the ranker what happened.
func (s *RankingService) Submit(ctx context.Context, rankerID, message string) (SubmitRankingsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.Submit")
	defer span.End()

	rankerID = strings.TrimSpace(rankerID)
	if rankerID == "" {
		return SubmitRankingsResult{}, fmt.Errorf("%w: ranker id is required", ErrInvalidInput)
	}

	_, found, err := s.rankingRepo.GetUserRankings(ctx, rankerID)
	if err != nil {
		return SubmitRankingsResult{}, fmt.Errorf("%w: get rankings: %v", ErrDataAccess, err)
	}
	if !found {
		return SubmitRankingsResult{}, fmt.Errorf("%w: ranker=%s", ErrNotFound, rankerID)
	}

	parsed := ranking.ParseRankings(message)
	names := make([]string, 0, len(parsed))
	for name := range parsed {
		names = append(names, name)
	}
	sort.Strings(names)

	result := SubmitRankingsResult{}
	accepted := make(map[string]float64, len(parsed))
	for _, name := range names {
		value, parseErr := strconv.ParseFloat(parsed[name], 64)
		if parseErr != nil {
			continue
		}

		characteristic, exists, err := s.playerRepo.GetCharacteristic(ctx, name)
		if err != nil {
			return SubmitRankingsResult{}, fmt.Errorf("%w: get characteristic: %v", ErrDataAccess, err)
		}
		if !exists || characteristic == player.CharacteristicGoalkeeper {
			result.Dropped = append(result.Dropped, name)
			continue
		}
		if value == 0 {
			result.Skipped = append(result.Skipped, name)
			continue
		}

		accepted[name] = value
		result.Accepted = append(result.Accepted, name)
	}

	if len(accepted) == 0 {
		return result, nil
	}

	found, modified, err := s.rankingRepo.SetUserRankings(ctx, rankerID, accepted)
	if err != nil {
		return SubmitRankingsResult{}, fmt.Errorf("%w: set rankings: %v", ErrDataAccess, err)
	}
	if !found {
		return SubmitRankingsResult{}, fmt.Errorf("%w: ranker=%s", ErrNotFound, rankerID)
	}
	result.Modified = modified

	s.logger.InfoContext(ctx, "rankings submitted",
		"ranker_id", rankerID,
		"accepted", len(result.Accepted),
		"dropped", len(result.Dropped),
		"skipped", len(result.Skipped),
		"modified", modified,
	)

	return result, nil
}
