package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/kaduregel/matchday/internal/domain/player"
	"github.com/kaduregel/matchday/internal/domain/ranking"
	"github.com/kaduregel/matchday/internal/platform/logging"
)

type PlayerService struct {
	playerRepo  player.Repository
	rankingRepo ranking.Repository
	logger      *logging.Logger
}

func NewPlayerService(playerRepo player.Repository, rankingRepo ranking.Repository, logger *logging.Logger) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PlayerService{
		playerRepo:  playerRepo,
		rankingRepo: rankingRepo,
		logger:      logger,
	}
}

func (s *PlayerService) AddPlayer(ctx context.Context, name string, characteristic player.Characteristic) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.AddPlayer")
	defer span.End()

	p := player.Player{Name: strings.TrimSpace(name), Characteristic: characteristic}
	if err := p.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	exists, err := s.playerRepo.Exists(ctx, p.Name)
	if err != nil {
		return player.Player{}, fmt.Errorf("%w: check player: %v", ErrDataAccess, err)
	}
	if exists {
		return player.Player{}, fmt.Errorf("%w: player %q already exists", ErrInvalidInput, p.Name)
	}

	if err := s.playerRepo.Insert(ctx, p); err != nil {
		return player.Player{}, fmt.Errorf("%w: insert player: %v", ErrDataAccess, err)
	}

	s.logger.InfoContext(ctx, "player added", "name", p.Name, "characteristic", p.Characteristic)
	return p, nil
}

// EditCharacteristic updates a player's positional category. It reports
// whether the stored value actually changed; re-applying the same value is
// allowed and reports modified=false.
func (s *PlayerService) EditCharacteristic(ctx context.Context, name string, characteristic player.Characteristic) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.EditCharacteristic")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return false, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	if _, ok := player.AllCharacteristics[characteristic]; !ok {
		return false, fmt.Errorf("%w: invalid characteristic %q", ErrInvalidInput, characteristic)
	}

	found, modified, err := s.playerRepo.SetCharacteristic(ctx, name, characteristic)
	if err != nil {
		return false, fmt.Errorf("%w: set characteristic: %v", ErrDataAccess, err)
	}
	if !found {
		return false, fmt.Errorf("%w: player=%s", ErrNotFound, name)
	}

	return modified, nil
}

func (s *PlayerService) ListPlayers(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers")
	defer span.End()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list players: %v", ErrDataAccess, err)
	}

	return players, nil
}

// AverageRating is the mean of every ranker's rating for the player, 0 when
// nobody rated them. Goalkeepers are forced to 0 regardless of history.
func (s *PlayerService) AverageRating(ctx context.Context, name string) (float64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.AverageRating")
	defer span.End()

	name = strings.TrimSpace(name)
	characteristic, found, err := s.playerRepo.GetCharacteristic(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("%w: get characteristic: %v", ErrDataAccess, err)
	}
	if !found {
		return 0, fmt.Errorf("%w: player=%s", ErrNotFound, name)
	}
	if characteristic == player.CharacteristicGoalkeeper {
		return 0, nil
	}

	all, err := s.rankingRepo.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: list rankings: %v", ErrDataAccess, err)
	}

	var sum float64
	var count int
	for _, user := range all {
		if value, ok := user.Rankings[name]; ok {
			sum += value
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}

	return sum / float64(count), nil
}
