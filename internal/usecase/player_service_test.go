package usecase

import (
	"context"
	"testing"

	"github.com/kaduregel/matchday/internal/domain/player"
	"github.com/kaduregel/matchday/internal/infrastructure/repository/memory"
	"github.com/stretchr/testify/require"
)

func newPlayerService(t *testing.T) (*PlayerService, *memory.RankingRepository) {
	t.Helper()

	players := memory.NewPlayerRepository([]player.Player{
		{Name: "איתי", Characteristic: player.CharacteristicGoalkeeper},
		{Name: "דני", Characteristic: player.CharacteristicOffensive},
		{Name: "אבי", Characteristic: player.CharacteristicDefensive},
	})
	rankings := memory.NewRankingRepository()

	return NewPlayerService(players, rankings, nil), rankings
}

func TestPlayerServiceAddPlayer(t *testing.T) {
	service, _ := newPlayerService(t)
	ctx := context.Background()

	added, err := service.AddPlayer(ctx, " עומר ", player.CharacteristicAllAround)
	require.NoError(t, err)
	require.Equal(t, "עומר", added.Name)

	players, err := service.ListPlayers(ctx)
	require.NoError(t, err)
	require.Len(t, players, 4)

	t.Run("duplicate name", func(t *testing.T) {
		_, err := service.AddPlayer(ctx, "עומר", player.CharacteristicOffensive)
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("invalid characteristic", func(t *testing.T) {
		_, err := service.AddPlayer(ctx, "נדב", player.Characteristic("STRIKER"))
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := service.AddPlayer(ctx, "   ", player.CharacteristicAllAround)
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestPlayerServiceEditCharacteristic(t *testing.T) {
	service, _ := newPlayerService(t)
	ctx := context.Background()

	modified, err := service.EditCharacteristic(ctx, "דני", player.CharacteristicAllAround)
	require.NoError(t, err)
	require.True(t, modified)

	modified, err = service.EditCharacteristic(ctx, "דני", player.CharacteristicAllAround)
	require.NoError(t, err)
	require.False(t, modified)

	_, err = service.EditCharacteristic(ctx, "פלוני", player.CharacteristicAllAround)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = service.EditCharacteristic(ctx, "דני", player.Characteristic("STRIKER"))
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestPlayerServiceAverageRating(t *testing.T) {
	service, rankings := newPlayerService(t)
	ctx := context.Background()

	require.NoError(t, rankings.InsertRanker(ctx, "100001"))
	require.NoError(t, rankings.InsertRanker(ctx, "100002"))
	_, _, err := rankings.SetUserRankings(ctx, "100001", map[string]float64{"דני": 6, "איתי": 9})
	require.NoError(t, err)
	_, _, err = rankings.SetUserRankings(ctx, "100002", map[string]float64{"דני": 8})
	require.NoError(t, err)

	rating, err := service.AverageRating(ctx, "דני")
	require.NoError(t, err)
	require.InDelta(t, 7, rating, 1e-9)

	t.Run("goalkeepers always read zero", func(t *testing.T) {
		rating, err := service.AverageRating(ctx, "איתי")
		require.NoError(t, err)
		require.Zero(t, rating)
	})

	t.Run("unrated player reads zero", func(t *testing.T) {
		rating, err := service.AverageRating(ctx, "אבי")
		require.NoError(t, err)
		require.Zero(t, rating)
	})

	t.Run("unknown player", func(t *testing.T) {
		_, err := service.AverageRating(ctx, "פלוני")
		require.ErrorIs(t, err, ErrNotFound)
	})
}
