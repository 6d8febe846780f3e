package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

var errRedisDown = errors.New("redis down")

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	args := that.Called(ctx, game)
	return args.Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameRepo) Update(ctx context.Context, id string, change func(game *entity.Game) error) (*entity.Game, error) {
	args := that.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	if err := args.Error(1); err != nil {
		return nil, err
	}

	if err := change(game); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

func TestGameService_CreateGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates and stores a game", func(t *testing.T) {
		// Given: a repository accepting any game
		repo := &mockGameRepo{}
		repo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Game")).Return(nil).Once()
		gameService := NewGameService(repo)

		// When: create a pvc game
		game, err := gameService.CreateGame(ctx, entity.ModePvC, tictactoe.Medium)

		// Then: the game gets a uuid and a fresh board
		require.NoError(t, err)
		_, err = uuid.Parse(game.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.ModePvC, game.Mode)
		assert.Equal(t, tictactoe.Medium, game.Difficulty)
		assert.Equal(t, entity.StatusPlaying, game.Status)
		repo.AssertExpectations(t)
	})

	t.Run("Rejects unknown mode", func(t *testing.T) {
		repo := &mockGameRepo{}
		gameService := NewGameService(repo)

		_, err := gameService.CreateGame(ctx, "online", tictactoe.Easy)

		require.ErrorIs(t, err, apperror.ErrUnknownGameMode)
		repo.AssertNotCalled(t, "CreateOrUpdate", mock.Anything, mock.Anything)
	})

	t.Run("Wraps storage errors", func(t *testing.T) {
		repo := &mockGameRepo{}
		repo.On("CreateOrUpdate", mock.Anything, mock.Anything).Return(errRedisDown).Once()

		_, err := NewGameService(repo).CreateGame(ctx, entity.ModePvP, tictactoe.Easy)

		require.ErrorIs(t, err, errRedisDown)
	})
}

func TestGameService_GetGameByID(t *testing.T) {
	ctx := context.Background()

	repo := &mockGameRepo{}
	stored := entity.NewGame("123", entity.ModePvP, tictactoe.Easy)
	repo.On("GetByID", mock.Anything, "123").Return(stored, nil).Once()
	repo.On("GetByID", mock.Anything, "404").Return(nil, errRedisDown).Once()
	gameService := NewGameService(repo)

	game, err := gameService.GetGameByID(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, stored, game)

	_, err = gameService.GetGameByID(ctx, "404")
	require.ErrorIs(t, err, errRedisDown)
}

func TestGameService_ModifyGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Applies the change", func(t *testing.T) {
		// Given: a stored pvp game
		repo := &mockGameRepo{}
		stored := entity.NewGame("123", entity.ModePvP, tictactoe.Easy)
		repo.On("Update", mock.Anything, "123").Return(stored, nil).Once()
		gameService := NewGameService(repo)

		// When: X plays the center
		game, err := gameService.ModifyGame(ctx, "123", func(game *entity.Game) error {
			return game.MakeTurn(tictactoe.X, 4)
		})

		// Then: the changed game is returned
		require.NoError(t, err)
		assert.Equal(t, tictactoe.X, game.Board[4])
		repo.AssertExpectations(t)
	})

	t.Run("Wraps change errors", func(t *testing.T) {
		repo := &mockGameRepo{}
		stored := entity.NewGame("123", entity.ModePvP, tictactoe.Easy)
		repo.On("Update", mock.Anything, "123").Return(stored, nil).Once()

		_, err := NewGameService(repo).ModifyGame(ctx, "123", func(game *entity.Game) error {
			return game.MakeTurn(tictactoe.O, 4)
		})

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})
}

func TestGameService_DeleteGame(t *testing.T) {
	ctx := context.Background()

	repo := &mockGameRepo{}
	repo.On("DeleteByID", mock.Anything, "123").Return(nil).Once()
	repo.On("DeleteByID", mock.Anything, "404").Return(errRedisDown).Once()
	gameService := NewGameService(repo)

	require.NoError(t, gameService.DeleteGame(ctx, "123"))
	require.ErrorIs(t, gameService.DeleteGame(ctx, "404"), errRedisDown)
	repo.AssertExpectations(t)
}
