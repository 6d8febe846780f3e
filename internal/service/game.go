package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

type GameService interface {
	CreateGame(ctx context.Context, mode string, difficulty tictactoe.Difficulty) (*entity.Game, error)
	ModifyGame(ctx context.Context, gameID string, change func(game *entity.Game) error) (*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error

	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	Update(ctx context.Context, id string, change func(game *entity.Game) error) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type gameService struct {
	gameRepo gameRepo
}

func NewGameService(gameRepo gameRepo) GameService {
	return &gameService{
		gameRepo: gameRepo,
	}
}

func (that *gameService) CreateGame(ctx context.Context, mode string, difficulty tictactoe.Difficulty) (*entity.Game, error) {
	if err := entity.ValidateMode(mode); err != nil {
		return nil, err
	}

	game := entity.NewGame(uuid.NewString(), mode, difficulty)

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game in storage: %w", err)
	}

	return game, nil
}

func (that *gameService) GetGameByID(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve game from storage: %w", err)
	}
	return game, nil
}

// ModifyGame - runs change against the latest stored state and saves the result atomically.
// An error from change leaves the stored game untouched.
func (that *gameService) ModifyGame(ctx context.Context, gameID string, change func(game *entity.Game) error) (*entity.Game, error) {
	game, err := that.gameRepo.Update(ctx, gameID, change)
	if err != nil {
		return nil, fmt.Errorf("failed to modify game: %w", err)
	}
	return game, nil
}

func (that *gameService) DeleteGame(ctx context.Context, gameID string) error {
	if err := that.gameRepo.DeleteByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	return nil
}
