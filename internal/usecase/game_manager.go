package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

type gameService interface {
	CreateGame(ctx context.Context, mode string, difficulty tictactoe.Difficulty) (*entity.Game, error)
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	ModifyGame(ctx context.Context, gameID string, change func(game *entity.Game) error) (*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error
}

type botService interface {
	SelectMove(board tictactoe.Board, difficulty tictactoe.Difficulty) (int, error)
	MakeTurn(game *entity.Game) error
}

type GameManager struct {
	logger *slog.Logger

	gameService gameService
	botService  botService

	defaultDifficulty tictactoe.Difficulty
}

func NewGameManager(logger *slog.Logger, gameService gameService, botService botService, defaultDifficulty tictactoe.Difficulty) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameService: gameService,
		botService:  botService,

		defaultDifficulty: defaultDifficulty,
	}
}

// CreateGame - starts a new game. An empty difficulty means the configured default.
func (that *GameManager) CreateGame(ctx context.Context, mode string, difficulty tictactoe.Difficulty) (*entity.Game, error) {
	if difficulty == "" {
		difficulty = that.defaultDifficulty
	}

	game, err := that.gameService.CreateGame(ctx, mode, difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Debug("game created", "gameID", game.ID, "mode", mode, "difficulty", difficulty)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeTurn - plays the human move for whoever's turn it is, then the bot's reply in pvc games.
// The whole turn is applied to the latest stored state, so overlapping requests cannot erase each other.
func (that *GameManager) MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", gameID)

	game, err := that.gameService.ModifyGame(ctx, gameID, func(game *entity.Game) error {
		if game.IsBotTurn() {
			return apperror.ErrNotYourTurn
		}

		if err := game.MakeTurn(game.Turn, cell); err != nil {
			return fmt.Errorf("failed to make turn: %w", err)
		}

		if game.IsBotTurn() {
			if err := that.botService.MakeTurn(game); err != nil {
				return fmt.Errorf("bot failed to make turn: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if game.IsFinished() {
		log.Info("game finished", "status", game.Status, "winner", game.Winner)
	}

	return game, nil
}

func (that *GameManager) ResetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	return that.updateGame(ctx, gameID, func(game *entity.Game) error {
		game.Reset()
		return nil
	})
}

func (that *GameManager) ChangeMode(ctx context.Context, gameID, mode string) (*entity.Game, error) {
	return that.updateGame(ctx, gameID, func(game *entity.Game) error {
		return game.ChangeMode(mode)
	})
}

func (that *GameManager) ChangeDifficulty(ctx context.Context, gameID string, difficulty tictactoe.Difficulty) (*entity.Game, error) {
	return that.updateGame(ctx, gameID, func(game *entity.Game) error {
		game.ChangeDifficulty(difficulty)
		return nil
	})
}

// DeleteGame - drops a game before its TTL expires.
func (that *GameManager) DeleteGame(ctx context.Context, gameID string) error {
	if err := that.gameService.DeleteGame(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Debug("game deleted", "gameID", gameID)

	return nil
}

func (that *GameManager) updateGame(ctx context.Context, gameID string, change func(game *entity.Game) error) (*entity.Game, error) {
	game, err := that.gameService.ModifyGame(ctx, gameID, change)
	if err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}
