package service

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

var ErrNoAvailableMoves = errors.New("no available moves")

type BotService interface {
	SelectMove(board tictactoe.Board, difficulty tictactoe.Difficulty) (int, error)
	MakeTurn(game *entity.Game) error
}

type botService struct {
	selector *tictactoe.Selector
}

// NewBotService - rnd may be nil to use the shared math/rand source.
func NewBotService(rnd tictactoe.RandomSource) BotService {
	return &botService{
		selector: tictactoe.NewSelector(entity.BotMark, rnd),
	}
}

// SelectMove - guards the selector's preconditions so callers get an error instead of a panic.
func (that *botService) SelectMove(board tictactoe.Board, difficulty tictactoe.Difficulty) (int, error) {
	if len(board.EmptyCells()) == 0 {
		return -1, ErrNoAvailableMoves
	}

	if tictactoe.Evaluate(board).IsTerminal() {
		return -1, apperror.ErrGameFinished
	}

	return that.selector.SelectMove(board, difficulty), nil
}

func (that *botService) MakeTurn(game *entity.Game) error {
	if !game.IsBotTurn() {
		return apperror.ErrNotBotTurn
	}

	chosenCell, err := that.SelectMove(game.Board, game.Difficulty)
	if err != nil {
		return fmt.Errorf("failed to select move: %w", err)
	}

	if err = game.MakeTurn(entity.BotMark, chosenCell); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}
