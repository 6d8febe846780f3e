package usecase

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

// Evaluate - outcome of an arbitrary board.
func (that *GameManager) Evaluate(board tictactoe.Board) tictactoe.Outcome {
	return tictactoe.Evaluate(board)
}

// SuggestMove - the bot's move for a board where it is the bot's turn to play.
func (that *GameManager) SuggestMove(board tictactoe.Board, difficulty tictactoe.Difficulty) (int, error) {
	if difficulty == "" {
		difficulty = that.defaultDifficulty
	}

	if err := validateBotTurn(board); err != nil {
		return -1, err
	}

	cell, err := that.botService.SelectMove(board, difficulty)
	if err != nil {
		return -1, fmt.Errorf("failed to select move: %w", err)
	}

	return cell, nil
}

// validateBotTurn - X moves first, so the bot is to move only when X is one mark ahead.
func validateBotTurn(board tictactoe.Board) error {
	human := board.Count(entity.BotMark.Opponent())
	bot := board.Count(entity.BotMark)

	if human != bot+1 {
		return fmt.Errorf("%w: %d %s marks, %d %s marks",
			apperror.ErrUnreachableBoard, human, entity.BotMark.Opponent(), bot, entity.BotMark)
	}

	if tictactoe.Evaluate(board).IsTerminal() {
		return apperror.ErrGameFinished
	}

	return nil
}
