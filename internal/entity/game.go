package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

const (
	StatusPlaying = "playing"
	StatusWon     = "won"
	StatusDraw    = "draw"
)

const (
	ModePvP = "pvp" // two humans sharing one client
	ModePvC = "pvc" // human against the bot
)

// BotMark - the bot always moves second.
const BotMark = tictactoe.O

type Game struct {
	ID          string               `json:"id"`
	Board       tictactoe.Board      `json:"board"`
	Turn        tictactoe.Mark       `json:"player_turn,omitempty"`
	Status      string               `json:"status"`
	Winner      tictactoe.Mark       `json:"winner,omitempty"`
	WinningLine []int                `json:"winning_line,omitempty"`
	Mode        string               `json:"mode"`
	Difficulty  tictactoe.Difficulty `json:"difficulty"`
}

func NewGame(id, mode string, difficulty tictactoe.Difficulty) *Game {
	return &Game{
		ID:         id,
		Board:      tictactoe.Board{},
		Turn:       tictactoe.X,
		Status:     StatusPlaying,
		Mode:       mode,
		Difficulty: difficulty,
	}
}

func ValidateMode(mode string) error {
	if mode != ModePvP && mode != ModePvC {
		return fmt.Errorf("%w: %q", apperror.ErrUnknownGameMode, mode)
	}
	return nil
}

func (that *Game) MakeTurn(playerMark tictactoe.Mark, cell int) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if cell < 0 || cell >= len(that.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that.Turn != playerMark {
		return apperror.ErrNotYourTurn
	}

	if that.Board[cell] != tictactoe.Empty {
		return apperror.ErrCellOccupied
	}

	that.Board[cell] = playerMark
	that.UpdateGameState()

	return nil
}

// UpdateGameState - recomputes the outcome from the board.
func (that *Game) UpdateGameState() {
	switch outcome := tictactoe.Evaluate(that.Board); outcome.Result {
	case tictactoe.ResultWin:
		that.Status = StatusWon
		that.Winner = outcome.Winner
		that.WinningLine = outcome.Line[:]
		that.Turn = tictactoe.Empty
	case tictactoe.ResultDraw:
		that.Status = StatusDraw
		that.Turn = tictactoe.Empty
	default:
		that.Status = StatusPlaying
		that.Turn = nextTurn(that.Board)
	}
}

// nextTurn - X always starts, so equal counts mean X is to move.
func nextTurn(board tictactoe.Board) tictactoe.Mark {
	if board.Count(tictactoe.X) > board.Count(tictactoe.O) {
		return tictactoe.O
	}
	return tictactoe.X
}

// Reset - clears the board, keeping mode and difficulty.
func (that *Game) Reset() {
	that.Board = tictactoe.Board{}
	that.Turn = tictactoe.X
	that.Status = StatusPlaying
	that.Winner = tictactoe.Empty
	that.WinningLine = nil
}

func (that *Game) ChangeMode(mode string) error {
	if err := ValidateMode(mode); err != nil {
		return err
	}

	that.Mode = mode
	that.Reset()

	return nil
}

func (that *Game) ChangeDifficulty(difficulty tictactoe.Difficulty) {
	that.Difficulty = difficulty
	that.Reset()
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusDraw
}

func (that *Game) IsPlaying() bool {
	return that.Status == StatusPlaying
}

func (that *Game) IsWithBot() bool {
	return that.Mode == ModePvC
}

func (that *Game) IsBotTurn() bool {
	return that.IsWithBot() && that.IsPlaying() && that.Turn == BotMark
}
