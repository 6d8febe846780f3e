package tictactoe

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Difficulty - selects which move strategy the AI uses.
type Difficulty string

func ParseDifficulty(value string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(value))); d {
	case Easy, Medium, Hard:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, value)
	}
}

// RandomSource - anything able to pick an int in [0, n). *rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

type globalSource struct{}

func (globalSource) Intn(n int) int {
	return rand.Intn(n) //nolint: gosec // move choice, not security sensitive
}

// Selector - picks the AI's move for a board. It keeps no state between calls
// apart from the random source.
type Selector struct {
	mark Mark
	rnd  RandomSource
}

// NewSelector - creates a selector playing with the given mark. A nil source
// falls back to the package-level math/rand functions.
func NewSelector(mark Mark, rnd RandomSource) *Selector {
	if !mark.IsPlayer() {
		panic(fmt.Sprintf("tictactoe: selector mark must be X or O, got %q", mark))
	}

	if rnd == nil {
		rnd = globalSource{}
	}

	return &Selector{
		mark: mark,
		rnd:  rnd,
	}
}

func (that *Selector) Mark() Mark {
	return that.mark
}

// SelectMove - returns the index of the cell the AI plays.
// The board must have an empty cell and no outcome yet; calling it otherwise panics.
func (that *Selector) SelectMove(board Board, difficulty Difficulty) int {
	if Evaluate(board).IsTerminal() {
		panic(fmt.Sprintf("tictactoe: SelectMove called on finished board %s", board))
	}

	switch difficulty {
	case Medium:
		return that.heuristicMove(board)
	case Hard:
		return that.bestMove(board)
	default:
		return that.randomMove(board)
	}
}

func (that *Selector) randomMove(board Board) int {
	cells := board.EmptyCells()
	return cells[that.rnd.Intn(len(cells))]
}

// heuristicMove - win now, else block, else center, else random.
func (that *Selector) heuristicMove(board Board) int {
	if cell, ok := winningCell(board, that.mark); ok {
		return cell
	}

	if cell, ok := winningCell(board, that.mark.Opponent()); ok {
		return cell
	}

	if board[Center] == Empty {
		return Center
	}

	return that.randomMove(board)
}

// winningCell - first empty cell where mark completes a line.
func winningCell(board Board, mark Mark) (int, bool) {
	for _, cell := range board.EmptyCells() {
		next := board
		next[cell] = mark
		if outcome := Evaluate(next); outcome.IsWin() && outcome.Winner == mark {
			return cell, true
		}
	}
	return -1, false
}

// bestMove - exhaustive minimax; ties go to the lowest index.
func (that *Selector) bestMove(board Board) int {
	bestScore := -1000
	bestCell := -1

	for _, cell := range board.EmptyCells() {
		next := board
		next[cell] = that.mark

		if score := that.minimax(next, 0, false); score > bestScore {
			bestScore = score
			bestCell = cell
		}
	}

	return bestCell
}

// minimax - scores a position for the selector's mark. Faster wins and slower
// losses score higher through depth.
func (that *Selector) minimax(board Board, depth int, maximizing bool) int {
	outcome := Evaluate(board)
	switch {
	case outcome.IsWin() && outcome.Winner == that.mark:
		return 10 - depth
	case outcome.IsWin():
		return depth - 10
	case outcome.IsDraw():
		return 0
	}

	if maximizing {
		best := -1000
		for _, cell := range board.EmptyCells() {
			next := board
			next[cell] = that.mark
			best = max(best, that.minimax(next, depth+1, false))
		}
		return best
	}

	best := 1000
	for _, cell := range board.EmptyCells() {
		next := board
		next[cell] = that.mark.Opponent()
		best = min(best, that.minimax(next, depth+1, true))
	}
	return best
}
