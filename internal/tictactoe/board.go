package tictactoe

import (
	"errors"
	"fmt"
	"strings"
)

const (
	Empty Mark = ""
	X     Mark = "X"
	O     Mark = "O"

	BoardSize = 9
	Center    = 4
)

var ErrInvalidBoard = errors.New("invalid board")

// Mark - a player's symbol or an empty cell.
type Mark string

// Opponent - returns the other player's mark.
func (that Mark) Opponent() Mark {
	switch that {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

func (that Mark) IsPlayer() bool {
	return that == X || that == O
}

// Board - 3x3 grid in row-major order, index = row*3 + col.
type Board [BoardSize]Mark

// ParseBoard - builds a board from its cell values.
func ParseBoard(cells []string) (Board, error) {
	var board Board

	if len(cells) != BoardSize {
		return board, fmt.Errorf("%w: expected %d cells, got %d", ErrInvalidBoard, BoardSize, len(cells))
	}

	for i, cell := range cells {
		switch strings.ToUpper(strings.TrimSpace(cell)) {
		case "", "-":
			board[i] = Empty
		case string(X):
			board[i] = X
		case string(O):
			board[i] = O
		default:
			return board, fmt.Errorf("%w: cell %d has unknown value %q", ErrInvalidBoard, i, cell)
		}
	}

	return board, nil
}

// EmptyCells - indices of empty cells in ascending order.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == Empty {
			cells = append(cells, i)
		}
	}
	return cells
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == Empty {
			return false
		}
	}
	return true
}

func (that Board) Count(mark Mark) int {
	count := 0
	for _, cell := range that {
		if cell == mark {
			count++
		}
	}
	return count
}

func (that Board) String() string {
	var sb strings.Builder
	for i, cell := range that {
		if cell == Empty {
			sb.WriteByte('-')
		} else {
			sb.WriteString(string(cell))
		}
		if i%3 == 2 && i != BoardSize-1 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}
