package main

import (
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

type player struct {
	selector   *tictactoe.Selector
	difficulty tictactoe.Difficulty
}

// Stats - totals over a series of games.
type Stats struct {
	XWins int
	OWins int
	Draws int
}

func (that *Stats) Add(outcome tictactoe.Outcome) {
	switch {
	case outcome.IsDraw():
		that.Draws++
	case outcome.Winner == tictactoe.X:
		that.XWins++
	case outcome.Winner == tictactoe.O:
		that.OWins++
	}
}

// playGame - X moves first; alternates until the board is decided.
func playGame(players map[tictactoe.Mark]player) (tictactoe.Outcome, tictactoe.Board) {
	var board tictactoe.Board
	turn := tictactoe.X

	for {
		outcome := tictactoe.Evaluate(board)
		if outcome.IsTerminal() {
			return outcome, board
		}

		p := players[turn]
		board[p.selector.SelectMove(board, p.difficulty)] = turn
		turn = turn.Opponent()
	}
}
