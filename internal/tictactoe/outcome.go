package tictactoe

type Result int

const (
	ResultNone Result = iota
	ResultWin
	ResultDraw
)

func (that Result) String() string {
	switch that {
	case ResultWin:
		return "win"
	case ResultDraw:
		return "draw"
	default:
		return "none"
	}
}

// Line - three cell indices which end the game when marked identically.
type Line [3]int

// WinningLines - rows, then columns, then diagonals. Evaluate relies on this order.
var WinningLines = [8]Line{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Outcome - result of evaluating a board. Winner and Line are set only for a win.
type Outcome struct {
	Result Result
	Winner Mark
	Line   Line
}

func (that Outcome) IsWin() bool {
	return that.Result == ResultWin
}

func (that Outcome) IsDraw() bool {
	return that.Result == ResultDraw
}

func (that Outcome) IsTerminal() bool {
	return that.Result != ResultNone
}

// Evaluate - determines whether the board is won, drawn or still playing.
// The first completed line in WinningLines order is reported.
func Evaluate(board Board) Outcome {
	for _, line := range WinningLines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a != Empty && a == b && b == c {
			return Outcome{Result: ResultWin, Winner: a, Line: line}
		}
	}

	if board.IsFull() {
		return Outcome{Result: ResultDraw}
	}

	return Outcome{Result: ResultNone}
}
