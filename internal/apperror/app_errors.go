package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell index")
	ErrUnknownGameMode  = errors.New("unknown game mode")
	ErrUnreachableBoard = errors.New("board cannot be reached by alternating turns")
	ErrNotBotTurn       = errors.New("it's not the bot's turn")
)
