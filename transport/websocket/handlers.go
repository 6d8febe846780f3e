package websocket

import (
	"context"
	"errors"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/repository"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

var (
	errGameIDRequired = errors.New("game_id is required")
	errCellRequired   = errors.New("cell is required")
)

func (that *Server) handleNewGame(ctx context.Context, req *RequestPayload) (*entity.Game, error) {
	difficulty, err := parseDifficulty(req.Difficulty)
	if err != nil {
		return nil, err
	}

	return that.uGame.CreateGame(ctx, req.Mode, difficulty)
}

func (that *Server) handleGetGame(ctx context.Context, req *RequestPayload) (*entity.Game, error) {
	if req.GameID == "" {
		return nil, errGameIDRequired
	}

	return that.uGame.GetGame(ctx, req.GameID)
}

func (that *Server) handleGameTurn(ctx context.Context, req *RequestPayload) (*entity.Game, error) {
	if req.GameID == "" {
		return nil, errGameIDRequired
	}

	if req.Cell == nil {
		return nil, errCellRequired
	}

	return that.uGame.MakeTurn(ctx, req.GameID, *req.Cell)
}

// handleDeleteGame - replies with an empty payload on success.
func (that *Server) handleDeleteGame(ctx context.Context, req *RequestPayload) (*entity.Game, error) {
	if req.GameID == "" {
		return nil, errGameIDRequired
	}

	return nil, that.uGame.DeleteGame(ctx, req.GameID)
}

func (that *Server) handleResetGame(ctx context.Context, req *RequestPayload) (*entity.Game, error) {
	if req.GameID == "" {
		return nil, errGameIDRequired
	}

	return that.uGame.ResetGame(ctx, req.GameID)
}

func (that *Server) handleChangeMode(ctx context.Context, req *RequestPayload) (*entity.Game, error) {
	if req.GameID == "" {
		return nil, errGameIDRequired
	}

	return that.uGame.ChangeMode(ctx, req.GameID, req.Mode)
}

func (that *Server) handleChangeDifficulty(ctx context.Context, req *RequestPayload) (*entity.Game, error) {
	if req.GameID == "" {
		return nil, errGameIDRequired
	}

	difficulty, err := tictactoe.ParseDifficulty(req.Difficulty)
	if err != nil {
		return nil, err
	}

	return that.uGame.ChangeDifficulty(ctx, req.GameID, difficulty)
}

// parseDifficulty - empty means the server default.
func parseDifficulty(value string) (tictactoe.Difficulty, error) {
	if value == "" {
		return "", nil
	}
	return tictactoe.ParseDifficulty(value)
}

// errorText - client-facing text; unexpected failures are not leaked.
func errorText(err error) string {
	switch {
	case errors.Is(err, repository.ErrGameNotFound),
		errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, repository.ErrGameConflict),
		errors.Is(err, apperror.ErrUnknownGameMode),
		errors.Is(err, tictactoe.ErrUnknownDifficulty),
		errors.Is(err, errGameIDRequired),
		errors.Is(err, errCellRequired):
		return err.Error()
	default:
		return "internal error"
	}
}
