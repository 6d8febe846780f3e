package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/repository"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

// maxBodyBytes - every request body here is a handful of short fields.
const maxBodyBytes = 4 << 10

var errMissingCell = errors.New("cell is required")

func (that *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if !decode(w, r, &req) {
		return
	}

	difficulty, err := parseDifficulty(req.Difficulty)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	game, err := that.uGame.CreateGame(r.Context(), req.Mode, difficulty)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, game)
}

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if !decode(w, r, &req) {
		return
	}

	if req.Cell == nil {
		that.writeError(w, r, fmt.Errorf("%w: %w", apperror.ErrInvalidCell, errMissingCell))
		return
	}

	game, err := that.uGame.MakeTurn(r.Context(), chi.URLParam(r, "id"), *req.Cell)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.uGame.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.ResetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *Server) handleChangeMode(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if !decode(w, r, &req) {
		return
	}

	game, err := that.uGame.ChangeMode(r.Context(), chi.URLParam(r, "id"), req.Mode)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *Server) handleChangeDifficulty(w http.ResponseWriter, r *http.Request) {
	var req difficultyRequest
	if !decode(w, r, &req) {
		return
	}

	difficulty, err := tictactoe.ParseDifficulty(req.Difficulty)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	game, err := that.uGame.ChangeDifficulty(r.Context(), chi.URLParam(r, "id"), difficulty)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req boardRequest
	if !decode(w, r, &req) {
		return
	}

	board, err := tictactoe.ParseBoard(req.Board)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	outcome := that.uGame.Evaluate(board)

	resp := outcomeResponse{Result: outcome.Result.String()}
	if outcome.IsWin() {
		resp.Winner = string(outcome.Winner)
		resp.Line = outcome.Line[:]
	}

	writeJSON(w, http.StatusOK, resp)
}

func (that *Server) handleSuggestMove(w http.ResponseWriter, r *http.Request) {
	var req boardRequest
	if !decode(w, r, &req) {
		return
	}

	board, err := tictactoe.ParseBoard(req.Board)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	difficulty, err := parseDifficulty(req.Difficulty)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	cell, err := that.uGame.SuggestMove(board, difficulty)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, moveResponse{Cell: cell})
}

// parseDifficulty - empty means the server default.
func parseDifficulty(value string) (tictactoe.Difficulty, error) {
	if value == "" {
		return "", nil
	}
	return tictactoe.ParseDifficulty(value)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payload"})
		return false
	}
	return true
}

func (that *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFromError(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, status, errorResponse{Error: http.StatusText(status)})
		return
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// StatusFromError - maps domain errors to HTTP status codes.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, repository.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrUnknownGameMode),
		errors.Is(err, apperror.ErrUnreachableBoard),
		errors.Is(err, tictactoe.ErrInvalidBoard),
		errors.Is(err, tictactoe.ErrUnknownDifficulty):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, repository.ErrGameConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
