package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

const shutdownTimeout = 5 * time.Second

type uGame interface {
	CreateGame(ctx context.Context, mode string, difficulty tictactoe.Difficulty) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error

	ResetGame(ctx context.Context, gameID string) (*entity.Game, error)
	ChangeMode(ctx context.Context, gameID, mode string) (*entity.Game, error)
	ChangeDifficulty(ctx context.Context, gameID string, difficulty tictactoe.Difficulty) (*entity.Game, error)

	Evaluate(board tictactoe.Board) tictactoe.Outcome
	SuggestMove(board tictactoe.Board, difficulty tictactoe.Difficulty) (int, error)
}

type Server struct {
	logger *slog.Logger
	uGame  uGame
}

func New(logger *slog.Logger, uGame uGame) *Server {
	return &Server{
		logger: logger.With("component", "rest"),
		uGame:  uGame,
	}
}

// Router - all REST routes.
func (that *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)

	router.Get("/ping", pingHandler)

	router.Route("/games", func(r chi.Router) {
		r.Post("/", that.handleCreateGame)
		r.Get("/{id}", that.handleGetGame)
		r.Delete("/{id}", that.handleDeleteGame)
		r.Post("/{id}/turn", that.handleTurn)
		r.Post("/{id}/reset", that.handleReset)
		r.Put("/{id}/mode", that.handleChangeMode)
		r.Put("/{id}/difficulty", that.handleChangeDifficulty)
	})

	router.Post("/evaluate", that.handleEvaluate)
	router.Post("/move", that.handleSuggestMove)

	return router
}

// Start - serves until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down HTTP server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
