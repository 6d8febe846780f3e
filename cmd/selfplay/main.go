// Command selfplay pits two difficulty tiers against each other using only the
// game core and reports the totals.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

func main() {
	xTier := flag.String("x", "hard", "difficulty of the X player (moves first)")
	oTier := flag.String("o", "hard", "difficulty of the O player")
	totalGames := flag.Int("games", 100, "number of games to play")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	verbose := flag.Bool("v", false, "log every finished game")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if err := run(logger, *xTier, *oTier, *totalGames, *seed); err != nil {
		logger.Error("self-play failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, xTier, oTier string, totalGames int, seed int64) error {
	xDifficulty, err := tictactoe.ParseDifficulty(xTier)
	if err != nil {
		return fmt.Errorf("invalid -x: %w", err)
	}

	oDifficulty, err := tictactoe.ParseDifficulty(oTier)
	if err != nil {
		return fmt.Errorf("invalid -o: %w", err)
	}

	if totalGames <= 0 {
		return fmt.Errorf("invalid -games: %d", totalGames)
	}

	rnd := rand.New(rand.NewSource(seed))
	players := map[tictactoe.Mark]player{
		tictactoe.X: {selector: tictactoe.NewSelector(tictactoe.X, rnd), difficulty: xDifficulty},
		tictactoe.O: {selector: tictactoe.NewSelector(tictactoe.O, rnd), difficulty: oDifficulty},
	}

	var stats Stats
	for g := 0; g < totalGames; g++ {
		outcome, board := playGame(players)
		stats.Add(outcome)

		logger.Debug("game finished", "game", g+1, "result", outcome.Result.String(), "winner", outcome.Winner, "board", board.String())
	}

	logger.Info("self-play complete",
		"x", xDifficulty, "o", oDifficulty, "games", totalGames, "seed", seed,
		"xWins", stats.XWins, "oWins", stats.OWins, "draws", stats.Draws)

	return nil
}
