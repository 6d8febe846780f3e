// Tic-tac-toe game server: serves hot-seat and against-the-bot games over REST
// and WebSocket, keeping live games in Redis.
package main

import (
	"fmt"
	"log/slog"
	"os"

	app "github.com/rocketscienceinc/tictactoe-ai/internal"
	"github.com/rocketscienceinc/tictactoe-ai/internal/config"
)

const (
	configPathEnv     = "CONFIG_PATH"
	defaultConfigPath = "config.yml"
)

func main() {
	conf := config.MustLoad(configPath())
	logger := newLogger(conf.LogLevel)

	logger.Info("starting tictactoe server", "http-port", conf.HTTPPort, "socket-port", conf.SocketPort)

	if err := app.RunApp(logger, conf); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// configPath - CONFIG_PATH, or config.yml in the working directory.
func configPath() string {
	if path := os.Getenv(configPathEnv); path != "" {
		return path
	}
	return defaultConfigPath
}

func newLogger(level string) *slog.Logger {
	var slogLevel slog.Level
	if err := slogLevel.UnmarshalText([]byte(level)); err != nil {
		fmt.Fprintf(os.Stderr, "unknown log level %q, using info\n", level)
		slogLevel = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slogLevel}))
}
