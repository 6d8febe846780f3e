package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

const (
	shutdownTimeout = 5 * time.Second
	writeTimeout    = 10 * time.Second

	// maxMessageSize - largest client frame accepted; requests are a few short fields.
	maxMessageSize = 4 << 10

	anyOrigin = "*"
)

type uGame interface {
	CreateGame(ctx context.Context, mode string, difficulty tictactoe.Difficulty) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error

	ResetGame(ctx context.Context, gameID string) (*entity.Game, error)
	ChangeMode(ctx context.Context, gameID, mode string) (*entity.Game, error)
	ChangeDifficulty(ctx context.Context, gameID string, difficulty tictactoe.Difficulty) (*entity.Game, error)
}

type handlerFunc func(ctx context.Context, req *RequestPayload) (*entity.Game, error)

type Server struct {
	logger   *slog.Logger
	uGame    uGame
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

// New - allowedOrigins lists the browser origins that may connect; "*" allows any.
// With no origins configured only same-host pages are accepted.
func New(logger *slog.Logger, uGame uGame, allowedOrigins []string) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		uGame:  uGame,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionGameNew] = server.handleNewGame
	server.handlers[actionGameGet] = server.handleGetGame
	server.handlers[actionGameTurn] = server.handleGameTurn
	server.handlers[actionGameDelete] = server.handleDeleteGame
	server.handlers[actionGameReset] = server.handleResetGame
	server.handlers[actionGameMode] = server.handleChangeMode
	server.handlers[actionGameDifficulty] = server.handleChangeDifficulty

	return server
}

// Handler - the /ws endpoint.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.upgradeToWebSocket)

	return mux
}

// Start - starts WebSocket server and stops it when ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down WebSocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection and serves it until the client leaves.
func (that *Server) upgradeToWebSocket(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)

	log.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	if err = that.handleMessages(req.Context(), conn); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// checkOrigin - nil keeps gorilla's same-host check.
func checkOrigin(allowedOrigins []string) func(r *http.Request) bool {
	if len(allowedOrigins) == 0 {
		return nil
	}

	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[strings.TrimRight(origin, "/")] = struct{}{}
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}

		if _, ok := allowed[anyOrigin]; ok {
			return true
		}

		_, ok := allowed[origin]
		return ok
	}
}

// handleMessages - processes messages from the client one at a time.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Info("client closed connection")
				return nil
			}
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			if err = that.sendError(conn, actionError, "invalid message"); err != nil {
				return err
			}
			continue
		}

		if err = that.dispatch(ctx, conn, &message); err != nil {
			return err
		}
	}
}

// dispatch - runs the action handler and writes its reply.
func (that *Server) dispatch(ctx context.Context, conn *websocket.Conn, message *Message) error {
	log := that.logger.With("method", "dispatch", "action", message.Action)

	handler, ok := that.handlers[message.Action]
	if !ok {
		log.Warn("unknown action")
		return that.sendError(conn, message.Action, "unknown action")
	}

	var req RequestPayload
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, &req); err != nil {
			log.Warn("failed to unmarshal payload", "error", err)
			return that.sendError(conn, message.Action, "invalid payload")
		}
	}

	game, err := handler(ctx, &req)
	if err != nil {
		log.Info("action rejected", "error", err)
		return that.sendError(conn, message.Action, errorText(err))
	}

	return that.sendMessage(conn, message.Action, ResponsePayload{Game: game})
}

func (that *Server) sendMessage(conn *websocket.Conn, action string, payload ResponsePayload) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err := conn.WriteJSON(response{Action: action, Payload: payload}); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

func (that *Server) sendError(conn *websocket.Conn, action, message string) error {
	return that.sendMessage(conn, action, ResponsePayload{Error: message})
}
