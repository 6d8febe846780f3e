package websocket

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/repository"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-ai/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-ai/testing/fake"
)

func newTestServer(t *testing.T, allowedOrigins []string) string {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := fake.NewGameRepository()
	manager := usecase.NewGameManager(logger, service.NewGameService(repo), service.NewBotService(nil), tictactoe.Medium)

	srv := httptest.NewServer(New(logger, manager, allowedOrigins).Handler())
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(t *testing.T) *websocket.Conn {
	t.Helper()

	conn, resp, err := websocket.DefaultDialer.Dial(newTestServer(t, nil), nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

func send(t *testing.T, conn *websocket.Conn, action string, payload RequestPayload) response {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(Message{Action: action, Payload: raw}))

	var resp response
	require.NoError(t, conn.ReadJSON(&resp))
	require.Equal(t, action, resp.Action)

	return resp
}

func intPtr(v int) *int {
	return &v
}

func TestGameActions(t *testing.T) {
	conn := dial(t)

	// Given: a new game against the bot with the default difficulty
	resp := send(t, conn, actionGameNew, RequestPayload{Mode: entity.ModePvC})
	require.Empty(t, resp.Payload.Error)
	require.NotNil(t, resp.Payload.Game)
	game := resp.Payload.Game
	assert.Equal(t, tictactoe.Medium, game.Difficulty)

	// When: the human takes the center
	resp = send(t, conn, actionGameTurn, RequestPayload{GameID: game.ID, Cell: intPtr(4)})

	// Then: the bot has replied and the human is to move again
	require.Empty(t, resp.Payload.Error)
	assert.Equal(t, 1, resp.Payload.Game.Board.Count(tictactoe.O))
	assert.Equal(t, tictactoe.X, resp.Payload.Game.Turn)

	// When: the game is fetched
	resp = send(t, conn, actionGameGet, RequestPayload{GameID: game.ID})

	// Then: the stored state is returned
	require.Empty(t, resp.Payload.Error)
	assert.Equal(t, tictactoe.X, resp.Payload.Game.Board[4])

	// When: the mode and difficulty change
	resp = send(t, conn, actionGameMode, RequestPayload{GameID: game.ID, Mode: entity.ModePvP})
	require.Empty(t, resp.Payload.Error)
	assert.Equal(t, entity.ModePvP, resp.Payload.Game.Mode)

	resp = send(t, conn, actionGameDifficulty, RequestPayload{GameID: game.ID, Difficulty: "hard"})
	require.Empty(t, resp.Payload.Error)

	// Then: the board starts over
	assert.Equal(t, tictactoe.Hard, resp.Payload.Game.Difficulty)
	assert.Equal(t, tictactoe.Board{}, resp.Payload.Game.Board)

	// When: a hot-seat move is made and the game reset
	resp = send(t, conn, actionGameTurn, RequestPayload{GameID: game.ID, Cell: intPtr(0)})
	require.Empty(t, resp.Payload.Error)
	assert.Equal(t, tictactoe.O, resp.Payload.Game.Turn)

	resp = send(t, conn, actionGameReset, RequestPayload{GameID: game.ID})

	// Then: X moves first on an empty board
	require.Empty(t, resp.Payload.Error)
	assert.Equal(t, tictactoe.X, resp.Payload.Game.Turn)
	assert.Equal(t, tictactoe.Board{}, resp.Payload.Game.Board)
}

func TestActionErrors(t *testing.T) {
	conn := dial(t)

	t.Run("Unknown action", func(t *testing.T) {
		resp := send(t, conn, "game:leave", RequestPayload{})
		assert.Equal(t, "unknown action", resp.Payload.Error)
	})

	t.Run("Missing game id", func(t *testing.T) {
		resp := send(t, conn, actionGameGet, RequestPayload{})
		assert.Equal(t, errGameIDRequired.Error(), resp.Payload.Error)
	})

	t.Run("Unknown game", func(t *testing.T) {
		resp := send(t, conn, actionGameGet, RequestPayload{GameID: "missing"})
		assert.Contains(t, resp.Payload.Error, repository.ErrGameNotFound.Error())
		assert.Nil(t, resp.Payload.Game)
	})

	t.Run("Missing cell", func(t *testing.T) {
		resp := send(t, conn, actionGameNew, RequestPayload{Mode: entity.ModePvP})
		require.NotNil(t, resp.Payload.Game)

		resp = send(t, conn, actionGameTurn, RequestPayload{GameID: resp.Payload.Game.ID})
		assert.Equal(t, errCellRequired.Error(), resp.Payload.Error)
	})

	t.Run("Occupied cell", func(t *testing.T) {
		resp := send(t, conn, actionGameNew, RequestPayload{Mode: entity.ModePvP})
		id := resp.Payload.Game.ID

		send(t, conn, actionGameTurn, RequestPayload{GameID: id, Cell: intPtr(0)})
		resp = send(t, conn, actionGameTurn, RequestPayload{GameID: id, Cell: intPtr(0)})

		assert.Contains(t, resp.Payload.Error, "occupied")
	})

	t.Run("Delete game", func(t *testing.T) {
		resp := send(t, conn, actionGameNew, RequestPayload{Mode: entity.ModePvP})
		id := resp.Payload.Game.ID

		resp = send(t, conn, actionGameDelete, RequestPayload{GameID: id})
		assert.Empty(t, resp.Payload.Error)
		assert.Nil(t, resp.Payload.Game)

		resp = send(t, conn, actionGameGet, RequestPayload{GameID: id})
		assert.Contains(t, resp.Payload.Error, repository.ErrGameNotFound.Error())

		resp = send(t, conn, actionGameDelete, RequestPayload{GameID: id})
		assert.Contains(t, resp.Payload.Error, repository.ErrGameNotFound.Error())
	})

	t.Run("Invalid message", func(t *testing.T) {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{")))

		var resp response
		require.NoError(t, conn.ReadJSON(&resp))
		assert.Equal(t, actionError, resp.Action)
		assert.Equal(t, "invalid message", resp.Payload.Error)
	})
}

func TestMessageSizeLimit(t *testing.T) {
	conn := dial(t)

	// Given: a frame larger than the read limit
	big := `{"action":"game:get","payload":{"game_id":"` + strings.Repeat("a", maxMessageSize) + `"}}`

	// When: it is sent
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(big)))

	// Then: the server closes the connection instead of replying
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
}

func TestCheckOrigin(t *testing.T) {
	dialWithOrigin := func(t *testing.T, url, origin string) (*websocket.Conn, int, error) {
		t.Helper()

		header := http.Header{}
		if origin != "" {
			header.Set("Origin", origin)
		}

		conn, resp, err := websocket.DefaultDialer.Dial(url, header)
		status := 0
		if resp != nil {
			status = resp.StatusCode
			if resp.Body != nil {
				resp.Body.Close()
			}
		}
		if conn != nil {
			t.Cleanup(func() { conn.Close() })
		}

		return conn, status, err
	}

	t.Run("Listed origin is accepted", func(t *testing.T) {
		url := newTestServer(t, []string{"https://play.example.com/"})

		_, status, err := dialWithOrigin(t, url, "https://play.example.com")

		require.NoError(t, err)
		assert.Equal(t, http.StatusSwitchingProtocols, status)
	})

	t.Run("Other origin is refused", func(t *testing.T) {
		url := newTestServer(t, []string{"https://play.example.com"})

		_, status, err := dialWithOrigin(t, url, "https://evil.example.com")

		require.ErrorIs(t, err, websocket.ErrBadHandshake)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("Wildcard accepts any origin", func(t *testing.T) {
		url := newTestServer(t, []string{"*"})

		_, _, err := dialWithOrigin(t, url, "https://anywhere.example.com")

		require.NoError(t, err)
	})

	t.Run("Cross-site page is refused by default", func(t *testing.T) {
		url := newTestServer(t, nil)

		_, status, err := dialWithOrigin(t, url, "https://evil.example.com")

		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("Clients without an origin are accepted", func(t *testing.T) {
		url := newTestServer(t, []string{"https://play.example.com"})

		_, _, err := dialWithOrigin(t, url, "")

		require.NoError(t, err)
	})
}
