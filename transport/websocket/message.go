package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

const (
	actionGameNew        = "game:new"
	actionGameGet        = "game:get"
	actionGameTurn       = "game:turn"
	actionGameDelete     = "game:delete"
	actionGameReset      = "game:reset"
	actionGameMode       = "game:mode"
	actionGameDifficulty = "game:difficulty"
	actionError          = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// RequestPayload - fields a client may send; which ones matter depends on the action.
type RequestPayload struct {
	GameID     string `json:"game_id,omitempty"`
	Mode       string `json:"mode,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Cell       *int   `json:"cell,omitempty"`
}

type ResponsePayload struct {
	Game  *entity.Game `json:"game,omitempty"`
	Error string       `json:"error,omitempty"`
}

type response struct {
	Action  string          `json:"action"`
	Payload ResponsePayload `json:"payload"`
}
