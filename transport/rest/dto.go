package rest

type createGameRequest struct {
	Mode       string `json:"mode"`
	Difficulty string `json:"difficulty,omitempty"`
}

type turnRequest struct {
	Cell *int `json:"cell"`
}

type modeRequest struct {
	Mode string `json:"mode"`
}

type difficultyRequest struct {
	Difficulty string `json:"difficulty"`
}

type boardRequest struct {
	Board      []string `json:"board"`
	Difficulty string   `json:"difficulty,omitempty"`
}

type outcomeResponse struct {
	Result string `json:"result"`
	Winner string `json:"winner,omitempty"`
	Line   []int  `json:"line,omitempty"`
}

type moveResponse struct {
	Cell int `json:"cell"`
}

type errorResponse struct {
	Error string `json:"error"`
}
