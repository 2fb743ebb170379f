package websocket

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError Event = "error"
	EventScore Event = "score"
	EventPong  Event = "pong"
)

// ScoreEvent is pushed to leaderboard subscribers whenever a new score
// lands on the quiz they watch.
type ScoreEvent struct {
	Event    Event  `json:"event"`
	Username string `json:"username"`
	QuizID   int    `json:"quizid"`
	Score    int    `json:"score"`
	MaxScore int    `json:"maxscore"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
