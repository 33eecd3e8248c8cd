package game

import "time"

// Phase is one state of the per-room game state machine.
type Phase string

const (
	PhaseWaiting       Phase = "waiting"
	PhaseWordSelection Phase = "word_selection"
	PhaseDrawing       Phase = "drawing"
	PhaseRoundEnd      Phase = "round_end"
	PhaseGameEnd       Phase = "game_end"
)

// RoomType distinguishes invite-only rooms from matchmade ones.
type RoomType string

const (
	RoomPrivate RoomType = "private"
	RoomPublic  RoomType = "public"
)

// Player is the wire shape the reference client renders. Scores are
// monotonically non-decreasing within a game.
type Player struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Score       int    `json:"score"`
	IsDrawing   bool   `json:"isDrawing"`
	IsConnected bool   `json:"isConnected"`
	HasDrawn    bool   `json:"hasDrawn"`
}

// RankedPlayer is a Player plus its 1-based final ranking.
type RankedPlayer struct {
	Player
	Rank int `json:"rank"`
}

// GameState is the authoritative phase snapshot pushed to clients. Field names
// match the client's reducer. CurrentWord is empty for viewers who may not see
// the secret.
type GameState struct {
	CurrentPlayer string `json:"currentPlayer"`
	CurrentWord   string `json:"currentWord"`
	TimeLeft      int    `json:"timeLeft"`
	Round         int    `json:"round"`
	TotalRounds   int    `json:"totalRounds"`
	IsPlaying     bool   `json:"isPlaying"`
	Phase         Phase  `json:"phase"`
}

// Message classifications, shared between chat history and guess results.
const (
	ClassGuess   = "guess"
	ClassClose   = "close"
	ClassCorrect = "correct"
	ClassSystem  = "system"
)

// ChatMessage is one entry of a room's bounded chat/event log. Seq is a
// per-room monotonically increasing sequence number; it is never reused, even
// across reconnects.
type ChatMessage struct {
	ID         string    `json:"id"`
	Seq        int64     `json:"seq"`
	PlayerID   string    `json:"playerId"`
	PlayerName string    `json:"playerName"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
	Type       string    `json:"type"`
	IsCorrect  bool      `json:"isCorrect,omitempty"`
}

// GuessResult is returned synchronously to the guesser.
type GuessResult struct {
	Classification string `json:"classification"`
	Correct        bool   `json:"correct"`
	Points         int    `json:"points"`
}

// RoomInfo is the REST room snapshot: room metadata plus embedded players and
// game state.
type RoomInfo struct {
	ID        string    `json:"id"`
	Type      RoomType  `json:"type"`
	OwnerID   string    `json:"ownerId"`
	Players   []Player  `json:"players"`
	GameState GameState `json:"gameState"`
}
