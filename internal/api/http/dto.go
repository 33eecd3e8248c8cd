package http

import (
	"draw-guess-be/internal/canvas"
	"draw-guess-be/internal/game"
)

// CreateRoomRequest represents the payload for POST /api/rooms.
type CreateRoomRequest struct {
	PlayerName string `json:"playerName"`
	Type       string `json:"type"`
}

// JoinRoomRequest represents the payload for joining an existing room.
type JoinRoomRequest struct {
	PlayerName string `json:"playerName"`
}

// PlayerRequest carries the acting player for simple commands.
type PlayerRequest struct {
	PlayerID string `json:"playerId"`
}

// SelectWordRequest is the drawer's word choice.
type SelectWordRequest struct {
	PlayerID string `json:"playerId"`
	Word     string `json:"word"`
}

// GuessRequest is a submitted guess.
type GuessRequest struct {
	PlayerID string `json:"playerId"`
	Guess    string `json:"guess"`
}

// MessageRequest is a plain chat message.
type MessageRequest struct {
	PlayerID string `json:"playerId"`
	Message  string `json:"message"`
}

// ThumbsRequest is a player-to-player reaction.
type ThumbsRequest struct {
	PlayerID       string `json:"playerId"`
	TargetPlayerID string `json:"targetPlayerId"`
	Thumbs         bool   `json:"thumbs"`
}

// EndRoundRequest mirrors the reference client, which sends the word it
// believes is current; the server's own word stays authoritative.
type EndRoundRequest struct {
	PlayerID string `json:"playerId"`
	Word     string `json:"word"`
}

// DrawingRequest is one structured drawing op from the drawer.
type DrawingRequest struct {
	PlayerID string    `json:"playerId"`
	Op       canvas.Op `json:"op"`
}

// roomResponse is the REST room snapshot, optionally carrying the seat the
// request just created.
type roomResponse struct {
	game.RoomInfo
	Player *game.Player `json:"player,omitempty"`
}
