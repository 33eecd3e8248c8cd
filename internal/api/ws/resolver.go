package ws

import "draw-guess-be/internal/game"

// SessionResolver looks up live room sessions for incoming connections.
// Implemented by room.Manager.
type SessionResolver interface {
	Get(roomID string) (*game.Session, bool)
}
