package game

import "draw-guess-be/internal/canvas"

// Event names, matching the type strings the reference client switches on.
const (
	EventPlayerJoined     = "player_joined"
	EventPlayerLeft       = "player_left"
	EventGameStarted      = "game_started"
	EventGameStateUpdated = "game_state_updated"
	EventNewMessage       = "new_message"
	EventDrawingUpdated   = "drawing_updated"
	EventRoundEnded       = "round_ended"
	EventGameEnded        = "game_ended"
)

// Event is the closed union of everything a room can broadcast. Each variant
// carries only the fields relevant to it; the hub serializes the whole value,
// so payloads arrive flat beside the type tag.
type Event interface {
	isEvent()
}

type PlayerJoinedEvent struct {
	Type    string   `json:"type"`
	Players []Player `json:"players"`
}

type PlayerLeftEvent struct {
	Type    string   `json:"type"`
	Players []Player `json:"players"`
}

type GameStartedEvent struct {
	Type      string    `json:"type"`
	GameState GameState `json:"gameState"`
}

type GameStateUpdatedEvent struct {
	Type      string    `json:"type"`
	GameState GameState `json:"gameState"`
}

type NewMessageEvent struct {
	Type    string      `json:"type"`
	Message ChatMessage `json:"message"`
}

type DrawingUpdatedEvent struct {
	Type     string    `json:"type"`
	PlayerID string    `json:"playerId"`
	Op       canvas.Op `json:"op"`
}

type RoundEndedEvent struct {
	Type      string    `json:"type"`
	GameState GameState `json:"gameState"`
	Word      string    `json:"word"`
	Players   []Player  `json:"players"`
}

type GameEndedEvent struct {
	Type      string         `json:"type"`
	GameState GameState      `json:"gameState"`
	Rankings  []RankedPlayer `json:"rankings"`
}

func (PlayerJoinedEvent) isEvent()     {}
func (PlayerLeftEvent) isEvent()       {}
func (GameStartedEvent) isEvent()      {}
func (GameStateUpdatedEvent) isEvent() {}
func (NewMessageEvent) isEvent()       {}
func (DrawingUpdatedEvent) isEvent()   {}
func (RoundEndedEvent) isEvent()       {}
func (GameEndedEvent) isEvent()        {}

func newPlayerJoined(players []Player) PlayerJoinedEvent {
	return PlayerJoinedEvent{Type: EventPlayerJoined, Players: players}
}

func newPlayerLeft(players []Player) PlayerLeftEvent {
	return PlayerLeftEvent{Type: EventPlayerLeft, Players: players}
}

func newGameStarted(gs GameState) GameStartedEvent {
	return GameStartedEvent{Type: EventGameStarted, GameState: gs}
}

func newGameStateUpdated(gs GameState) GameStateUpdatedEvent {
	return GameStateUpdatedEvent{Type: EventGameStateUpdated, GameState: gs}
}

func newMessageEvent(msg ChatMessage) NewMessageEvent {
	return NewMessageEvent{Type: EventNewMessage, Message: msg}
}

func newDrawingUpdated(playerID string, op canvas.Op) DrawingUpdatedEvent {
	return DrawingUpdatedEvent{Type: EventDrawingUpdated, PlayerID: playerID, Op: op}
}

func newRoundEnded(gs GameState, word string, players []Player) RoundEndedEvent {
	return RoundEndedEvent{Type: EventRoundEnded, GameState: gs, Word: word, Players: players}
}

func newGameEnded(gs GameState, rankings []RankedPlayer) GameEndedEvent {
	return GameEndedEvent{Type: EventGameEnded, GameState: gs, Rankings: rankings}
}

// Broadcaster fans a room's events out to its subscribers, preserving the
// order they were produced in.
type Broadcaster interface {
	Publish(roomID string, ev Event)
}
