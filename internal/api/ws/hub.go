package ws

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"draw-guess-be/internal/canvas"
	"draw-guess-be/internal/game"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

const sendBuffer = 64

// client is one subscribed connection. Writes go through a buffered channel
// drained by a single writer goroutine, so events reach every client in the
// exact order the room produced them.
type client struct {
	conn     *websocket.Conn
	send     chan []byte
	roomID   string
	playerID string // bound by the hello action; empty until then

	closeOnce sync.Once
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

func (c *client) writePump() {
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
	_ = c.conn.Close()
}

// Hub fans room events out to every subscriber of that room. It implements
// game.Broadcaster.
type Hub struct {
	mu       sync.RWMutex
	rooms    map[string]map[*client]struct{}
	resolver SessionResolver
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*client]struct{})}
}

// SetResolver wires the room lookup in after construction; the manager and
// the hub reference each other.
func (h *Hub) SetResolver(r SessionResolver) { h.resolver = r }

// Publish delivers ev to every subscriber of the room. A client that cannot
// keep up is dropped rather than allowed to stall the room's event order.
func (h *Hub) Publish(roomID string, ev game.Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		zap.S().Errorf("marshal event for room %s: %v", roomID, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.rooms[roomID] {
		select {
		case c.send <- payload:
		default:
			zap.S().Warnf("room %s: dropping slow subscriber", roomID)
			delete(h.rooms[roomID], c)
			c.close()
		}
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	if _, ok := h.rooms[c.roomID]; !ok {
		h.rooms[c.roomID] = make(map[*client]struct{})
	}
	h.rooms[c.roomID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if clients, ok := h.rooms[c.roomID]; ok {
		delete(clients, c)
		if len(clients) == 0 {
			delete(h.rooms, c.roomID)
		}
	}
	h.mu.Unlock()
	c.close()
}

// actionFrame is what clients send over the socket: a tagged command.
type actionFrame struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

// HandleWS upgrades /ws/rooms/:roomId and pumps the connection.
func (h *Hub) HandleWS(c *gin.Context) {
	roomID := c.Param("roomId")
	session, ok := h.resolver.Get(roomID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": game.ErrRoomNotFound.Code})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.S().Warnf("websocket upgrade failed for room %s: %v", roomID, err)
		return
	}

	cl := &client{
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		roomID: roomID,
	}
	h.register(cl)
	go cl.writePump()

	zap.S().Debugf("room %s: subscriber connected", roomID)

	defer func() {
		h.unregister(cl)
		if cl.playerID != "" {
			session.Disconnect(cl.playerID)
		}
	}()

	for {
		var frame actionFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.S().Debugf("room %s: read error: %v", roomID, err)
			}
			return
		}
		h.handleAction(session, cl, frame)
	}
}

func (h *Hub) handleAction(session *game.Session, cl *client, frame actionFrame) {
	switch frame.Action {
	case "hello":
		var data struct {
			PlayerID string `json:"playerId"`
		}
		if err := json.Unmarshal(frame.Data, &data); err != nil || data.PlayerID == "" {
			cl.sendError(errors.New("hello requires playerId"))
			return
		}
		if !session.HasPlayer(data.PlayerID) {
			cl.sendError(game.ErrPlayerNotFound)
			return
		}
		cl.playerID = data.PlayerID
		session.Reconnect(data.PlayerID)

	case "guess":
		var data struct {
			Guess string `json:"guess"`
		}
		if err := json.Unmarshal(frame.Data, &data); err != nil {
			cl.sendError(err)
			return
		}
		res, err := session.Guess(cl.playerID, data.Guess)
		if err != nil {
			cl.sendError(err)
			return
		}
		cl.sendJSON(gin.H{"type": "guess_result", "result": res})

	case "chat":
		var data struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(frame.Data, &data); err != nil {
			cl.sendError(err)
			return
		}
		if _, err := session.SendChat(cl.playerID, data.Message); err != nil {
			cl.sendError(err)
		}

	case "stroke", "erase", "fill", "clear":
		var op canvas.Op
		if len(frame.Data) > 0 {
			if err := json.Unmarshal(frame.Data, &op); err != nil {
				cl.sendError(err)
				return
			}
		}
		op.Tool = frame.Action
		if err := session.ApplyDraw(cl.playerID, op); err != nil {
			cl.sendError(err)
		}

	default:
		zap.S().Debugf("room %s: unknown action %q", cl.roomID, frame.Action)
	}
}

// sendError reports a command failure to the originating connection only;
// errors are never broadcast.
func (c *client) sendError(err error) {
	code := "bad_request"
	var gerr *game.Error
	if errors.As(err, &gerr) {
		code = gerr.Code
	}
	c.sendJSON(gin.H{"type": "error", "error": code, "message": err.Error()})
}

func (c *client) sendJSON(v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}
