package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"draw-guess-be/internal/api/ws"
	"draw-guess-be/internal/config"
	"draw-guess-be/internal/room"
	"draw-guess-be/internal/store"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := ws.NewHub()
	rm := room.NewManager(store.NewMemoryStore(), config.DefaultGame(), hub)
	hub.SetResolver(rm)
	t.Cleanup(rm.Close)

	return NewRouter(rm, hub)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func createRoom(t *testing.T, r *gin.Engine, name, typ string) (roomID, playerID string) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/rooms", gin.H{"playerName": name, "type": typ})
	if w.Code != http.StatusOK {
		t.Fatalf("create room: %d %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	roomID = body["id"].(string)
	playerID = body["player"].(map[string]any)["id"].(string)
	return roomID, playerID
}

func joinRoom(t *testing.T, r *gin.Engine, roomID, name string) (playerID string) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/rooms/"+roomID+"/join", gin.H{"playerName": name})
	if w.Code != http.StatusOK {
		t.Fatalf("join room: %d %s", w.Code, w.Body.String())
	}
	return decode(t, w)["player"].(map[string]any)["id"].(string)
}

func TestCreateAndGetRoom(t *testing.T) {
	r := newTestRouter(t)
	roomID, playerID := createRoom(t, r, "Ann", "private")

	w := doJSON(t, r, http.MethodGet, "/api/rooms/"+roomID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get room: %d", w.Code)
	}
	body := decode(t, w)
	if body["ownerId"] != playerID {
		t.Fatalf("ownerId = %v, want creator", body["ownerId"])
	}
	players := body["players"].([]any)
	if len(players) != 1 {
		t.Fatalf("players = %v", players)
	}
}

func TestUnknownRoomIs404(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/rooms/NOSUCH", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if got := decode(t, w)["error"]; got != "room_not_found" {
		t.Fatalf("error code = %v", got)
	}
}

func TestCreateRoomRequiresName(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/rooms", gin.H{"type": "private"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGameFlowOverREST(t *testing.T) {
	r := newTestRouter(t)
	roomID, owner := createRoom(t, r, "Ann", "private")
	guesser := joinRoom(t, r, roomID, "Bob")

	// Non-owner cannot start a private game.
	w := doJSON(t, r, http.MethodPost, "/api/rooms/"+roomID+"/start-private", gin.H{"playerId": guesser})
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-owner start: %d, want 403", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/rooms/"+roomID+"/start-private", gin.H{"playerId": owner})
	if w.Code != http.StatusOK {
		t.Fatalf("start: %d %s", w.Code, w.Body.String())
	}
	if got := decode(t, w)["phase"]; got != "word_selection" {
		t.Fatalf("phase = %v", got)
	}

	// Only the drawer sees the choices.
	w = doJSON(t, r, http.MethodGet, "/api/rooms/"+roomID+"/word-choices?playerId="+guesser, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("guesser word-choices: %d, want 403", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/api/rooms/"+roomID+"/word-choices?playerId="+owner, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("word-choices: %d %s", w.Code, w.Body.String())
	}
	choices := decode(t, w)["choices"].([]any)
	word := choices[0].(string)

	w = doJSON(t, r, http.MethodPost, "/api/rooms/"+roomID+"/select-word", gin.H{"playerId": owner, "word": word})
	if w.Code != http.StatusOK {
		t.Fatalf("select-word: %d %s", w.Code, w.Body.String())
	}

	// The guesser's game-state view hides the word; the drawer's shows it.
	w = doJSON(t, r, http.MethodGet, "/api/rooms/"+roomID+"/game-state?playerId="+guesser, nil)
	if got := decode(t, w)["currentWord"]; got != "" {
		t.Fatalf("guesser sees word: %v", got)
	}
	w = doJSON(t, r, http.MethodGet, "/api/rooms/"+roomID+"/game-state?playerId="+owner, nil)
	if got := decode(t, w)["currentWord"]; got != word {
		t.Fatalf("drawer word = %v, want %q", got, word)
	}

	// Correct guess scores 100.
	w = doJSON(t, r, http.MethodPost, "/api/rooms/"+roomID+"/guess", gin.H{"playerId": guesser, "guess": word})
	if w.Code != http.StatusOK {
		t.Fatalf("guess: %d %s", w.Code, w.Body.String())
	}
	res := decode(t, w)
	if res["correct"] != true || res["points"].(float64) != 100 {
		t.Fatalf("guess result = %v", res)
	}
}

func TestDrawingEndpoints(t *testing.T) {
	r := newTestRouter(t)
	roomID, owner := createRoom(t, r, "Ann", "private")
	joinRoom(t, r, roomID, "Bob")

	doJSON(t, r, http.MethodPost, "/api/rooms/"+roomID+"/start-private", gin.H{"playerId": owner})
	w := doJSON(t, r, http.MethodGet, "/api/rooms/"+roomID+"/word-choices?playerId="+owner, nil)
	word := decode(t, w)["choices"].([]any)[0].(string)
	doJSON(t, r, http.MethodPost, "/api/rooms/"+roomID+"/select-word", gin.H{"playerId": owner, "word": word})

	op := gin.H{
		"tool":   "stroke",
		"points": []gin.H{{"x": 10, "y": 10}, {"x": 40, "y": 40}},
		"color":  "#000000",
		"width":  4,
	}
	w = doJSON(t, r, http.MethodPost, "/api/rooms/"+roomID+"/drawing", gin.H{"playerId": owner, "op": op})
	if w.Code != http.StatusOK {
		t.Fatalf("drawing: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/rooms/"+roomID+"/drawing", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get drawing: %d", w.Code)
	}
	data := decode(t, w)["drawingData"].(string)
	if len(data) == 0 || data[:22] != "data:image/png;base64," {
		t.Fatalf("drawingData prefix = %.30s", data)
	}
}

func TestChatEndpoints(t *testing.T) {
	r := newTestRouter(t)
	roomID, owner := createRoom(t, r, "Ann", "private")

	w := doJSON(t, r, http.MethodPost, "/api/rooms/"+roomID+"/messages", gin.H{"playerId": owner, "message": "hello"})
	if w.Code != http.StatusOK {
		t.Fatalf("send message: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/rooms/"+roomID+"/messages", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get messages: %d", w.Code)
	}
	var msgs []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &msgs); err != nil {
		t.Fatalf("decode messages: %v", err)
	}
	if len(msgs) != 1 || msgs[0]["message"] != "hello" {
		t.Fatalf("messages = %v", msgs)
	}
}

func TestPublicJoinMatchmakes(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/rooms/public/join", gin.H{"playerName": "Ann"})
	if w.Code != http.StatusOK {
		t.Fatalf("public join: %d %s", w.Code, w.Body.String())
	}
	first := decode(t, w)["id"].(string)

	w = doJSON(t, r, http.MethodPost, "/api/rooms/public/join", gin.H{"playerName": "Bob"})
	if w.Code != http.StatusOK {
		t.Fatalf("public join: %d %s", w.Code, w.Body.String())
	}
	if got := decode(t, w)["id"].(string); got != first {
		t.Fatal("second player not matched into the open room")
	}
}
