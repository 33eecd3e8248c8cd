package http

import (
	"errors"
	"net/http"

	"draw-guess-be/internal/game"
	"draw-guess-be/internal/room"

	"github.com/gin-gonic/gin"
)

// fail maps a command error onto a status code and a stable error code the
// client turns into a message.
func fail(c *gin.Context, err error) {
	status := http.StatusBadRequest
	var gerr *game.Error
	if errors.As(err, &gerr) {
		switch gerr {
		case game.ErrRoomNotFound, game.ErrPlayerNotFound:
			status = http.StatusNotFound
		case game.ErrRoomFull, game.ErrNameTaken, game.ErrInvalidPhase:
			status = http.StatusConflict
		case game.ErrNotYourTurn, game.ErrNotOwner:
			status = http.StatusForbidden
		case game.ErrRoomClosed:
			status = http.StatusGone
		}
		c.JSON(status, gin.H{"error": gerr.Code, "message": gerr.Message})
		return
	}
	c.JSON(status, gin.H{"error": "bad_request", "message": err.Error()})
}

func getRoom(c *gin.Context, rm *room.Manager) (*game.Session, bool) {
	s, ok := rm.Get(c.Param("roomId"))
	if !ok {
		fail(c, game.ErrRoomNotFound)
	}
	return s, ok
}

// @Summary Create a room
// @Description Create a private or public room with the creator seated as owner
// @Tags Room
// @Accept json
// @Produce json
// @Param request body http.CreateRoomRequest true "Creator info"
// @Success 200 {object} map[string]interface{}
// @Router /api/rooms [post]
func CreateRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRoomRequest
		if err := c.BindJSON(&req); err != nil || req.PlayerName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "playerName required"})
			return
		}
		typ := game.RoomPrivate
		if req.Type == string(game.RoomPublic) {
			typ = game.RoomPublic
		}
		s, player, err := rm.CreateRoom(req.PlayerName, typ)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, roomResponse{RoomInfo: s.Info(player.ID), Player: &player})
	}
}

// @Summary Get a room snapshot
// @Tags Room
// @Produce json
// @Param roomId path string true "Room code"
// @Success 200 {object} map[string]interface{}
// @Router /api/rooms/{roomId} [get]
func GetRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := getRoom(c, rm)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, roomResponse{RoomInfo: s.Info(c.Query("playerId"))})
	}
}

// @Summary Join a public room
// @Description Seats the player in an open public room, creating one if needed
// @Tags Room
// @Accept json
// @Produce json
// @Param request body http.JoinRoomRequest true "Player info"
// @Success 200 {object} map[string]interface{}
// @Router /api/rooms/public/join [post]
func JoinPublicHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req JoinRoomRequest
		if err := c.BindJSON(&req); err != nil || req.PlayerName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "playerName required"})
			return
		}
		s, player, err := rm.JoinPublic(req.PlayerName)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, roomResponse{RoomInfo: s.Info(player.ID), Player: &player})
	}
}

// @Summary Join a room by code
// @Tags Room
// @Accept json
// @Produce json
// @Param roomId path string true "Room code"
// @Param request body http.JoinRoomRequest true "Player info"
// @Success 200 {object} map[string]interface{}
// @Router /api/rooms/{roomId}/join [post]
func JoinRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req JoinRoomRequest
		if err := c.BindJSON(&req); err != nil || req.PlayerName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "playerName required"})
			return
		}
		s, player, err := rm.Join(c.Param("roomId"), req.PlayerName)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"player": player, "room": s.Info(player.ID)})
	}
}

// @Summary Leave a room
// @Tags Room
// @Accept json
// @Produce json
// @Param roomId path string true "Room code"
// @Param request body http.PlayerRequest true "Player info"
// @Success 200 {object} map[string]interface{}
// @Router /api/rooms/{roomId}/leave [post]
func LeaveRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlayerRequest
		if err := c.BindJSON(&req); err != nil || req.PlayerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "playerId required"})
			return
		}
		s, ok := getRoom(c, rm)
		if !ok {
			return
		}
		if err := s.Leave(req.PlayerID); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// @Summary List players
// @Tags Room
// @Produce json
// @Param roomId path string true "Room code"
// @Success 200 {array} game.Player
// @Router /api/rooms/{roomId}/players [get]
func GetPlayersHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := getRoom(c, rm)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, s.Players())
	}
}

// @Summary Get chat history
// @Tags Chat
// @Produce json
// @Param roomId path string true "Room code"
// @Success 200 {array} game.ChatMessage
// @Router /api/rooms/{roomId}/messages [get]
func GetMessagesHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := getRoom(c, rm)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, s.Messages())
	}
}

// @Summary Send a chat message
// @Tags Chat
// @Accept json
// @Produce json
// @Param roomId path string true "Room code"
// @Param request body http.MessageRequest true "Message"
// @Success 200 {object} game.ChatMessage
// @Router /api/rooms/{roomId}/messages [post]
func SendMessageHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MessageRequest
		if err := c.BindJSON(&req); err != nil || req.PlayerID == "" || req.Message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "playerId and message required"})
			return
		}
		s, ok := getRoom(c, rm)
		if !ok {
			return
		}
		msg, err := s.SendChat(req.PlayerID, req.Message)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, msg)
	}
}

// @Summary Get the authoritative game state
// @Tags Game
// @Produce json
// @Param roomId path string true "Room code"
// @Param playerId query string false "Viewer; the secret word is drawer-only"
// @Success 200 {object} game.GameState
// @Router /api/rooms/{roomId}/game-state [get]
func GetGameStateHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := getRoom(c, rm)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, s.State(c.Query("playerId")))
	}
}

// @Summary Start a public game
// @Tags Game
// @Accept json
// @Produce json
// @Param roomId path string true "Room code"
// @Param request body http.PlayerRequest true "Player info"
// @Success 200 {object} game.GameState
// @Router /api/rooms/{roomId}/start [post]
func StartGameHandler(rm *room.Manager) gin.HandlerFunc {
	return startHandler(rm, false)
}

// @Summary Start a private game (owner only)
// @Tags Game
// @Accept json
// @Produce json
// @Param roomId path string true "Room code"
// @Param request body http.PlayerRequest true "Player info"
// @Success 200 {object} game.GameState
// @Router /api/rooms/{roomId}/start-private [post]
func StartPrivateGameHandler(rm *room.Manager) gin.HandlerFunc {
	return startHandler(rm, true)
}

func startHandler(rm *room.Manager, private bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlayerRequest
		if err := c.BindJSON(&req); err != nil || req.PlayerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "playerId required"})
			return
		}
		s, ok := getRoom(c, rm)
		if !ok {
			return
		}
		gs, err := s.Start(req.PlayerID, private)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gs)
	}
}

// @Summary Get word choices (drawer only)
// @Tags Game
// @Produce json
// @Param roomId path string true "Room code"
// @Param playerId query string true "Drawer id"
// @Success 200 {object} map[string]interface{}
// @Router /api/rooms/{roomId}/word-choices [get]
func GetWordChoicesHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := getRoom(c, rm)
		if !ok {
			return
		}
		choices, err := s.WordChoices(c.Query("playerId"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"choices": choices})
	}
}

// @Summary Select the word and start drawing
// @Tags Game
// @Accept json
// @Produce json
// @Param roomId path string true "Room code"
// @Param request body http.SelectWordRequest true "Word choice"
// @Success 200 {object} game.GameState
// @Router /api/rooms/{roomId}/select-word [post]
func SelectWordHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SelectWordRequest
		if err := c.BindJSON(&req); err != nil || req.PlayerID == "" || req.Word == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "playerId and word required"})
			return
		}
		s, ok := getRoom(c, rm)
		if !ok {
			return
		}
		gs, err := s.SelectWord(req.PlayerID, req.Word)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gs)
	}
}

// @Summary Submit a guess
// @Tags Game
// @Accept json
// @Produce json
// @Param roomId path string true "Room code"
// @Param request body http.GuessRequest true "Guess"
// @Success 200 {object} game.GuessResult
// @Router /api/rooms/{roomId}/guess [post]
func SubmitGuessHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GuessRequest
		if err := c.BindJSON(&req); err != nil || req.PlayerID == "" || req.Guess == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "playerId and guess required"})
			return
		}
		s, ok := getRoom(c, rm)
		if !ok {
			return
		}
		res, err := s.Guess(req.PlayerID, req.Guess)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// @Summary Like the current drawing
// @Tags Game
// @Accept json
// @Produce json
// @Param roomId path string true "Room code"
// @Param request body http.PlayerRequest true "Player info"
// @Success 200 {object} map[string]interface{}
// @Router /api/rooms/{roomId}/like [post]
func LikeDrawingHandler(rm *room.Manager) gin.HandlerFunc {
	return reactionHandler(rm, true)
}

// @Summary Dislike the current drawing
// @Tags Game
// @Accept json
// @Produce json
// @Param roomId path string true "Room code"
// @Param request body http.PlayerRequest true "Player info"
// @Success 200 {object} map[string]interface{}
// @Router /api/rooms/{roomId}/dislike [post]
func DislikeDrawingHandler(rm *room.Manager) gin.HandlerFunc {
	return reactionHandler(rm, false)
}

func reactionHandler(rm *room.Manager, like bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlayerRequest
		if err := c.BindJSON(&req); err != nil || req.PlayerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "playerId required"})
			return
		}
		s, ok := getRoom(c, rm)
		if !ok {
			return
		}
		var err error
		if like {
			err = s.LikeDrawing(req.PlayerID)
		} else {
			err = s.DislikeDrawing(req.PlayerID)
		}
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// @Summary Give a player a thumbs up or down
// @Tags Game
// @Accept json
// @Produce json
// @Param roomId path string true "Room code"
// @Param request body http.ThumbsRequest true "Reaction"
// @Success 200 {object} game.ChatMessage
// @Router /api/rooms/{roomId}/thumbs [post]
func ThumbsHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ThumbsRequest
		if err := c.BindJSON(&req); err != nil || req.PlayerID == "" || req.TargetPlayerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "playerId and targetPlayerId required"})
			return
		}
		s, ok := getRoom(c, rm)
		if !ok {
			return
		}
		msg, err := s.Thumbs(req.PlayerID, req.TargetPlayerID, req.Thumbs)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, msg)
	}
}

// @Summary End the current round early
// @Tags Game
// @Accept json
// @Produce json
// @Param roomId path string true "Room code"
// @Success 200 {object} game.GameState
// @Router /api/rooms/{roomId}/end-round [post]
func EndRoundHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EndRoundRequest
		_ = c.BindJSON(&req)
		s, ok := getRoom(c, rm)
		if !ok {
			return
		}
		gs, err := s.EndRound(req.PlayerID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gs)
	}
}

// @Summary Advance to the next drawer
// @Tags Game
// @Produce json
// @Param roomId path string true "Room code"
// @Success 200 {object} map[string]interface{}
// @Router /api/rooms/{roomId}/next-drawer [post]
func NextDrawerHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := getRoom(c, rm)
		if !ok {
			return
		}
		next, err := s.NextDrawer()
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"nextDrawer": next})
	}
}

// @Summary End the game and compute final rankings
// @Tags Game
// @Produce json
// @Param roomId path string true "Room code"
// @Success 200 {object} map[string]interface{}
// @Router /api/rooms/{roomId}/end-game [post]
func EndGameHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := getRoom(c, rm)
		if !ok {
			return
		}
		rankings, err := s.EndGame()
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"topPlayers": rankings})
	}
}

// @Summary Restart after game end
// @Tags Game
// @Produce json
// @Param roomId path string true "Room code"
// @Success 200 {object} game.GameState
// @Router /api/rooms/{roomId}/restart [post]
func RestartGameHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := getRoom(c, rm)
		if !ok {
			return
		}
		gs, err := s.Restart()
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gs)
	}
}

// @Summary Apply a drawing op (drawer only)
// @Tags Drawing
// @Accept json
// @Produce json
// @Param roomId path string true "Room code"
// @Param request body http.DrawingRequest true "Drawing op"
// @Success 200 {object} map[string]interface{}
// @Router /api/rooms/{roomId}/drawing [post]
func SendDrawingHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DrawingRequest
		if err := c.BindJSON(&req); err != nil || req.PlayerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "playerId and op required"})
			return
		}
		s, ok := getRoom(c, rm)
		if !ok {
			return
		}
		if err := s.ApplyDraw(req.PlayerID, req.Op); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// @Summary Get the current drawing as a PNG data URL
// @Tags Drawing
// @Produce json
// @Param roomId path string true "Room code"
// @Success 200 {object} map[string]interface{}
// @Router /api/rooms/{roomId}/drawing [get]
func GetDrawingHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := getRoom(c, rm)
		if !ok {
			return
		}
		data, err := s.DrawingDataURL()
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"drawingData": data})
	}
}
