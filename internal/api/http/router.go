package http

import (
	"draw-guess-be/internal/api/ws"
	"draw-guess-be/internal/room"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the REST surface and the websocket endpoint.
func NewRouter(rm *room.Manager, hub *ws.Hub) *gin.Engine {
	r := gin.Default()
	r.Use(corsMiddleware())

	api := r.Group("/api")
	{
		rooms := api.Group("/rooms")
		{
			rooms.POST("", CreateRoomHandler(rm))
			rooms.POST("/public/join", JoinPublicHandler(rm))
			rooms.GET("/:roomId", GetRoomHandler(rm))
			rooms.POST("/:roomId/join", JoinRoomHandler(rm))
			rooms.POST("/:roomId/leave", LeaveRoomHandler(rm))
			rooms.GET("/:roomId/players", GetPlayersHandler(rm))

			rooms.GET("/:roomId/messages", GetMessagesHandler(rm))
			rooms.POST("/:roomId/messages", SendMessageHandler(rm))

			rooms.GET("/:roomId/game-state", GetGameStateHandler(rm))
			rooms.GET("/:roomId/word-choices", GetWordChoicesHandler(rm))
			rooms.POST("/:roomId/select-word", SelectWordHandler(rm))
			rooms.POST("/:roomId/start", StartGameHandler(rm))
			rooms.POST("/:roomId/start-private", StartPrivateGameHandler(rm))
			rooms.POST("/:roomId/guess", SubmitGuessHandler(rm))
			rooms.POST("/:roomId/like", LikeDrawingHandler(rm))
			rooms.POST("/:roomId/dislike", DislikeDrawingHandler(rm))
			rooms.POST("/:roomId/thumbs", ThumbsHandler(rm))
			rooms.POST("/:roomId/end-round", EndRoundHandler(rm))
			rooms.POST("/:roomId/next-drawer", NextDrawerHandler(rm))
			rooms.POST("/:roomId/end-game", EndGameHandler(rm))
			rooms.POST("/:roomId/restart", RestartGameHandler(rm))

			rooms.GET("/:roomId/drawing", GetDrawingHandler(rm))
			rooms.POST("/:roomId/drawing", SendDrawingHandler(rm))
		}
	}

	r.GET("/ws/rooms/:roomId", hub.HandleWS)

	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
