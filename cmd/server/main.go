package main

import (
	"fmt"

	httpapi "draw-guess-be/internal/api/http"
	"draw-guess-be/internal/api/ws"
	"draw-guess-be/internal/config"
	"draw-guess-be/internal/logger"
	"draw-guess-be/internal/room"
	"draw-guess-be/internal/store"

	"go.uber.org/zap"
)

// @title Draw & Guess API
// @version 1.0
// @description Real-time drawing and guessing game server (Go + Gin)
// @BasePath /
func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel)
	defer func() { _ = zap.L().Sync() }()

	mem := store.NewMemoryStore()
	hub := ws.NewHub()
	rm := room.NewManager(mem, cfg.Game, hub)
	hub.SetResolver(rm)
	defer rm.Close()

	r := httpapi.NewRouter(rm, hub)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zap.S().Infof("listening on %s", addr)
	if err := r.Run(addr); err != nil {
		zap.S().Fatalf("server stopped: %v", err)
	}
}
