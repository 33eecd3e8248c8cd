package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppConfig is the process-wide configuration. Values come from an optional
// config file, environment variables prefixed with DRAWGUESS_, or defaults.
type AppConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`

	Game GameConfig `mapstructure:"game"`
}

// GameConfig holds the per-room gameplay tuning. Durations are configured in
// seconds; tests shrink them to keep scenario runs fast.
type GameConfig struct {
	TotalRounds     int `mapstructure:"total_rounds"`
	MaxPlayers      int `mapstructure:"max_players"`
	WordChoiceCount int `mapstructure:"word_choice_count"`

	WordSelectionSeconds int `mapstructure:"word_selection_seconds"`
	DrawingSeconds       int `mapstructure:"drawing_seconds"`
	RoundEndSeconds      int `mapstructure:"round_end_seconds"`
	GameEndSeconds       int `mapstructure:"game_end_seconds"`

	DisconnectGraceSeconds int `mapstructure:"disconnect_grace_seconds"`
	RoomIdleGraceSeconds   int `mapstructure:"room_idle_grace_seconds"`

	CanvasWidth  int `mapstructure:"canvas_width"`
	CanvasHeight int `mapstructure:"canvas_height"`
}

func (g GameConfig) WordSelectionTime() time.Duration {
	return time.Duration(g.WordSelectionSeconds) * time.Second
}

func (g GameConfig) DrawingTime() time.Duration {
	return time.Duration(g.DrawingSeconds) * time.Second
}

func (g GameConfig) RoundEndTime() time.Duration {
	return time.Duration(g.RoundEndSeconds) * time.Second
}

func (g GameConfig) GameEndTime() time.Duration {
	return time.Duration(g.GameEndSeconds) * time.Second
}

func (g GameConfig) DisconnectGrace() time.Duration {
	return time.Duration(g.DisconnectGraceSeconds) * time.Second
}

func (g GameConfig) RoomIdleGrace() time.Duration {
	return time.Duration(g.RoomIdleGraceSeconds) * time.Second
}

var cfg *AppConfig

func Get() *AppConfig {
	if cfg == nil {
		cfg = Load()
	}
	return cfg
}

func Load() *AppConfig {
	v := viper.New()

	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 3000)
	v.SetDefault("log_level", "info")

	v.SetDefault("game.total_rounds", 3)
	v.SetDefault("game.max_players", 8)
	v.SetDefault("game.word_choice_count", 3)
	v.SetDefault("game.word_selection_seconds", 10)
	v.SetDefault("game.drawing_seconds", 60)
	v.SetDefault("game.round_end_seconds", 5)
	v.SetDefault("game.game_end_seconds", 30)
	v.SetDefault("game.disconnect_grace_seconds", 30)
	v.SetDefault("game.room_idle_grace_seconds", 60)
	v.SetDefault("game.canvas_width", 800)
	v.SetDefault("game.canvas_height", 500)

	v.SetEnvPrefix("DRAWGUESS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("app_config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	// Config file is optional; env vars and defaults cover everything.
	_ = v.ReadInConfig()

	var config AppConfig
	if err := v.Unmarshal(&config); err != nil {
		panic(err)
	}

	return &config
}

// DefaultGame returns the default gameplay tuning without touching the
// environment. Used by tests.
func DefaultGame() GameConfig {
	return GameConfig{
		TotalRounds:            3,
		MaxPlayers:             8,
		WordChoiceCount:        3,
		WordSelectionSeconds:   10,
		DrawingSeconds:         60,
		RoundEndSeconds:        5,
		GameEndSeconds:         30,
		DisconnectGraceSeconds: 30,
		RoomIdleGraceSeconds:   60,
		CanvasWidth:            800,
		CanvasHeight:           500,
	}
}
