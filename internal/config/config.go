package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/benbeisheim/chess-ai-backend/internal/ai"
	// loads .env from the working directory if present
	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Addr         string
	AllowOrigins string
	Log          LogConfig
	AI           AIConfig
	MaxHistory   int
}

type LogConfig struct {
	Level string
}

// AIConfig holds the search depth, in plies, of each difficulty.
type AIConfig struct {
	DepthEasy int
	DepthHard int
}

func Load() (*Config, error) {
	cfg := &Config{
		Addr:         getenv("CHESS_ADDR", ":8080"),
		AllowOrigins: getenv("CHESS_ALLOW_ORIGINS", "http://localhost:5173"),
		Log: LogConfig{
			Level: strings.ToLower(getenv("CHESS_LOG_LEVEL", "info")),
		},
	}

	var err error
	if cfg.AI.DepthEasy, err = positiveInt("CHESS_AI_DEPTH_EASY", ai.DepthEasy); err != nil {
		return nil, err
	}
	if cfg.AI.DepthHard, err = positiveInt("CHESS_AI_DEPTH_HARD", ai.DepthHard); err != nil {
		return nil, err
	}
	if cfg.MaxHistory, err = positiveInt("CHESS_MAX_HISTORY", 1024); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func positiveInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("error parsing %s: %w", key, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("error parsing %s: must be at least 1, got %d", key, n)
	}
	return n, nil
}

// Origins splits AllowOrigins, a comma separated list, for the websocket
// upgrader.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
