package main

import (
	"flag"

	"github.com/benbeisheim/chess-ai-backend/internal/config"
	"github.com/benbeisheim/chess-ai-backend/internal/controller"
	"github.com/benbeisheim/chess-ai-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	addr := flag.String("addr", cfg.Addr, "listen address, overrides CHESS_ADDR")
	flag.Parse()

	log.SetLevel(logLevel(cfg.Log.Level))

	app := fiber.New()

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize services
	gameManager := service.NewGameManager()
	gameService := service.NewGameService(gameManager, cfg)

	controller.SetupRoutes(app, gameService, cfg.Origins())

	log.Infof("listening on %s", *addr)
	log.Fatal(app.Listen(*addr))
}

func logLevel(level string) log.Level {
	switch level {
	case "trace":
		return log.LevelTrace
	case "debug":
		return log.LevelDebug
	case "warn":
		return log.LevelWarn
	case "error":
		return log.LevelError
	}
	return log.LevelInfo
}
