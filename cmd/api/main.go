package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/mtaafundi/fundi-finder/internal/config"
	"github.com/mtaafundi/fundi-finder/internal/db"
	"github.com/mtaafundi/fundi-finder/internal/handlers"
	"github.com/mtaafundi/fundi-finder/internal/middleware"
	"github.com/mtaafundi/fundi-finder/internal/realtime"
	"github.com/mtaafundi/fundi-finder/internal/services/market"
	"github.com/mtaafundi/fundi-finder/internal/utils"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	utils.InitLogger(cfg.LogLevel)

	gdb, err := db.Connect(cfg.DBDriver, cfg.DBDSN, cfg.Debug())
	if err != nil {
		slog.Error("database connect failed", "driver", cfg.DBDriver, "err", err)
		os.Exit(1)
	}
	if err := db.Migrate(gdb); err != nil {
		slog.Error("migrate failed", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis only widens notification delivery; the API runs without it.
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = realtime.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			slog.Warn("redis unavailable, notifications stay in-process", "err", err)
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	hub := realtime.NewHub()
	go hub.Run(ctx)

	svc := market.NewService(gdb, realtime.NewNotifier(hub, rdb))

	app := fiber.New(fiber.Config{
		AppName:      "Mtaa-Fundi Finder API",
		ErrorHandler: handlers.ErrorHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.AttachLogger())
	app.Use(middleware.RequestLog())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, " + middleware.RequestIDHeader,
	}))

	handlers.Mount(app, svc, hub)

	go func() {
		<-ctx.Done()
		slog.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			slog.Error("shutdown failed", "err", err)
		}
	}()

	slog.Info("listening", "port", cfg.AppPort, "env", cfg.AppEnv, "db", cfg.DBDriver)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
