package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/annrbk/Auth-app-backend/config"
	"github.com/annrbk/Auth-app-backend/db"
	"github.com/annrbk/Auth-app-backend/internal/account/handler"
	repo "github.com/annrbk/Auth-app-backend/internal/account/repository/postgres"
	"github.com/annrbk/Auth-app-backend/internal/account/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()
	ctx := context.Background()

	if err := db.Migrate(ctx, cfg.DBURL); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	pool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	accountRepo := repo.NewPostgresRepository(pool)
	tokenService := service.NewTokenService(cfg.TokenSecret, cfg.TokenExpiryHours)
	accountService := service.NewAccountService(accountRepo, tokenService, service.NewSHA3Hasher(), logger)
	accountHandler := handler.NewAccountHandler(accountService)

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigin,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	handler.RegisterRoutes(app, accountHandler, tokenService)

	logger.Info("starting server", "port", cfg.Port, "env", cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
