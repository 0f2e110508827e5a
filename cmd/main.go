package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/ejifeanyi/lintra/config"
	"github.com/ejifeanyi/lintra/db"
	"github.com/ejifeanyi/lintra/internal/auth/handler"
	"github.com/ejifeanyi/lintra/internal/auth/ratelimit"
	repo "github.com/ejifeanyi/lintra/internal/auth/repository/postgres"
	"github.com/ejifeanyi/lintra/internal/auth/service"
	"github.com/ejifeanyi/lintra/pkg/constant"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		logger.Fatalf("connect database: %v", err)
	}
	defer dbPool.Close()

	if err := db.RunMigrations(ctx, cfg.DBURL); err != nil {
		logger.Fatalf("run migrations: %v", err)
	}

	userRepo := repo.NewPostgresUserRepository(dbPool)
	projectRepo := repo.NewPostgresProjectRepository(dbPool)

	tokenService, err := service.NewTokenService(cfg.JWTSecret)
	if err != nil {
		logger.Fatalf("init token service: %v", err)
	}
	userService := service.NewUserService(userRepo, tokenService, cfg.BcryptCost)
	projectService := service.NewProjectService(projectRepo, userRepo)

	limiter := ratelimit.New(constant.LoginMaxAttempts, constant.LoginWindow)

	authHandler := handler.NewAuthHandler(userService, tokenService, limiter, logger)
	projectHandler := handler.NewProjectHandler(projectService, logger)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler, projectHandler)

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		_ = app.Shutdown()
	}()

	logger.Infof("listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatalf("server stopped: %v", err)
	}
}
