package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Sreekanth-25/Project-Tracker-Application/internal/config"
	"github.com/Sreekanth-25/Project-Tracker-Application/internal/handler"
	"github.com/Sreekanth-25/Project-Tracker-Application/internal/httpserver"
	"github.com/Sreekanth-25/Project-Tracker-Application/internal/ratelimit"
	"github.com/Sreekanth-25/Project-Tracker-Application/internal/repository"
	"github.com/Sreekanth-25/Project-Tracker-Application/internal/service"
	"github.com/Sreekanth-25/Project-Tracker-Application/pkg/db"
	"github.com/Sreekanth-25/Project-Tracker-Application/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New()
	defer log.Sync()

	log.Info("Starting project tracker...",
		zap.String("port", cfg.Server.Port),
		zap.String("db_host", cfg.DB.Host),
	)

	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("Failed to init DB", zap.Error(err))
	}
	defer dbConn.Close()

	// Rate limiting is optional; no Redis address means no limiter.
	var limiter *ratelimit.Limiter
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		limiter = ratelimit.New(rdb, 20, time.Minute, log)
		log.Info("Auth rate limiter enabled", zap.String("redis_addr", cfg.Redis.Addr))
	}

	userRepo := repository.NewUserRepository(dbConn, log)
	projectRepo := repository.NewProjectRepository(dbConn, log)

	authService := service.NewAuthService(userRepo, cfg.JWT.Secret)
	projectService := service.NewProjectService(projectRepo)
	analyticsService := service.NewAnalyticsService(projectRepo)

	router := httpserver.NewRouter(
		handler.NewAuthHandler(authService, log),
		handler.NewProjectHandler(projectService, log),
		handler.NewTaskHandler(projectService, log),
		handler.NewMilestoneHandler(projectService, log),
		handler.NewAnalyticsHandler(analyticsService, log),
		userRepo,
		limiter,
		cfg.JWT.Secret,
		cfg.CORS.AllowedOrigins(),
		log,
		dbConn,
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Info("HTTP server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}

	log.Info("Shutdown complete")
}
