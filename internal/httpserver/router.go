package httpserver

import (
	"context"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Sreekanth-25/Project-Tracker-Application/internal/handler"
	"github.com/Sreekanth-25/Project-Tracker-Application/internal/ratelimit"
)

// NewRouter assembles the API. All resource routes sit under /api behind the
// auth middleware; register and login are public but rate limited.
func NewRouter(
	authHandler *handler.AuthHandler,
	projectHandler *handler.ProjectHandler,
	taskHandler *handler.TaskHandler,
	milestoneHandler *handler.MilestoneHandler,
	analyticsHandler *handler.AnalyticsHandler,
	users UserFinder,
	limiter *ratelimit.Limiter,
	jwtSecret string,
	corsOrigins []string,
	logger *zap.Logger,
	db *pgxpool.Pool,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger), Metrics())

	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD", "PATCH"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if slices.Contains(corsOrigins, "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = corsOrigins
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})
	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, 1*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(500, gin.H{"status": "db_not_ready", "error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	// Public
	api.POST("/auth/register", RateLimit(limiter), authHandler.Register)
	api.POST("/auth/login", RateLimit(limiter), authHandler.Login)

	// Protected
	auth := api.Group("")
	auth.Use(AuthMiddleware(jwtSecret, users))
	{
		auth.GET("/auth/me", authHandler.Me)

		auth.GET("/projects", projectHandler.List)
		auth.POST("/projects", projectHandler.Create)
		auth.GET("/projects/:id", projectHandler.Get)
		auth.PUT("/projects/:id", projectHandler.Update)
		auth.DELETE("/projects/:id", projectHandler.Delete)

		auth.POST("/projects/:id/tasks", taskHandler.Create)
		auth.PUT("/projects/:id/tasks/:taskId", taskHandler.Update)
		auth.DELETE("/projects/:id/tasks/:taskId", taskHandler.Delete)

		auth.POST("/projects/:id/tasks/:taskId/time", taskHandler.AddTimeEntry)
		auth.DELETE("/projects/:id/tasks/:taskId/time/:timeId", taskHandler.DeleteTimeEntry)

		auth.POST("/projects/:id/milestones", milestoneHandler.Create)
		auth.PUT("/projects/:id/milestones/:milestoneId", milestoneHandler.SetCompleted)
		auth.DELETE("/projects/:id/milestones/:milestoneId", milestoneHandler.Delete)

		auth.GET("/analytics/overview", analyticsHandler.Overview)
		auth.GET("/analytics/time-tracking", analyticsHandler.TimeTracking)
	}

	return r
}
