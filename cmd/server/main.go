package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pushrelay/pushrelay/internal/config"
	"github.com/pushrelay/pushrelay/internal/graph"
	"github.com/pushrelay/pushrelay/internal/logger"
	"github.com/pushrelay/pushrelay/internal/pushover"
	"github.com/pushrelay/pushrelay/internal/ratelimit"
	"github.com/pushrelay/pushrelay/internal/relay"
)

func main() {
	// Load configuration
	config.LoadConfig()

	log := logger.New(logger.FromConfig(config.AppConfig.LogLevel, config.AppConfig.LogFormat))

	// Set Gin mode
	gin.SetMode(config.AppConfig.GinMode)

	// Initialize the dispatch pipeline
	transport := pushover.NewHTTPTransport(config.AppConfig.HTTPTimeout)
	adapter := pushover.NewAdapter(transport, config.AppConfig.PushoverBaseURL, log)
	creds := pushover.Credentials{
		AppToken: config.AppConfig.PushoverAppToken,
		UserKey:  config.AppConfig.PushoverUserKey,
		Device:   config.AppConfig.PushoverDevice,
	}

	relayService := relay.NewService(adapter, creds, log)
	relayHandler := relay.NewHandler(relayService, log)

	schema, err := graph.NewSchema(&graph.Resolver{Service: relayService, Logger: log})
	if err != nil {
		log.Error("Failed to build GraphQL schema", slog.String("error", err.Error()))
		os.Exit(1)
	}
	graphqlHandler := graph.NewHTTPHandler(schema)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLoggingMiddleware(log))

	// Add CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", config.AppConfig.CORSAllowedOrigins)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// API routes
	api := router.Group("/api/v1")
	if config.AppConfig.RateLimitEnabled {
		limiter := ratelimit.New(float64(config.AppConfig.RateLimitRPS), config.AppConfig.RateLimitBurst)
		api.Use(limiter.Middleware())
	}
	{
		api.GET("/health", relayHandler.Health)
		api.POST("/send", relayHandler.Send)
		api.GET("/limits", relayHandler.Limits)
		api.POST("/validate", relayHandler.Validate)
		api.POST("/emergency", relayHandler.Emergency)
		api.POST("/templates/:template", relayHandler.SendTemplate)
		api.GET("/docs", relayHandler.Docs)

		api.POST("/graphql", graphqlHandler)
		api.GET("/graphql", graphqlHandler)
	}

	router.NoRoute(relayHandler.NotFound)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.Port,
		Handler: router,
	}

	go func() {
		log.Info("Push relay server starting",
			slog.String("port", config.AppConfig.Port),
			slog.String("graphql", "/api/v1/graphql"))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(config.AppConfig.ServerShutdownTimeoutSeconds)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("Server exited")
}
