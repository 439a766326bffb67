package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/center-believer/backend/handlers"
	"github.com/center-believer/backend/internal/captcha"
	"github.com/center-believer/backend/internal/config"
	"github.com/center-believer/backend/internal/database"
	msghandler "github.com/center-believer/backend/internal/message/handler"
	msgrepo "github.com/center-believer/backend/internal/message/repository"
	msgservice "github.com/center-believer/backend/internal/message/service"
	scihandler "github.com/center-believer/backend/internal/scientist/handler"
	scirepo "github.com/center-believer/backend/internal/scientist/repository"
	sciservice "github.com/center-believer/backend/internal/scientist/service"
	"github.com/center-believer/backend/internal/storage"
	"github.com/center-believer/backend/internal/wordpress"
	wphandler "github.com/center-believer/backend/internal/wordpress/handler"
	"github.com/center-believer/backend/pkg/logger"
	"github.com/center-believer/backend/pkg/metrics"
	"github.com/center-believer/backend/pkg/middleware"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Server.LogLevel, cfg.Server.Environment)
	logger.Infof("config loaded: mongo=%v wordpress=%v redis=%v", cfg.MongoDB.URI != "", cfg.WordPress.URL != "", cfg.Redis.Host != "")

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.CORS(cfg.CORS.Origins))
	r.Use(gin.Logger(), gin.Recovery())

	// Redis is optional; it only backs the distributed rate limiter.
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Requests queue behind this gate: the server does not listen until the
	// document store is reachable.
	ctx := context.Background()
	logger.Infof("connecting to MongoDB at %s", cfg.MongoDB.URI)
	client, err := database.ConnectWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	if err != nil {
		logger.Fatalf("could not connect to MongoDB: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()
	db := client.Database(cfg.MongoDB.Database)
	logger.Infof("connected to MongoDB, database=%s", cfg.MongoDB.Database)

	store, err := storage.NewMinIOStorage(storage.LoadMinIOConfig())
	if err != nil {
		logger.Fatalf("could not initialize image storage: %v", err)
	}

	scientistSvc := sciservice.NewService(scirepo.NewMongoRepo(db.Collection("scientists")), store, nil)
	verifier := captcha.NewHTTPVerifier(cfg.Captcha.RecaptchaSecret, cfg.Captcha.TurnstileSecret)
	messageSvc := msgservice.NewService(msgrepo.NewMongoRepo(db.Collection("messages")), verifier)

	imageCache := wordpress.NewImageCache(cfg.WordPress.FallbackImageSourceURL, nil, nil)
	wpClient := wordpress.NewClient(cfg.WordPress.URL, imageCache)

	api := r.Group("/api")
	handlers.RegisterHealth(api)
	scihandler.NewHandler(scientistSvc).Register(api.Group("/scientists"))
	msghandler.NewHandler(messageSvc).Register(api.Group("/messages"))
	wphandler.NewHandler(wpClient, cfg.IsProduction()).Register(api.Group("/wordpress"))

	handlers.RegisterSwagger(r)
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("starting server on %s (wordpress=%s)", addr, cfg.WordPress.URL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("forced shutdown: %v", err)
	}
	logger.Info("server stopped")
}
