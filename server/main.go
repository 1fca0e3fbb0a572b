package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stagepass/api/routes"
	"stagepass/internal/notifications"
	"stagepass/internal/seatmap"
	"stagepass/internal/shared/config"
	"stagepass/internal/shared/database"
	"stagepass/internal/shared/middleware"
	"stagepass/pkg/cache"
	"stagepass/pkg/logger"
	"stagepass/pkg/ratelimit"
	"stagepass/pkg/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	appLogger := logger.GetDefault()

	// Smart environment loading
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	if err := seatmap.RegisterSeatCodeValidator(); err != nil {
		appLogger.Error("Failed to register seat code validator", slog.Any("error", err))
		os.Exit(1)
	}

	// Initialize DB
	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("Failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Initialize Redis
	if err := cache.Init(cache.Config{
		Address:  cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}); err != nil {
		appLogger.Error("Failed to connect to Redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer cache.Close()

	cacheService := cache.NewService(cache.Client())

	// Initialize Rate Limiter
	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiterConfig := &ratelimit.Config{
			Enabled:         cfg.RateLimit.Enabled,
			WindowDuration:  cfg.RateLimit.WindowDuration,
			DefaultRequests: cfg.RateLimit.DefaultRequests,
			PublicRequests:  cfg.RateLimit.PublicRequests,
			BookingRequests: cfg.RateLimit.BookingRequests,
			AdminRequests:   cfg.RateLimit.AdminRequests,
			WhitelistedIPs:  cfg.RateLimit.WhitelistedIPs,
		}

		rateLimiter = ratelimit.NewRateLimiter(cache.Client(), rateLimiterConfig)
		appLogger.Info("Rate limiter initialized",
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	// Initialize receipt blob store
	initCtx, initCancel := context.WithTimeout(context.Background(), 10*time.Second)
	receipts, err := storage.NewS3Store(initCtx, storage.S3Config{
		Region:    cfg.AWS.Region,
		Bucket:    cfg.AWS.S3Bucket,
		KeyPrefix: cfg.Upload.KeyPrefix,
	})
	initCancel()
	if err != nil {
		appLogger.Error("Failed to initialize receipt store", slog.Any("error", err))
		os.Exit(1)
	}

	// Initialize notification pipeline
	notificationService, stopNotifications := setupNotifications(cfg, appLogger)
	defer stopNotifications()

	// Setup router
	router, appRouter := setupRouter(cfg, db, cacheService, receipts, notificationService, rateLimiter)

	// Sweep stale seat holds left behind by crashed commits
	janitorCtx, janitorCancel := context.WithCancel(context.Background())
	defer janitorCancel()
	appRouter.StartJanitor(janitorCtx)

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("🚀 Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("version", cfg.APIVersion),
			slog.Bool("rate_limiting", cfg.RateLimit.Enabled),
			slog.Bool("notifications", cfg.Kafka.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

// setupNotifications wires the Kafka producer and consumer when enabled.
// A disabled pipeline returns a no-op service so booking commits never
// block on notification plumbing.
func setupNotifications(cfg *config.Config, appLogger *logger.Logger) (notifications.Service, func()) {
	if !cfg.Kafka.Enabled {
		appLogger.Info("Notifications disabled, confirmations will only be logged")
		return notifications.NewService(nil), func() {}
	}

	producer, err := notifications.NewKafkaProducer(
		notifications.DefaultKafkaProducerConfig(cfg.Kafka.Brokers, cfg.Kafka.Topic))
	if err != nil {
		appLogger.Error("Failed to initialize Kafka producer", slog.Any("error", err))
		appLogger.Info("Continuing without notifications")
		return notifications.NewService(nil), func() {}
	}

	sender, err := notifications.NewSMTPSender(notifications.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  "StagePass Tickets",
		UseTLS:    true,
		Timeout:   10 * time.Second,
	})
	if err != nil {
		appLogger.Error("Failed to initialize email sender", slog.Any("error", err))
		producer.Close()
		return notifications.NewService(nil), func() {}
	}

	consumer, err := notifications.NewKafkaConsumer(
		notifications.DefaultConsumerConfig(cfg.Kafka.Brokers, cfg.Kafka.ConsumerGroup, []string{cfg.Kafka.Topic}),
		sender)
	if err != nil {
		appLogger.Error("Failed to initialize Kafka consumer", slog.Any("error", err))
		producer.Close()
		return notifications.NewService(nil), func() {}
	}

	consumerCtx, consumerCancel := context.WithCancel(context.Background())
	go func() {
		if err := consumer.Start(consumerCtx, 2); err != nil {
			appLogger.Error("Notification consumer stopped", slog.Any("error", err))
		}
	}()

	appLogger.Info("Notification pipeline started",
		slog.String("topic", cfg.Kafka.Topic),
		slog.String("group", cfg.Kafka.ConsumerGroup),
	)

	stop := func() {
		appLogger.Info("Stopping notification pipeline...")
		consumerCancel()
		if err := consumer.Stop(); err != nil {
			appLogger.Error("Error stopping consumer", slog.Any("error", err))
		}
		if err := producer.Close(); err != nil {
			appLogger.Error("Error closing producer", slog.Any("error", err))
		}
	}

	return notifications.NewService(producer), stop
}

func setupRouter(cfg *config.Config, db *database.DB, cacheService cache.Service, receipts storage.ReceiptStore, notificationService notifications.Service, rateLimiter *ratelimit.RateLimiter) (*gin.Engine, *routes.Router) {
	engine := gin.New()
	appLogger := logger.GetDefault()

	engine.Use(middleware.RequestLogger(appLogger), gin.Recovery())

	// CORS configuration
	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Session-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
	}

	appRouter := routes.NewRouter(cfg, db, cacheService, receipts, notificationService)
	appRouter.SetupRoutes(engine)

	return engine, appRouter
}
