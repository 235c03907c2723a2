package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	redis "github.com/redis/go-redis/v9"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"rpg-server/internal/config"
	"rpg-server/internal/database"
	"rpg-server/internal/handler"
	"rpg-server/internal/logger"
	"rpg-server/internal/messaging"
	"rpg-server/internal/middleware"
	"rpg-server/internal/narrative"
	"rpg-server/internal/repository"
	"rpg-server/internal/service"
)

func main() {
	// --- Configuration ---
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, relying on environment")
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Setup ---
	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		Encoding: "json",
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	zap.ReplaceGlobals(zapLogger)
	zap.L().Info("Logger initialized", zap.String("logLevel", cfg.LogLevel))

	// --- External Connections ---
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pgPool, err := setupPostgres(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pgPool.Close()
	zap.L().Info("Connected to PostgreSQL")

	if err := database.RunMigrations(ctx, pgPool, zapLogger); err != nil {
		zap.L().Fatal("Failed to run migrations", zap.Error(err))
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		zap.L().Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	zap.L().Info("Connected to Redis")

	mqConn, err := connectRabbitMQ(cfg.RabbitMQURL, zapLogger)
	if err != nil {
		zap.L().Fatal("Failed to connect to RabbitMQ", zap.Error(err))
	}
	defer mqConn.Close()
	zap.L().Info("Connected to RabbitMQ")

	// --- Dependency Injection ---
	playerRepo := repository.NewPgPlayerRepository(pgPool, zapLogger)
	challengeRepo := repository.NewRedisChallengeRepository(redisClient, zapLogger)

	publisher, err := messaging.NewRabbitMQEventPublisher(mqConn, cfg.EventsExchangeName, zapLogger)
	if err != nil {
		zap.L().Fatal("Failed to create event publisher", zap.Error(err))
	}

	narrator := narrative.NewClient(narrative.Config{
		APIKey:  cfg.NarrativeAPIKey,
		BaseURL: cfg.NarrativeBaseURL,
		Model:   cfg.NarrativeModel,
		Timeout: cfg.NarrativeTimeout,
	}, zapLogger)

	rng := service.NewRand(time.Now().UnixNano())
	locks := service.NewPlayerLocks()

	playerSvc := service.NewPlayerService(playerRepo, locks, zapLogger)
	combatSvc := service.NewCombatService(playerRepo, publisher, narrator, rng, locks, zapLogger)
	adventureSvc := service.NewAdventureService(playerRepo, challengeRepo, narrator, rng, locks, cfg.HuntCooldown, cfg.ExploreCooldown, zapLogger)
	dungeonSvc := service.NewDungeonService(playerRepo, narrator, rng, locks, zapLogger)
	pvpSvc := service.NewPvpService(playerRepo, challengeRepo, rng, locks, cfg.PvpChallengeTTL, zapLogger)
	worldBossSvc := service.NewWorldBossService(playerRepo, publisher, narrator, rng, locks, zapLogger)

	gameHandler := handler.NewGameHandler(playerSvc, combatSvc, adventureSvc, dungeonSvc, pvpSvc, worldBossSvc, zapLogger)

	// --- HTTP Server Setup (Gin) ---
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.RedirectTrailingSlash = true
	router.Use(middleware.ZapLoggingMiddleware(zapLogger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	authMiddleware := middleware.JWTAuthMiddleware(cfg.JWTSecret)
	gameHandler.RegisterRoutes(router, authMiddleware)

	p := ginprometheus.NewPrometheus("gin")
	p.Use(router)

	// --- Background Workers ---
	spawnerCtx, spawnerCancel := context.WithCancel(context.Background())
	defer spawnerCancel()
	go worldBossSvc.RunSpawner(spawnerCtx, cfg.WorldBossSpawnInterval)
	zap.L().Info("World boss spawner started", zap.Duration("interval", cfg.WorldBossSpawnInterval))

	// --- Start HTTP Server ---
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	zap.L().Info("Starting HTTP server", zap.String("port", cfg.Port))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("HTTP Server listen error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down server...")

	spawnerCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("HTTP Server forced to shutdown", zap.Error(err))
	}

	zap.L().Info("Server exiting")
}

// setupPostgres поднимает пул соединений с ретраями: база в compose
// может подниматься дольше сервиса.
func setupPostgres(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	const maxRetries = 10
	retryDelay := 3 * time.Second

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		pool, err := database.NewPool(ctx, cfg)
		if err == nil {
			return pool, nil
		}
		lastErr = err
		zap.L().Warn("Postgres connection failed, retrying...",
			zap.Int("attempt", i+1), zap.Int("max_retries", maxRetries), zap.Error(err))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}
	return nil, fmt.Errorf("postgres unreachable after %d attempts: %w", maxRetries, lastErr)
}

// connectRabbitMQ подключается к RabbitMQ с ретраями.
func connectRabbitMQ(url string, log *zap.Logger) (*amqp.Connection, error) {
	const maxRetries = 10
	retryDelay := 3 * time.Second

	var conn *amqp.Connection
	var err error
	for i := 0; i < maxRetries; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			return conn, nil
		}
		log.Warn("RabbitMQ connection failed, retrying...",
			zap.Int("attempt", i+1), zap.Int("max_retries", maxRetries), zap.Error(err))
		time.Sleep(retryDelay)
	}
	return nil, fmt.Errorf("rabbitmq unreachable after %d attempts: %w", maxRetries, err)
}
