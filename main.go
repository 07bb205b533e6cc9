// main.go
package main

import (
	"context"
	"log"
	"time"

	"teach-trade/cmd"
	"teach-trade/internal/data/repository"
	"teach-trade/internal/usecase"
	"teach-trade/internal/wire"
	"teach-trade/pkg/cache"
	"teach-trade/pkg/database"
	"teach-trade/pkg/events"
	"teach-trade/pkg/metrics"
	"teach-trade/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx := context.Background()

	// Connect to database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	cleanCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	if removed, err := repos.Session.CleanExpiredSessions(cleanCtx); err != nil {
		logger.Warn("Failed to clean expired sessions", zap.Error(err))
	} else {
		logger.Info("Expired sessions cleaned", zap.Int64("removed", removed))
	}
	cancel()

	deps := usecase.Deps{
		StatsCache: cache.Noop{},
		Publisher:  events.Nop{},
	}

	// Optional Redis stats cache
	if config.Redis.Enabled() {
		redisCache := cache.NewRedisCache(config.Redis, config.Stats.CacheTTL)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			logger.Warn("Redis unreachable, stats cache disabled", zap.Error(err), zap.String("addr", config.Redis.Addr))
			redisCache.Close()
		} else {
			deps.StatsCache = redisCache
			logger.Info("Redis stats cache enabled", zap.String("addr", config.Redis.Addr))
		}
		cancel()
	}
	defer deps.StatsCache.Close()

	// Optional Kafka booking events
	if config.Kafka.Enabled() {
		deps.Publisher = events.NewKafkaProducer(config.Kafka.Brokers, config.Kafka.BookingTopic, logger)
		logger.Info("Kafka booking events enabled",
			zap.Strings("brokers", config.Kafka.Brokers),
			zap.String("topic", config.Kafka.BookingTopic),
		)
	}
	defer deps.Publisher.Close()

	metrics.Register(prometheus.DefaultRegisterer)

	// Wire all dependencies
	app := wire.Wiring(repos, config, deps, prometheus.DefaultGatherer, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server exited", zap.Error(err))
	}
}
