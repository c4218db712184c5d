package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nechto-online/nechto-server/internal/config"
	"github.com/nechto-online/nechto-server/internal/game"
	"github.com/nechto-online/nechto-server/internal/repository"
	"github.com/nechto-online/nechto-server/internal/room"
	"github.com/nechto-online/nechto-server/internal/server"
	"github.com/nechto-online/nechto-server/internal/store"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting nechto server",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var (
		gameStore store.StateStore
		stepLog   room.StepLogger
	)
	if cfg.Database.URL != "" {
		db, dbErr := repository.NewDB(ctx, cfg.Database, logger)
		if dbErr != nil {
			logger.Fatal("failed to connect to database", zap.Error(dbErr))
		}
		defer db.Close()

		if schemaErr := repository.EnsureSchema(ctx, db); schemaErr != nil {
			logger.Fatal("failed to ensure schema", zap.Error(schemaErr))
		}

		stats := db.Stat()
		logger.Info("database connection pool initialized",
			zap.Int32("total_conns", stats.TotalConns()),
			zap.Int32("idle_conns", stats.IdleConns()),
		)

		gameStore = repository.NewGameStore(db, logger)
		stepLog = repository.NewStepRepository(db)
	} else {
		logger.Warn("no database configured, using in-memory store")
		gameStore = store.NewMemory(logger)
	}

	engine := game.NewEngine(logger,
		game.WithHandLimit(cfg.Game.HandLimit),
		game.WithQuarantineTurns(cfg.Game.QuarantineTurns),
	)
	logger.Info("rules engine initialized",
		zap.Int("hand_limit", cfg.Game.HandLimit),
		zap.Int("quarantine_turns", cfg.Game.QuarantineTurns),
	)

	roomMgr := room.NewManager(engine, gameStore, stepLog, cfg.Game, logger)
	logger.Info("room manager initialized",
		zap.Int("min_players", cfg.Game.MinPlayers),
		zap.Int("max_players", cfg.Game.MaxPlayers),
	)

	wsServer := server.New(cfg.Server.WebSocket, roomMgr, gameStore, logger)
	go func() {
		if wsErr := wsServer.Start(ctx); wsErr != nil {
			logger.Error("websocket server error", zap.Error(wsErr))
		}
	}()

	logger.Info("nechto server initialized",
		zap.String("version", version),
		zap.String("websocket_address", cfg.Server.WebSocket.Address),
	)

	sig := <-sigChan
	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	logger.Info("shutting down gracefully...")
	cancel()

	logger.Info("nechto server stopped")
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
