package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"studentscore/config"
	"studentscore/db"
	shttp "studentscore/http"
	"studentscore/logging"
	"studentscore/ml"
	"studentscore/monitoring"
	"studentscore/predictor"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	// 1. Load config and logger
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath, cfg, logger); err != nil {
		logger.Error("ui server exited", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("exiting")
}

func run(ctx context.Context, configPath string, cfg *config.Config, logger *logging.Logger) error {
	watchLogLevel(ctx, configPath, logger)

	// 2. Restore the model once; a missing artefact switches the form to the fallback estimate
	artifact := ml.NewArtifact(cfg.Model.Path)
	if _, err := artifact.Load(); err != nil {
		logger.Warn("model not loaded, using fallback estimate", zap.String("path", cfg.Model.Path), zap.Error(err))
	} else {
		logger.Info("model loaded", zap.String("path", cfg.Model.Path))
	}
	service, err := predictor.NewService(artifact, cfg.Cache.Size, logger.Named("predictor"))
	if err != nil {
		return err
	}

	// 3. Prediction history
	var store *db.Store
	if cfg.Database.Path != "" {
		store, err = db.Open(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer store.Close()
		logger.Info("database initialized", zap.String("path", cfg.Database.Path))
	}

	// 4. Live feed
	hub := monitoring.NewHub(logger.Named("ws"))
	go hub.Run()
	defer hub.Stop()

	mux := shttp.NewUIMux(shttp.Dependencies{
		Artifact:  artifact,
		Predictor: service,
		Store:     store,
		Hub:       hub,
		Metrics:   monitoring.NewMetrics(),
		Logger:    logger.Named("http"),
		Language:  cfg.UI.Language,
	})
	server := shttp.NewServer(shttp.ServerConfig{Addr: cfg.HttpAddr(), Timeout: cfg.Http.Timeout}, mux, logger.Logger)

	// 5. Serve until a signal arrives
	errc := make(chan error, 1)
	go func() {
		errc <- server.Start()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	return server.Stop()
}

// watchLogLevel applies log.level edits without a restart. Other settings
// need one.
func watchLogLevel(ctx context.Context, configPath string, logger *logging.Logger) {
	err := config.Watch(ctx, configPath, logger.Logger, func(cfg *config.Config) {
		if err := logging.SetLevel(logger.Level, cfg.Log.Level); err != nil {
			logger.Warn("ignoring log level", zap.Error(err))
		}
	})
	if err != nil {
		logger.Warn("config watch disabled", zap.Error(err))
	}
}
