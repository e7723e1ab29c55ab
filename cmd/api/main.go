// Command api serves POST /predict over the trained model.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"studentscore/config"
	shttp "studentscore/http"
	"studentscore/logging"
	"studentscore/ml"
	"studentscore/monitoring"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

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

	// Requests fail with 500 until a model exists, so load up front and say so.
	artifact := ml.NewArtifact(cfg.Model.Path)
	if _, err := artifact.Load(); err != nil {
		logger.Warn("model not loaded, /predict will fail", zap.String("path", cfg.Model.Path), zap.Error(err))
	}

	mux := shttp.NewAPIMux(shttp.Dependencies{
		Artifact: artifact,
		Metrics:  monitoring.NewMetrics(),
		Logger:   logger.Named("api"),
	})
	server := shttp.NewServer(shttp.ServerConfig{Addr: cfg.APIAddr(), Timeout: cfg.Http.Timeout}, mux, logger.Logger)

	errc := make(chan error, 1)
	go func() {
		errc <- server.Start()
	}()
	select {
	case err := <-errc:
		if err != nil {
			logger.Error("api server exited", zap.Error(err))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Stop(); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	}
	logger.Info("exiting")
}
