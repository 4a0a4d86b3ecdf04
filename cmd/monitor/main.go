package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/aman-churiwal/influx-monitor/internal/config"
	"github.com/aman-churiwal/influx-monitor/internal/monitor"
	"github.com/aman-churiwal/influx-monitor/internal/server"
)

func main() {
	// Load env if it exists
	godotenv.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	logger.Info("Starting InfluxDB Monitor Service")

	cfg, err := config.Load(config.Path())
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	startTime := time.Now()

	aggregator := monitor.FromConfig(cfg)
	reporter := monitor.NewReporter(logger, cfg.Monitoring.AlertThreshold)
	runner := monitor.NewRunner(aggregator, reporter, cfg.Monitoring.CheckInterval, logger)

	srv := server.New(cfg, aggregator, logger, startTime)

	go func() {
		if err := srv.Run(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	logger.Infof("Monitor service started on port %d", cfg.Server.Port)

	ctx, cancel := context.WithCancel(context.Background())
	go runner.Run(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down monitor service")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Monitor service exited")
}
