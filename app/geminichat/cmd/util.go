package cmd

import (
	"context"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/cchalm/geminichat/internal/config"
	"github.com/cchalm/geminichat/internal/logging"
	"github.com/cchalm/geminichat/internal/telemetry"
	"github.com/cchalm/geminichat/internal/transport"
)

func setupContext(logger *zap.Logger) context.Context {
	ctx, cancel := context.WithCancel(logging.NewContext(context.Background(), logger))

	// Setup graceful shutdown
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		logger.Info("Interrupt signal detected, shutting down gracefully...")
		cancel()
		<-interrupt
		logger.Fatal("Forcing shutdown")
	}()

	return ctx
}

func createLogger(cfg config.Config) (*zap.Logger, error) {
	logger, err := logging.New(cfg.Debug)
	if err != nil {
		return nil, err
	}
	if !cfg.Debug {
		// Failed exchanges are already reported to the user by the REPL
		logger = logger.WithOptions(zap.IncreaseLevel(zap.ErrorLevel))
	}
	return logger, nil
}

func createTransport(ctx context.Context, cfg config.Config) (*transport.Client, error) {
	return transport.New(ctx, cfg.Transport())
}

func createTelemetryProvider(ctx context.Context, cfg config.Config) (*telemetry.Provider, error) {
	telemetryConfig := telemetry.TelemetryConfig{
		Enabled:      cfg.TelemetryEnabled,
		OTLPEndpoint: cfg.OTLPEndpoint,
	}
	return telemetry.NewProvider(ctx, telemetryConfig, logging.FromContext(ctx))
}
