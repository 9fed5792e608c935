// Package main is the entry point for the terrain viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Faultbox/spline-terrain/internal/config"
	"github.com/Faultbox/spline-terrain/internal/logger"
	"github.com/Faultbox/spline-terrain/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Spline Terrain ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	// Interrupt only cancels a level download; the window handles its own quit
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	v, err := viewer.New(ctx, cfg)
	stop()
	if err != nil {
		logger.Fatal("failed to start viewer", zap.Error(err))
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
