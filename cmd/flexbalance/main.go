// Package main is the entry point for the flexbalance CLI application.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lan-dot-party/flexbalance/cmd/flexbalance/cmd"
	"github.com/lan-dot-party/flexbalance/internal/logger"
)

func main() {
	// Initialize default logger (will be reconfigured after config is loaded)
	logger.InitDefault()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// Execute the root command
	err := cmd.Execute(ctx)
	stop()
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
