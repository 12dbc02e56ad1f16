package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/dinar-dev/dinar/internal/commands"
	"github.com/dinar-dev/dinar/internal/log"
)

func main() {
	// Optional .env for local development; real config lives in dinar.yaml.
	_ = godotenv.Load()

	logger := log.Default()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := commands.NewRootCommand(logger)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
