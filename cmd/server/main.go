package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"pwhl-schedule-service/internal/config"
	"pwhl-schedule-service/internal/logging"
	"pwhl-schedule-service/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "pwhl-schedule-service",
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger, appVersion)
	srv.Run(ctx, stop)
}
