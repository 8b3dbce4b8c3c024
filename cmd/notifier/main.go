package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"license-backend/internal/bootstrap"
	"license-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()
	if !cfg.SMTP.Configured() {
		log.Fatal("SMTP_HOST, SMTP_USERNAME, SMTP_PASSWORD and SMTP_TO are required")
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}
	if app.Scheduler == nil {
		log.Fatal("scheduler not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("notifier started interval=%s", cfg.PollInterval)
	app.Scheduler.Run(ctx)
	log.Printf("notifier stopped")
}
