package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"family-calendar/internal/config"
	"family-calendar/internal/kafka"
	"family-calendar/internal/logger"
	"family-calendar/internal/models"

	"github.com/joho/godotenv"
)

// runWatchChanges prints the event change feed as JSON lines until
// interrupted.
func runWatchChanges(args []string) int {
	fs := flag.NewFlagSet("watch-changes", flag.ContinueOnError)
	group := fs.String("group", "family-calendar-watch", "Kafka consumer group")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.NewWithWriter(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, *group, log)
	defer consumer.Close()

	enc := json.NewEncoder(os.Stdout)
	err := consumer.Run(ctx, func(change models.EventChange) {
		if err := enc.Encode(change); err != nil {
			log.Error("WATCH", fmt.Sprintf("failed to print change: %v", err))
		}
	})
	if err != nil {
		return 1
	}
	return 0
}
