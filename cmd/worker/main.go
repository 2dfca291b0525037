package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/carrental/config"
	"github.com/Domenick1991/carrental/internal/audit"
	"github.com/Domenick1991/carrental/internal/kafka"
	"github.com/jackc/pgx/v5/pgxpool"
)

// The worker tails the booking events topic and appends each event to
// the audit trail.
func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	recorder := audit.NewRecorder(pool)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.BookingEventsTopic)
	defer consumer.Close()

	if err := consumer.Consume(ctx, func(ctx context.Context, event kafka.BookingEvent) error {
		if err := recorder.Record(ctx, event); err != nil {
			log.Printf("record event %s for booking %s: %v", event.Type, event.BookingID, err)
		}
		return nil
	}); err != nil && ctx.Err() == nil {
		log.Printf("consumer stopped: %v", err)
	}
}
