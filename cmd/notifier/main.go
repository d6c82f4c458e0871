package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/example/grocer-pickup/internal/config"
	"github.com/example/grocer-pickup/internal/email"
	"github.com/example/grocer-pickup/internal/infrastructure/kafka"
	"github.com/example/grocer-pickup/internal/infrastructure/store"
	"github.com/example/grocer-pickup/internal/notification"
)

const consumerGroup = "email-notifier"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	if cfg.Simplified {
		// No orders are placed in simplified mode, so no events ever arrive.
		log.Fatal("[Notifier] refusing to start in simplified mode")
	}

	log.Println("[Notifier] ========================================")
	log.Println("[Notifier] Grocer Pickup - Email Notification Service")
	log.Println("[Notifier] ========================================")
	log.Printf("[Notifier] Kafka: %v", cfg.KafkaBrokers)
	log.Printf("[Notifier] Topic: %s", cfg.KafkaTopic)
	log.Printf("[Notifier] Group: %s", consumerGroup)
	log.Printf("[Notifier] SMTP: %s:%s", cfg.SMTPHost, cfg.SMTPPort)
	log.Printf("[Notifier] From: %s", cfg.SMTPFrom)

	db, err := store.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[Notifier] Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()
	log.Println("[Notifier] Connected to PostgreSQL")

	customers := store.NewPostgresCustomerStore(db)
	emailSvc := email.NewService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)
	handler := notification.NewHandler(emailSvc, customers)

	consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, consumerGroup)
	defer consumer.Close()

	log.Println("[Notifier] Starting event consumer...")
	if err := consumer.Consume(ctx, handler.HandleEvent); err != nil && ctx.Err() == nil {
		log.Fatalf("[Notifier] Consumer error: %v", err)
	}
	log.Println("[Notifier] Shutting down...")
}
