package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/grocer-pickup/internal/api"
	"github.com/example/grocer-pickup/internal/auth"
	"github.com/example/grocer-pickup/internal/command"
	"github.com/example/grocer-pickup/internal/config"
	"github.com/example/grocer-pickup/internal/infrastructure/kafka"
	"github.com/example/grocer-pickup/internal/infrastructure/store"
	"github.com/example/grocer-pickup/internal/metrics"
	"github.com/example/grocer-pickup/internal/query"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("[API] JWT_SECRET environment variable is required")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[API] JWT_SECRET must be at least 32 characters long")
	}

	log.Println("[API] ========================================")
	log.Println("[API] Grocer Pickup - Storefront API")
	log.Println("[API] ========================================")
	log.Printf("[API] Listen: %s", cfg.HTTPAddr)
	log.Printf("[API] Simplified mode: %t", cfg.Simplified)

	var (
		orders     store.OrderStore
		products   store.ProductStore
		categories store.CategoryStore
		customers  store.CustomerStore
		publisher  command.EventPublisher
	)

	// Simplified mode runs without Postgres or Kafka: every write is refused
	// before a store is touched and reads are served from the static catalog,
	// so the nil stores are never dereferenced.
	if !cfg.Simplified {
		db, err := store.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("[API] Failed to connect to PostgreSQL: %v", err)
		}
		defer db.Close()
		if err := store.EnsureSchema(db); err != nil {
			log.Fatalf("[API] Failed to ensure schema: %v", err)
		}
		log.Println("[API] Connected to PostgreSQL")

		orders = store.NewPostgresOrderStore(db)
		products = store.NewPostgresProductStore(db)
		categories = store.NewPostgresCategoryStore(db)
		customers = store.NewPostgresCustomerStore(db)

		producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer producer.Close()
		publisher = producer
		log.Printf("[API] Kafka: %v topic=%s", cfg.KafkaBrokers, cfg.KafkaTopic)
	} else {
		log.Println("[API] Running without PostgreSQL and Kafka")
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret, 15*time.Minute, 7*24*time.Hour)

	cmdHandler := command.NewHandler(orders, products, categories, customers, publisher, cfg.Simplified)
	queryHandler := query.NewHandler(orders, products, categories, customers, cfg.Simplified)

	m := metrics.NewServerMetrics("api")
	handlers := api.NewHandlers(cmdHandler, queryHandler, m)
	authHandlers := api.NewAuthHandlers(cmdHandler, queryHandler, customers, jwtService, cfg.Simplified)
	router := api.NewRouter(handlers, authHandlers, jwtService, m)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[API] Server started on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Println("[API] Shutting down...")
	case err := <-errCh:
		log.Fatalf("[API] Server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[API] Shutdown error: %v", err)
	}
}
