package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/trogers1052/networth-service/internal/api"
	"github.com/trogers1052/networth-service/internal/cache"
	"github.com/trogers1052/networth-service/internal/config"
	"github.com/trogers1052/networth-service/internal/kafka"
	"github.com/trogers1052/networth-service/internal/providers"
	"github.com/trogers1052/networth-service/internal/valuation"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	// Provider response cache; nil cache means every call goes to the provider
	var quoteCache *cache.Cache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		quoteCache = cache.New(rdb)
		log.Printf("Provider cache enabled (redis at %s)", cfg.Redis.Addr)
	}

	equity := providers.NewAlphaVantage(cfg.Providers.AlphaVantageURL, cfg.Providers.AlphaVantageKey, cfg.Providers.Timeout, quoteCache)
	funds := providers.NewAMFI(cfg.Providers.AMFIURL, cfg.Providers.Timeout, quoteCache)
	gold := providers.NewGoldAPI(cfg.Providers.GoldAPIURL, cfg.Providers.GoldAPIToken, cfg.Providers.Timeout, quoteCache)

	aggregator := valuation.NewAggregator(equity, funds, gold, valuation.Config{
		Workers:         cfg.Valuation.Workers,
		ProviderTimeout: cfg.Providers.Timeout,
		EquityPolicy:    valuation.ParsePolicy(cfg.Valuation.EquityPolicy),
		GoldPolicy:      valuation.ParsePolicy(cfg.Valuation.GoldPolicy),
	})

	var producer *kafka.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		log.Printf("Kafka producer enabled (topic %s)", cfg.Kafka.Topic)
	}

	handler := api.NewHandler(aggregator, producer)
	router := api.SetupRoutes(handler)

	server := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: router,
	}

	go func() {
		log.Printf("Net worth service listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
