package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ariefcatur/go-retail-transactions.git/internal/config"
	kafkax "github.com/ariefcatur/go-retail-transactions.git/internal/kafka"
	"github.com/ariefcatur/go-retail-transactions.git/internal/redisx"
	"github.com/ariefcatur/go-retail-transactions.git/internal/stockalert"
	"github.com/ariefcatur/go-retail-transactions.git/internal/transactions"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Service
	svc := &stockalert.Service{
		Redis:       rdb,
		Threshold:   cfg.LowStockThreshold,
		ServiceName: cfg.ServiceName + "-stockalert",
	}

	// Consumer
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.AlertGroup, transactions.TopicTransactionCreated, cfg.AlertWorkers)

	go func() {
		log.Printf("stockalert consumer started: group=%s topic=%s workers=%d", cfg.AlertGroup, transactions.TopicTransactionCreated, cfg.AlertWorkers)
		if err := cons.Start(ctx, svc.HandleTransactionCreated); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down consumer...")
	cancel()
}
