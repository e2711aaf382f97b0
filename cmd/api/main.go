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

	"github.com/ariefcatur/go-retail-transactions.git/internal/config"
	"github.com/ariefcatur/go-retail-transactions.git/internal/httpx"
	kafkax "github.com/ariefcatur/go-retail-transactions.git/internal/kafka"
	"github.com/ariefcatur/go-retail-transactions.git/internal/postgres"
	"github.com/ariefcatur/go-retail-transactions.git/internal/redisx"
	"github.com/ariefcatur/go-retail-transactions.git/internal/transactions"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers (satu per topic)
	pCreate := kafkax.NewProducer(cfg.KafkaBrokers, transactions.TopicTransactionCreated, 1024)
	pCreate.Start(ctx)
	pStatus := kafkax.NewProducer(cfg.KafkaBrokers, transactions.TopicTransactionStatusUpdated, 1024)
	pStatus.Start(ctx)

	// Repo & handler
	repo := &transactions.Repo{DB: db}
	router := httpx.NewRouter()
	th := &httpx.TransactionsHandler{
		Store:          repo,
		ProducerCreate: pCreate,
		ProducerStatus: pStatus,
		Redis:          rdb,
		Service:        cfg.ServiceName,
	}
	th.Register(router)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	pCreate.Close() // tutup inbox -> flush & close writer
	pStatus.Close()
	cancel() // stop producer loop
	pCreate.WaitClosed()
	pStatus.WaitClosed()
}
