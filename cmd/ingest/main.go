package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/gurnoor/vitalcall/internal/database"
	"github.com/gurnoor/vitalcall/internal/queue"
	"github.com/gurnoor/vitalcall/pkg/config"
	"github.com/gurnoor/vitalcall/pkg/logger"
)

const (
	batchSize     = 100
	flushInterval = 5 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Format, "vitalcall-ingest")
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	db, err := database.Connect(cfg.Database.ConnectionString())
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.RunMigrations("migrations"); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	consumer := queue.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicVitals, cfg.Kafka.GroupID)
	defer consumer.Close()

	writer := queue.NewBatchWriter(consumer, db, batchSize, flushInterval, zlog)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	writer.Start(ctx)

	zlog.Info("ingest service running",
		zap.String("topic", cfg.Kafka.TopicVitals),
		zap.Int("batch_size", batchSize),
		zap.Duration("flush_interval", flushInterval),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	zlog.Info("shutting down")
	cancel()
	writer.Stop()
}
