package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/gurnoor/vitalcall/internal/calls"
	"github.com/gurnoor/vitalcall/internal/database"
	"github.com/gurnoor/vitalcall/internal/server"
	"github.com/gurnoor/vitalcall/internal/summary"
	"github.com/gurnoor/vitalcall/pkg/config"
	"github.com/gurnoor/vitalcall/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Format, "vitalcall-server")
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
	zlog.Info("connected to database", zap.String("host", cfg.Database.Host))

	completer, err := summary.NewAnthropicClient(cfg.Anthropic, zlog)
	if err != nil {
		zlog.Fatal("summarization client configuration", zap.Error(err))
	}
	summarizer := summary.NewService(completer, cfg.Anthropic.MaxTokens, cfg.Anthropic.Temperature, zlog)

	store := buildCallStore(cfg, zlog)
	transport := buildCallTransport(cfg, zlog)
	callService := calls.NewService(store, transport, cfg.Twilio, zlog)

	srv := server.New(db, summarizer, callService, zlog)
	httpServer := srv.HTTPServer(cfg.HTTP)

	go func() {
		zlog.Info("http server listening", zap.Int("port", cfg.HTTP.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("http server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	zlog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		zlog.Error("shutdown error", zap.Error(err))
	}
}

func buildCallStore(cfg *config.Config, zlog *zap.Logger) calls.Store {
	if cfg.Twilio.CallStore == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		zlog.Info("using redis call store", zap.String("addr", cfg.Redis.Addr))
		return calls.NewRedisStore(client)
	}
	return calls.NewMemoryStore()
}

// buildCallTransport returns the real provider transport when credentials
// are configured, falling back to the stub so the rest of the pipeline
// stays exercisable in development.
func buildCallTransport(cfg *config.Config, zlog *zap.Logger) calls.Transport {
	transport, err := calls.NewTwilioTransport(cfg.Twilio, zlog)
	if err != nil {
		zlog.Warn("twilio not configured, using stub transport", zap.Error(err))
		return calls.NewStubTransport()
	}
	return transport
}
