// cmd/server/main.go
// Entry point: loads configuration, connects to storage, wires the server
// and runs it until an interrupt signal arrives.

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trackday-server/internal/config"
	"trackday-server/internal/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := setupLogger(cfg.Environment)

	db, err := initializeDatabase(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to initialize storage: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())

	srv, err := New(ctx, cfg, db, logger)
	if err != nil {
		logger.Fatalf("failed to build server: %v", err)
	}

	srv.Start(ctx)
	logger.Printf("trackday-server running (admin %s); rendezvous auth %s / secure %s await an external transport",
		cfg.Admin.Addr, cfg.Rendezvous.AuthAddr, cfg.Rendezvous.SecureAddr)

	gracefulShutdown(cancel, srv, logger)
}

func initializeDatabase(cfg *config.Config, logger *log.Logger) (*database.Connections, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return database.Initialize(ctx, database.Config{
		Mongo: database.MongoConfig{
			URI:                    cfg.Database.Mongo.URI,
			Database:               cfg.Database.Mongo.Database,
			ServerSelectionTimeout: cfg.Database.Mongo.SelectTimeout,
		},
		Redis: database.RedisConfig{
			Addr:     cfg.Database.Redis.Addr,
			Password: cfg.Database.Redis.Password,
			DB:       cfg.Database.Redis.DB,
		},
	}, logger)
}

func setupLogger(env string) *log.Logger {
	logger := log.New(os.Stdout, "[trackday-server] ", log.LstdFlags|log.Lshortfile)
	return logger
}

func gracefulShutdown(cancel context.CancelFunc, srv *Server, logger *log.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Println("shutting down...")
	cancel()

	ctx, done := context.WithTimeout(context.Background(), 30*time.Second)
	defer done()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("admin server forced to shutdown: %v", err)
	}

	logger.Println("shutdown complete")
}
