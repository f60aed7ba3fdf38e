// internal/database/connections.go
// This file manages all persistence connections and provides a unified interface
// for the application to access the document store and the counter store.

package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connections holds all persistence connections used by the application
type Connections struct {
	Mongo  *mongo.Database
	Redis  *redis.Client
	logger *log.Logger
}

// Config holds configuration for all databases
type Config struct {
	Mongo MongoConfig
	Redis RedisConfig
}

// MongoConfig contains MongoDB connection parameters
type MongoConfig struct {
	URI                    string
	Database               string
	ServerSelectionTimeout time.Duration
}

// RedisConfig contains counter-store connection parameters
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Initialize creates and configures all persistence connections
func Initialize(ctx context.Context, cfg Config, logger *log.Logger) (*Connections, error) {
	conn := &Connections{logger: logger}

	if err := conn.initMongo(ctx, cfg.Mongo); err != nil {
		return nil, fmt.Errorf("failed to initialize MongoDB: %w", err)
	}

	if err := conn.initRedis(ctx, cfg.Redis); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize counter store: %w", err)
	}

	logger.Println("All persistence connections established successfully")
	return conn, nil
}

// initMongo establishes the MongoDB connection. The selection timeout bounds
// every call the persistence adapter makes; defaults to a 3-second timeout.
func (c *Connections) initMongo(ctx context.Context, cfg MongoConfig) error {
	timeout := cfg.ServerSelectionTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	c.Mongo = client.Database(cfg.Database)
	c.logger.Println("MongoDB connection established")
	return nil
}

// initRedis establishes the counter-store connection
func (c *Connections) initRedis(ctx context.Context, cfg RedisConfig) error {
	c.Redis = redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	if err := c.Redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping counter store: %w", err)
	}

	c.logger.Println("counter store connection established")
	return nil
}

// Close gracefully closes all persistence connections
func (c *Connections) Close() {
	if c.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Mongo.Client().Disconnect(ctx); err != nil {
			c.logger.Printf("Error closing MongoDB connection: %v", err)
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Printf("Error closing counter store connection: %v", err)
		}
	}

	c.logger.Println("All persistence connections closed")
}

// HealthCheck verifies all persistence connections are healthy
func (c *Connections) HealthCheck(ctx context.Context) error {
	if err := c.Mongo.Client().Ping(ctx, nil); err != nil {
		return fmt.Errorf("MongoDB health check failed: %w", err)
	}

	if err := c.Redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("counter store health check failed: %w", err)
	}

	return nil
}
