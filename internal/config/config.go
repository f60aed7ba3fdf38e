// internal/config/config.go
// Configuration management using environment variables and optional config files

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Rendezvous  RendezvousConfig
	Admin       AdminConfig
	Database    DatabaseConfig
	External    ExternalConfig
	Features    FeatureFlags
}

// RendezvousConfig contains the two client-facing UDP listener addresses and
// the secrets used to authenticate against them. Framing and fragmentation on
// these sockets are the external rendezvous protocol's concern; this process
// only owns dispatch and session bookkeeping on top of it.
type RendezvousConfig struct {
	AuthAddr       string
	SecureAddr     string
	KerberosKey    string // shared secret for the secure endpoint's ticket scheme
	TicketLifetime time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// AdminConfig contains the moderation/observability side-channel settings
type AdminConfig struct {
	Addr       string
	APIKey     string
	CORSOrigin string
}

// DatabaseConfig contains all persistence connection settings
type DatabaseConfig struct {
	Mongo MongoConfig
	Redis RedisConfig
}

// MongoConfig contains MongoDB-specific settings
type MongoConfig struct {
	URI           string
	Database      string
	SelectTimeout time.Duration
	Collections   CollectionNames
}

// CollectionNames lets collection names be overridden per deployment
type CollectionNames struct {
	Gatherings      string
	Tournaments     string
	TournamentScore string
	RankingScore    string
	CommonData      string
	Datastore       string
	Sessions        string
	Counters        string
	ServerStatus    string
}

func defaultCollectionNames() CollectionNames {
	return CollectionNames{
		Gatherings:      "gatherings",
		Tournaments:     "tournaments",
		TournamentScore: "tournament_scores",
		RankingScore:    "ranking_scores",
		CommonData:      "common_data",
		Datastore:       "datastore",
		Sessions:        "sessions",
		Counters:        "counters",
		ServerStatus:    "server_status",
	}
}

// RedisConfig contains counter-store settings
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// ExternalConfig contains third-party/out-of-scope collaborator endpoints
type ExternalConfig struct {
	AccountServiceURL  string
	AccountServicePID  string
	AccountServiceKey  string
	FriendsServiceURL  string
	ObjectStoreBucket  string
	ObjectStoreCDNHost string
	ObjectStoreKey     string
	ObjectStoreSecret  string
}

// FeatureFlags holds feature toggles loaded from the environment. No code
// path reads them: the /fleet stream is registered whatever EnableAdminPush
// says, and MaintenanceMode does not affect admission
type FeatureFlags struct {
	EnableAdminPush bool // gorilla/websocket fleet-status stream
	MaintenanceMode bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := &Config{
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),
		Rendezvous: RendezvousConfig{
			AuthAddr:       getEnvOrDefault("RENDEZVOUS_AUTH_ADDR", ":60000"),
			SecureAddr:     getEnvOrDefault("RENDEZVOUS_SECURE_ADDR", ":60001"),
			KerberosKey:    getEnvOrDefault("RENDEZVOUS_KERBEROS_KEY", ""),
			TicketLifetime: getDurationOrDefault("RENDEZVOUS_TICKET_LIFETIME", 1*time.Hour),
			ReadTimeout:    getDurationOrDefault("RENDEZVOUS_READ_TIMEOUT", 5*time.Second),
			WriteTimeout:   getDurationOrDefault("RENDEZVOUS_WRITE_TIMEOUT", 5*time.Second),
		},
		Admin: AdminConfig{
			Addr:       getEnvOrDefault("ADMIN_ADDR", ":60002"),
			APIKey:     getEnvOrDefault("ADMIN_API_KEY", ""),
			CORSOrigin: getEnvOrDefault("ADMIN_CORS_ORIGIN", "*"),
		},
		Database: DatabaseConfig{
			Mongo: MongoConfig{
				URI:           getEnvOrDefault("MONGO_URI", ""),
				Database:      getEnvOrDefault("MONGO_DATABASE", "trackday"),
				SelectTimeout: getDurationOrDefault("MONGO_SELECT_TIMEOUT", 3*time.Second),
				Collections:   defaultCollectionNames(),
			},
			Redis: RedisConfig{
				Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getIntOrDefault("REDIS_DB", 0),
			},
		},
		External: ExternalConfig{
			AccountServiceURL:  getEnvOrDefault("ACCOUNT_SERVICE_URL", ""),
			AccountServicePID:  getEnvOrDefault("ACCOUNT_SERVICE_PID", ""),
			AccountServiceKey:  getEnvOrDefault("ACCOUNT_SERVICE_KEY", ""),
			FriendsServiceURL:  getEnvOrDefault("FRIENDS_SERVICE_URL", ""),
			ObjectStoreBucket:  getEnvOrDefault("OBJECT_STORE_BUCKET", ""),
			ObjectStoreCDNHost: getEnvOrDefault("OBJECT_STORE_CDN_HOST", ""),
			ObjectStoreKey:     getEnvOrDefault("OBJECT_STORE_KEY", ""),
			ObjectStoreSecret:  getEnvOrDefault("OBJECT_STORE_SECRET", ""),
		},
		Features: FeatureFlags{
			EnableAdminPush: getBoolOrDefault("ENABLE_ADMIN_PUSH", true),
			MaintenanceMode: getBoolOrDefault("MAINTENANCE_MODE", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration is present
func (c *Config) Validate() error {
	if c.Database.Mongo.URI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	if c.Rendezvous.KerberosKey == "" {
		return fmt.Errorf("RENDEZVOUS_KERBEROS_KEY is required")
	}
	if c.Admin.APIKey == "" {
		return fmt.Errorf("ADMIN_API_KEY is required")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
