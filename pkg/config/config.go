package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Storage    StorageConfig
	Search     SearchConfig
	Auth       AuthConfig
	Discussion DiscussionConfig
	Realtime   RealtimeConfig
	Dashboard  DashboardConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string        `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string      `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `envconfig:"DB_HOST" default:"localhost"`
	Port            string        `envconfig:"DB_PORT" default:"5432"`
	User            string        `envconfig:"DB_USER" default:"postgres"`
	Password        string        `envconfig:"DB_PASSWORD" default:"postgres"`
	Name            string        `envconfig:"DB_NAME" default:"idea_hub"`
	SSLMode         string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns        int           `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns        int           `envconfig:"DB_MIN_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnectTimeout  time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"30s"`
	AutoMigrate     bool          `envconfig:"DB_AUTO_MIGRATE" default:"false"`
	MigrationsDir   string        `envconfig:"DB_MIGRATIONS_DIR" default:"migrations"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"false"`
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Enabled         bool   `envconfig:"STORAGE_ENABLED" default:"false"`
	Endpoint        string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"idea-hub"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
	PublicURL       string `envconfig:"STORAGE_PUBLIC_URL"`
	MaxUploadBytes  int64  `envconfig:"STORAGE_MAX_UPLOAD_BYTES" default:"20971520"`
}

// SearchConfig holds Elasticsearch configuration. Search is disabled when no address is set.
type SearchConfig struct {
	Addresses []string `envconfig:"ELASTICSEARCH_ADDRESSES"`
	Username  string   `envconfig:"ELASTICSEARCH_USERNAME"`
	Password  string   `envconfig:"ELASTICSEARCH_PASSWORD"`
	Index     string   `envconfig:"ELASTICSEARCH_INDEX" default:"ideas"`
}

// AuthConfig holds token verification settings
type AuthConfig struct {
	JWTSecret   string        `envconfig:"JWT_SECRET" default:"dev-secret-change-in-production"`
	Issuer      string        `envconfig:"JWT_ISSUER"`
	TokenExpiry time.Duration `envconfig:"JWT_DEV_TOKEN_EXPIRY" default:"24h"`
}

// DiscussionConfig holds the expiry sweeper settings
type DiscussionConfig struct {
	SweepInterval time.Duration `envconfig:"DISCUSSION_SWEEP_INTERVAL" default:"1m"`
	SweepBatch    int           `envconfig:"DISCUSSION_SWEEP_BATCH" default:"100"`
}

// RealtimeConfig holds websocket hub settings
type RealtimeConfig struct {
	Channel      string        `envconfig:"REALTIME_CHANNEL" default:"idea-hub:events"`
	WriteTimeout time.Duration `envconfig:"REALTIME_WRITE_TIMEOUT" default:"10s"`
	PingInterval time.Duration `envconfig:"REALTIME_PING_INTERVAL" default:"30s"`
}

// DashboardConfig holds dashboard cache settings
type DashboardConfig struct {
	CacheTTL time.Duration `envconfig:"DASHBOARD_CACHE_TTL" default:"1m"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	return FromEnv()
}

// FromEnv fills the config from the process environment only
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.IsProduction() && c.Auth.JWTSecret == "dev-secret-change-in-production" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	if c.IsProduction() && c.Database.AutoMigrate {
		return fmt.Errorf("DB_AUTO_MIGRATE must be disabled in production, run cmd/migrate instead")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	if c.Discussion.SweepInterval <= 0 {
		return fmt.Errorf("DISCUSSION_SWEEP_INTERVAL must be positive")
	}
	if c.Discussion.SweepBatch <= 0 {
		return fmt.Errorf("DISCUSSION_SWEEP_BATCH must be positive")
	}
	if c.Storage.Enabled && c.Storage.BucketName == "" {
		return fmt.Errorf("STORAGE_BUCKET is required when storage is enabled")
	}
	return nil
}

// IsProduction reports whether the server runs in production
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// SearchEnabled reports whether an Elasticsearch cluster is configured
func (c *Config) SearchEnabled() bool {
	return len(c.Search.Addresses) > 0
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
