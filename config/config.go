// Package config provides configuration management and environment variable handling for the application
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds all application configuration
type Config struct {
	Env      string         `envconfig:"APP_ENV" default:"development"`
	Database DatabaseConfig `envconfig:"DB"`
	Server   ServerConfig   `envconfig:"SERVER"`
	JWT      JWTConfig      `envconfig:"JWT"`
	Cache    CacheConfig    `envconfig:"REDIS"`
	Logging  LoggingConfig  `envconfig:"LOG"`
	System   SystemConfig   `envconfig:"SYSTEM"`
}

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	Host            string        `envconfig:"HOST" default:"localhost"`
	Port            int           `envconfig:"PORT" default:"5432"`
	Name            string        `envconfig:"NAME" default:"mailhub"`
	User            string        `envconfig:"USER" default:"mailhub"`
	Password        string        `envconfig:"PASSWORD"`
	SSLMode         string        `envconfig:"SSL_MODE" default:"disable"`
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"30m"`
	ConnMaxIdleTime time.Duration `envconfig:"CONN_MAX_IDLE_TIME" default:"10m"`
}

// DSN builds the PostgreSQL connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host               string        `envconfig:"HOST" default:"0.0.0.0"`
	Port               int           `envconfig:"PORT" default:"8080"`
	ShutdownTimeout    time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
	CORSAllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

// Address returns the listen address
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig holds token signing settings
type JWTConfig struct {
	SecretKey       string        `envconfig:"SECRET_KEY"`
	PrivateKey      string        `envconfig:"PRIVATE_KEY"`
	PublicKey       string        `envconfig:"PUBLIC_KEY"`
	UseRSAKeys      bool          `envconfig:"USE_RSA_KEYS" default:"false"`
	AccessTokenTTL  time.Duration `envconfig:"ACCESS_TOKEN_TTL" default:"24h"`
	RefreshTokenTTL time.Duration `envconfig:"REFRESH_TOKEN_TTL" default:"168h"`
	Issuer          string        `envconfig:"ISSUER" default:"mailhub"`
	Audience        string        `envconfig:"AUDIENCE" default:"mailhub-api"`
}

// CacheConfig holds Redis settings for token revocation
type CacheConfig struct {
	Host     string `envconfig:"HOST" default:"localhost"`
	Port     int    `envconfig:"PORT" default:"6379"`
	Password string `envconfig:"PASSWORD"`
	DB       int    `envconfig:"DB" default:"0"`
}

// Addr returns the Redis address
func (c CacheConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoggingConfig holds structured logging settings
type LoggingConfig struct {
	Level      string `envconfig:"LEVEL" default:"info"`
	File       string `envconfig:"FILE"`
	MaxSizeMB  int    `envconfig:"MAX_SIZE_MB" default:"100"`
	MaxBackups int    `envconfig:"MAX_BACKUPS" default:"5"`
	MaxAgeDays int    `envconfig:"MAX_AGE_DAYS" default:"30"`
	Compress   bool   `envconfig:"COMPRESS" default:"true"`
}

// SystemConfig holds bootstrap entities ensured at startup
type SystemConfig struct {
	// DefaultOwnerEmail identifies the fallback owner account created on
	// boot; records imported without an owner are assigned to it.
	DefaultOwnerEmail    string `envconfig:"DEFAULT_OWNER_EMAIL" default:"admin@mailhub.local"`
	DefaultOwnerPassword string `envconfig:"DEFAULT_OWNER_PASSWORD"`
	ManagerGroupName     string `envconfig:"MANAGER_GROUP_NAME" default:"managers"`
}

// Load reads configuration from .env (when present) and the environment
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("MAILHUB", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks required settings
func (c *Config) Validate() error {
	if c.JWT.UseRSAKeys {
		if c.JWT.PrivateKey == "" || c.JWT.PublicKey == "" {
			return fmt.Errorf("JWT RSA keys are required when MAILHUB_JWT_USE_RSA_KEYS is set")
		}
	} else if c.JWT.SecretKey == "" {
		return fmt.Errorf("MAILHUB_JWT_SECRET_KEY is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("MAILHUB_DB_NAME is required")
	}
	return nil
}

// IsProduction reports whether the app runs in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// SetupLogger configures the global zerolog logger. With a log file set,
// output rotates via lumberjack; otherwise it goes to stderr.
func (c *Config) SetupLogger() {
	level, err := zerolog.ParseLevel(c.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if c.Logging.File != "" {
		log.Logger = log.Output(&lumberjack.Logger{
			Filename:   c.Logging.File,
			MaxSize:    c.Logging.MaxSizeMB,
			MaxBackups: c.Logging.MaxBackups,
			MaxAge:     c.Logging.MaxAgeDays,
			Compress:   c.Logging.Compress,
		})
	}
}
