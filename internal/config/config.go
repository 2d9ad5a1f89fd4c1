package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Server   ServerConfig
	Database DatabaseConfig
	Kafka    KafkaConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port string `env:"SERVER_PORT" envDefault:"8080"`
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host          string `env:"DB_HOST" envDefault:"localhost"`
	Port          string `env:"DB_PORT" envDefault:"5432"`
	User          string `env:"DB_USER" envDefault:"postgres"`
	Password      string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName        string `env:"DB_NAME" envDefault:"tradeledger"`
	SSLMode       string `env:"DB_SSLMODE" envDefault:"disable"`
	MigrationsDir string `env:"DB_MIGRATIONS_DIR" envDefault:"db/migrations"`
}

// KafkaConfig holds Kafka configuration. Events are skipped when disabled.
type KafkaConfig struct {
	Enabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	Brokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	Topic   string   `env:"KAFKA_TOPIC" envDefault:"ledger-events"`
}

// Load reads configuration from the environment, with .env as a fallback
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// ConnectionString returns the PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	return "postgres://" + d.User + ":" + d.Password + "@" + d.Host + ":" + d.Port + "/" + d.DBName + "?sslmode=" + d.SSLMode
}

// Addr returns the host:port the HTTP server binds to
func (s *ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}
