package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	PostgreSQL PostgreSQLConfig
	State      StateConfig
	Server     ServerConfig
	Search     SearchConfig
	Scoring    ScoringConfig
	Recs       RecsConfig
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
}

// StateConfig holds local state store configuration
type StateConfig struct {
	SQLitePath string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
}

// SearchConfig holds listing query configuration
type SearchConfig struct {
	DefaultLimit  int
	MaxLimit      int
	SnapshotLimit int
}

// ScoringConfig holds quality score combination weights
type ScoringConfig struct {
	WeightRating       float64
	WeightPrice        float64
	WeightDemand       float64
	WeightAvailability float64
}

// RecsConfig holds recommendation ranking configuration
type RecsConfig struct {
	DefaultLimit int
	MaxLimit     int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "property_listings"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 25),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 5),
		},
		State: StateConfig{
			SQLitePath: getEnv("STATE_DB_PATH", "data/state.db"),
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Search: SearchConfig{
			DefaultLimit:  getEnvAsInt("SEARCH_DEFAULT_LIMIT", 20),
			MaxLimit:      getEnvAsInt("SEARCH_MAX_LIMIT", 100),
			SnapshotLimit: getEnvAsInt("SEARCH_SNAPSHOT_LIMIT", 200),
		},
		Scoring: ScoringConfig{
			WeightRating:       getEnvAsFloat("SCORE_WEIGHT_RATING", 0.35),
			WeightPrice:        getEnvAsFloat("SCORE_WEIGHT_PRICE", 0.25),
			WeightDemand:       getEnvAsFloat("SCORE_WEIGHT_DEMAND", 0.25),
			WeightAvailability: getEnvAsFloat("SCORE_WEIGHT_AVAILABILITY", 0.15),
		},
		Recs: RecsConfig{
			DefaultLimit: getEnvAsInt("RECS_DEFAULT_LIMIT", 6),
			MaxLimit:     getEnvAsInt("RECS_MAX_LIMIT", 20),
		},
	}

	return cfg, nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}
