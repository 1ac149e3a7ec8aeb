// Package config loads server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultAPIToken = "dev-token"
	defaultGRPCPort = 8080
)

// Config holds server configuration
type Config struct {
	DBConnStr string
	APIToken  string
	GRPCPort  int
	LogEnv    string

	// Default objective seeded at startup, disabled when DefaultTarget is empty
	DefaultTarget       string
	DefaultTargetYears  float64
	DefaultInterestRate float64
}

// Load reads configuration from environment variables, after loading a .env file if present
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBConnStr: getEnv("DB_CONN_STR", ""),
		APIToken:  getEnv("API_TOKEN", defaultAPIToken),
		GRPCPort:  getEnvAsInt("GRPC_PORT", defaultGRPCPort),
		LogEnv:    getEnv("LOG_ENV", getEnv("APP_ENV", "development")),

		DefaultTarget:       getEnv("OBJECTIVE_TARGET_AMOUNT", ""),
		DefaultTargetYears:  getEnvAsFloat("OBJECTIVE_TARGET_YEARS", 10),
		DefaultInterestRate: getEnvAsFloat("OBJECTIVE_INTEREST_RATE", 5),
	}

	// If explicit string is missing, build it from individual vars (Docker friendly)
	if cfg.DBConnStr == "" {
		cfg.DBConnStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", "postgres"),
			getEnv("DB_NAME", "wealthflow"),
			getEnv("DB_SSL_MODE", "disable"),
		)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration is present
func (c *Config) Validate() error {
	if c.APIToken == "" {
		return errors.New("API_TOKEN must not be empty")
	}
	if c.GRPCPort <= 0 || c.GRPCPort > 65535 {
		return fmt.Errorf("invalid GRPC_PORT: %d", c.GRPCPort)
	}
	return nil
}

// SeedsDefaultObjective reports whether a default objective is configured
func (c *Config) SeedsDefaultObjective() bool {
	return c.DefaultTarget != ""
}

// GRPCAddr returns the listen address of the gRPC server
func (c *Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
