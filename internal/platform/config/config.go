package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	RedisAddr         string
	ReconcileSchedule string
	WorkerConcurrency int
	IsProduction      bool
	EnableDBCheck     bool
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("REDIS_ADDR", "127.0.0.1:6379")
	viper.SetDefault("RECONCILE_CRON", "0 3 * * *")
	viper.SetDefault("WORKER_CONCURRENCY", 10)
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.ReconcileSchedule = viper.GetString("RECONCILE_CRON")

	cfg.WorkerConcurrency = viper.GetInt("WORKER_CONCURRENCY")
	if cfg.WorkerConcurrency <= 0 {
		cfg.WorkerConcurrency = 10
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	return cfg, nil
}
