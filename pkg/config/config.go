package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	JWTSecret    string

	// BusinessID scopes every catalog read and transaction write. Each
	// deployment serves exactly one business; multi-tenancy is out of scope.
	BusinessID string

	// CurrencyPrecision is the number of minor-unit digits money is rounded
	// to (2 for cents).
	CurrencyPrecision int32

	// RateLimit is a limiter formatted rate (e.g. "100-M" for 100 requests
	// per minute per client IP). Empty disables rate limiting.
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("BUSINESS_ID", "")
	viper.SetDefault("CURRENCY_PRECISION", 2)
	viper.SetDefault("RATE_LIMIT", "300-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.BusinessID = viper.GetString("BUSINESS_ID")
	if cfg.BusinessID == "" {
		log.Println("Warning: BUSINESS_ID environment variable not set.")
	}

	cfg.CurrencyPrecision = viper.GetInt32("CURRENCY_PRECISION")
	if cfg.CurrencyPrecision < 0 {
		log.Printf("Warning: Invalid CURRENCY_PRECISION (%d). Defaulting to 2.\n", cfg.CurrencyPrecision)
		cfg.CurrencyPrecision = 2
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	return cfg, nil
}
