package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// External exchange rate provider
	ExchangeRateAPIURL string
	ExchangeRateAPIKey string

	// Daily rate refresh schedule
	CurrencyUpdateHour     int
	CurrencyUpdateTimezone string
	RateFetchDelay         time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("EXCHANGE_RATE_API_URL", "https://api.exchangerate-api.com/v4")
	viper.SetDefault("EXCHANGE_RATE_API_KEY", "")
	viper.SetDefault("CURRENCY_UPDATE_HOUR", 6)
	viper.SetDefault("CURRENCY_UPDATE_TIMEZONE", "UTC")
	viper.SetDefault("RATE_FETCH_DELAY", "1s")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.ExchangeRateAPIURL = viper.GetString("EXCHANGE_RATE_API_URL")
	cfg.ExchangeRateAPIKey = viper.GetString("EXCHANGE_RATE_API_KEY")
	if cfg.ExchangeRateAPIKey == "" {
		log.Println("Warning: EXCHANGE_RATE_API_KEY not set. Rate refresh will use the keyless endpoint.")
	}

	cfg.CurrencyUpdateHour = viper.GetInt("CURRENCY_UPDATE_HOUR")
	if cfg.CurrencyUpdateHour < 0 || cfg.CurrencyUpdateHour > 23 {
		log.Printf("Warning: Invalid CURRENCY_UPDATE_HOUR (%d). Defaulting to 6.\n", cfg.CurrencyUpdateHour)
		cfg.CurrencyUpdateHour = 6
	}

	cfg.CurrencyUpdateTimezone = viper.GetString("CURRENCY_UPDATE_TIMEZONE")
	if _, err := time.LoadLocation(cfg.CurrencyUpdateTimezone); err != nil {
		log.Printf("Warning: Invalid CURRENCY_UPDATE_TIMEZONE ('%s'). Defaulting to UTC.\n", cfg.CurrencyUpdateTimezone)
		cfg.CurrencyUpdateTimezone = "UTC"
	}

	fetchDelayStr := viper.GetString("RATE_FETCH_DELAY")
	fetchDelay, err := time.ParseDuration(fetchDelayStr)
	if err != nil {
		fetchDelay = time.Second
		if fetchDelayStr != "" {
			log.Printf("Warning: Invalid value for RATE_FETCH_DELAY ('%s'). Defaulting to %s.\n", fetchDelayStr, fetchDelay)
		}
	}
	cfg.RateFetchDelay = fetchDelay

	return cfg, nil
}
