package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`

	// Vehicle registry (DVLA-style) lookup.
	RegistryAPIURL string `mapstructure:"REGISTRY_API_URL"`
	RegistryAPIKey string `mapstructure:"REGISTRY_API_KEY"`

	// Payment gateways.
	PaymentProvider string `mapstructure:"PAYMENT_PROVIDER"` // "stripe" or "paypal"
	StripeKey       string `mapstructure:"STRIPE_KEY"`
	PayPalBaseURL   string `mapstructure:"PAYPAL_BASE_URL"`
	PayPalClientID  string `mapstructure:"PAYPAL_CLIENT_ID"`
	PayPalSecret    string `mapstructure:"PAYPAL_SECRET"`

	// Booking window and pricing knobs.
	MaxAdvanceDays int     `mapstructure:"MAX_ADVANCE_DAYS"`
	TierMultiplier float64 `mapstructure:"TIER_MULTIPLIER"`
	BasePostcode   string  `mapstructure:"BASE_POSTCODE"`
	Currency       string  `mapstructure:"CURRENCY"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("REGISTRY_API_URL", "https://driver-vehicle-licensing.api.gov.uk/vehicle-enquiry/v1/vehicles")
	viper.SetDefault("PAYMENT_PROVIDER", "stripe")
	viper.SetDefault("PAYPAL_BASE_URL", "https://api-m.sandbox.paypal.com")
	viper.SetDefault("MAX_ADVANCE_DAYS", 30)
	viper.SetDefault("TIER_MULTIPLIER", 1.0)
	viper.SetDefault("BASE_POSTCODE", "BN1")
	viper.SetDefault("CURRENCY", "GBP")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
