package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Payment provider (Stripe Connect)
	StripeClientID    string `mapstructure:"STRIPE_CLIENT_ID"`
	StripeSecretKey   string `mapstructure:"STRIPE_SECRET_KEY"`
	StripeRedirectURL string `mapstructure:"STRIPE_REDIRECT_URL"`

	// Accounting provider (Xero)
	XeroClientID     string `mapstructure:"XERO_CLIENT_ID"`
	XeroClientSecret string `mapstructure:"XERO_CLIENT_SECRET"`
	XeroRedirectURL  string `mapstructure:"XERO_REDIRECT_URL"`

	// Rate limit applied to provider-facing route groups, limiter format
	// (e.g. "60-M" for 60 requests per minute per IP).
	ProviderRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if
// present. Missing provider client credentials or database URL are fatal: the
// server cannot usefully start without them.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("JWT_ISSUER", "finsight-backend")
	viper.SetDefault("STRIPE_CLIENT_ID", "")
	viper.SetDefault("STRIPE_SECRET_KEY", "")
	viper.SetDefault("STRIPE_REDIRECT_URL", "")
	viper.SetDefault("XERO_CLIENT_ID", "")
	viper.SetDefault("XERO_CLIENT_SECRET", "")
	viper.SetDefault("XERO_REDIRECT_URL", "")
	viper.SetDefault("PROVIDER_RATE_LIMIT", "60-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("PGSQL_URL environment variable not set")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 24 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.StripeClientID = viper.GetString("STRIPE_CLIENT_ID")
	cfg.StripeSecretKey = viper.GetString("STRIPE_SECRET_KEY")
	cfg.StripeRedirectURL = viper.GetString("STRIPE_REDIRECT_URL")
	if cfg.StripeClientID == "" || cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("missing Stripe keys in environment (STRIPE_CLIENT_ID, STRIPE_SECRET_KEY)")
	}

	cfg.XeroClientID = viper.GetString("XERO_CLIENT_ID")
	cfg.XeroClientSecret = viper.GetString("XERO_CLIENT_SECRET")
	cfg.XeroRedirectURL = viper.GetString("XERO_REDIRECT_URL")
	if cfg.XeroClientID == "" || cfg.XeroClientSecret == "" {
		return nil, fmt.Errorf("missing Xero keys in environment (XERO_CLIENT_ID, XERO_CLIENT_SECRET)")
	}

	cfg.ProviderRateLimit = viper.GetString("PROVIDER_RATE_LIMIT")

	return cfg, nil
}
