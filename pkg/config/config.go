package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	RedisURL     string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Requests per minute per client IP.
	RateLimitPerMinute int

	// Transaction settings
	ReferencePrefix string
	DefaultCurrency string
	CallbackBaseURL string

	// Gateway credentials
	PaystackSecretKey  string
	PaystackBaseURL    string
	StripeSecretKey    string
	PaypalClientID     string
	PaypalClientSecret string
	PaypalBaseURL      string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "payvault")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 120)
	viper.SetDefault("TXN_REFERENCE_PREFIX", "txn")
	viper.SetDefault("DEFAULT_CURRENCY", "NGN")
	viper.SetDefault("CALLBACK_BASE_URL", "http://localhost:8080")
	viper.SetDefault("PAYSTACK_SECRET_KEY", "")
	viper.SetDefault("PAYSTACK_BASE_URL", "https://api.paystack.co")
	viper.SetDefault("STRIPE_SECRET_KEY", "")
	viper.SetDefault("PAYPAL_CLIENT_ID", "")
	viper.SetDefault("PAYPAL_CLIENT_SECRET", "")
	viper.SetDefault("PAYPAL_BASE_URL", "https://api-m.sandbox.paypal.com")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to 1h.\n", jwtExpiryStr)
		jwtExpiry = time.Hour
	}
	cfg.JWTExpiryDuration = jwtExpiry

	cfg.RateLimitPerMinute = viper.GetInt("RATE_LIMIT_PER_MINUTE")
	if cfg.RateLimitPerMinute <= 0 {
		cfg.RateLimitPerMinute = 120
	}

	cfg.ReferencePrefix = viper.GetString("TXN_REFERENCE_PREFIX")
	cfg.DefaultCurrency = viper.GetString("DEFAULT_CURRENCY")
	cfg.CallbackBaseURL = viper.GetString("CALLBACK_BASE_URL")

	cfg.PaystackSecretKey = viper.GetString("PAYSTACK_SECRET_KEY")
	cfg.PaystackBaseURL = viper.GetString("PAYSTACK_BASE_URL")
	cfg.StripeSecretKey = viper.GetString("STRIPE_SECRET_KEY")
	cfg.PaypalClientID = viper.GetString("PAYPAL_CLIENT_ID")
	cfg.PaypalClientSecret = viper.GetString("PAYPAL_CLIENT_SECRET")
	cfg.PaypalBaseURL = viper.GetString("PAYPAL_BASE_URL")

	return cfg, nil
}
