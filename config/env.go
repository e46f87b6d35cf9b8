package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"techstore/ledger"
)

type Config struct {
	AppEnv   string
	Port     string
	LogLevel string

	JWTSecret            string
	SessionTTL           time.Duration
	SessionSweepInterval time.Duration
	DemoSeed             bool

	Pricing       ledger.Pricing
	CheckoutDelay time.Duration

	DBEnabled   bool
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	RedisURL      string
	RedisAddr     string
	RedisPassword string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	CloudinaryURL string
	AdminKeyHash  string
	OriginURL     string
}

// DefaultJWTSecret is the development fallback for JWT_SECRET.
const DefaultJWTSecret = "secret"

var ErrDefaultJWTSecret = errors.New("JWT_SECRET must be set in production")

var AppConfig *Config

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	defaults := ledger.DefaultPricing()

	AppConfig = &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		Port:     getEnv("APP_PORT", getEnv("PORT", "8082")),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		JWTSecret:            getEnv("JWT_SECRET", DefaultJWTSecret),
		SessionTTL:           getDuration("SESSION_TTL", 24*time.Hour),
		SessionSweepInterval: getDuration("SESSION_SWEEP_INTERVAL", time.Minute),
		DemoSeed:             getBool("DEMO_SEED", false),

		Pricing: ledger.Pricing{
			FreeShippingThreshold: getInt64("FREE_SHIPPING_THRESHOLD", defaults.FreeShippingThreshold),
			FlatShippingFee:       getInt64("FLAT_SHIPPING_FEE", defaults.FlatShippingFee),
			TaxRate:               getFloat("TAX_RATE", defaults.TaxRate),
		},
		CheckoutDelay: getDuration("CHECKOUT_DELAY", 2*time.Second),

		DBEnabled:   getBool("DB_ENABLED", os.Getenv("DATABASE_URL") != ""),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBName:      getEnv("DB_NAME", "techstore"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		SMTPHost: getEnv("SMTP_HOST", ""),
		SMTPPort: int(getInt64("SMTP_PORT", 587)),
		SMTPUser: getEnv("SMTP_USER", ""),
		SMTPPass: getEnv("SMTP_PASS", ""),
		SMTPFrom: getEnv("SMTP_FROM", "no-reply@techstore.local"),

		CloudinaryURL: getEnv("CLOUDINARY_URL", ""),
		AdminKeyHash:  getEnv("ADMIN_KEY_HASH", ""),
		OriginURL:     getEnv("ORIGIN_URL", ""),
	}

	if AppConfig.JWTSecret == DefaultJWTSecret && !AppConfig.IsProduction() {
		log.Println("Warning: JWT_SECRET not set, session tokens are signed with the development default")
	}

	return AppConfig
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Validate rejects settings the service must not start with.
func (c *Config) Validate() error {
	if c.IsProduction() && c.JWTSecret == DefaultJWTSecret {
		return ErrDefaultJWTSecret
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt64(key string, defaultValue int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		log.Printf("Warning: invalid %s=%q, using %d", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getFloat(key string, defaultValue float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		log.Printf("Warning: invalid %s=%q, using %v", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getBool(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %v", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v < 0 {
		log.Printf("Warning: invalid %s=%q, using %s", key, raw, defaultValue)
		return defaultValue
	}
	return v
}
