package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AuthConfig holds the token-signing configuration.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

// Config holds application configuration.
type Config struct {
	DatabaseURL string
	// Pool bounds for the pgx pool; zero keeps the pgxpool defaults.
	DBMaxConns   int32
	DBMinConns   int32
	Port         string
	IsProduction bool
	UploadDir    string
	OCRBinary    string
	OCRLang      string
	Auth         AuthConfig
	// Rate limit applied to the login endpoints, limiter format ("10-M").
	LoginRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("DB_MAX_CONNS", 0)
	viper.SetDefault("DB_MIN_CONNS", 0)
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("OCR_BINARY", "tesseract")
	viper.SetDefault("OCR_LANG", "jpn")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("LOGIN_RATE_LIMIT", "10-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.DBMaxConns = viper.GetInt32("DB_MAX_CONNS")
	cfg.DBMinConns = viper.GetInt32("DB_MIN_CONNS")
	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.UploadDir = viper.GetString("UPLOAD_DIR")
	cfg.OCRBinary = viper.GetString("OCR_BINARY")
	cfg.OCRLang = viper.GetString("OCR_LANG")
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")

	cfg.Auth.SigningKey = viper.GetString("JWT_SECRET")
	if cfg.Auth.SigningKey == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	ttlStr := viper.GetString("JWT_EXPIRY_DURATION")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		ttl = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION (%q). Defaulting to %s.\n", ttlStr, ttl)
	}
	cfg.Auth.TokenTTL = ttl

	return cfg, nil
}
