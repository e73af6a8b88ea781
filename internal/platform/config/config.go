package config

import (
	"log"
	"strings"
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

	// Auth: tokens are issued by the platform's identity service and only
	// verified here.
	JWTSecret string
	JWTIssuer string

	// Calling provider
	CallingAPIURL      string
	CallingAPIKey      string
	CallingTokenExpiry time.Duration

	// Notification webhook; events go to the log when unset.
	NotifyWebhookURL string

	// Attachment storage
	AttachmentDir        string
	AttachmentPublicBase string

	// CORS origins permitted to call the API.
	AllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "orbitcommerce-identity")
	viper.SetDefault("CALLING_API_URL", "https://api.calling.example.com/v1")
	viper.SetDefault("CALLING_API_KEY", "")
	viper.SetDefault("CALLING_TOKEN_EXPIRY", "15m")
	viper.SetDefault("NOTIFY_WEBHOOK_URL", "")
	viper.SetDefault("ATTACHMENT_DIR", "./data/attachments")
	viper.SetDefault("ATTACHMENT_PUBLIC_BASE", "/api/v1/attachments/files")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.CallingAPIURL = viper.GetString("CALLING_API_URL")
	cfg.CallingAPIKey = viper.GetString("CALLING_API_KEY")
	if cfg.CallingAPIKey == "" {
		log.Println("Warning: CALLING_API_KEY not set. Virtual meetings will fail to book.")
	}

	expiryStr := viper.GetString("CALLING_TOKEN_EXPIRY")
	expiry, err := time.ParseDuration(expiryStr)
	if err != nil {
		expiry = 15 * time.Minute
		log.Printf("Warning: Invalid value for CALLING_TOKEN_EXPIRY ('%s'). Defaulting to %s.\n", expiryStr, expiry.String())
	}
	cfg.CallingTokenExpiry = expiry

	cfg.NotifyWebhookURL = viper.GetString("NOTIFY_WEBHOOK_URL")
	cfg.AttachmentDir = viper.GetString("ATTACHMENT_DIR")
	cfg.AttachmentPublicBase = viper.GetString("ATTACHMENT_PUBLIC_BASE")

	cfg.AllowedOrigins = strings.Split(viper.GetString("ALLOWED_ORIGINS"), ",")
	for i, origin := range cfg.AllowedOrigins {
		cfg.AllowedOrigins[i] = strings.TrimSpace(origin)
	}

	return cfg, nil
}
