package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration. It is loaded once at startup and is
// read-only afterwards; nothing mutates it at runtime.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Token signing. Access and refresh secrets are deliberately distinct:
	// sharing one secret across both kinds lets a refresh token impersonate an
	// access token.
	AccessTokenSecret    string
	AccessTokenDuration  time.Duration
	RefreshTokenSecret   string
	RefreshTokenDuration time.Duration
	TokenIssuer          string

	// Cookie transport for the token pair.
	AccessTokenCookieName  string
	RefreshTokenCookieName string
	CookieDomain           string

	// Origins allowed to send cookie-authenticated requests.
	CORSAllowedOrigins []string

	// Upper bound applied to every user-record store call.
	StoreTimeout time.Duration

	// Media storage (S3-compatible).
	S3Region        string
	S3Bucket        string
	S3BaseEndpoint  string
	S3AccessKey     string
	S3SecretKey     string
	MediaPublicBase string

	// Channel profile cache.
	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("ACCESS_TOKEN_SECRET", "insecure-access-secret-change-me")
	viper.SetDefault("ACCESS_TOKEN_EXPIRY_DURATION", "1h")
	viper.SetDefault("REFRESH_TOKEN_SECRET", "insecure-refresh-secret-change-me")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "240h")
	viper.SetDefault("TOKEN_ISSUER", "vidora-backend")
	viper.SetDefault("ACCESS_TOKEN_COOKIE_NAME", "accessToken")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_NAME", "refreshToken")
	viper.SetDefault("COOKIE_DOMAIN", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("STORE_TIMEOUT", "5s")
	viper.SetDefault("S3_REGION", "us-east-1")
	viper.SetDefault("S3_BUCKET", "vidora-media")
	viper.SetDefault("S3_BASE_ENDPOINT", "")
	viper.SetDefault("S3_ACCESS_KEY", "")
	viper.SetDefault("S3_SECRET_KEY", "")
	viper.SetDefault("MEDIA_PUBLIC_BASE_URL", "")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("CACHE_TTL", "60s")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.AccessTokenSecret = viper.GetString("ACCESS_TOKEN_SECRET")
	if cfg.AccessTokenSecret == "insecure-access-secret-change-me" {
		log.Println("Warning: ACCESS_TOKEN_SECRET not set. Using default insecure key.")
	}
	cfg.RefreshTokenSecret = viper.GetString("REFRESH_TOKEN_SECRET")
	if cfg.RefreshTokenSecret == "insecure-refresh-secret-change-me" {
		log.Println("Warning: REFRESH_TOKEN_SECRET not set. Using default insecure key.")
	}

	cfg.AccessTokenDuration = parseDurationOr(viper.GetString("ACCESS_TOKEN_EXPIRY_DURATION"), time.Hour, "ACCESS_TOKEN_EXPIRY_DURATION")
	cfg.RefreshTokenDuration = parseDurationOr(viper.GetString("REFRESH_TOKEN_EXPIRY_DURATION"), 10*24*time.Hour, "REFRESH_TOKEN_EXPIRY_DURATION")
	cfg.StoreTimeout = parseDurationOr(viper.GetString("STORE_TIMEOUT"), 5*time.Second, "STORE_TIMEOUT")
	cfg.CacheTTL = parseDurationOr(viper.GetString("CACHE_TTL"), time.Minute, "CACHE_TTL")

	cfg.TokenIssuer = viper.GetString("TOKEN_ISSUER")
	cfg.AccessTokenCookieName = viper.GetString("ACCESS_TOKEN_COOKIE_NAME")
	cfg.RefreshTokenCookieName = viper.GetString("REFRESH_TOKEN_COOKIE_NAME")
	cfg.CookieDomain = viper.GetString("COOKIE_DOMAIN")
	cfg.CORSAllowedOrigins = splitAndTrim(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.S3Region = viper.GetString("S3_REGION")
	cfg.S3Bucket = viper.GetString("S3_BUCKET")
	cfg.S3BaseEndpoint = viper.GetString("S3_BASE_ENDPOINT")
	cfg.S3AccessKey = viper.GetString("S3_ACCESS_KEY")
	cfg.S3SecretKey = viper.GetString("S3_SECRET_KEY")
	cfg.MediaPublicBase = viper.GetString("MEDIA_PUBLIC_BASE_URL")
	if cfg.S3AccessKey == "" || cfg.S3SecretKey == "" {
		log.Println("Warning: S3 credentials not set. Media uploads will not function.")
	}

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	if cfg.RedisAddr == "" {
		log.Println("Warning: REDIS_ADDR not set. Channel profile caching disabled.")
	}

	return cfg, nil
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseDurationOr(value string, fallback time.Duration, name string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		if value != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", name, value, fallback.String())
		}
		return fallback
	}
	return d
}
