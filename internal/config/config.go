package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Sessions
	SessionSecret string
	SessionTTL    time.Duration

	// Kakao OAuth
	KakaoClientID     string
	KakaoClientSecret string
	KakaoRedirectURI  string
	KakaoAuthURL      string
	KakaoTokenURL     string
	KakaoProfileURL   string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "moneybook"),
		DBPassword: getEnv("DB_PASSWORD", "moneybook"),
		DBName:     getEnv("DB_NAME", "moneybook"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Sessions
		SessionSecret: getEnv("SESSION_SECRET", "fallback-secret-key-for-dev-only"),

		// Kakao OAuth. The endpoint URLs are overridable so tests can point
		// the provider at a local stub server.
		KakaoClientID:     getEnv("KAKAO_CLIENT_ID", ""),
		KakaoClientSecret: getEnv("KAKAO_CLIENT_SECRET", ""),
		KakaoRedirectURI:  getEnv("KAKAO_REDIRECT_URI", "http://localhost:8080/auth/kakao/callback"),
		KakaoAuthURL:      getEnv("KAKAO_AUTH_URL", "https://kauth.kakao.com/oauth/authorize"),
		KakaoTokenURL:     getEnv("KAKAO_TOKEN_URL", "https://kauth.kakao.com/oauth/token"),
		KakaoProfileURL:   getEnv("KAKAO_PROFILE_URL", "https://kapi.kakao.com/v2/user/me"),
	}

	// Parse session TTL (rolling window, refreshed on every request)
	ttlStr := getEnv("SESSION_TTL", "168h")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		log.Printf("Warning: invalid SESSION_TTL value '%s', falling back to 168h\n", ttlStr)
		ttl = 7 * 24 * time.Hour
	}
	config.SessionTTL = ttl

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// IsProduction reports whether the server runs with production settings
// (JSON logs, Secure session cookies).
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
