package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For splitting list values
	"time"    // For duration parsing

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort        string        // Gateway port
	AppName        string        // Display name shown to the UI and stored in sessions
	APIBaseURL     string        // Base URL of the external rental/coin REST API
	JWTSecret      string        // JWT secret key for gateway session tokens
	RedisAddr      string        // Redis server address
	RedisPass      string        // Redis password
	RedisDB        int           // Redis database number
	AdminUsers     []string      // Usernames allowed on admin routes
	ListRetryDelay time.Duration // Delay before the single vehicle list retry
	IsProd         bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	retryDelay, err := time.ParseDuration(os.Getenv("LIST_RETRY_DELAY"))
	if err != nil || retryDelay <= 0 {
		retryDelay = 2 * time.Second // Default delay absorbs a cold-starting backend
	}
	appName := os.Getenv("APP_NAME")
	if appName == "" {
		appName = "BidKomKom" // Default display name
	}
	return &Config{
		AppPort:        os.Getenv("APP_PORT"),               // Gateway port
		AppName:        appName,                             // Display name
		APIBaseURL:     os.Getenv("API_BASE_URL"),           // Backend base URL
		JWTSecret:      os.Getenv("JWT_SECRET"),             // JWT secret key
		RedisAddr:      os.Getenv("REDIS_ADDR"),             // Redis server address
		RedisPass:      os.Getenv("REDIS_PASS"),             // Redis password
		RedisDB:        redisDB,                             // Redis database number
		AdminUsers:     splitList(os.Getenv("ADMIN_USERS")), // Admin allowlist
		ListRetryDelay: retryDelay,                          // Vehicle list retry delay
		IsProd:         os.Getenv("IS_PROD") == "true",      // Is production environment
	}
}

// splitList parses a comma-separated env value into a trimmed slice
func splitList(v string) []string {
	if v == "" {
		return nil // No entries configured
	}
	parts := strings.Split(v, ",") // Split on commas
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		// Keep non-empty trimmed entries
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
