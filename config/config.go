package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds everything the process needs, loaded once at startup and
// passed into the components that use it.
type Config struct {
	Port           string
	DBPath         string
	JWTSecret      []byte
	TokenTTL       time.Duration
	UploadDir      string
	AllowedOrigins string
	AdminEmail     string
	AdminPassword  string
	LogLevel       string
}

// Load reads the configuration from environment variables with fallbacks.
func Load() *Config {
	ttlHours, err := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "24"))
	if err != nil || ttlHours <= 0 {
		ttlHours = 24
	}
	return &Config{
		Port:           getEnv("PORT", "8080"),
		DBPath:         getEnv("DB_PATH", "field_service.db"),
		JWTSecret:      []byte(getEnv("JWT_SECRET", "field_service_super_secret_2024")),
		TokenTTL:       time.Duration(ttlHours) * time.Hour,
		UploadDir:      getEnv("UPLOAD_DIR", "data/uploads"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", ""),
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
