package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultPort             = "8080"
	DefaultTokenExpiryHours = 24
	DefaultAllowedOrigin    = "*"
)

type Config struct {
	Env              string
	Port             string
	DBURL            string
	TokenSecret      string
	TokenExpiryHours int
	AllowedOrigin    string
}

// Load reads config/.env.dev (or .env.prod when ENV=production) if present,
// then the process environment. Environment variables take precedence over
// file values. Missing required keys are fatal.
func Load() *Config {
	env := getEnv("ENV", "development")

	envFile := "config/.env.dev"
	if env == "production" {
		envFile = "config/.env.prod"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("No %s file found, relying on environment", envFile)
	}

	return &Config{
		Env:              env,
		Port:             getEnv("PORT", DefaultPort),
		DBURL:            mustGetEnv("DB_URL"),
		TokenSecret:      mustGetEnv("TOKEN_SECRET"),
		TokenExpiryHours: getEnvAsInt("TOKEN_EXPIRY_HOURS", DefaultTokenExpiryHours),
		AllowedOrigin:    getEnv("ALLOWED_ORIGIN", DefaultAllowedOrigin),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required config: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
