package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

type Config struct {
	Server Server
	Auth   Auth
	Store  Store
}

type Server struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
	Environment  string
}

type Auth struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type Store struct {
	// LoadDelay simulates network latency on the initial collection
	// load, like the original did. Zero in tests.
	LoadDelay time.Duration
}

func New() *Config {
	// A missing .env file is fine; env vars win either way.
	_ = godotenv.Load()

	return &Config{
		Server: Server{
			Host:         getEnv("SERVER_HOST", "localhost"),
			Port:         getEnv("SERVER_PORT", "3001"),
			ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			// Requests carry file metadata, never file bytes: 1 MiB is plenty.
			BodyLimit:   getEnvInt("SERVER_BODY_LIMIT", 1024*1024),
			Environment: getEnv("SERVER_ENVIRONMENT", EnvironmentDevelopment),
		},
		Auth: Auth{
			JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-me"),
			TokenTTL:  getEnvDuration("JWT_TOKEN_TTL", 12*time.Hour),
		},
		Store: Store{
			LoadDelay: getEnvDuration("STORE_LOAD_DELAY", 0),
		},
	}
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
