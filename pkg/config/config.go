package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string
	Environment     string
	DatabasePath    string
	RelayURL        string
	RelayTimeout    time.Duration
	SyncInterval    int // seconds
	JWTSecret       string
	JWTExpiry       int64
	OptimizerURL    string
	SnapshotDomain  string
	SnapshotVersion string
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		DatabasePath:    getEnv("DATABASE_PATH", "./trazot.db"),
		RelayURL:        getEnv("RELAY_URL", ""),
		RelayTimeout:    time.Duration(getEnvAsInt64("RELAY_TIMEOUT_MS", 8000)) * time.Millisecond,
		SyncInterval:    int(getEnvAsInt64("SYNC_INTERVAL_SECONDS", 30)),
		JWTSecret:       getEnv("JWT_SECRET", "your-secret-key"),
		JWTExpiry:       getEnvAsInt64("JWT_EXPIRY", 24*60*60), // 24 hours
		OptimizerURL:    getEnv("OPTIMIZER_URL", ""),
		SnapshotDomain:  getEnv("SNAPSHOT_DOMAIN", "trazot.com"),
		SnapshotVersion: getEnv("SNAPSHOT_VERSION", "1.0"),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}
