package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string

	// Database
	DatabaseURL string
	RedisURL    string

	// Crawl
	CrawlMode          string
	CrawlIntervalHours int
	CrawlTimeout       time.Duration
	EnabledSources     []string
	EnrichWorkers      int
	SnapshotDir        string

	// Run lock
	RunLockTTL time.Duration

	// Cache
	KeyCacheTTLHour int

	// CORS
	AllowedOrigins []string

	// Scheduler
	SchedulerEnabled bool
}

func Load() (*Config, error) {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),

		// Database
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),

		// Crawl
		CrawlMode:          getEnv("CRAWL_MODE", "auto"),
		CrawlIntervalHours: getEnvInt("CRAWL_INTERVAL_HOURS", 6),
		CrawlTimeout:       time.Duration(getEnvInt("CRAWL_TIMEOUT_MIN", 30)) * time.Minute,
		EnabledSources:     getEnvSlice("ENABLED_SOURCES", nil),
		EnrichWorkers:      getEnvInt("ENRICH_WORKERS", 10),
		SnapshotDir:        getEnv("SNAPSHOT_DIR", "data/snapshots"),

		// Run lock
		RunLockTTL: time.Duration(getEnvInt("RUN_LOCK_TTL_MIN", 30)) * time.Minute,

		// Cache
		KeyCacheTTLHour: getEnvInt("KEY_CACHE_TTL_HOUR", 24),

		// CORS
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),

		// Scheduler
		SchedulerEnabled: getEnvBool("SCHEDULER_ENABLED", true),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
