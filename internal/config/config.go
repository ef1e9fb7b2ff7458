package config

import (
	"os"
	"strconv"
)

type Config struct {
	// Redis
	RedisURL string

	// Server
	Port        string
	Environment string

	// Services
	InteropServiceURL string

	// Tenant context attached to published events
	TenantID string

	// Pagination
	DefaultPageSize int
	MaxPageSize     int
}

func Load() *Config {
	defaultPageSize, _ := strconv.Atoi(getEnv("DEFAULT_PAGE_SIZE", "15"))
	maxPageSize, _ := strconv.Atoi(getEnv("MAX_PAGE_SIZE", "100"))

	return &Config{
		// Redis
		RedisURL: getEnv("REDIS_URL", "redis://redis.redis-marketplace.svc.cluster.local:6379/0"),

		// Server
		Port:        getEnv("PORT", "8093"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// Services
		InteropServiceURL: getEnv("INTEROP_SERVICE_URL", "http://localhost:3000"),

		// Tenant
		TenantID: getEnv("TENANT_ID", "default"),

		// Pagination
		DefaultPageSize: defaultPageSize,
		MaxPageSize:     maxPageSize,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
