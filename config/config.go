package config

import (
	"net/url"
	"os"
	"strconv"
	"time"

	apperr "github.com/Wapeq1/Test-Technique-Dokaa/pkg/errors"
)

// Config represents the application configuration
type Config struct {
	// HTTP server configuration
	Port       string
	CORSOrigin string

	// Upstream marketplace configuration
	DeliverooBaseURL string
	SearchPath       string
	MenuPath         string
	FetchTimeout     time.Duration

	// Redis configuration (scrape event stream, optional)
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamCount     int
	RedisStreamMaxLength int

	// Memcache configuration (fetch rate-limit blocking, optional)
	MemcacheAddr   string
	RateLimitBlock time.Duration

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamCount, _ := strconv.Atoi(getEnv("REDIS_STREAM_COUNT", "1"))
	streamMaxLen, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAX_LENGTH", "500"))
	fetchTimeout, _ := strconv.Atoi(getEnv("FETCH_TIMEOUT_SECONDS", "15"))
	blockSeconds, _ := strconv.Atoi(getEnv("RATE_LIMIT_BLOCK_SECONDS", "500"))

	return &Config{
		Port:                 getEnv("PORT", "8080"),
		CORSOrigin:           getEnv("CORS_ORIGIN", "http://localhost:8081"),
		DeliverooBaseURL:     getEnv("DELIVEROO_BASE_URL", "https://deliveroo.fr"),
		SearchPath:           getEnv("DELIVEROO_SEARCH_PATH", "/fr/restaurants/marseille/marseille-port?q="),
		MenuPath:             getEnv("DELIVEROO_MENU_PATH", "/fr/menu/marseille/"),
		FetchTimeout:         time.Duration(fetchTimeout) * time.Second,
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "scrapes"),
		RedisStreamCount:     streamCount,
		RedisStreamMaxLength: streamMaxLen,
		MemcacheAddr:         getEnv("MEMCACHE_ADDR", ""),
		RateLimitBlock:       time.Duration(blockSeconds) * time.Second,
		Environment:          getEnv("ENVIRONMENT", "development"),
	}
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Port == "" {
		return apperr.NewConfiguration("PORT must not be empty", nil)
	}
	if c.DeliverooBaseURL == "" {
		return apperr.NewConfiguration("DELIVEROO_BASE_URL must not be empty", nil)
	}
	if c.FetchTimeout <= 0 {
		return apperr.NewConfiguration("FETCH_TIMEOUT_SECONDS must be positive", nil)
	}
	return nil
}

// SearchURL builds the search-results page URL for a query
func (c *Config) SearchURL(query string) string {
	return c.DeliverooBaseURL + c.SearchPath + url.QueryEscape(query)
}

// MenuURL builds the menu/detail page URL for a restaurant slug
func (c *Config) MenuURL(slug string) string {
	return c.DeliverooBaseURL + c.MenuPath + slug
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
