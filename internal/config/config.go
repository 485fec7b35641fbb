package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Database (optional, enables analysis history)
	DatabaseURL    string
	HistoryEnabled bool

	// Redis (optional, shared rate limiter storage)
	RedisURL string

	// TLS/mTLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string // CA for verifying client certs (mTLS)

	// CORS
	CORSOrigins string // Comma-separated allowed origins, "*" for any

	// Rate limiting
	RateLimitMax int // requests per minute per IP

	// Classification
	CatalogFile        string        // env: CATALOG_FILE, optional YAML keyword/rule catalog
	ModelServiceURL    string        // env: MODEL_SERVICE_URL, upstream classifier; empty means local only
	ModelTimeout       time.Duration // env: MODEL_TIMEOUT
	ModelProbeInterval time.Duration // env: MODEL_PROBE_INTERVAL
	ModelCacheSize     int           // env: MODEL_CACHE_SIZE
	SimulatedLatency   time.Duration // env: SIMULATED_LATENCY, e.g. "600ms"

	// Static front-end
	StaticDir string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:            getEnv("ENV", "development"),
		ServerAddr:     getEnv("SERVER_ADDR", ":5000"),
		BaseURL:        getEnv("BASE_URL", "http://localhost:5000"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		HistoryEnabled: getEnv("HISTORY_ENABLED", "true") != "false",
		RedisURL:       getEnv("REDIS_URL", ""),
		TLSEnabled:     getEnv("TLS_ENABLED", "") != "",
		TLSCertFile:    getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:     getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:      getEnv("TLS_CA_FILE", ""),
		CORSOrigins:    getEnv("CORS_ORIGINS", "*"),
		RateLimitMax:   getInt("RATE_LIMIT_MAX", 100),

		CatalogFile:        getEnv("CATALOG_FILE", "catalog.yaml"),
		ModelServiceURL:    getEnv("MODEL_SERVICE_URL", ""),
		ModelTimeout:       getDuration("MODEL_TIMEOUT", 5*time.Second),
		ModelProbeInterval: getDuration("MODEL_PROBE_INTERVAL", 30*time.Second),
		ModelCacheSize:     getInt("MODEL_CACHE_SIZE", 1024),
		SimulatedLatency:   getDuration("SIMULATED_LATENCY", 0),

		StaticDir: getEnv("STATIC_DIR", "./static"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %d", key, value, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %s", key, value, fallback)
		return fallback
	}
	return d
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsMTLSEnabled returns true if mTLS is configured with a CA file.
func (c *Config) IsMTLSEnabled() bool {
	return c.TLSEnabled && c.TLSCAFile != ""
}

// HistoryConfigured returns true if analyses should be persisted.
func (c *Config) HistoryConfigured() bool {
	return c.HistoryEnabled && c.DatabaseURL != ""
}

// UsesModelService returns true if an upstream classifier is configured.
func (c *Config) UsesModelService() bool {
	return c.ModelServiceURL != ""
}
