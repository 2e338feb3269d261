package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"imagestudio/internal/catalog"
	"imagestudio/internal/storage"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv        string
	Port          string
	PublicBaseURL string

	OutputDir      string
	OutputFormat   storage.Format
	OutputQuality  int
	PromptLanguage catalog.Language

	StabilityAPIKey   string
	StabilityBaseURL  string
	StabilityEngine   string
	StabilityCFGScale float64
	RemoteTimeout     time.Duration
	RemotePerMinute   int
	RemoteCooldown    time.Duration
	MaxBatch          int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
	CORSOrigins      []string
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	port := getEnv("PORT", "8080")
	cfg := &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		Port:              port,
		PublicBaseURL:     strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:"+port), "/"),
		OutputDir:         getEnv("OUTPUT_DIR", "generated_images"),
		OutputQuality:     getEnvIntRange("OUTPUT_QUALITY", storage.DefaultQuality, 1, 100),
		StabilityAPIKey:   strings.TrimSpace(os.Getenv("STABILITY_API_KEY")),
		StabilityBaseURL:  getEnv("STABILITY_BASE_URL", "https://api.stability.ai/v1/generation"),
		StabilityEngine:   os.Getenv("STABILITY_ENGINE"),
		StabilityCFGScale: getEnvFloat("STABILITY_CFG_SCALE", 7),
		RemoteTimeout:     time.Second * time.Duration(getEnvIntRange("REMOTE_TIMEOUT_SECONDS", 60, 1, 600)),
		RemotePerMinute:   getEnvIntRange("REMOTE_RATE_PER_MINUTE", 30, 0, 6000),
		RemoteCooldown:    time.Second * time.Duration(getEnvIntRange("REMOTE_COOLDOWN_SECONDS", 30, 0, 3600)),
		MaxBatch:          getEnvIntRange("MAX_BATCH", 4, 1, 16),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           getEnvIntRange("REDIS_DB", 0, 0, 15),
		HTTPReadTimeout:   time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:  time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 120)),
		HTTPIdleTimeout:   time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:   getEnvIntRange("RATE_LIMIT_PER_MINUTE", 60, 1, 100000),
		CORSOrigins:       splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	format, err := storage.ParseFormat(os.Getenv("OUTPUT_FORMAT"))
	if err != nil {
		return nil, fmt.Errorf("OUTPUT_FORMAT: %w", err)
	}
	cfg.OutputFormat = format

	lang, ok := catalog.ParseLanguage(os.Getenv("PROMPT_LANGUAGE"))
	if !ok {
		return nil, fmt.Errorf("PROMPT_LANGUAGE must be en or zh, got %q", os.Getenv("PROMPT_LANGUAGE"))
	}
	cfg.PromptLanguage = lang

	if cfg.StabilityCFGScale <= 0 || cfg.StabilityCFGScale > 35 {
		cfg.StabilityCFGScale = 7
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

// getEnvIntRange is getEnvInt with values outside [lo, hi] replaced by fallback.
func getEnvIntRange(key string, fallback, lo, hi int) int {
	v := getEnvInt(key, fallback)
	if v < lo || v > hi {
		return fallback
	}
	return v
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

// splitList splits a comma separated env value, dropping blanks.
func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
