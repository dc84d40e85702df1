package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Job store backends.
const (
	JobStoreMemory   = "memory"
	JobStorePostgres = "postgres"
	JobStoreRedis    = "redis"
)

// Completion providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderStatic = "static"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv   string
	LogLevel string
	Port     string

	CompletionProvider string
	CompletionAPIKey   string
	CompletionModel    string
	CompletionBaseURL  string
	CompletionTimeout  time.Duration
	GeminiAPIKey       string
	GeminiModel        string
	GeminiBaseURL      string

	ImageBaseURL string

	JobStore    string
	JobTimeout  time.Duration
	DatabaseURL string
	RedisURL    string
	RedisJobTTL time.Duration

	GeoIPDBPath      string
	RateLimitPerMin  int
	TrustProxy       bool
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		LogLevel:           os.Getenv("LOG_LEVEL"),
		Port:               getEnv("PORT", "8080"),
		CompletionProvider: strings.ToLower(getEnv("COMPLETION_PROVIDER", ProviderOpenAI)),
		CompletionAPIKey:   getEnv("COMPLETION_API_KEY", os.Getenv("GROQ_API_KEY")),
		CompletionModel:    getEnv("COMPLETION_MODEL", "llama3-70b-8192"),
		CompletionBaseURL:  getEnv("COMPLETION_BASE_URL", "https://api.groq.com/openai/v1"),
		CompletionTimeout:  time.Second * time.Duration(getEnvInt("COMPLETION_TIMEOUT_SECONDS", 45)),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiBaseURL:      os.Getenv("GEMINI_BASE_URL"),
		ImageBaseURL:       getEnv("IMAGE_BASE_URL", "https://image.pollinations.ai"),
		JobStore:           strings.ToLower(getEnv("JOB_STORE", JobStoreMemory)),
		JobTimeout:         time.Second * time.Duration(getEnvInt("JOB_TIMEOUT_SECONDS", 120)),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisURL:           os.Getenv("REDIS_URL"),
		RedisJobTTL:        time.Second * time.Duration(getEnvInt("REDIS_JOB_TTL_SECONDS", 0)),
		GeoIPDBPath:        os.Getenv("GEOIP_DB_PATH"),
		RateLimitPerMin:    getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		TrustProxy:         getEnvBool("TRUST_PROXY", false),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 60)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
	}

	switch cfg.CompletionProvider {
	case ProviderOpenAI:
		if cfg.CompletionAPIKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY or COMPLETION_API_KEY is required")
		}
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required")
		}
	case ProviderStatic:
	default:
		return nil, fmt.Errorf("unsupported COMPLETION_PROVIDER %q", cfg.CompletionProvider)
	}

	switch cfg.JobStore {
	case JobStoreMemory:
	case JobStorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for JOB_STORE=postgres")
		}
	case JobStoreRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is required for JOB_STORE=redis")
		}
	default:
		return nil, fmt.Errorf("unsupported JOB_STORE %q", cfg.JobStore)
	}

	if cfg.HTTPWriteTimeout <= cfg.CompletionTimeout {
		// POST /generate blocks on the completion call.
		cfg.HTTPWriteTimeout = cfg.CompletionTimeout + 15*time.Second
	}

	return cfg, nil
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

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
