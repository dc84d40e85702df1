package infra

import (
	"testing"
	"time"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "LOG_LEVEL", "PORT", "COMPLETION_PROVIDER", "COMPLETION_API_KEY", "GROQ_API_KEY",
		"COMPLETION_MODEL", "COMPLETION_BASE_URL", "COMPLETION_TIMEOUT_SECONDS",
		"GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_BASE_URL", "IMAGE_BASE_URL",
		"JOB_STORE", "JOB_TIMEOUT_SECONDS", "DATABASE_URL", "REDIS_URL", "REDIS_JOB_TTL_SECONDS",
		"GEOIP_DB_PATH", "RATE_LIMIT_PER_MINUTE", "TRUST_PROXY",
		"HTTP_READ_TIMEOUT_SECONDS", "HTTP_WRITE_TIMEOUT_SECONDS", "HTTP_IDLE_TIMEOUT_SECONDS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("GROQ_API_KEY", "gsk-test")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.CompletionAPIKey != "gsk-test" {
		t.Fatalf("CompletionAPIKey = %q", cfg.CompletionAPIKey)
	}
	if cfg.CompletionProvider != ProviderOpenAI || cfg.CompletionModel != "llama3-70b-8192" {
		t.Fatalf("provider/model = %q/%q", cfg.CompletionProvider, cfg.CompletionModel)
	}
	if cfg.CompletionBaseURL != "https://api.groq.com/openai/v1" {
		t.Fatalf("CompletionBaseURL = %q", cfg.CompletionBaseURL)
	}
	if cfg.JobStore != JobStoreMemory || cfg.JobTimeout != 2*time.Minute {
		t.Fatalf("job store/timeout = %q/%s", cfg.JobStore, cfg.JobTimeout)
	}
	if cfg.TrustProxy {
		t.Fatal("TrustProxy must default to false")
	}
	if cfg.Port != "8080" || cfg.RateLimitPerMin != 30 {
		t.Fatalf("port/rate = %q/%d", cfg.Port, cfg.RateLimitPerMin)
	}
	if cfg.HTTPWriteTimeout <= cfg.CompletionTimeout {
		t.Fatalf("write timeout %s must exceed completion timeout %s", cfg.HTTPWriteTimeout, cfg.CompletionTimeout)
	}
}

func TestLoadConfigExplicitKeyWinsOverGroq(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("GROQ_API_KEY", "gsk-test")
	t.Setenv("COMPLETION_API_KEY", "sk-other")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.CompletionAPIKey != "sk-other" {
		t.Fatalf("CompletionAPIKey = %q", cfg.CompletionAPIKey)
	}
}

func TestLoadConfigRaisesWriteTimeout(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("COMPLETION_PROVIDER", "static")
	t.Setenv("COMPLETION_TIMEOUT_SECONDS", "90")
	t.Setenv("HTTP_WRITE_TIMEOUT_SECONDS", "30")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.HTTPWriteTimeout != 105*time.Second {
		t.Fatalf("HTTPWriteTimeout = %s", cfg.HTTPWriteTimeout)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing completion key", env: map[string]string{}},
		{name: "missing gemini key", env: map[string]string{"COMPLETION_PROVIDER": "gemini"}},
		{name: "unknown provider", env: map[string]string{"COMPLETION_PROVIDER": "bard"}},
		{name: "postgres without url", env: map[string]string{"COMPLETION_PROVIDER": "static", "JOB_STORE": "postgres"}},
		{name: "redis without url", env: map[string]string{"COMPLETION_PROVIDER": "static", "JOB_STORE": "redis"}},
		{name: "unknown store", env: map[string]string{"COMPLETION_PROVIDER": "static", "JOB_STORE": "etcd"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := LoadConfig(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoadConfigAcceptsBackends(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("COMPLETION_PROVIDER", "Gemini")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("JOB_STORE", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("REDIS_JOB_TTL_SECONDS", "3600")
	t.Setenv("TRUST_PROXY", "true")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.CompletionProvider != ProviderGemini || cfg.JobStore != JobStoreRedis || cfg.RedisJobTTL != time.Hour || !cfg.TrustProxy {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}
