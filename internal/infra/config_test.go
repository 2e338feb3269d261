package infra

import (
	"testing"
	"time"

	"imagestudio/internal/catalog"
	"imagestudio/internal/storage"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "PORT", "PUBLIC_BASE_URL", "OUTPUT_DIR", "OUTPUT_FORMAT", "OUTPUT_QUALITY",
		"PROMPT_LANGUAGE", "STABILITY_API_KEY", "STABILITY_CFG_SCALE", "REMOTE_TIMEOUT_SECONDS",
		"REMOTE_RATE_PER_MINUTE", "REMOTE_COOLDOWN_SECONDS", "MAX_BATCH", "REDIS_ADDR", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.OutputDir != "generated_images" {
		t.Fatalf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.OutputFormat != storage.FormatPNG || cfg.PromptLanguage != catalog.LanguageEnglish {
		t.Fatalf("format/lang = %q/%q", cfg.OutputFormat, cfg.PromptLanguage)
	}
	if cfg.PublicBaseURL != "http://localhost:8080" {
		t.Fatalf("PublicBaseURL = %q", cfg.PublicBaseURL)
	}
	if cfg.RemoteTimeout != 60*time.Second || cfg.RemoteCooldown != 30*time.Second {
		t.Fatalf("remote timings = %v/%v", cfg.RemoteTimeout, cfg.RemoteCooldown)
	}
	if cfg.StabilityAPIKey != "" || cfg.StabilityCFGScale != 7 || cfg.MaxBatch != 4 {
		t.Fatalf("stability defaults = %+v", cfg)
	}
}

func TestLoadConfigInheritsPortInPublicBaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "1919")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.PublicBaseURL != "http://localhost:1919" || cfg.Addr() != ":1919" {
		t.Fatalf("PublicBaseURL = %q, Addr = %q", cfg.PublicBaseURL, cfg.Addr())
	}
}

func TestLoadConfigRejectsUnknownFormatAndLanguage(t *testing.T) {
	clearEnv(t)
	t.Setenv("OUTPUT_FORMAT", "tiff")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for OUTPUT_FORMAT=tiff")
	}

	clearEnv(t)
	t.Setenv("PROMPT_LANGUAGE", "fr")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for PROMPT_LANGUAGE=fr")
	}
}

func TestLoadConfigOutOfRangeFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAX_BATCH", "500")
	t.Setenv("OUTPUT_QUALITY", "0")
	t.Setenv("STABILITY_CFG_SCALE", "-2")
	t.Setenv("OUTPUT_FORMAT", "webp")
	t.Setenv("PROMPT_LANGUAGE", "zh")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.MaxBatch != 4 || cfg.OutputQuality != storage.DefaultQuality || cfg.StabilityCFGScale != 7 {
		t.Fatalf("fallbacks not applied: %+v", cfg)
	}
	if cfg.OutputFormat != storage.FormatWebP || cfg.PromptLanguage != catalog.LanguageChinese {
		t.Fatalf("format/lang = %q/%q", cfg.OutputFormat, cfg.PromptLanguage)
	}
}

func TestLoadConfigCORSOrigins(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("default CORSOrigins = %v", cfg.CORSOrigins)
	}

	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	cfg, err = LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}
