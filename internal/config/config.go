// Package config loads settings from an optional YAML file and the
// environment. Environment variables override file values.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	// Auth for the HTTP API
	APIKey string

	// Upload limits
	MaxUploadBytes int64

	// Extraction
	RulesPath     string
	ContextWindow int

	// Filling
	FillColumn        string
	VerifyFingerprint bool

	// Generation
	GenerateProvider string
	GenerateModel    string
	GenerateTimeout  time.Duration

	AnthropicAPIKey string
	AnthropicModel  string
	OpenAIAPIKey    string
	OpenAIModel     string
	OpenAIBaseURL   string
	GoogleAPIKey    string
	GeminiModel     string
	OllamaHost      string
	OllamaModel     string

	// Question bank
	QBankRoot  string
	QBankIndex string

	// PDF
	PDFFallbackPdftotext bool

	// Logging
	LogLevel  string
	LogFormat string
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:                 "8090",
		MaxUploadBytes:       52428800, // 50MB
		ContextWindow:        8,
		FillColumn:           "auto",
		VerifyFingerprint:    true,
		GenerateProvider:     "rules",
		GenerateTimeout:      60 * time.Second,
		OllamaModel:          "llama3.2",
		QBankIndex:           "index.json",
		PDFFallbackPdftotext: true,
		LogLevel:             "info",
		LogFormat:            "json",
	}
}

// Load reads path, when non-empty, then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		f, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		f.apply(&cfg)
	}

	cfg = Config{
		Port: envOr("PORT", cfg.Port),

		APIKey: envOr("DOCSLOT_API_KEY", cfg.APIKey),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", cfg.MaxUploadBytes),

		RulesPath:     envOr("DOCSLOT_RULES", cfg.RulesPath),
		ContextWindow: envInt("CONTEXT_WINDOW", cfg.ContextWindow),

		FillColumn:        envOr("FILL_COLUMN", cfg.FillColumn),
		VerifyFingerprint: envBool("VERIFY_FINGERPRINT", cfg.VerifyFingerprint),

		GenerateProvider: envOr("GENERATE_PROVIDER", cfg.GenerateProvider),
		GenerateModel:    envOr("GENERATE_MODEL", cfg.GenerateModel),
		GenerateTimeout:  envDuration("GENERATE_TIMEOUT", cfg.GenerateTimeout),

		AnthropicAPIKey: envOr("ANTHROPIC_API_KEY", cfg.AnthropicAPIKey),
		AnthropicModel:  envOr("ANTHROPIC_MODEL", cfg.AnthropicModel),
		OpenAIAPIKey:    envOr("OPENAI_API_KEY", cfg.OpenAIAPIKey),
		OpenAIModel:     envOr("OPENAI_MODEL", cfg.OpenAIModel),
		OpenAIBaseURL:   envOr("OPENAI_BASE_URL", cfg.OpenAIBaseURL),
		GoogleAPIKey:    envOr("GOOGLE_API_KEY", cfg.GoogleAPIKey),
		GeminiModel:     envOr("GEMINI_MODEL", cfg.GeminiModel),
		OllamaHost:      envOr("OLLAMA_HOST", cfg.OllamaHost),
		OllamaModel:     envOr("OLLAMA_MODEL", cfg.OllamaModel),

		QBankRoot:  envOr("QBANK_ROOT", cfg.QBankRoot),
		QBankIndex: envOr("QBANK_INDEX", cfg.QBankIndex),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", cfg.PDFFallbackPdftotext),

		LogLevel:  envOr("LOG_LEVEL", cfg.LogLevel),
		LogFormat: envOr("LOG_FORMAT", cfg.LogFormat),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.ContextWindow <= 0 {
		cfg.ContextWindow = 8
	}
	if cfg.ContextWindow > 8 {
		cfg.ContextWindow = 8
	}
	if cfg.GenerateTimeout <= 0 {
		cfg.GenerateTimeout = 60 * time.Second
	}
	cfg.GenerateProvider = strings.ToLower(cfg.GenerateProvider)

	return cfg, nil
}

// Validate checks settings every command depends on.
func (c Config) Validate() error {
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ValidateServe checks the settings the HTTP server needs.
func (c Config) ValidateServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.APIKey == "" {
		return fmt.Errorf("DOCSLOT_API_KEY is required")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be a number, got %q", c.Port)
	}
	return nil
}

// ModelFor returns the model override for provider, if GENERATE_MODEL
// targets it, else the provider's own setting.
func (c Config) ModelFor(provider string) string {
	if c.GenerateModel != "" && provider == c.GenerateProvider {
		return c.GenerateModel
	}
	switch provider {
	case "anthropic":
		return c.AnthropicModel
	case "openai":
		return c.OpenAIModel
	case "gemini":
		return c.GeminiModel
	case "ollama":
		return c.OllamaModel
	}
	return ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
