package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docslot.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// clearEnv blanks every variable Load reads so the host environment cannot
// leak into assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "DOCSLOT_API_KEY", "MAX_UPLOAD_BYTES", "DOCSLOT_RULES",
		"CONTEXT_WINDOW", "FILL_COLUMN", "VERIFY_FINGERPRINT",
		"GENERATE_PROVIDER", "GENERATE_MODEL", "GENERATE_TIMEOUT",
		"ANTHROPIC_API_KEY", "ANTHROPIC_MODEL",
		"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL",
		"GOOGLE_API_KEY", "GEMINI_MODEL", "OLLAMA_HOST", "OLLAMA_MODEL",
		"QBANK_ROOT", "QBANK_INDEX", "PDF_FALLBACK_PDFTOTEXT",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8090" {
		t.Errorf("expected port 8090, got %q", cfg.Port)
	}
	if cfg.ContextWindow != 8 {
		t.Errorf("expected context window 8, got %d", cfg.ContextWindow)
	}
	if !cfg.VerifyFingerprint {
		t.Error("expected fingerprint verification on by default")
	}
	if cfg.GenerateProvider != "rules" {
		t.Errorf("expected rules provider, got %q", cfg.GenerateProvider)
	}
	if cfg.MaxUploadBytes != 52428800 {
		t.Errorf("expected 50MB upload limit, got %d", cfg.MaxUploadBytes)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9999")
	t.Setenv("CONTEXT_WINDOW", "20")
	t.Setenv("VERIFY_FINGERPRINT", "false")
	t.Setenv("GENERATE_PROVIDER", "OpenAI")
	t.Setenv("GENERATE_TIMEOUT", "5s")
	t.Setenv("MAX_UPLOAD_BYTES", "-1")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9999" {
		t.Errorf("expected port 9999, got %q", cfg.Port)
	}
	if cfg.ContextWindow != 8 {
		t.Errorf("expected context window clamped to 8, got %d", cfg.ContextWindow)
	}
	if cfg.VerifyFingerprint {
		t.Error("expected fingerprint verification off")
	}
	if cfg.GenerateProvider != "openai" {
		t.Errorf("expected lower-cased provider, got %q", cfg.GenerateProvider)
	}
	if cfg.GenerateTimeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %s", cfg.GenerateTimeout)
	}
	if cfg.MaxUploadBytes != 52428800 {
		t.Errorf("expected invalid upload limit to reset, got %d", cfg.MaxUploadBytes)
	}
}

func TestLoadFileWithEnvExpansion(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEST_DOCSLOT_KEY", "sk-file")
	path := writeConfig(t, `
port: "7000"
context_window: 4
fill:
  column: last
  verify_fingerprint: false
generate:
  provider: anthropic
  model: claude-test
  timeout: 90s
providers:
  anthropic:
    api_key: ${TEST_DOCSLOT_KEY}
  ollama:
    endpoint: http://gpu:11434
  gemini:
    api_key: ${TEST_DOCSLOT_UNSET}
qbank:
  root: /data/papers
log:
  format: text
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "7000" || cfg.ContextWindow != 4 || cfg.FillColumn != "last" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.VerifyFingerprint {
		t.Error("expected verify_fingerprint false from file")
	}
	if cfg.AnthropicAPIKey != "sk-file" {
		t.Errorf("expected expanded key, got %q", cfg.AnthropicAPIKey)
	}
	if cfg.GoogleAPIKey != "" {
		t.Errorf("expected unset variable to expand empty, got %q", cfg.GoogleAPIKey)
	}
	if cfg.OllamaHost != "http://gpu:11434" {
		t.Errorf("expected ollama host from file, got %q", cfg.OllamaHost)
	}
	if cfg.GenerateTimeout != 90*time.Second {
		t.Errorf("expected 90s, got %s", cfg.GenerateTimeout)
	}
	if got := cfg.ModelFor("anthropic"); got != "claude-test" {
		t.Errorf("expected model override, got %q", got)
	}
	if got := cfg.ModelFor("ollama"); got != "llama3.2" {
		t.Errorf("expected ollama default model, got %q", got)
	}
	if cfg.QBankRoot != "/data/papers" || cfg.LogFormat != "text" {
		t.Errorf("unexpected qbank/log settings: %+v", cfg)
	}

	t.Setenv("PORT", "7100")
	cfg, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "7100" {
		t.Errorf("expected env to override file, got %q", cfg.Port)
	}

	t.Setenv("ANTHROPIC_API_KEY", "sk-env")
	cfg, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AnthropicAPIKey != "sk-env" {
		t.Errorf("expected env key to override file, got %q", cfg.AnthropicAPIKey)
	}
}

func TestLoadFileErrors(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(t.TempDir(), "none.yaml")},
		{"bad yaml", writeConfig(t, "port: [\n")},
		{"bad timeout", writeConfig(t, "generate:\n  timeout: soon\n")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.path); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if err := cfg.ValidateServe(); err == nil || !strings.Contains(err.Error(), "DOCSLOT_API_KEY") {
		t.Fatalf("expected missing API key error, got %v", err)
	}
	cfg.APIKey = "k"
	if err := cfg.ValidateServe(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := Defaults()
	bad.LogFormat = "xml"
	if err := bad.Validate(); err == nil {
		t.Error("expected invalid log format error")
	}
	bad = Defaults()
	bad.LogLevel = "loud"
	if err := bad.Validate(); err == nil {
		t.Error("expected invalid log level error")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseLevel(%q): expected %v, got %v (%v)", tt.in, tt.want, got, err)
		}
	}
}
