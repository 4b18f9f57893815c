package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// envVarPattern matches ${VAR_NAME} patterns.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// File is the YAML configuration layout. Zero values leave the default
// in place.
type File struct {
	Port           string `yaml:"port"`
	APIKey         string `yaml:"api_key"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
	Rules          string `yaml:"rules"`
	ContextWindow  int    `yaml:"context_window"`

	Fill struct {
		Column            string `yaml:"column"`
		VerifyFingerprint *bool  `yaml:"verify_fingerprint"`
	} `yaml:"fill"`

	Generate struct {
		Provider string `yaml:"provider"`
		Model    string `yaml:"model"`
		Timeout  string `yaml:"timeout"`
	} `yaml:"generate"`

	Providers map[string]Provider `yaml:"providers"`

	QBank struct {
		Root  string `yaml:"root"`
		Index string `yaml:"index"`
	} `yaml:"qbank"`

	PDFFallbackPdftotext *bool `yaml:"pdf_fallback_pdftotext"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Provider holds the credentials and model of one generation provider.
type Provider struct {
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	Endpoint string `yaml:"endpoint,omitempty"` // base URL for openai, host for ollama
}

func readFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), &f); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if f.Generate.Timeout != "" {
		if _, err := time.ParseDuration(f.Generate.Timeout); err != nil {
			return nil, fmt.Errorf("generate.timeout: %w", err)
		}
	}
	return &f, nil
}

func (f *File) apply(cfg *Config) {
	setString(&cfg.Port, f.Port)
	setString(&cfg.APIKey, f.APIKey)
	if f.MaxUploadBytes > 0 {
		cfg.MaxUploadBytes = f.MaxUploadBytes
	}
	setString(&cfg.RulesPath, f.Rules)
	if f.ContextWindow > 0 {
		cfg.ContextWindow = f.ContextWindow
	}

	setString(&cfg.FillColumn, f.Fill.Column)
	if f.Fill.VerifyFingerprint != nil {
		cfg.VerifyFingerprint = *f.Fill.VerifyFingerprint
	}

	setString(&cfg.GenerateProvider, f.Generate.Provider)
	setString(&cfg.GenerateModel, f.Generate.Model)
	if d, err := time.ParseDuration(f.Generate.Timeout); err == nil {
		cfg.GenerateTimeout = d
	}

	if p, ok := f.Providers["anthropic"]; ok {
		setString(&cfg.AnthropicAPIKey, p.APIKey)
		setString(&cfg.AnthropicModel, p.Model)
	}
	if p, ok := f.Providers["openai"]; ok {
		setString(&cfg.OpenAIAPIKey, p.APIKey)
		setString(&cfg.OpenAIModel, p.Model)
		setString(&cfg.OpenAIBaseURL, p.Endpoint)
	}
	if p, ok := f.Providers["gemini"]; ok {
		setString(&cfg.GoogleAPIKey, p.APIKey)
		setString(&cfg.GeminiModel, p.Model)
	}
	if p, ok := f.Providers["ollama"]; ok {
		setString(&cfg.OllamaHost, p.Endpoint)
		setString(&cfg.OllamaModel, p.Model)
	}

	setString(&cfg.QBankRoot, f.QBank.Root)
	setString(&cfg.QBankIndex, f.QBank.Index)
	if f.PDFFallbackPdftotext != nil {
		cfg.PDFFallbackPdftotext = *f.PDFFallbackPdftotext
	}

	setString(&cfg.LogLevel, f.Log.Level)
	setString(&cfg.LogFormat, f.Log.Format)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// expandEnvVars replaces ${VAR_NAME} with environment variable values.
// Unset variables expand to "".
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		return os.Getenv(varName)
	})
}
