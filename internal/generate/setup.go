package generate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/docslot/internal/config"
)

// ProviderInfo describes one known provider and whether it is usable with
// the current configuration.
type ProviderInfo struct {
	Name       string
	Model      string
	EnvKey     string
	Configured bool
}

// KnownProviders lists every provider docslot can talk to.
func KnownProviders(cfg config.Config) []ProviderInfo {
	return []ProviderInfo{
		{Name: RulesName, Model: "-", EnvKey: "-", Configured: true},
		{Name: "anthropic", Model: orDefault(cfg.ModelFor("anthropic"), DefaultAnthropicModel), EnvKey: "ANTHROPIC_API_KEY", Configured: cfg.AnthropicAPIKey != ""},
		{Name: "openai", Model: orDefault(cfg.ModelFor("openai"), DefaultOpenAIModel), EnvKey: "OPENAI_API_KEY", Configured: cfg.OpenAIAPIKey != ""},
		{Name: "gemini", Model: orDefault(cfg.ModelFor("gemini"), DefaultGeminiModel), EnvKey: "GOOGLE_API_KEY", Configured: cfg.GoogleAPIKey != ""},
		{Name: "ollama", Model: orDefault(cfg.ModelFor("ollama"), DefaultOllamaModel), EnvKey: "OLLAMA_HOST", Configured: cfg.OllamaHost != ""},
	}
}

// Setup registers the rules provider and every LLM provider whose
// credentials are present in cfg.
func Setup(ctx context.Context, cfg config.Config, stats *LLMStats, log *slog.Logger) (*Registry, error) {
	reg := NewRegistry()
	if err := reg.Register(RulesProvider{}); err != nil {
		return nil, err
	}

	for _, info := range KnownProviders(cfg) {
		if info.Name == RulesName || !info.Configured {
			continue
		}
		client, err := newCompleter(ctx, cfg, info)
		if err != nil {
			return nil, fmt.Errorf("provider %s: %w", info.Name, err)
		}
		if err := reg.Register(NewLLMProvider(info.Name, client, stats, log)); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func newCompleter(ctx context.Context, cfg config.Config, info ProviderInfo) (Completer, error) {
	switch info.Name {
	case "anthropic":
		return NewAnthropicClient(cfg.AnthropicAPIKey, info.Model)
	case "openai":
		return NewOpenAIClient(cfg.OpenAIAPIKey, info.Model, cfg.OpenAIBaseURL)
	case "gemini":
		return NewGeminiClient(ctx, cfg.GoogleAPIKey, info.Model)
	case "ollama":
		return NewOllamaClient(cfg.OllamaHost, info.Model)
	}
	return nil, fmt.Errorf("unknown provider: %s", info.Name)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
