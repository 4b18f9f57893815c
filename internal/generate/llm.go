package generate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgallion1/docslot/internal/fill"
)

// Completion is one chat request to a model.
type Completion struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Completer sends a completion to a model and returns its text. Transient
// failures are returned as *RetryableError.
type Completer interface {
	Complete(ctx context.Context, c Completion) (string, error)
	Model() string
}

// LLMProvider turns slot requests into prompts for a Completer and
// validates what comes back.
type LLMProvider struct {
	name    string
	client  Completer
	stats   *LLMStats
	log     *slog.Logger
	backoff func(attempt int) time.Duration
}

// NewLLMProvider wraps client. stats may be nil.
func NewLLMProvider(name string, client Completer, stats *LLMStats, log *slog.Logger) *LLMProvider {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &LLMProvider{
		name:    name,
		client:  client,
		stats:   stats,
		log:     log.With("provider", name, "model", client.Model()),
		backoff: Backoff,
	}
}

func (p *LLMProvider) Name() string { return p.name }

// Model returns the model the provider talks to.
func (p *LLMProvider) Model() string { return p.client.Model() }

func (p *LLMProvider) Generate(ctx context.Context, req Request) (fill.Value, error) {
	text, err := p.complete(ctx, Completion{
		System:      SystemPrompt,
		Prompt:      BuildPrompt(req),
		MaxTokens:   maxTokensFor(req),
		Temperature: 0.3,
	})
	if err != nil {
		return fill.Value{}, err
	}

	if !req.IsTable {
		text = strings.TrimSpace(stripCodeBlock(text))
		if err := ValidateText(text); err != nil {
			return fill.Value{}, fmt.Errorf("%s: %w", req.ID, err)
		}
		return fill.Text(text), nil
	}

	rows, err := parseRows(text, req.Rows)
	if err != nil {
		return fill.Value{}, fmt.Errorf("%s: %w", req.ID, err)
	}
	for i, r := range rows {
		if r == "" {
			continue
		}
		if err := ValidateText(r); err != nil {
			return fill.Value{}, fmt.Errorf("%s row %d: %w", req.ID, i+1, err)
		}
	}
	return fill.List(rows...), nil
}

func (p *LLMProvider) complete(ctx context.Context, c Completion) (string, error) {
	var lastErr error
	for attempt := range MaxRetries {
		start := time.Now()
		text, err := p.client.Complete(ctx, c)
		if p.stats != nil {
			p.stats.Record(p.name, time.Since(start), err)
		}
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !IsRetryable(err) || attempt == MaxRetries-1 {
			break
		}
		p.log.Warn("retryable generation error", "attempt", attempt, "error", err)
		select {
		case <-time.After(p.backoff(attempt)):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "", lastErr
}
