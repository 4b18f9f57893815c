package generate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/docslot/internal/doctree"
	"github.com/dgallion1/docslot/internal/fill"
)

// DefaultConcurrency bounds the slots generated at once.
const DefaultConcurrency = 4

// Generator produces a content map for every slot of a structure.
type Generator struct {
	Provider Provider
	// Fallback is used for slots the provider fails on.
	Fallback Provider
	// Timeout bounds each slot request. Zero means no per-slot timeout.
	Timeout     time.Duration
	Concurrency int
	Log         *slog.Logger
}

// NewGenerator returns a generator over p that falls back to the rules
// provider.
func NewGenerator(p Provider, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Generator{
		Provider:    p,
		Fallback:    RulesProvider{},
		Concurrency: DefaultConcurrency,
		Log:         log,
	}
}

// Stats counts how each slot was produced.
type Stats struct {
	Slots     int `json:"slots"`
	Generated int `json:"generated"`
	Fallbacks int `json:"fallbacks"`
}

type slotResult struct {
	id       string
	value    fill.Value
	fallback bool
	err      error
}

// Generate fills every slot of s, in walk order. The returned map carries
// the structure's fingerprint when it has one.
func (g *Generator) Generate(ctx context.Context, s *doctree.Structure, topic string) (fill.ContentMap, error) {
	contents, _, err := g.GenerateStats(ctx, s, topic)
	return contents, err
}

// GenerateStats is Generate that also reports how many slots fell back.
func (g *Generator) GenerateStats(ctx context.Context, s *doctree.Structure, topic string) (fill.ContentMap, Stats, error) {
	log := g.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	provider := g.Provider
	if provider == nil {
		provider = RulesProvider{}
	}
	log = log.With("provider", provider.Name(), "topic", topic)

	var slots []*doctree.Block
	for b := range s.Slots() {
		slots = append(slots, b)
	}

	workers := g.Concurrency
	if workers <= 0 {
		workers = DefaultConcurrency
	}
	results := make(chan slotResult, len(slots))
	sem := make(chan struct{}, workers)

	for _, b := range slots {
		sem <- struct{}{}
		go func(req Request) {
			defer func() { <-sem }()
			results <- g.slot(ctx, provider, req, log)
		}(RequestFor(b, topic))
	}

	contents := make(fill.ContentMap, len(slots)+1)
	stats := Stats{Slots: len(slots)}
	var firstErr error
	for range slots {
		r := <-results
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		contents[r.id] = r.value
		if r.fallback {
			stats.Fallbacks++
		} else {
			stats.Generated++
		}
	}
	if firstErr != nil {
		return nil, stats, firstErr
	}

	if s.Fingerprint != nil {
		contents.SetFingerprint(s.Fingerprint.Digest)
	}
	log.Info("generated content", "slots", stats.Slots, "fallbacks", stats.Fallbacks)
	return contents, stats, nil
}

func (g *Generator) slot(ctx context.Context, p Provider, req Request, log *slog.Logger) slotResult {
	if err := ctx.Err(); err != nil {
		return slotResult{id: req.ID, err: err}
	}

	sctx := ctx
	if g.Timeout > 0 {
		var cancel context.CancelFunc
		sctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}

	v, err := p.Generate(sctx, req)
	if err == nil {
		return slotResult{id: req.ID, value: v}
	}
	if ctx.Err() != nil {
		return slotResult{id: req.ID, err: ctx.Err()}
	}

	fallback := g.Fallback
	if fallback == nil || fallback.Name() == p.Name() {
		return slotResult{id: req.ID, err: fmt.Errorf("generate %s: %w", req.ID, err)}
	}
	log.Warn("slot generation failed, using fallback", "slot", req.ID, "fallback", fallback.Name(), "error", err)
	v, ferr := fallback.Generate(ctx, req)
	if ferr != nil {
		return slotResult{id: req.ID, err: fmt.Errorf("generate %s: %w", req.ID, ferr)}
	}
	return slotResult{id: req.ID, value: v, fallback: true}
}
