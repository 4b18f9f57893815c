// Package generate produces content maps for the slots of an extracted
// structure. A deterministic rule-based provider is always available; LLM
// providers are registered when their credentials are configured.
package generate

import (
	"context"

	"github.com/dgallion1/docslot/internal/doctree"
	"github.com/dgallion1/docslot/internal/fill"
)

// Request describes one slot to generate content for.
type Request struct {
	Topic    string
	ID       string
	Role     string
	Location string
	Context  []string
	// Rows is the row count of a table slot. Paragraph slots have no rows.
	Rows    int
	IsTable bool
}

// RequestFor builds the request for a slot block.
func RequestFor(b *doctree.Block, topic string) Request {
	return Request{
		Topic:    topic,
		ID:       b.ID,
		Role:     b.SlotRole,
		Location: b.Location,
		Context:  b.Context,
		Rows:     b.Rows,
		IsTable:  b.Kind == doctree.KindTable,
	}
}

// Provider generates the value of one slot. Table requests must yield a
// list value with one entry per row.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (fill.Value, error)
}
