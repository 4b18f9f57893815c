// Package structure extracts the annotated section tree of a document.
//
// Extraction runs in two steps over the shared identifier walk: the tree
// is built and pruned, then an annotation pass marks slots and attaches
// their role and preceding context.
package structure

import (
	"log/slog"
	"strings"

	"github.com/dgallion1/docslot/internal/blockid"
	"github.com/dgallion1/docslot/internal/classify"
	"github.com/dgallion1/docslot/internal/doctree"
	"github.com/dgallion1/docslot/internal/parser"
	"github.com/fumiama/go-docx"
)

// Extractor turns documents into annotated structures.
type Extractor struct {
	rules   *classify.Rules
	window  int
	heading blockid.HeadingFunc
	log     *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithRules replaces the built-in classification vocabulary.
func WithRules(r *classify.Rules) Option {
	return func(e *Extractor) {
		if r != nil {
			e.rules = r
		}
	}
}

// WithWindow sets the context window capacity, clamped to 1..MaxWindow.
func WithWindow(n int) Option {
	return func(e *Extractor) { e.window = n }
}

// WithHeadingFunc replaces the style-name heading predicate. The filler
// must be given the same predicate.
func WithHeadingFunc(f blockid.HeadingFunc) Option {
	return func(e *Extractor) { e.heading = f }
}

// NewExtractor creates an extractor. A nil logger discards output.
func NewExtractor(log *slog.Logger, opts ...Option) *Extractor {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	e := &Extractor{
		rules:   classify.DefaultRules(),
		window:  MaxWindow,
		heading: classify.HeadingLevel,
		log:     log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract builds, prunes and annotates the section tree of doc.
func (e *Extractor) Extract(doc *parser.Document) (*doctree.Structure, error) {
	steps, err := blockid.Walk(doc, e.heading)
	if err != nil {
		return nil, err
	}

	tb := newTreeBuilder()
	fp := blockid.NewFingerprint()
	for step := range steps {
		fp.Add(step)
		switch step.Kind {
		case blockid.KindHeading:
			title := strings.TrimSpace(parser.ParagraphText(step.Item.Paragraph))
			tb.open(&doctree.Section{
				ID:    step.ID,
				Title: title,
				Level: step.HeadingLevel,
				Role:  e.rules.SectionRole(title),
			})
		case blockid.KindParagraph:
			tb.add(paragraphBlock(doc, step.ID, step.Item.Paragraph))
		case blockid.KindTable:
			tb.add(e.tableBlock(step.ID, step.Item.Table))
		}
	}

	preamble, sections := tb.build()
	s := &doctree.Structure{
		Preamble: preamble,
		Sections: Prune(sections),
	}
	sum := fp.Sum()
	s.Fingerprint = &sum

	slots := e.annotate(s)
	e.log.Debug("extracted structure",
		"doc", doc.Name,
		"sections", sum.Sections,
		"paragraphs", sum.Paragraphs,
		"tables", sum.Tables,
		"slots", slots,
	)
	return s, nil
}

func paragraphBlock(doc *parser.Document, id string, p *docx.Paragraph) *doctree.Block {
	raw := strings.TrimSpace(parser.ParagraphText(p))
	b := &doctree.Block{
		ID:      id,
		Kind:    doctree.KindParagraph,
		Text:    raw,
		RawText: raw,
		Style: &doctree.Style{
			Name:      doc.StyleName(p),
			Alignment: parser.Alignment(p),
		},
	}
	if level, ok := parser.ListLevel(p); ok {
		b.Kind = doctree.KindList
		b.Level = &level
	} else if raw == "" {
		b.Kind = doctree.KindEmpty
	}
	if qid, rest, ok := classify.ParseQuestion(raw); ok {
		b.QuestionID = &qid
		b.IsQuestion = true
		b.Text = rest
	}
	return b
}

func (e *Extractor) tableBlock(id string, t *docx.Table) *doctree.Block {
	b := &doctree.Block{
		ID:          id,
		Kind:        doctree.KindTable,
		Rows:        parser.RowCount(t),
		Cols:        parser.ColCount(t),
		TableRole:   doctree.TableGeneral,
		TextContent: []string{},
	}
	if len(t.TableRows) > 0 {
		b.TableRole = e.rules.TableRole(parser.RowTexts(t.TableRows[0]))
	}
	for _, row := range t.TableRows {
		for _, cell := range row.TableCells {
			if parts := parser.CellParagraphs(cell); len(parts) > 0 {
				b.TextContent = append(b.TextContent, strings.Join(parts, " "))
			}
		}
	}
	return b
}
