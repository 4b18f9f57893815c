// Package fill writes content into a template by re-deriving the block
// identifiers of the extraction pass. It never reads the extracted tree.
package fill

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/dgallion1/docslot/internal/blockid"
	"github.com/dgallion1/docslot/internal/parser"
	"github.com/fumiama/go-docx"
)

// ErrIdentifierDrift is returned when the document no longer produces the
// identifier stream the content map was generated from.
var ErrIdentifierDrift = errors.New("identifier drift")

// Filler applies content maps to documents.
type Filler struct {
	Policy            ColumnPolicy
	VerifyFingerprint bool
	// Heading must match the predicate used at extraction time. Nil uses
	// the default style-name rule.
	Heading blockid.HeadingFunc
	Log     *slog.Logger
}

// New returns a filler with the auto column policy and fingerprint
// verification on.
func New(log *slog.Logger) *Filler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Filler{Policy: ColumnAuto, VerifyFingerprint: true, Log: log}
}

// Report lists what a fill did.
type Report struct {
	Paragraphs []string `json:"paragraphs"`
	Tables     []string `json:"tables"`
	Skipped    []string `json:"skipped"`
	Unmatched  []string `json:"unmatched"`
	Verified   bool     `json:"verified"`
}

// Filled returns the number of blocks written.
func (r Report) Filled() int { return len(r.Paragraphs) + len(r.Tables) }

// Fill overwrites every block whose identifier is a key of contents. On
// identifier drift the document is left untouched.
func (f *Filler) Fill(doc *parser.Document, contents ContentMap) (Report, error) {
	log := f.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	log = log.With("doc", doc.Name)

	report := Report{
		Paragraphs: []string{},
		Tables:     []string{},
		Skipped:    []string{},
		Unmatched:  []string{},
	}

	if want, ok := contents.Fingerprint(); ok && f.VerifyFingerprint {
		got, err := blockid.Compute(doc, f.Heading)
		if err != nil {
			return report, err
		}
		if got.Digest != want {
			return report, fmt.Errorf("%w: content map was generated for %s, document is %s", ErrIdentifierDrift, short(want), short(got.Digest))
		}
		report.Verified = true
	}

	steps, err := blockid.Walk(doc, f.Heading)
	if err != nil {
		return report, err
	}

	seen := make(map[string]bool, len(contents))
	for step := range steps {
		v, ok := contents[step.ID]
		if !ok {
			continue
		}
		seen[step.ID] = true
		if v.Invalid != "" {
			log.Warn("content value is not usable, skipping", "id", step.ID, "reason", v.Invalid)
			report.Skipped = append(report.Skipped, step.ID)
			continue
		}
		switch step.Kind {
		case blockid.KindHeading:
			log.Warn("headings are not filled, skipping", "id", step.ID)
			report.Skipped = append(report.Skipped, step.ID)
		case blockid.KindParagraph:
			parser.SetParagraphText(step.Item.Paragraph, v.String())
			report.Paragraphs = append(report.Paragraphs, step.ID)
		case blockid.KindTable:
			if !v.IsList {
				log.Warn("table content is not a list, skipping", "id", step.ID)
				report.Skipped = append(report.Skipped, step.ID)
				continue
			}
			f.fillTable(step.Item.Table, v.Items)
			report.Tables = append(report.Tables, step.ID)
		}
	}

	for id := range contents {
		if id != FingerprintKey && !seen[id] {
			report.Unmatched = append(report.Unmatched, id)
		}
	}
	slices.Sort(report.Unmatched)
	if len(report.Unmatched) > 0 {
		log.Warn("content keys matched no block", "ids", report.Unmatched)
	}

	log.Info("fill complete",
		"paragraphs", len(report.Paragraphs),
		"tables", len(report.Tables),
		"skipped", len(report.Skipped),
		"unmatched", len(report.Unmatched),
		"verified", report.Verified,
	)
	return report, nil
}

func (f *Filler) fillTable(t *docx.Table, values []string) {
	for i, row := range t.TableRows {
		if i >= len(values) {
			return
		}
		col := f.Policy.Select(len(row.TableCells))
		if col < 0 {
			continue
		}
		parser.SetCellText(row.TableCells[col], values[i])
	}
}

func short(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}
	return digest
}
