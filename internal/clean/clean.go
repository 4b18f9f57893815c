// Package clean turns a filled document back into a reusable template by
// wiping the content column of its main table and everything after the
// answer key.
package clean

import (
	"log/slog"
	"strings"

	"github.com/dgallion1/docslot/internal/parser"
	"github.com/fumiama/go-docx"
)

// MinRows is the row count a table must exceed to be cleaned.
const MinRows = 5

// DefaultMarkers start the answer key section.
var DefaultMarkers = []string{"Answer Key", "参考答案"}

type Cleaner struct {
	MinRows int
	Markers []string
	Log     *slog.Logger
}

func New(log *slog.Logger) *Cleaner {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Cleaner{MinRows: MinRows, Markers: DefaultMarkers, Log: log}
}

// Report counts what Clean wiped. Table is -1 when no table qualified.
type Report struct {
	Table      int `json:"table"`
	TableRows  int `json:"table_rows"`
	Cells      int `json:"cells"`
	Paragraphs int `json:"paragraphs"`
}

// Clean wipes doc in place. Only body-level tables and paragraphs are
// considered.
func (c *Cleaner) Clean(doc *parser.Document) Report {
	log := c.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	log = log.With("doc", doc.Name)

	var (
		tables []*docx.Table
		paras  []*docx.Paragraph
	)
	for _, it := range doc.Docx().Document.Body.Items {
		switch v := it.(type) {
		case *docx.Table:
			tables = append(tables, v)
		case *docx.Paragraph:
			paras = append(paras, v)
		}
	}

	report := Report{Table: -1}

	target, most := -1, 0
	for i, t := range tables {
		if n := parser.RowCount(t); n > most {
			target, most = i, n
		}
	}
	if target >= 0 && most > c.MinRows {
		report.Table = target
		report.TableRows = most
		for _, row := range tables[target].TableRows {
			if len(row.TableCells) > 1 {
				parser.SetCellText(row.TableCells[1], "")
				report.Cells++
			}
		}
		log.Info("cleaned main table", "table", target, "rows", most, "cells", report.Cells)
	}

	// Every marker paragraph survives, including ones after the first.
	wiping := false
	for _, p := range paras {
		if c.isMarker(parser.ParagraphText(p)) {
			wiping = true
			continue
		}
		if !wiping {
			continue
		}
		parser.SetParagraphText(p, "")
		report.Paragraphs++
	}
	if wiping {
		log.Info("cleaned answer key", "paragraphs", report.Paragraphs)
	}
	return report
}

func (c *Cleaner) isMarker(text string) bool {
	for _, m := range c.Markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
