// Package parser reads documents. It wraps go-docx as the block container
// used by extraction and filling, and turns every supported resource format
// into a flat stream of text fragments for the question bank.
package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Parser converts raw resource bytes into an ordered fragment stream.
type Parser interface {
	Parse(r io.Reader, filename string) (*Extraction, error)
}

// FragmentKind distinguishes headings, body text and table cells.
type FragmentKind int

const (
	FragmentParagraph FragmentKind = iota
	FragmentHeading
	FragmentCell
)

// Fragment is one unit of text in document order. Table and Row are only
// meaningful for cells and count from zero.
type Fragment struct {
	Kind  FragmentKind
	Level int
	Table int
	Row   int
	Text  string
}

// Extraction is the text of a resource, in reading order.
type Extraction struct {
	Title     string
	Fragments []Fragment
}

// Paragraphs returns heading and paragraph texts in order.
func (e *Extraction) Paragraphs() []string {
	var out []string
	for _, f := range e.Fragments {
		if f.Kind != FragmentCell {
			out = append(out, f.Text)
		}
	}
	return out
}

// Cells returns the text of cells in the first maxTables tables, limited to
// the first maxRows rows of each.
func (e *Extraction) Cells(maxTables, maxRows int) []string {
	var out []string
	for _, f := range e.Fragments {
		if f.Kind == FragmentCell && f.Table < maxTables && f.Row < maxRows {
			out = append(out, f.Text)
		}
	}
	return out
}

func (e *Extraction) add(kind FragmentKind, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	e.Fragments = append(e.Fragments, Fragment{Kind: kind, Text: text})
}

func (e *Extraction) addHeading(level int, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	e.Fragments = append(e.Fragments, Fragment{Kind: FragmentHeading, Level: level, Text: text})
}

func (e *Extraction) addCell(table, row int, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	e.Fragments = append(e.Fragments, Fragment{Kind: FragmentCell, Table: table, Row: row, Text: text})
}

// Options tune individual parsers.
type Options struct {
	PDFFallbackPdftotext bool
}

// SupportedExtensions lists file extensions the question bank can index.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

func titleFromFilename(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
