// Package parsertest builds small .docx documents in memory for tests.
package parsertest

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/dgallion1/docslot/internal/parser"
	"github.com/fumiama/go-docx"
)

// Builder appends blocks to a fresh go-docx document.
type Builder struct {
	doc *docx.Docx
}

// New starts an empty document using the embedded default theme.
func New() *Builder {
	return &Builder{doc: docx.New().WithDefaultTheme()}
}

// Heading adds a paragraph styled HeadingN.
func (b *Builder) Heading(level int, text string) *Builder {
	return b.Styled(fmt.Sprintf("Heading%d", level), text)
}

// Styled adds a paragraph with the given style id.
func (b *Builder) Styled(style, text string) *Builder {
	p := b.doc.AddParagraph().Style(style)
	if text != "" {
		p.AddText(text)
	}
	return b
}

// Para adds a plain paragraph.
func (b *Builder) Para(text string) *Builder {
	p := b.doc.AddParagraph()
	if text != "" {
		p.AddText(text)
	}
	return b
}

// Empty adds a paragraph without text.
func (b *Builder) Empty() *Builder {
	b.doc.AddParagraph()
	return b
}

// Aligned adds a paragraph with a w:jc value.
func (b *Builder) Aligned(align, text string) *Builder {
	b.doc.AddParagraph().Justification(align).AddText(text)
	return b
}

// List adds a numbered paragraph at the given indent level.
func (b *Builder) List(level int, text string) *Builder {
	p := b.doc.AddParagraph().NumPr("1", fmt.Sprint(level))
	if text != "" {
		p.AddText(text)
	}
	return b
}

// Table adds a table with one row per entry. Rows may differ in length.
func (b *Builder) Table(rows ...[]string) *Builder {
	cols := 0
	for _, r := range rows {
		cols = max(cols, len(r))
	}
	t := b.doc.AddTable(len(rows), cols, 0, nil)
	for i, r := range rows {
		row := t.TableRows[i]
		row.TableCells = row.TableCells[:len(r)]
		for j, text := range r {
			p := row.TableCells[j].AddParagraph()
			if text != "" {
				p.AddText(text)
			}
		}
	}
	return b
}

// Docx returns the document under construction.
func (b *Builder) Docx() *docx.Docx {
	return b.doc
}

// Bytes serializes the document.
func (b *Builder) Bytes(tb testing.TB) []byte {
	tb.Helper()
	var buf bytes.Buffer
	if _, err := b.doc.WriteTo(&buf); err != nil {
		tb.Fatalf("write docx: %v", err)
	}
	return buf.Bytes()
}

// Document serializes and re-parses the document so tests see it exactly
// as a file on disk would be read.
func (b *Builder) Document(tb testing.TB) *parser.Document {
	tb.Helper()
	doc, err := parser.FromBytes(b.Bytes(tb), "test.docx")
	if err != nil {
		tb.Fatalf("parse docx: %v", err)
	}
	return doc
}
