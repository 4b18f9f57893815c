package parser

import (
	"strings"

	"github.com/fumiama/go-docx"
)

// RowCount returns the number of rows in t.
func RowCount(t *docx.Table) int {
	return len(t.TableRows)
}

// ColCount returns the table's grid width. Tables without a grid report
// their widest row. A table without rows has no columns.
func ColCount(t *docx.Table) int {
	if len(t.TableRows) == 0 {
		return 0
	}
	if t.TableGrid != nil && len(t.TableGrid.GridCols) > 0 {
		return len(t.TableGrid.GridCols)
	}
	widest := 0
	for _, row := range t.TableRows {
		widest = max(widest, len(row.TableCells))
	}
	return widest
}

// CellText returns the cell's paragraph texts joined by newlines.
func CellText(c *docx.WTableCell) string {
	parts := make([]string, 0, len(c.Paragraphs))
	for _, p := range c.Paragraphs {
		parts = append(parts, ParagraphText(p))
	}
	return strings.Join(parts, "\n")
}

// CellParagraphs returns the trimmed, non-empty paragraph texts of c.
func CellParagraphs(c *docx.WTableCell) []string {
	var out []string
	for _, p := range c.Paragraphs {
		if t := strings.TrimSpace(ParagraphText(p)); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// RowTexts returns the trimmed text of each cell in row.
func RowTexts(row *docx.WTableRow) []string {
	out := make([]string, 0, len(row.TableCells))
	for _, c := range row.TableCells {
		out = append(out, strings.TrimSpace(CellText(c)))
	}
	return out
}

// SetCellText replaces the cell's content with a single paragraph holding
// text. Nested tables are removed. The first paragraph's properties and the
// first run's formatting are kept.
func SetCellText(c *docx.WTableCell, text string) {
	var p *docx.Paragraph
	if len(c.Paragraphs) > 0 {
		p = c.Paragraphs[0]
	} else {
		p = &docx.Paragraph{}
	}
	SetParagraphText(p, text)
	c.Paragraphs = []*docx.Paragraph{p}
	c.Tables = nil
}
