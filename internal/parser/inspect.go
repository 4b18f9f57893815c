package parser

import "github.com/fumiama/go-docx"

// TableSummary describes one body-level table.
type TableSummary struct {
	Index    int      `json:"index"`
	Rows     int      `json:"rows"`
	Cols     int      `json:"cols"`
	FirstRow []string `json:"first_row,omitempty"`
}

// Summary counts the body-level paragraphs and tables of a document.
type Summary struct {
	Paragraphs int            `json:"paragraphs"`
	Tables     []TableSummary `json:"tables"`
}

// Inspect summarises the top level of d.
func Inspect(d *Document) Summary {
	s := Summary{Tables: []TableSummary{}}
	for _, it := range d.file.Document.Body.Items {
		switch v := it.(type) {
		case *docx.Paragraph:
			s.Paragraphs++
		case *docx.Table:
			ts := TableSummary{Index: len(s.Tables), Rows: RowCount(v), Cols: ColCount(v)}
			if len(v.TableRows) > 0 {
				ts.FirstRow = RowTexts(v.TableRows[0])
			}
			s.Tables = append(s.Tables, ts)
		}
	}
	return s
}
