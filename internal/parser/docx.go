package parser

import (
	"fmt"
	"io"

	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx resources. Paragraphs and table cells are read
// from the top level of the body only.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*Extraction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}
	doc, err := FromBytes(data, filename)
	if err != nil {
		return nil, err
	}
	return doc.Extraction(), nil
}

// Extraction flattens the document body into fragments. Every paragraph,
// headings included, becomes a paragraph fragment; tables contribute one
// cell fragment per non-empty cell.
func (d *Document) Extraction() *Extraction {
	ex := &Extraction{Title: titleFromFilename(d.Name)}
	table := 0
	for _, it := range d.file.Document.Body.Items {
		switch v := it.(type) {
		case *docx.Paragraph:
			ex.add(FragmentParagraph, ParagraphText(v))
		case *docx.Table:
			for i, row := range v.TableRows {
				for _, c := range row.TableCells {
					ex.addCell(table, i, CellText(c))
				}
			}
			table++
		}
	}
	return ex
}
