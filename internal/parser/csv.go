package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// questionHeaders mark CSV columns that hold question text.
var questionHeaders = []string{"题目", "试题", "question"}

// CSVParser handles CSV files as a single table whose first record is the
// header row. Values in a question column are also emitted as paragraphs
// so question extraction sees them.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*Extraction, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	ex := &Extraction{Title: titleFromFilename(filename)}
	var questionCols map[int]bool
	for row := 0; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		if row == 0 && len(record) > 0 {
			record[0] = strings.TrimPrefix(record[0], "\ufeff")
			questionCols = questionColumns(record)
		}
		for col, field := range record {
			ex.addCell(0, row, field)
			if row > 0 && questionCols[col] {
				ex.add(FragmentParagraph, field)
			}
		}
	}
	return ex, nil
}

func questionColumns(header []string) map[int]bool {
	cols := make(map[int]bool)
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, q := range questionHeaders {
			if strings.Contains(h, q) {
				cols[i] = true
				break
			}
		}
	}
	return cols
}
