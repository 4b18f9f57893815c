package parser

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

const maxTextLine = 1 << 20

// numberedLine matches lines that open an item such as "3." "3、" or "(3)".
var numberedLine = regexp.MustCompile(`^\s*(?:\d+\s*[.．、]|[(（]\d+[)）])`)

// TextParser handles plain text files. Blank lines separate paragraphs and
// a numbered line always starts a new one, so question lists typed without
// blank lines still yield one paragraph per question.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*Extraction, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxTextLine)

	ex := &Extraction{Title: titleFromFilename(filename)}
	var lines []string
	flush := func() {
		ex.add(FragmentParagraph, strings.Join(lines, "\n"))
		lines = lines[:0]
	}

	first := true
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if numberedLine.MatchString(line) {
			flush()
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()
	return ex, nil
}
