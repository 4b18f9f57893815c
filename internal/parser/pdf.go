package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// pageMarker matches footer lines that only carry a page number, such as
// "- 3 -", "3" or "第 3 页 共 8 页".
var pageMarker = regexp.MustCompile(`^(?:-?\s*\d+\s*-?|第\s*\d+\s*页(?:\s*[,，]?\s*共\s*\d+\s*页)?)$`)

// PDFParser handles PDF files. It reads them in memory with ledongthuc/pdf
// and, when enabled, falls back to the pdftotext binary. Every non-empty
// line that is not a page marker becomes a paragraph fragment.
type PDFParser struct {
	FallbackPdftotext bool
}

func (p *PDFParser) Parse(r io.Reader, filename string) (*Extraction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	text, err := pdfText(data)
	if err != nil && p.FallbackPdftotext {
		text, err = pdftotext(data)
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	ex := &Extraction{Title: titleFromFilename(filename)}
	for _, page := range strings.Split(text, "\f") {
		for _, line := range strings.Split(page, "\n") {
			line = strings.TrimSpace(line)
			if pageMarker.MatchString(line) {
				continue
			}
			ex.add(FragmentParagraph, line)
		}
	}
	return ex, nil
}

// pdfText joins the plain text of every page with form feeds. The pdf
// library panics on some malformed files; that is reported as an error.
func pdfText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var buf strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		s, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\f")
		}
		buf.WriteString(s)
	}
	if strings.TrimSpace(buf.String()) == "" {
		return "", fmt.Errorf("no text layer")
	}
	return buf.String(), nil
}

// pdftotext spools data to a temp file for the external binary.
func pdftotext(data []byte) (string, error) {
	tmp, err := os.CreateTemp("", "docslot-pdf-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	out, err := exec.Command("pdftotext", "-layout", tmp.Name(), "-").Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}
