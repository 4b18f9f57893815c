package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const stylesPart = "word/styles.xml"

// Styles maps style ids, as referenced from w:pStyle, to display names.
type Styles struct {
	names            map[string]string
	defaultParagraph string
}

type stylesXML struct {
	Styles []styleXML `xml:"style"`
}

type styleXML struct {
	Type    string `xml:"type,attr"`
	Default string `xml:"default,attr"`
	ID      string `xml:"styleId,attr"`
	Name    struct {
		Val string `xml:"val,attr"`
	} `xml:"name"`
}

// builtinNames restores the canonical spelling Word uses in its UI for
// built-in styles that styles.xml stores in lower case.
var builtinNames = map[string]string{
	"title":     "Title",
	"subtitle":  "Subtitle",
	"caption":   "Caption",
	"header":    "Header",
	"footer":    "Footer",
	"body text": "Body Text",
	"normal":    "Normal",
}

func init() {
	for i := 1; i <= 9; i++ {
		builtinNames[fmt.Sprintf("heading %d", i)] = fmt.Sprintf("Heading %d", i)
	}
}

// ParseStyles reads a styles.xml part.
func ParseStyles(data []byte) (*Styles, error) {
	var doc stylesXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode styles: %w", err)
	}
	s := &Styles{names: make(map[string]string, len(doc.Styles))}
	for _, st := range doc.Styles {
		if st.ID == "" {
			continue
		}
		name := st.Name.Val
		if canonical, ok := builtinNames[strings.ToLower(name)]; ok {
			name = canonical
		}
		if name == "" {
			name = st.ID
		}
		s.names[st.ID] = name
		if st.Type == "paragraph" && isTrue(st.Default) && s.defaultParagraph == "" {
			s.defaultParagraph = name
		}
	}
	return s, nil
}

// Name resolves a style id. Unknown ids resolve to themselves.
func (s *Styles) Name(id string) string {
	if s != nil && s.names != nil {
		if name, ok := s.names[id]; ok {
			return name
		}
	}
	return id
}

// DefaultParagraph is the name of the style applied to paragraphs without
// an explicit w:pStyle.
func (s *Styles) DefaultParagraph() string {
	if s == nil || s.defaultParagraph == "" {
		return "Normal"
	}
	return s.defaultParagraph
}

func isTrue(v string) bool {
	switch v {
	case "1", "true", "on":
		return true
	}
	return false
}

func readStyles(archive []byte) (*Styles, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, err
	}
	for _, f := range zr.File {
		if f.Name != stylesPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		return ParseStyles(data)
	}
	return &Styles{}, nil
}
