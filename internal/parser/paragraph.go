package parser

import (
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"
)

// ParagraphText returns the paragraph's text as Word displays it: runs and
// hyperlinks concatenated, tabs as "\t" and line breaks as "\n".
func ParagraphText(p *docx.Paragraph) string {
	if p == nil {
		return ""
	}
	var sb strings.Builder
	for _, child := range p.Children {
		switch c := child.(type) {
		case *docx.Run:
			writeRunText(&sb, c)
		case *docx.Hyperlink:
			writeRunText(&sb, &c.Run)
		}
	}
	return sb.String()
}

func writeRunText(sb *strings.Builder, r *docx.Run) {
	for _, rc := range r.Children {
		switch c := rc.(type) {
		case *docx.Text:
			sb.WriteString(c.Text)
		case *docx.Tab:
			sb.WriteByte('\t')
		case *docx.BarterRabbet:
			if c.Type == "" || c.Type == "textWrapping" {
				sb.WriteByte('\n')
			}
		}
	}
}

// StyleName resolves the paragraph's style to its display name, falling
// back to the document's default paragraph style.
func (d *Document) StyleName(p *docx.Paragraph) string {
	if p.Properties != nil && p.Properties.Style != nil && p.Properties.Style.Val != "" {
		return d.styles.Name(p.Properties.Style.Val)
	}
	return d.styles.DefaultParagraph()
}

// Alignment returns the paragraph's w:jc value, or nil when unset.
func Alignment(p *docx.Paragraph) *string {
	if p.Properties == nil || p.Properties.Justification == nil || p.Properties.Justification.Val == "" {
		return nil
	}
	v := p.Properties.Justification.Val
	return &v
}

// ListLevel reports whether the paragraph carries numbering properties and
// its indent level. A missing or malformed w:ilvl is level 0.
func ListLevel(p *docx.Paragraph) (int, bool) {
	if p.Properties == nil || p.Properties.NumProperties == nil {
		return 0, false
	}
	num := p.Properties.NumProperties
	if num.Ilvl == nil {
		return 0, true
	}
	lvl, err := strconv.Atoi(strings.TrimSpace(num.Ilvl.Val))
	if err != nil || lvl < 0 {
		return 0, true
	}
	return lvl, true
}

// SetParagraphText replaces the paragraph's content with a single run
// holding text. The formatting of the first existing run is kept.
func SetParagraphText(p *docx.Paragraph, text string) {
	var props *docx.RunProperties
	for _, child := range p.Children {
		if r, ok := child.(*docx.Run); ok {
			props = r.RunProperties
			break
		}
	}
	p.Children = p.Children[:0]
	run := p.AddText(text)
	if props != nil {
		run.RunProperties = props
	}
}
