package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark with GFM tables.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*Extraction, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	doc := md.Parser().Parse(text.NewReader(src))

	ex := &Extraction{Title: titleFromFilename(filename)}
	table := 0

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			ex.addHeading(node.Level, nodeText(node, src))
		case *ast.List:
			// Each item is its own paragraph so numbered questions stay apart.
			for item := node.FirstChild(); item != nil; item = item.NextSibling() {
				ex.add(FragmentParagraph, nodeText(item, src))
			}
		case *east.Table:
			row := 0
			for r := node.FirstChild(); r != nil; r = r.NextSibling() {
				for c := r.FirstChild(); c != nil; c = c.NextSibling() {
					ex.addCell(table, row, nodeText(c, src))
				}
				row++
			}
			table++
		default:
			ex.add(FragmentParagraph, nodeText(n, src))
		}
	}

	return ex, nil
}

// nodeText gets the text content of a goldmark AST node.
func nodeText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	writeNodeText(&buf, n, src)
	return strings.TrimSpace(buf.String())
}

func writeNodeText(buf *bytes.Buffer, n ast.Node, src []byte) {
	switch v := n.(type) {
	case *ast.Text:
		buf.Write(v.Segment.Value(src))
		if v.HardLineBreak() || v.SoftLineBreak() {
			buf.WriteByte('\n')
		}
		return
	case *ast.String:
		buf.Write(v.Value)
		return
	}
	// Code blocks carry raw lines instead of inline children.
	if !n.HasChildren() && n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		return
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		writeNodeText(buf, c, src)
		if c.Type() == ast.TypeBlock && c.NextSibling() != nil {
			buf.WriteByte('\n')
		}
	}
}
