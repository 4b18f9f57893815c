package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMarkdownParser_HeadingsAndParagraphs(t *testing.T) {
	input := `# Title

Intro text.

## Section A

Section A content.

### Subsection A1
`
	p := &MarkdownParser{}
	ex, err := p.Parse(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ex.Title != "doc" {
		t.Errorf("expected title %q, got %q", "doc", ex.Title)
	}

	want := []Fragment{
		{Kind: FragmentHeading, Level: 1, Text: "Title"},
		{Kind: FragmentParagraph, Text: "Intro text."},
		{Kind: FragmentHeading, Level: 2, Text: "Section A"},
		{Kind: FragmentParagraph, Text: "Section A content."},
		{Kind: FragmentHeading, Level: 3, Text: "Subsection A1"},
	}
	if diff := cmp.Diff(want, ex.Fragments); diff != "" {
		t.Fatalf("fragments mismatch (-want +got):\n%s", diff)
	}
}

func TestMarkdownParser_ListItemsAreSeparate(t *testing.T) {
	input := "1. First question\n2. Second question\n"
	p := &MarkdownParser{}
	ex, err := p.Parse(strings.NewReader(input), "q.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"First question", "Second question"}
	if diff := cmp.Diff(want, ex.Paragraphs()); diff != "" {
		t.Fatalf("paragraphs mismatch (-want +got):\n%s", diff)
	}
}

func TestMarkdownParser_TableCells(t *testing.T) {
	input := "| 题目 | 答案 |\n| --- | --- |\n| 1+1 | 2 |\n"
	p := &MarkdownParser{}
	ex, err := p.Parse(strings.NewReader(input), "t.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Fragment{
		{Kind: FragmentCell, Table: 0, Row: 0, Text: "题目"},
		{Kind: FragmentCell, Table: 0, Row: 0, Text: "答案"},
		{Kind: FragmentCell, Table: 0, Row: 1, Text: "1+1"},
		{Kind: FragmentCell, Table: 0, Row: 1, Text: "2"},
	}
	if diff := cmp.Diff(want, ex.Fragments); diff != "" {
		t.Fatalf("fragments mismatch (-want +got):\n%s", diff)
	}
}

func TestMarkdownParser_CodeBlocks(t *testing.T) {
	input := "# API\n\n```\nGET /api/users\n```\n\nMore text after code.\n"
	p := &MarkdownParser{}
	ex, err := p.Parse(strings.NewReader(input), "api.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	paras := ex.Paragraphs()
	if len(paras) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d: %q", len(paras), paras)
	}
	if paras[1] != "GET /api/users" {
		t.Errorf("expected code block content, got %q", paras[1])
	}
	if paras[2] != "More text after code." {
		t.Errorf("expected post-code text, got %q", paras[2])
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	ex, err := p.Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ex.Fragments) != 0 {
		t.Errorf("expected 0 fragments for empty input, got %d", len(ex.Fragments))
	}
}

func TestMarkdownParser_TitleStripping(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"readme.md", "readme"},
		{"notes.markdown", "notes"},
		{"dir/plain.md", "plain"},
	}
	p := &MarkdownParser{}
	for _, tt := range tests {
		ex, err := p.Parse(strings.NewReader("text"), tt.filename)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tt.filename, err)
		}
		if ex.Title != tt.want {
			t.Errorf("filename=%q: expected title %q, got %q", tt.filename, tt.want, ex.Title)
		}
	}
}
