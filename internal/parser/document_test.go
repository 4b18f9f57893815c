package parser_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/docslot/internal/parser"
	"github.com/dgallion1/docslot/internal/parser/parsertest"
	"github.com/fumiama/go-docx"
	"github.com/google/go-cmp/cmp"
)

func kinds(t *testing.T, container any) []string {
	t.Helper()
	seq, err := parser.Blocks(container)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out []string
	for it := range seq {
		out = append(out, it.Kind.String())
	}
	return out
}

func TestBlocksDocumentOrder(t *testing.T) {
	doc := parsertest.New().
		Heading(1, "One").
		Para("text").
		Table([]string{"a", "b"}).
		Empty().
		Document(t)

	got := kinds(t, doc)
	want := []string{"paragraph", "paragraph", "table", "paragraph"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("block kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestBlocksAcceptsDocxAndCell(t *testing.T) {
	b := parsertest.New().Para("x").Table([]string{"cell"})
	if got := kinds(t, b.Docx()); len(got) != 2 {
		t.Fatalf("expected 2 blocks from *docx.Docx, got %d", len(got))
	}

	cell := &docx.WTableCell{}
	cell.AddParagraph().AddText("inner")
	cell.Tables = []*docx.Table{{}}
	want := []string{"paragraph", "table"}
	if diff := cmp.Diff(want, kinds(t, cell)); diff != "" {
		t.Fatalf("cell kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestBlocksRejectsUnsupportedContainer(t *testing.T) {
	tests := []struct {
		name      string
		container any
	}{
		{"string", "document.docx"},
		{"nil", nil},
		{"nil document", (*parser.Document)(nil)},
		{"table", &docx.Table{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Blocks(tt.container)
			if !errors.Is(err, parser.ErrUnsupportedContainer) {
				t.Fatalf("expected ErrUnsupportedContainer, got %v", err)
			}
		})
	}
}

func TestBlocksSkipsSectionProperties(t *testing.T) {
	b := parsertest.New().Para("x")
	b.Docx().Document.Body.Items = append(b.Docx().Document.Body.Items, &docx.SectPr{})
	if got := kinds(t, b.Docx()); len(got) != 1 {
		t.Fatalf("expected sectPr to be skipped, got %v", got)
	}
}

func TestParagraphAccessors(t *testing.T) {
	doc := parsertest.New().
		Heading(2, "Chapter").
		Aligned("center", "centered").
		List(2, "item").
		Para("line one\nline two\tend").
		Document(t)

	var paras []*docx.Paragraph
	seq, _ := parser.Blocks(doc)
	for it := range seq {
		paras = append(paras, it.Paragraph)
	}
	if len(paras) != 4 {
		t.Fatalf("expected 4 paragraphs, got %d", len(paras))
	}

	if got := doc.StyleName(paras[0]); got != "Heading2" {
		t.Errorf("expected style %q, got %q", "Heading2", got)
	}
	if got := doc.StyleName(paras[1]); got != "Normal" {
		t.Errorf("expected default style %q, got %q", "Normal", got)
	}
	if a := parser.Alignment(paras[1]); a == nil || *a != "center" {
		t.Errorf("expected alignment center, got %v", a)
	}
	if a := parser.Alignment(paras[0]); a != nil {
		t.Errorf("expected nil alignment, got %q", *a)
	}
	if lvl, ok := parser.ListLevel(paras[2]); !ok || lvl != 2 {
		t.Errorf("expected list level 2, got %d (list=%v)", lvl, ok)
	}
	if _, ok := parser.ListLevel(paras[3]); ok {
		t.Error("expected plain paragraph not to be a list")
	}
	if got := parser.ParagraphText(paras[3]); got != "line one\nline two\tend" {
		t.Errorf("expected breaks and tabs preserved, got %q", got)
	}
}

func TestSetParagraphTextKeepsRunFormatting(t *testing.T) {
	p := &docx.Paragraph{}
	p.AddText("old").Bold()
	parser.SetParagraphText(p, "new")

	if got := parser.ParagraphText(p); got != "new" {
		t.Fatalf("expected %q, got %q", "new", got)
	}
	if len(p.Children) != 1 {
		t.Fatalf("expected a single run, got %d children", len(p.Children))
	}
	run := p.Children[0].(*docx.Run)
	if run.RunProperties == nil || run.RunProperties.Bold == nil {
		t.Error("expected bold formatting to survive")
	}
}

func TestTableAccessors(t *testing.T) {
	doc := parsertest.New().
		Table([]string{" 姓名 ", "年级"}, []string{"a", "b", "c"}).
		Document(t)
	tbl := doc.Docx().Document.Body.Items[0].(*docx.Table)

	if parser.RowCount(tbl) != 2 {
		t.Errorf("expected 2 rows, got %d", parser.RowCount(tbl))
	}
	if parser.ColCount(tbl) != 3 {
		t.Errorf("expected 3 cols from widest row, got %d", parser.ColCount(tbl))
	}
	if diff := cmp.Diff([]string{"姓名", "年级"}, parser.RowTexts(tbl.TableRows[0])); diff != "" {
		t.Errorf("row texts mismatch (-want +got):\n%s", diff)
	}

	parser.SetCellText(tbl.TableRows[1].TableCells[1], "filled")
	if got := parser.CellText(tbl.TableRows[1].TableCells[1]); got != "filled" {
		t.Errorf("expected %q, got %q", "filled", got)
	}
	if parser.ColCount(&docx.Table{}) != 0 {
		t.Error("expected table without rows to have 0 cols")
	}
}

func TestColCountPrefersGrid(t *testing.T) {
	tbl := &docx.Table{
		TableGrid: &docx.WTableGrid{GridCols: []*docx.WGridCol{{W: 1}, {W: 1}, {W: 1}, {W: 1}}},
		TableRows: []*docx.WTableRow{{TableCells: []*docx.WTableCell{{}}}},
	}
	if got := parser.ColCount(tbl); got != 4 {
		t.Fatalf("expected grid width 4, got %d", got)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := parser.Open(filepath.Join(t.TempDir(), "missing.docx"))
	if !errors.Is(err, parser.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist in chain, got %v", err)
	}
}

func TestOpenRejectsNonDocx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.docx")
	if err := os.WriteFile(path, []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := parser.Open(path); err == nil {
		t.Fatal("expected error for non-zip input")
	}
}

func TestSaveAndReopen(t *testing.T) {
	doc := parsertest.New().Heading(1, "Title").Para("body").Document(t)
	path := filepath.Join(t.TempDir(), "out.docx")
	if err := doc.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	back, err := parser.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if back.Name != "out.docx" {
		t.Errorf("expected name out.docx, got %q", back.Name)
	}
	got := back.Extraction().Paragraphs()
	if diff := cmp.Diff([]string{"Title", "body"}, got); diff != "" {
		t.Fatalf("paragraphs mismatch (-want +got):\n%s", diff)
	}
}

func TestInspect(t *testing.T) {
	doc := parsertest.New().
		Para("a").
		Table([]string{"h1", "h2"}, []string{"x", "y"}).
		Empty().
		Document(t)

	s := parser.Inspect(doc)
	if s.Paragraphs != 2 {
		t.Errorf("expected 2 paragraphs, got %d", s.Paragraphs)
	}
	want := []parser.TableSummary{{Index: 0, Rows: 2, Cols: 2, FirstRow: []string{"h1", "h2"}}}
	if diff := cmp.Diff(want, s.Tables); diff != "" {
		t.Errorf("tables mismatch (-want +got):\n%s", diff)
	}
}

func TestDOCXParserFragments(t *testing.T) {
	data := parsertest.New().
		Para("1. First question").
		Table([]string{"题目", "答案"}, []string{"q", ""}).
		Bytes(t)

	p, err := parser.ForFile("paper.DOCX", parser.Options{})
	if err != nil {
		t.Fatal(err)
	}
	ex, err := p.Parse(strings.NewReader(string(data)), "paper.docx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ex.Title != "paper" {
		t.Errorf("expected title paper, got %q", ex.Title)
	}
	if diff := cmp.Diff([]string{"1. First question"}, ex.Paragraphs()); diff != "" {
		t.Errorf("paragraphs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"题目", "答案", "q"}, ex.Cells(3, 3)); diff != "" {
		t.Errorf("cells mismatch (-want +got):\n%s", diff)
	}
}
