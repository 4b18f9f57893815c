package fill

import (
	"errors"
	"testing"

	"github.com/dgallion1/docslot/internal/doctree"
	"github.com/dgallion1/docslot/internal/parser"
	"github.com/dgallion1/docslot/internal/parser/parsertest"
	"github.com/dgallion1/docslot/internal/structure"
	"github.com/google/go-cmp/cmp"
)

func lesson() *parsertest.Builder {
	return parsertest.New().
		Heading(1, "一、学情分析").
		Para("正文1").
		Empty().
		Empty().
		Table([]string{"姓名", ""}, []string{"年级", ""}, []string{"only"})
}

// texts returns the trimmed text of every body paragraph and table cell.
func texts(t *testing.T, doc *parser.Document) []string {
	t.Helper()
	seq, err := parser.Blocks(doc)
	if err != nil {
		t.Fatal(err)
	}
	var out []string
	for it := range seq {
		if it.Paragraph != nil {
			out = append(out, parser.ParagraphText(it.Paragraph))
			continue
		}
		for _, row := range it.Table.TableRows {
			out = append(out, parser.RowTexts(row)...)
		}
	}
	return out
}

func TestFillSingleParagraph(t *testing.T) {
	doc := lesson().Document(t)
	before := texts(t, doc)

	report, err := New(nil).Fill(doc, ContentMap{"p_1": Text("Hello")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"p_1"}, report.Paragraphs); diff != "" {
		t.Errorf("filled paragraphs mismatch (-want +got):\n%s", diff)
	}

	want := append([]string(nil), before...)
	want[1] = "Hello"
	if diff := cmp.Diff(want, texts(t, doc)); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestFillTableAndParagraphs(t *testing.T) {
	doc := lesson().Document(t)
	contents := ContentMap{
		"p_2": List("line one", "line two"),
		"t_1": List("张三", "七年级", "x", "ignored"),
	}

	report, err := New(nil).Fill(doc, contents)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Filled() != 2 {
		t.Errorf("expected 2 filled blocks, got %d", report.Filled())
	}

	want := []string{
		"一、学情分析",
		"正文1",
		"line one\nline two",
		"",
		"姓名", "张三",
		"年级", "七年级",
		"x",
	}
	if diff := cmp.Diff(want, texts(t, doc)); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestFillColumnPolicy(t *testing.T) {
	doc := parsertest.New().Table([]string{"a", "b", "c"}, []string{"d", "e", "f"}).Document(t)
	f := New(nil)
	f.Policy = ColumnLast

	if _, err := f.Fill(doc, ContentMap{"t_1": List("1")}); err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "1", "d", "e", "f"}
	if diff := cmp.Diff(want, texts(t, doc)); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestFillReportsSkippedAndUnmatched(t *testing.T) {
	doc := lesson().Document(t)
	before := texts(t, doc)

	report, err := New(nil).Fill(doc, ContentMap{
		"t_1":   Text("not a list"),
		"p_99":  Text("nowhere"),
		"sec_1": Text("headings are not filled"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"sec_1", "t_1"}, report.Skipped); diff != "" {
		t.Errorf("skipped mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"p_99"}, report.Unmatched); diff != "" {
		t.Errorf("unmatched mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(before, texts(t, doc)); diff != "" {
		t.Fatalf("expected document untouched (-want +got):\n%s", diff)
	}
}

func TestFillSkipsUnusableValues(t *testing.T) {
	doc := lesson().Document(t)
	before := texts(t, doc)

	contents, err := ParseContentMap([]byte(`{"p_1": "Hello", "p_2": {"note": "x"}, "t_1": [["a"]]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	report, err := New(nil).Fill(doc, contents)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"p_1"}, report.Paragraphs); diff != "" {
		t.Errorf("filled paragraphs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"p_2", "t_1"}, report.Skipped); diff != "" {
		t.Errorf("skipped mismatch (-want +got):\n%s", diff)
	}
	if len(report.Unmatched) != 0 {
		t.Errorf("expected no unmatched keys, got %v", report.Unmatched)
	}

	want := append([]string(nil), before...)
	want[1] = "Hello"
	if diff := cmp.Diff(want, texts(t, doc)); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestFillWithFingerprintFromExtraction(t *testing.T) {
	doc := lesson().Document(t)
	s, err := structure.NewExtractor(nil).Extract(doc)
	if err != nil {
		t.Fatal(err)
	}

	contents := ContentMap{"p_2": Text("filled")}
	contents.SetFingerprint(s.Fingerprint.Digest)

	report, err := New(nil).Fill(doc, contents)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.Verified {
		t.Error("expected fingerprint to be verified")
	}
	if report.Filled() != 1 {
		t.Errorf("expected 1 filled block, got %d", report.Filled())
	}
}

func TestFillDetectsDrift(t *testing.T) {
	s, err := structure.NewExtractor(nil).Extract(lesson().Document(t))
	if err != nil {
		t.Fatal(err)
	}

	edited := parsertest.New().
		Heading(1, "一、学情分析").
		Para("inserted").
		Para("正文1").
		Empty().
		Empty().
		Table([]string{"姓名", ""}, []string{"年级", ""}, []string{"only"}).
		Document(t)
	before := texts(t, edited)

	contents := ContentMap{"p_1": Text("Hello")}
	contents.SetFingerprint(s.Fingerprint.Digest)

	_, err = New(nil).Fill(edited, contents)
	if !errors.Is(err, ErrIdentifierDrift) {
		t.Fatalf("expected ErrIdentifierDrift, got %v", err)
	}
	if diff := cmp.Diff(before, texts(t, edited)); diff != "" {
		t.Fatalf("expected no modification on drift (-want +got):\n%s", diff)
	}

	f := New(nil)
	f.VerifyFingerprint = false
	if _, err := f.Fill(edited, contents); err != nil {
		t.Fatalf("expected unverified fill to proceed, got %v", err)
	}
}

func TestFillRoundTripThroughFile(t *testing.T) {
	doc := lesson().Document(t)
	if _, err := New(nil).Fill(doc, ContentMap{"p_2": Text("answer")}); err != nil {
		t.Fatal(err)
	}
	data, err := doc.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	back, err := parser.FromBytes(data, "out.docx")
	if err != nil {
		t.Fatal(err)
	}

	s, err := structure.NewExtractor(nil).Extract(back)
	if err != nil {
		t.Fatal(err)
	}
	var p2 *doctree.Block
	for b := range s.Blocks() {
		if b.ID == "p_2" {
			p2 = b
		}
	}
	if p2 == nil || p2.Text != "answer" || p2.IsSlot {
		t.Fatalf("expected p_2 to hold the answer and no longer be a slot, got %+v", p2)
	}
}
