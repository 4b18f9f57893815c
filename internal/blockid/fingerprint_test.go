package blockid

import (
	"testing"

	"github.com/dgallion1/docslot/internal/parser"
	"github.com/dgallion1/docslot/internal/parser/parsertest"
)

func template() *parsertest.Builder {
	return parsertest.New().
		Heading(1, "知识讲解").
		Para("说明").
		Empty().
		Table([]string{"题目", "答案"}, []string{"1+1", ""})
}

func TestFingerprintIgnoresText(t *testing.T) {
	doc := template().Document(t)
	before, err := Compute(doc, nil)
	if err != nil {
		t.Fatal(err)
	}

	seq, _ := parser.Blocks(doc)
	for it := range seq {
		if it.Paragraph != nil {
			parser.SetParagraphText(it.Paragraph, "replaced")
		}
		if it.Table != nil {
			parser.SetCellText(it.Table.TableRows[1].TableCells[1], "2")
		}
	}

	after, err := Compute(doc, nil)
	if err != nil {
		t.Fatal(err)
	}
	if before != after {
		t.Fatalf("expected fingerprint to survive text edits, got %+v then %+v", before, after)
	}
	if before.Scheme != Scheme {
		t.Errorf("expected scheme %q, got %q", Scheme, before.Scheme)
	}
	if before.Sections != 1 || before.Paragraphs != 2 || before.Tables != 1 {
		t.Errorf("expected counts (1, 2, 1), got (%d, %d, %d)", before.Sections, before.Paragraphs, before.Tables)
	}
	if len(before.Digest) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(before.Digest))
	}
}

func TestFingerprintDetectsStructuralEdits(t *testing.T) {
	base, err := Compute(template().Document(t), nil)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		b    *parsertest.Builder
	}{
		{"extra paragraph", template().Para("more")},
		{"extra table row", parsertest.New().
			Heading(1, "知识讲解").
			Para("说明").
			Empty().
			Table([]string{"题目", "答案"}, []string{"1+1", ""}, []string{"2+2", ""})},
		{"heading demoted", parsertest.New().
			Heading(2, "知识讲解").
			Para("说明").
			Empty().
			Table([]string{"题目", "答案"}, []string{"1+1", ""})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(tt.b.Document(t), nil)
			if err != nil {
				t.Fatal(err)
			}
			if got.Digest == base.Digest {
				t.Fatal("expected digest to change")
			}
		})
	}
}
