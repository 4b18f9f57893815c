package fill

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dgallion1/docslot/internal/parser"
	"github.com/google/go-cmp/cmp"
)

func TestParseContentMap(t *testing.T) {
	m, err := ParseContentMap([]byte(`{
		"$fingerprint": "abc",
		"p_1": "Hello",
		"p_2": null,
		"t_1": ["a", 2, 2.5, true, null],
		"t_2": []
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := ContentMap{
		FingerprintKey: Text("abc"),
		"p_1":          Text("Hello"),
		"p_2":          Text(""),
		"t_1":          List("a", "2", "2.5", "true", ""),
		"t_2":          List(),
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Fatalf("content map mismatch (-want +got):\n%s", diff)
	}
	if fp, ok := m.Fingerprint(); !ok || fp != "abc" {
		t.Errorf("expected fingerprint abc, got %q (%v)", fp, ok)
	}
	if m.Len() != 4 {
		t.Errorf("expected 4 block entries, got %d", m.Len())
	}
}

func TestParseContentMapErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"malformed", `{"p_1": `},
		{"not an object", `["p_1"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseContentMap([]byte(tt.in)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParseContentMapKeepsGoodEntries(t *testing.T) {
	m, err := ParseContentMap([]byte(`{
		"p_1": "Hello",
		"p_2": {"note": "x"},
		"t_1": [["a"]]
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(Text("Hello"), m["p_1"]); diff != "" {
		t.Errorf("p_1 mismatch (-want +got):\n%s", diff)
	}
	for _, id := range []string{"p_2", "t_1"} {
		if m[id].Invalid == "" {
			t.Errorf("expected %s to be marked invalid, got %+v", id, m[id])
		}
	}
	if m.Len() != 3 {
		t.Errorf("expected 3 entries, got %d", m.Len())
	}
}

func TestValueString(t *testing.T) {
	if got := List("a", "b").String(); got != "a\nb" {
		t.Errorf("expected joined list, got %q", got)
	}
	if got := Text("x").String(); got != "x" {
		t.Errorf("expected %q, got %q", "x", got)
	}
}

func TestContentMapSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.json")
	m := ContentMap{"p_1": Text("Hello"), "t_1": List("x", "y")}
	m.SetFingerprint("digest")
	if err := m.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	back, err := LoadContentMap(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(m, back); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadContentMapMissing(t *testing.T) {
	_, err := LoadContentMap(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, parser.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist in chain, got %v", err)
	}
}

func TestColumnPolicy(t *testing.T) {
	tests := []struct {
		in    string
		cells []int
		want  []int
	}{
		{"auto", []int{0, 1, 2, 5}, []int{-1, 0, 1, 1}},
		{"", []int{1, 3}, []int{0, 1}},
		{"first", []int{1, 4}, []int{0, 0}},
		{"LAST", []int{1, 4}, []int{0, 3}},
		{"2", []int{1, 2, 3, 4}, []int{0, 1, 2, 2}},
		{"0", []int{3}, []int{0}},
	}
	for _, tt := range tests {
		p, err := ParseColumnPolicy(tt.in)
		if err != nil {
			t.Fatalf("ParseColumnPolicy(%q): %v", tt.in, err)
		}
		for i, n := range tt.cells {
			if got := p.Select(n); got != tt.want[i] {
				t.Errorf("%s.Select(%d): expected %d, got %d", p, n, tt.want[i], got)
			}
		}
	}

	for _, bad := range []string{"-1", "second", "1.5"} {
		if _, err := ParseColumnPolicy(bad); err == nil {
			t.Errorf("ParseColumnPolicy(%q): expected error", bad)
		}
	}
	if ColumnIndex(3).String() != "3" || ColumnAuto.String() != "auto" {
		t.Error("unexpected policy names")
	}
}
