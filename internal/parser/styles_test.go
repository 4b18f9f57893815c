package parser

import "testing"

const stylesFixture = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:style w:type="paragraph" w:default="1" w:styleId="a"><w:name w:val="Normal"/></w:style>
  <w:style w:type="paragraph" w:styleId="1"><w:name w:val="heading 1"/></w:style>
  <w:style w:type="paragraph" w:styleId="2"><w:name w:val="标题 2"/></w:style>
  <w:style w:type="character" w:default="1" w:styleId="a0"><w:name w:val="Default Paragraph Font"/></w:style>
  <w:style w:type="paragraph" w:styleId="NoName"></w:style>
</w:styles>`

func TestParseStyles(t *testing.T) {
	s, err := ParseStyles([]byte(stylesFixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		id   string
		want string
	}{
		{"1", "Heading 1"},
		{"2", "标题 2"},
		{"a", "Normal"},
		{"NoName", "NoName"},
		{"Missing", "Missing"},
	}
	for _, tt := range tests {
		if got := s.Name(tt.id); got != tt.want {
			t.Errorf("Name(%q): expected %q, got %q", tt.id, tt.want, got)
		}
	}
	if got := s.DefaultParagraph(); got != "Normal" {
		t.Errorf("expected default paragraph Normal, got %q", got)
	}
}

func TestStylesNilAndEmpty(t *testing.T) {
	var s *Styles
	if s.Name("x") != "x" {
		t.Error("expected nil styles to resolve ids to themselves")
	}
	if s.DefaultParagraph() != "Normal" {
		t.Error("expected Normal as fallback default")
	}
}

func TestParseStylesRejectsGarbage(t *testing.T) {
	if _, err := ParseStyles([]byte("<w:styles><w:style")); err == nil {
		t.Fatal("expected decode error")
	}
}
