package generate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxValueRunes bounds a single generated value.
const MaxValueRunes = 4000

var injectionPattern = regexp.MustCompile(
	`(?i)(ignore\s+(previous|all|above)|system\s*prompt|you\s+are\s+now|` +
		`act\s+as\s+|pretend\s+|forget\s+(everything|all)|override|` +
		`new\s+instructions)`,
)

// ValidateText rejects empty, oversized, or instruction-like output.
func ValidateText(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("empty output")
	}
	if n := utf8.RuneCountInString(s); n > MaxValueRunes {
		return fmt.Errorf("output too long: %d runes", n)
	}
	if injectionPattern.MatchString(s) {
		return fmt.Errorf("output matches injection pattern")
	}
	return nil
}

var codeBlockRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

func stripCodeBlock(s string) string {
	s = strings.TrimSpace(s)
	if m := codeBlockRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return s
}

// parseRows decodes a JSON array of row texts and pads or truncates it to
// rows entries.
func parseRows(raw string, rows int) ([]string, error) {
	text := stripCodeBlock(raw)
	var items []string
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, fmt.Errorf("parse rows json: %w (raw: %s)", err, truncate(text, 200))
	}
	if len(items) > rows {
		items = items[:rows]
	}
	for len(items) < rows {
		items = append(items, "")
	}
	return items, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
