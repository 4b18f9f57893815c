package qbank

import (
	"regexp"
	"strings"
)

var (
	numberedRe = regexp.MustCompile(`^\d+[.．\s]`)
	bracketRe  = regexp.MustCompile(`^[【\[]`)
)

// isQuestionStart reports whether a paragraph opens a new question.
func isQuestionStart(text string) bool {
	switch {
	case numberedRe.MatchString(text), bracketRe.MatchString(text):
		return true
	case strings.Contains(text, "?"):
		return true
	case strings.Contains(text, "（") && strings.Contains(text, "）"):
		return true
	}
	for _, opt := range []string{"A.", "B.", "C.", "D."} {
		if strings.HasPrefix(text, opt) {
			return true
		}
	}
	return false
}

// ExtractQuestions groups paragraphs into questions, each starting at a
// question-start paragraph, and keeps those containing keyword
// (case-insensitive). Blank paragraphs are ignored.
func ExtractQuestions(paragraphs []string, keyword string) []string {
	kw := strings.ToLower(keyword)
	var (
		questions []string
		current   []string
	)
	flush := func() {
		if len(current) == 0 {
			return
		}
		q := strings.Join(current, "\n")
		if kw == "" || strings.Contains(strings.ToLower(q), kw) {
			questions = append(questions, q)
		}
		current = nil
	}

	for _, p := range paragraphs {
		text := strings.TrimSpace(p)
		if text == "" {
			continue
		}
		if isQuestionStart(text) {
			flush()
		}
		current = append(current, text)
	}
	flush()
	return questions
}
