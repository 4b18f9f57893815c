package generate

import (
	"strings"
	"unicode"
)

// EstimateTokens gives a rough token count: about 1.33 tokens per
// whitespace-separated word plus one per Han character.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	han := 0
	for _, r := range text {
		if unicode.Is(unicode.Han, r) {
			han++
		}
	}
	words := len(strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.Is(unicode.Han, r)
	}))
	tokens := int(float64(words)*1.33) + han
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}

// fitContext drops the oldest entries until the rest fits in budget tokens.
func fitContext(context []string, budget int) []string {
	total := 0
	for i := len(context) - 1; i >= 0; i-- {
		total += EstimateTokens(context[i])
		if total > budget {
			return context[i+1:]
		}
	}
	return context
}
