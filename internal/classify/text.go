package classify

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	headingRe  = regexp.MustCompile(`(?i)(?:Heading|标题)\s*(\d+)`)
	questionRe = regexp.MustCompile(`(?s)^(\d+)[.．、\s\p{Zs}]+(.*)`)
)

// HeadingLevel reports whether a style name denotes a heading, and its
// level. Levels below 1 are raised to 1.
func HeadingLevel(style string) (int, bool) {
	m := headingRe.FindStringSubmatch(style)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		// Too many digits to be a real level.
		return 0, false
	}
	return max(n, 1), true
}

// ParseQuestion splits a numbered question such as "3. What is x?" into its
// number and trimmed remainder. text must already be trimmed.
func ParseQuestion(text string) (id int, rest string, ok bool) {
	m := questionRe.FindStringSubmatch(text)
	if m == nil {
		return 0, "", false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, "", false
	}
	return n, strings.TrimSpace(m[2]), true
}
