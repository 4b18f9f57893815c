package generate

import (
	"fmt"
	"strings"
)

const SystemPrompt = `You write content for slots in a lesson plan or worksheet template. Each request names the lesson topic, the section the slot sits in, the slot's role, and the text that precedes it.

Rules:
- Write in the language of the surrounding context. Use Chinese when the context is Chinese.
- Match the slot role: teaching slots explain, practice slots ask numbered questions, reflection slots leave a short prompt for the student.
- Do not repeat the preceding context.
- Never include instructions to the reader about how the text was produced.

Respond with ONLY the requested content, no preamble.`

// contextBudget bounds the tokens of preceding context sent per slot.
const contextBudget = 1500

// BuildPrompt creates the user prompt for one slot.
func BuildPrompt(req Request) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Topic: %q\n", req.Topic)
	fmt.Fprintf(&sb, "Section: %s\n", req.Location)
	fmt.Fprintf(&sb, "Slot role: %s\n", req.Role)
	if ctx := fitContext(req.Context, contextBudget); len(ctx) > 0 {
		sb.WriteString("---\nPreceding text:\n")
		for _, c := range ctx {
			sb.WriteString("- ")
			sb.WriteString(c)
			sb.WriteString("\n")
		}
	}
	sb.WriteString("---\n")
	if req.IsTable {
		fmt.Fprintf(&sb, "The slot is a table with %d rows. Return a JSON array of exactly %d strings, one per row, in order.", req.Rows, req.Rows)
	} else {
		sb.WriteString("The slot is a single paragraph. Return its text.")
	}
	return sb.String()
}

// maxTokensFor sizes the completion budget for a request.
func maxTokensFor(req Request) int {
	if req.IsTable {
		return min(256+req.Rows*200, 4096)
	}
	return 1024
}
