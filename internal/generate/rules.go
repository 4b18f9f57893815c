package generate

import (
	"context"
	"fmt"

	"github.com/dgallion1/docslot/internal/doctree"
	"github.com/dgallion1/docslot/internal/fill"
)

// RulesName is the name of the rule-based provider.
const RulesName = "rules"

// RulesProvider fills slots from fixed templates keyed by slot role. It
// never fails and needs no network access.
type RulesProvider struct{}

func (RulesProvider) Name() string { return RulesName }

func (RulesProvider) Generate(_ context.Context, req Request) (fill.Value, error) {
	return ruleValue(req), nil
}

func ruleValue(req Request) fill.Value {
	if req.IsTable {
		rows := make([]string, 0, req.Rows)
		for i := range req.Rows {
			rows = append(rows, ruleRow(req, i+1))
		}
		return fill.List(rows...)
	}

	switch req.Role {
	case "teach_content":
		return fill.Text(fmt.Sprintf("Here is a detailed explanation of %s in the context of %s.", req.Topic, req.Location))
	case "practice_content":
		return fill.Text(fmt.Sprintf("1. Question about %s?\n2. Another question about %s?", req.Topic, req.Topic))
	case doctree.SlotReflectionInput:
		return fill.Text("(Student reflection space)")
	}
	return fill.Text(fmt.Sprintf("[%s] Generated content for %s.", req.Role, req.Topic))
}

func ruleRow(req Request, n int) string {
	switch req.Role {
	case doctree.TableStudentInfo:
		return "XXX"
	case "teach_content":
		return fmt.Sprintf("【Concept %d】 Detailed explanation about %s...", n, req.Topic)
	}
	return fmt.Sprintf("[%s Table Content] Row %d for %s", req.Role, n, req.Topic)
}
