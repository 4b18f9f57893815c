package structure

import (
	"github.com/dgallion1/docslot/internal/classify"
	"github.com/dgallion1/docslot/internal/doctree"
)

type annotator struct {
	rules  *classify.Rules
	window Window
	slots  int
}

// annotate marks slots in traversal order: the preamble, then sections
// depth-first. One window is threaded through the whole traversal.
func (e *Extractor) annotate(s *doctree.Structure) int {
	a := &annotator{rules: e.rules, window: NewWindow(e.window)}
	s.Preamble = a.blocks(s.Preamble, doctree.PreambleLocation, "")
	var visit func([]*doctree.Section)
	visit = func(secs []*doctree.Section) {
		for _, sec := range secs {
			sec.Blocks = a.blocks(sec.Blocks, sec.Title, sec.Role)
			visit(sec.SubSections)
		}
	}
	visit(s.Sections)
	return a.slots
}

// blocks annotates one section's block list and returns the retained
// blocks. An empty paragraph directly following an empty-paragraph slot
// is dropped.
func (a *annotator) blocks(blocks []*doctree.Block, location, sectionRole string) []*doctree.Block {
	kept := make([]*doctree.Block, 0, len(blocks))
	lastWasEmptySlot := false
	for _, b := range blocks {
		isEmpty := b.Kind == doctree.KindEmpty
		if isEmpty && lastWasEmptySlot {
			continue
		}

		if isEmpty || b.Kind == doctree.KindTable {
			ctx := a.window.Entries()
			b.IsSlot = true
			b.Location = location
			b.Context = ctx
			b.SlotRole = a.rules.SlotRole(b.TableRole, sectionRole, location, ctx)
			a.slots++
		}
		lastWasEmptySlot = isEmpty
		kept = append(kept, b)

		a.window = a.window.Push(b.Text)
		a.window = a.window.Push(b.TextContent...)
	}
	return kept
}
