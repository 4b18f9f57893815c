package doctree

import "iter"

// Blocks yields every block in annotation order: the preamble first, then
// each section's blocks followed by its sub-sections, depth-first.
func (s *Structure) Blocks() iter.Seq[*Block] {
	return func(yield func(*Block) bool) {
		for _, b := range s.Preamble {
			if !yield(b) {
				return
			}
		}
		walkSections(s.Sections, yield)
	}
}

func walkSections(sections []*Section, yield func(*Block) bool) bool {
	for _, sec := range sections {
		for _, b := range sec.Blocks {
			if !yield(b) {
				return false
			}
		}
		if !walkSections(sec.SubSections, yield) {
			return false
		}
	}
	return true
}

// Slots yields the blocks marked as slots, in annotation order.
func (s *Structure) Slots() iter.Seq[*Block] {
	return func(yield func(*Block) bool) {
		for b := range s.Blocks() {
			if b.IsSlot && !yield(b) {
				return
			}
		}
	}
}

// AllSections yields every section in pre-order.
func (s *Structure) AllSections() iter.Seq[*Section] {
	return func(yield func(*Section) bool) {
		var visit func([]*Section) bool
		visit = func(secs []*Section) bool {
			for _, sec := range secs {
				if !yield(sec) || !visit(sec.SubSections) {
					return false
				}
			}
			return true
		}
		visit(s.Sections)
	}
}
