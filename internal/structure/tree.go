package structure

import (
	"strings"

	"github.com/dgallion1/docslot/internal/doctree"
)

// node is one arena slot. Index 0 is the root pseudo-section.
type node struct {
	section  *doctree.Section
	blocks   []*doctree.Block
	children []int
}

// treeBuilder keeps open sections on an index stack into the arena.
type treeBuilder struct {
	arena []node
	stack []int
}

func newTreeBuilder() *treeBuilder {
	return &treeBuilder{
		arena: []node{{section: &doctree.Section{Level: 0}}},
		stack: []int{0},
	}
}

func (b *treeBuilder) top() int { return b.stack[len(b.stack)-1] }

// open closes every section at the same or deeper level and attaches sec
// under the new top of the stack.
func (b *treeBuilder) open(sec *doctree.Section) {
	for len(b.stack) > 1 && b.arena[b.top()].section.Level >= sec.Level {
		b.stack = b.stack[:len(b.stack)-1]
	}
	idx := len(b.arena)
	b.arena = append(b.arena, node{section: sec})
	parent := b.top()
	b.arena[parent].children = append(b.arena[parent].children, idx)
	b.stack = append(b.stack, idx)
}

func (b *treeBuilder) add(block *doctree.Block) {
	t := b.top()
	b.arena[t].blocks = append(b.arena[t].blocks, block)
}

// build materialises the root's blocks and top-level sections.
func (b *treeBuilder) build() (preamble []*doctree.Block, sections []*doctree.Section) {
	var materialise func(idx int) *doctree.Section
	materialise = func(idx int) *doctree.Section {
		n := b.arena[idx]
		sec := n.section
		sec.Blocks = append(make([]*doctree.Block, 0, len(n.blocks)), n.blocks...)
		sec.SubSections = make([]*doctree.Section, 0, len(n.children))
		for _, c := range n.children {
			sec.SubSections = append(sec.SubSections, materialise(c))
		}
		return sec
	}
	root := materialise(0)
	return root.Blocks, root.SubSections
}

// Prune removes, post-order, every section without a title or without
// both blocks and surviving sub-sections. It returns a new slice and is
// idempotent.
func Prune(sections []*doctree.Section) []*doctree.Section {
	out := make([]*doctree.Section, 0, len(sections))
	for _, sec := range sections {
		sec.SubSections = Prune(sec.SubSections)
		if strings.TrimSpace(sec.Title) == "" {
			continue
		}
		if len(sec.Blocks) == 0 && len(sec.SubSections) == 0 {
			continue
		}
		out = append(out, sec)
	}
	return out
}
