// Package blockid assigns the type-scoped block identifiers shared by
// extraction and filling. Both passes walk a document through Walk, so
// the counting rules exist in exactly one place.
package blockid

import (
	"fmt"
	"iter"

	"github.com/dgallion1/docslot/internal/classify"
	"github.com/dgallion1/docslot/internal/parser"
)

// Kind is the identifier family a block belongs to.
type Kind int

const (
	KindHeading Kind = iota + 1
	KindParagraph
	KindTable
)

func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindParagraph:
		return "paragraph"
	case KindTable:
		return "table"
	}
	return "unknown"
}

func (k Kind) prefix() string {
	switch k {
	case KindHeading:
		return "sec"
	case KindParagraph:
		return "p"
	case KindTable:
		return "t"
	}
	return "x"
}

// Counter holds the three independent counters. The zero value is ready
// to use and numbers each family from 1.
type Counter struct {
	sec, p, t int
}

// Next consumes one identifier of the given kind.
func (c *Counter) Next(kind Kind) string {
	var n int
	switch kind {
	case KindHeading:
		c.sec++
		n = c.sec
	case KindParagraph:
		c.p++
		n = c.p
	case KindTable:
		c.t++
		n = c.t
	}
	return fmt.Sprintf("%s_%d", kind.prefix(), n)
}

// Counts returns how many identifiers of each kind were consumed.
func (c *Counter) Counts() (sections, paragraphs, tables int) {
	return c.sec, c.p, c.t
}

// HeadingFunc decides whether a paragraph style name is a heading, and at
// which level.
type HeadingFunc func(style string) (int, bool)

// Step is one block of the walk with its identifier already assigned.
type Step struct {
	ID           string
	Kind         Kind
	HeadingLevel int
	Item         parser.Item
}

// Walk yields the document body's blocks with identifiers. A nil heading
// func uses classify.HeadingLevel.
//
// Heading paragraphs consume a section identifier and never a paragraph
// identifier.
func Walk(doc *parser.Document, heading HeadingFunc) (iter.Seq[Step], error) {
	blocks, err := parser.Blocks(doc)
	if err != nil {
		return nil, err
	}
	if heading == nil {
		heading = classify.HeadingLevel
	}
	return func(yield func(Step) bool) {
		var c Counter
		for item := range blocks {
			step := Step{Item: item}
			switch item.Kind {
			case parser.KindTable:
				step.Kind = KindTable
			case parser.KindParagraph:
				if level, ok := heading(doc.StyleName(item.Paragraph)); ok {
					step.Kind = KindHeading
					step.HeadingLevel = level
				} else {
					step.Kind = KindParagraph
				}
			default:
				continue
			}
			step.ID = c.Next(step.Kind)
			if !yield(step) {
				return
			}
		}
	}, nil
}

// IDs returns the identifier sequence of a document.
func IDs(doc *parser.Document, heading HeadingFunc) ([]string, error) {
	steps, err := Walk(doc, heading)
	if err != nil {
		return nil, err
	}
	var ids []string
	for s := range steps {
		ids = append(ids, s.ID)
	}
	return ids, nil
}
