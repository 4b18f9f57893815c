package parser

import (
	"errors"
	"fmt"
	"iter"

	"github.com/fumiama/go-docx"
)

// ErrUnsupportedContainer is returned by Blocks for values that do not hold
// an ordered list of paragraphs and tables.
var ErrUnsupportedContainer = errors.New("unsupported block container")

// ItemKind tags a block as paragraph-like or table-like.
type ItemKind int

const (
	KindParagraph ItemKind = iota + 1
	KindTable
)

func (k ItemKind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindTable:
		return "table"
	}
	return "unknown"
}

// Item is one block yielded by Blocks. Exactly one of Paragraph and Table
// is set, matching Kind.
type Item struct {
	Kind      ItemKind
	Paragraph *docx.Paragraph
	Table     *docx.Table
}

// Blocks returns the paragraphs and tables directly inside container, in
// document order. Table cells are not descended into; pass a cell to walk
// its content.
//
// Accepted containers are *Document, *docx.Docx and *docx.WTableCell. A cell
// yields its paragraphs before its nested tables.
func Blocks(container any) (iter.Seq[Item], error) {
	switch c := container.(type) {
	case *Document:
		if c == nil || c.file == nil {
			break
		}
		return bodyBlocks(c.file.Document.Body.Items), nil
	case *docx.Docx:
		if c == nil {
			break
		}
		return bodyBlocks(c.Document.Body.Items), nil
	case *docx.WTableCell:
		if c == nil {
			break
		}
		return cellBlocks(c), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedContainer, container)
}

func bodyBlocks(items []interface{}) iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for _, it := range items {
			var item Item
			switch v := it.(type) {
			case *docx.Paragraph:
				item = Item{Kind: KindParagraph, Paragraph: v}
			case *docx.Table:
				item = Item{Kind: KindTable, Table: v}
			default:
				continue
			}
			if !yield(item) {
				return
			}
		}
	}
}

func cellBlocks(c *docx.WTableCell) iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for _, p := range c.Paragraphs {
			if !yield(Item{Kind: KindParagraph, Paragraph: p}) {
				return
			}
		}
		for _, t := range c.Tables {
			if !yield(Item{Kind: KindTable, Table: t}) {
				return
			}
		}
	}
}
