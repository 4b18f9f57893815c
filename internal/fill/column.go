package fill

import (
	"fmt"
	"strconv"
	"strings"
)

type columnMode int

const (
	columnAuto columnMode = iota
	columnFirst
	columnLast
	columnIndex
)

// ColumnPolicy selects the cell a table row's value is written to.
type ColumnPolicy struct {
	mode  columnMode
	index int
}

var (
	// ColumnAuto writes to the second cell, or the only cell of a one-cell
	// row.
	ColumnAuto  = ColumnPolicy{mode: columnAuto}
	ColumnFirst = ColumnPolicy{mode: columnFirst}
	ColumnLast  = ColumnPolicy{mode: columnLast}
)

// ColumnIndex writes to cell n, or the last cell of shorter rows.
func ColumnIndex(n int) ColumnPolicy {
	return ColumnPolicy{mode: columnIndex, index: n}
}

// ParseColumnPolicy accepts auto, first, last or a non-negative integer.
func ParseColumnPolicy(s string) (ColumnPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColumnAuto, nil
	case "first":
		return ColumnFirst, nil
	case "last":
		return ColumnLast, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return ColumnPolicy{}, fmt.Errorf("invalid column policy %q: want auto, first, last or a column number", s)
	}
	return ColumnIndex(n), nil
}

func (c ColumnPolicy) String() string {
	switch c.mode {
	case columnFirst:
		return "first"
	case columnLast:
		return "last"
	case columnIndex:
		return strconv.Itoa(c.index)
	}
	return "auto"
}

// Select returns the target cell index for a row with the given number of
// cells, or -1 for a row without cells.
func (c ColumnPolicy) Select(cells int) int {
	if cells <= 0 {
		return -1
	}
	switch c.mode {
	case columnFirst:
		return 0
	case columnLast:
		return cells - 1
	case columnIndex:
		return min(c.index, cells-1)
	}
	if cells > 1 {
		return 1
	}
	return 0
}
