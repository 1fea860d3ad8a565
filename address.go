package xlgrid

import (
	"fmt"
	"strconv"
	"strings"
)

// GridAddress is the logical position of a row/column slot in the grid.
// Column is a placeholder for row-scoped elements.
type GridAddress struct {
	Section int
	Row     int
	Column  int
}

// NewAddress creates a GridAddress with explicit section, row, column.
func NewAddress(section, row, column int) GridAddress {
	return GridAddress{Section: section, Row: row, Column: column}
}

// String formats the address as "section:row:column".
func (a GridAddress) String() string {
	return fmt.Sprintf("%d:%d:%d", a.Section, a.Row, a.Column)
}

// CellName returns the spreadsheet-style name of the row/column pair, e.g. "B3".
func (a GridAddress) CellName() string {
	return ColToName(a.Column) + strconv.Itoa(a.Row+1)
}

// ParseAddress parses "section:row:column" or a cell name with an optional
// section prefix ("B3", "1!B3").
func ParseAddress(s string) (GridAddress, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return GridAddress{}, fmt.Errorf("empty address")
	}

	if parts := strings.Split(s, ":"); len(parts) == 3 {
		var nums [3]int
		for i, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || n < 0 {
				return GridAddress{}, fmt.Errorf("invalid address %q", s)
			}
			nums[i] = n
		}
		return NewAddress(nums[0], nums[1], nums[2]), nil
	}

	section := 0
	cellPart := s
	if idx := strings.LastIndex(s, "!"); idx >= 0 {
		n, err := strconv.Atoi(s[:idx])
		if err != nil || n < 0 {
			return GridAddress{}, fmt.Errorf("invalid section in address %q", s)
		}
		section = n
		cellPart = s[idx+1:]
	}

	col, row, err := parseCellName(strings.ReplaceAll(cellPart, "$", ""))
	if err != nil {
		return GridAddress{}, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return NewAddress(section, row, col), nil
}

// parseCellName parses "A1" into col=0, row=0.
func parseCellName(name string) (col, row int, err error) {
	i := 0
	for i < len(name) && isAlpha(name[i]) {
		i++
	}
	if i == 0 || i == len(name) {
		return 0, 0, fmt.Errorf("invalid cell name: %q", name)
	}

	col, err = NameToCol(name[:i])
	if err != nil {
		return 0, 0, err
	}
	rowNum, err := strconv.Atoi(name[i:])
	if err != nil || rowNum < 1 {
		return 0, 0, fmt.Errorf("invalid row in cell name: %q", name)
	}
	return col, rowNum - 1, nil
}

func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// ColToName converts a 0-based column index to a column name.
// 0→"A", 25→"Z", 26→"AA"
func ColToName(col int) string {
	result := ""
	col++
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}

// NameToCol converts a column name to a 0-based column index.
func NameToCol(name string) (int, error) {
	name = strings.ToUpper(name)
	if name == "" {
		return 0, fmt.Errorf("empty column name")
	}
	col := 0
	for _, ch := range name {
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("invalid column name: %q", name)
		}
		col = col*26 + int(ch-'A') + 1
	}
	return col - 1, nil
}

// FlatIndex is the renderer-facing position: Item = row*columnCount + column.
type FlatIndex struct {
	Section int
	Item    int
}

// String formats the index as "section/item".
func (f FlatIndex) String() string {
	return fmt.Sprintf("%d/%d", f.Section, f.Item)
}

// ElementKind identifies the class of a grid element.
type ElementKind int

const (
	KindHeader ElementKind = iota
	KindGroupedHeader
	KindSectionHeader
	KindSectionFooter
	KindFooter
	KindCell
)

var kindNames = map[ElementKind]string{
	KindHeader:        "header",
	KindGroupedHeader: "grouped-header",
	KindSectionHeader: "section-header",
	KindSectionFooter: "section-footer",
	KindFooter:        "footer",
	KindCell:          "cell",
}

func (k ElementKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseElementKind is the inverse of ElementKind.String.
func ParseElementKind(s string) (ElementKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown element kind %q", s)
}

// SupplementaryKinds lists the kinds that own a selection set.
var SupplementaryKinds = []ElementKind{
	KindHeader, KindGroupedHeader, KindSectionHeader, KindSectionFooter, KindFooter,
}

// isGridScoped reports whether one element of the kind exists per column for the
// whole grid, regardless of section.
func (k ElementKind) isGridScoped() bool {
	return k == KindHeader || k == KindFooter || k == KindGroupedHeader
}

// rowScoped reports whether the kind can act as a whole-row handle.
func (k ElementKind) rowScoped() bool {
	return k == KindSectionHeader || k == KindSectionFooter
}

// key normalizes an address to the identity the kind's selection set uses.
func (k ElementKind) key(a GridAddress) GridAddress {
	if k.isGridScoped() {
		return GridAddress{Column: a.Column}
	}
	return a
}

// ColumnSpan is a grouped-header range of columns, both ends inclusive.
type ColumnSpan struct {
	Start int
	End   int
}

// Len returns the number of columns in the span.
func (s ColumnSpan) Len() int {
	return s.End - s.Start + 1
}

// Contains reports whether column lies inside the span.
func (s ColumnSpan) Contains(column int) bool {
	return column >= s.Start && column <= s.End
}

// String formats the span as "[start,end]".
func (s ColumnSpan) String() string {
	return fmt.Sprintf("[%d,%d]", s.Start, s.End)
}
