package xlgrid

import (
	"fmt"
	"strings"
)

// Describe returns a human-readable tree of the grid layout and its current
// selection. Useful for debugging providers during development.
func (g *Grid) Describe() (string, error) {
	sections, err := g.SectionCount()
	if err != nil {
		return "", err
	}
	cols, err := g.ColumnCount()
	if err != nil {
		return "", err
	}
	spans, err := g.ColumnGroupings()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Grid: %d sections x %d columns (%d frozen)", sections, cols, g.FrozenColumnCount())
	if g.opts.geometry != nil {
		if w, err := g.TotalColumnWidth(); err == nil {
			fmt.Fprintf(&b, ", width %.2f", w)
		}
	}
	b.WriteByte('\n')
	fmt.Fprintf(&b, "  Modes: %s\n", g.describeModes())

	if len(spans) > 0 {
		b.WriteString("  Groupings:\n")
		for i, s := range spans {
			fmt.Fprintf(&b, "    %d %s\n", i, s)
		}
	}

	for s := 0; s < sections; s++ {
		rows := g.ctl.rowCount(s)
		fmt.Fprintf(&b, "  Section %d: %d rows, %d items", s, rows, rows*cols)
		if n := g.FrozenRowCount(s); n > 0 {
			fmt.Fprintf(&b, ", %d frozen rows", n)
		}
		b.WriteByte('\n')
	}

	g.describeSelection(&b)
	return b.String(), nil
}

func (g *Grid) describeModes() string {
	var parts []string
	if g.opts.allowsMultiSelection {
		parts = append(parts, "multiple")
	} else {
		parts = append(parts, "single")
	}
	if g.opts.rowSelection {
		parts = append(parts, "row")
	}
	if g.opts.crossSelection {
		parts = append(parts, "cross")
	}
	if !g.opts.userTouchCells {
		parts = append(parts, "no-touch")
	}
	return strings.Join(parts, " ")
}

// describeSelection lists selected supplementary elements by kind, then cells.
func (g *Grid) describeSelection(b *strings.Builder) {
	var lines []string
	for _, kind := range SupplementaryKinds {
		for _, a := range g.Selected(kind) {
			if kind.isGridScoped() {
				lines = append(lines, fmt.Sprintf("%s %d", kind, a.Column))
			} else {
				lines = append(lines, fmt.Sprintf("%s %s", kind, a))
			}
		}
	}
	if cells, err := g.SelectedCells(); err == nil {
		for _, a := range cells {
			lines = append(lines, fmt.Sprintf("%s %s", KindCell, a))
		}
	}
	if len(lines) == 0 {
		return
	}
	b.WriteString("  Selected:\n")
	for _, l := range lines {
		b.WriteString("    ")
		b.WriteString(l)
		b.WriteByte('\n')
	}
}
