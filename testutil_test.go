package xlgrid

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeData is a DataProvider + GeometryProvider + ValueProvider with call counters.
type fakeData struct {
	sections int
	columns  int
	rows     []int
	widths   []float64

	sectionCalls int
	columnCalls  int
	widthCalls   int
}

func newFakeData(columns int, rows ...int) *fakeData {
	widths := make([]float64, columns)
	for i := range widths {
		widths[i] = float64(10 * (i + 1))
	}
	return &fakeData{sections: len(rows), columns: columns, rows: rows, widths: widths}
}

func (d *fakeData) SectionCount() int { d.sectionCalls++; return d.sections }
func (d *fakeData) ColumnCount() int  { d.columnCalls++; return d.columns }

func (d *fakeData) RowCount(section int) int {
	if section < 0 || section >= len(d.rows) {
		return 0
	}
	return d.rows[section]
}

func (d *fakeData) ColumnWidth(column int) float64 {
	d.widthCalls++
	return d.widths[column]
}

func (d *fakeData) RowHeight(GridAddress) float64                { return 20 }
func (d *fakeData) SupplementaryHeight(ElementKind, int) float64 { return 30 }

func (d *fakeData) CellValue(a GridAddress) string {
	return fmt.Sprintf("r%dc%d", a.Row, a.Column)
}

// fullData adds the optional providers on top of fakeData.
type fullData struct {
	*fakeData
	frozen     int
	frozenRows int
	groups     []ColumnSpan
}

func (d *fullData) FrozenColumnCount() int        { return d.frozen }
func (d *fullData) FrozenRowCount(int) int        { return d.frozenRows }
func (d *fullData) ColumnGroupings() []ColumnSpan { return d.groups }

func newFullData(columns, frozen int, rows ...int) *fullData {
	return &fullData{fakeData: newFakeData(columns, rows...), frozen: frozen}
}

type fakeHandle struct {
	selected    bool
	highlighted bool
}

func (h *fakeHandle) SetSelected(v bool)    { h.selected = v }
func (h *fakeHandle) SetHighlighted(v bool) { h.highlighted = v }

type visualKey struct {
	kind ElementKind
	flat FlatIndex
}

// fakeVisuals puts every element on screen unless it is listed in offscreen.
type fakeVisuals struct {
	handles   map[visualKey]*fakeHandle
	offscreen map[visualKey]bool
}

func newFakeVisuals() *fakeVisuals {
	return &fakeVisuals{handles: map[visualKey]*fakeHandle{}, offscreen: map[visualKey]bool{}}
}

func (v *fakeVisuals) Element(kind ElementKind, flat FlatIndex) (ElementHandle, bool) {
	k := visualKey{kind, flat}
	if v.offscreen[k] {
		return nil, false
	}
	h, ok := v.handles[k]
	if !ok {
		h = &fakeHandle{}
		v.handles[k] = h
	}
	return h, true
}

func (v *fakeVisuals) handle(kind ElementKind, section, item int) *fakeHandle {
	h, ok := v.handles[visualKey{kind, FlatIndex{Section: section, Item: item}}]
	if !ok {
		return &fakeHandle{}
	}
	return h
}

// recordingEvents records every event as a short string.
type recordingEvents struct {
	NopEventSink
	events []string
}

func (r *recordingEvents) CellSelected(a GridAddress)   { r.add("cell+", a) }
func (r *recordingEvents) CellDeselected(a GridAddress) { r.add("cell-", a) }

func (r *recordingEvents) HeaderSelected(c int) {
	r.events = append(r.events, fmt.Sprintf("header+ %d", c))
}

func (r *recordingEvents) HeaderDeselected(c int) {
	r.events = append(r.events, fmt.Sprintf("header- %d", c))
}

func (r *recordingEvents) GroupedHeaderSelected(s ColumnSpan, i int) {
	r.events = append(r.events, fmt.Sprintf("group+ %s %d", s, i))
}

func (r *recordingEvents) SectionHeaderSelected(a GridAddress) { r.add("sectionheader+", a) }
func (r *recordingEvents) SectionFooterSelected(a GridAddress) { r.add("sectionfooter+", a) }
func (r *recordingEvents) FooterSelected(a GridAddress)        { r.add("footer+", a) }

func (r *recordingEvents) add(what string, a GridAddress) {
	r.events = append(r.events, what+" "+a.String())
}

// newTestGrid builds a grid over data with recording sinks.
func newTestGrid(t *testing.T, data DataProvider, opts ...Option) (*Grid, *fakeVisuals, *recordingEvents) {
	t.Helper()
	vis := newFakeVisuals()
	ev := &recordingEvents{}
	base := []Option{WithVisualSink(vis), WithEventSink(ev)}
	if g, ok := data.(GeometryProvider); ok {
		base = append(base, WithGeometry(g))
	}
	g, err := New(data, append(base, opts...)...)
	require.NoError(t, err)
	return g, vis, ev
}

func items(g *Grid) []FlatIndex {
	return g.Selector().SelectedItems()
}

func flats(section int, itemIdx ...int) []FlatIndex {
	out := make([]FlatIndex, len(itemIdx))
	for i, it := range itemIdx {
		out[i] = FlatIndex{Section: section, Item: it}
	}
	return out
}
