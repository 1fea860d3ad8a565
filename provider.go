package xlgrid

// DataProvider supplies the raw counts the grid is built from.
type DataProvider interface {
	SectionCount() int
	ColumnCount() int
	RowCount(section int) int
}

// FrozenColumnProvider is implemented by data providers with leading row-handle columns.
type FrozenColumnProvider interface {
	FrozenColumnCount() int
}

// FrozenRowProvider is implemented by data providers with pinned leading rows.
type FrozenRowProvider interface {
	FrozenRowCount(section int) int
}

// ColumnGroupingProvider is implemented by data providers with grouped headers.
// Spans must be ordered and must not overlap.
type ColumnGroupingProvider interface {
	ColumnGroupings() []ColumnSpan
}

// ValueProvider exposes the text shown in a cell. It is used by SelectWhere.
type ValueProvider interface {
	CellValue(addr GridAddress) string
}

// GeometryProvider supplies sizes. The grid only needs column widths; the other
// methods are passed through to layout consumers.
type GeometryProvider interface {
	ColumnWidth(column int) float64
	RowHeight(addr GridAddress) float64
	SupplementaryHeight(kind ElementKind, section int) float64
}

// EventSink receives selection changes caused by direct user action.
// Cascaded changes are never reported.
type EventSink interface {
	CellSelected(addr GridAddress)
	CellDeselected(addr GridAddress)
	HeaderSelected(column int)
	HeaderDeselected(column int)
	GroupedHeaderSelected(span ColumnSpan, index int)
	GroupedHeaderDeselected(span ColumnSpan, index int)
	SectionHeaderSelected(addr GridAddress)
	SectionHeaderDeselected(addr GridAddress)
	SectionFooterSelected(addr GridAddress)
	SectionFooterDeselected(addr GridAddress)
	FooterSelected(addr GridAddress)
	FooterDeselected(addr GridAddress)
}

// NopEventSink ignores every event. Embed it to implement a subset of EventSink.
type NopEventSink struct{}

func (NopEventSink) CellSelected(GridAddress)                {}
func (NopEventSink) CellDeselected(GridAddress)              {}
func (NopEventSink) HeaderSelected(int)                      {}
func (NopEventSink) HeaderDeselected(int)                    {}
func (NopEventSink) GroupedHeaderSelected(ColumnSpan, int)   {}
func (NopEventSink) GroupedHeaderDeselected(ColumnSpan, int) {}
func (NopEventSink) SectionHeaderSelected(GridAddress)       {}
func (NopEventSink) SectionHeaderDeselected(GridAddress)     {}
func (NopEventSink) SectionFooterSelected(GridAddress)       {}
func (NopEventSink) SectionFooterDeselected(GridAddress)     {}
func (NopEventSink) FooterSelected(GridAddress)              {}
func (NopEventSink) FooterDeselected(GridAddress)            {}

// ElementHandle is an on-screen element owned by the rendering substrate.
type ElementHandle interface {
	SetSelected(selected bool)
	SetHighlighted(highlighted bool)
}

// VisualSink looks up on-screen elements. ok is false for elements that are not
// currently on screen; those pick up their state from the grid when they return.
type VisualSink interface {
	Element(kind ElementKind, flat FlatIndex) (h ElementHandle, ok bool)
}

// ItemSelector is the substrate's native multi-selection primitive for cells.
// Calls must not raise selection callbacks back into the grid.
type ItemSelector interface {
	SelectItem(flat FlatIndex, animated bool)
	DeselectItem(flat FlatIndex, animated bool)
	SelectedItems() []FlatIndex
}

// ItemContainer is implemented by selectors that answer membership without
// listing every selected item. ItemSet implements it.
type ItemContainer interface {
	Contains(flat FlatIndex) bool
}

type noVisuals struct{}

func (noVisuals) Element(ElementKind, FlatIndex) (ElementHandle, bool) { return nil, false }
