package xlgrid

import "fmt"

// MetadataCache memoizes grid-wide values read from the providers. Values are
// computed on first access after construction or invalidation; a zero count is a
// valid cached value.
type MetadataCache struct {
	data DataProvider
	geom GeometryProvider

	sectionCount *int
	columnCount  *int
	totalWidth   *float64
	groupings    []ColumnSpan // nil = not computed
}

// NewMetadataCache creates a cache over the given providers. geom may be nil, in
// which case width queries fail with ErrMissingRequiredProvider.
func NewMetadataCache(data DataProvider, geom GeometryProvider) *MetadataCache {
	return &MetadataCache{data: data, geom: geom}
}

// SectionCount returns the number of sections.
func (m *MetadataCache) SectionCount() (int, error) {
	if m.sectionCount == nil {
		if m.data == nil {
			return 0, fmt.Errorf("section count: %w", ErrMissingRequiredProvider)
		}
		n := m.data.SectionCount()
		m.sectionCount = &n
	}
	return *m.sectionCount, nil
}

// ColumnCount returns the number of columns.
func (m *MetadataCache) ColumnCount() (int, error) {
	if m.columnCount == nil {
		if m.data == nil {
			return 0, fmt.Errorf("column count: %w", ErrMissingRequiredProvider)
		}
		n := m.data.ColumnCount()
		m.columnCount = &n
	}
	return *m.columnCount, nil
}

// TotalColumnWidth returns the sum of every column width.
func (m *MetadataCache) TotalColumnWidth() (float64, error) {
	if m.totalWidth == nil {
		if m.geom == nil {
			return 0, fmt.Errorf("total column width: %w", ErrMissingRequiredProvider)
		}
		cols, err := m.ColumnCount()
		if err != nil {
			return 0, err
		}
		var w float64
		for c := 0; c < cols; c++ {
			w += m.geom.ColumnWidth(c)
		}
		m.totalWidth = &w
	}
	return *m.totalWidth, nil
}

// ColumnGroupings returns the grouped-header spans, empty when the data provider
// has none. The returned slice must not be modified.
func (m *MetadataCache) ColumnGroupings() ([]ColumnSpan, error) {
	if m.groupings == nil {
		if m.data == nil {
			return nil, fmt.Errorf("column groupings: %w", ErrMissingRequiredProvider)
		}
		spans := []ColumnSpan{}
		if gp, ok := m.data.(ColumnGroupingProvider); ok {
			cols, err := m.ColumnCount()
			if err != nil {
				return nil, err
			}
			spans = append(spans, gp.ColumnGroupings()...)
			if err := validateGroupings(spans, cols); err != nil {
				return nil, err
			}
		}
		m.groupings = spans
	}
	return m.groupings, nil
}

// GroupingWidth returns the summed width of the columns in grouping index.
func (m *MetadataCache) GroupingWidth(index int) (float64, error) {
	spans, err := m.ColumnGroupings()
	if err != nil {
		return 0, err
	}
	if index < 0 || index >= len(spans) {
		return 0, outOfRange("grouping", index, len(spans))
	}
	if m.geom == nil {
		return 0, fmt.Errorf("grouping width: %w", ErrMissingRequiredProvider)
	}
	var w float64
	for c := spans[index].Start; c <= spans[index].End; c++ {
		w += m.geom.ColumnWidth(c)
	}
	return w, nil
}

// Invalidate drops every memoized value.
func (m *MetadataCache) Invalidate() {
	m.sectionCount = nil
	m.columnCount = nil
	m.totalWidth = nil
	m.groupings = nil
}

// InvalidateWidthOnly drops the geometry-derived values and keeps the counts.
func (m *MetadataCache) InvalidateWidthOnly() {
	m.totalWidth = nil
}

func validateGroupings(spans []ColumnSpan, columns int) error {
	prevEnd := -1
	for i, s := range spans {
		if s.Start > s.End {
			return fmt.Errorf("%w: grouping %d %s is reversed", ErrIndexOutOfRange, i, s)
		}
		if s.Start <= prevEnd {
			return fmt.Errorf("%w: grouping %d %s overlaps or is out of order", ErrIndexOutOfRange, i, s)
		}
		if s.Start < 0 || s.End >= columns {
			return fmt.Errorf("%w: grouping %d %s outside %d columns", ErrIndexOutOfRange, i, s, columns)
		}
		prevEnd = s.End
	}
	return nil
}
