package xlgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataCache_Memoizes(t *testing.T) {
	d := newFakeData(3, 2, 4)
	m := NewMetadataCache(d, d)

	for i := 0; i < 3; i++ {
		n, err := m.SectionCount()
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		n, err = m.ColumnCount()
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		w, err := m.TotalColumnWidth()
		require.NoError(t, err)
		assert.Equal(t, 60.0, w)
	}
	assert.Equal(t, 1, d.sectionCalls)
	assert.Equal(t, 1, d.columnCalls)
	assert.Equal(t, 3, d.widthCalls)
}

func TestMetadataCache_ZeroIsACachedValue(t *testing.T) {
	d := newFakeData(0)
	m := NewMetadataCache(d, d)

	for i := 0; i < 2; i++ {
		n, err := m.SectionCount()
		require.NoError(t, err)
		assert.Zero(t, n)
		w, err := m.TotalColumnWidth()
		require.NoError(t, err)
		assert.Zero(t, w)
	}
	assert.Equal(t, 1, d.sectionCalls)
	assert.Equal(t, 1, d.columnCalls)
}

func TestMetadataCache_Invalidate(t *testing.T) {
	d := newFakeData(3, 2)
	m := NewMetadataCache(d, d)
	_, _ = m.SectionCount()
	_, _ = m.TotalColumnWidth()

	d.sections = 5
	d.columns = 2
	m.Invalidate()

	n, err := m.SectionCount()
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	w, err := m.TotalColumnWidth()
	require.NoError(t, err)
	assert.Equal(t, 30.0, w)
	assert.Equal(t, 2, d.sectionCalls)
}

func TestMetadataCache_InvalidateWidthOnly(t *testing.T) {
	d := newFakeData(2, 1)
	m := NewMetadataCache(d, d)
	_, _ = m.TotalColumnWidth()

	d.widths[0] = 100
	m.InvalidateWidthOnly()

	w, err := m.TotalColumnWidth()
	require.NoError(t, err)
	assert.Equal(t, 120.0, w)
	assert.Equal(t, 1, d.columnCalls)
}

func TestMetadataCache_GroupingsDefaultEmpty(t *testing.T) {
	d := newFakeData(3, 1)
	m := NewMetadataCache(d, d)
	spans, err := m.ColumnGroupings()
	require.NoError(t, err)
	assert.NotNil(t, spans)
	assert.Empty(t, spans)
}

func TestMetadataCache_GroupingWidth(t *testing.T) {
	d := newFullData(6, 0, 1)
	d.groups = []ColumnSpan{{Start: 0, End: 1}, {Start: 2, End: 4}}
	m := NewMetadataCache(d, d)

	w, err := m.GroupingWidth(1)
	require.NoError(t, err)
	assert.Equal(t, d.widths[2]+d.widths[3]+d.widths[4], w)

	_, err = m.GroupingWidth(2)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestMetadataCache_InvalidGroupings(t *testing.T) {
	tests := map[string][]ColumnSpan{
		"reversed":    {{Start: 3, End: 2}},
		"overlapping": {{Start: 0, End: 2}, {Start: 2, End: 3}},
		"unordered":   {{Start: 3, End: 3}, {Start: 0, End: 1}},
		"too wide":    {{Start: 2, End: 4}},
	}
	for name, spans := range tests {
		t.Run(name, func(t *testing.T) {
			d := newFullData(4, 0, 1)
			d.groups = spans
			_, err := NewMetadataCache(d, d).ColumnGroupings()
			assert.ErrorIs(t, err, ErrIndexOutOfRange)
		})
	}
}

func TestMetadataCache_MissingProviders(t *testing.T) {
	_, err := NewMetadataCache(nil, nil).SectionCount()
	assert.ErrorIs(t, err, ErrMissingRequiredProvider)

	d := newFakeData(3, 1)
	_, err = NewMetadataCache(d, nil).TotalColumnWidth()
	assert.ErrorIs(t, err, ErrMissingRequiredProvider)
}
