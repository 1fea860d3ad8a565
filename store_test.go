package xlgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionStore_SetSelectedIsIdempotent(t *testing.T) {
	s := NewSelectionStore()
	a := NewAddress(1, 2, 3)

	s.SetSelected(KindSectionHeader, a, true)
	s.SetSelected(KindSectionHeader, a, true)
	assert.True(t, s.IsSelected(KindSectionHeader, a))
	assert.Equal(t, 1, s.Len(KindSectionHeader))

	s.SetSelected(KindSectionHeader, a, false)
	s.SetSelected(KindSectionHeader, a, false)
	assert.False(t, s.IsSelected(KindSectionHeader, a))
	assert.Equal(t, 0, s.Len(KindSectionHeader))
}

func TestSelectionStore_KindsAreIndependent(t *testing.T) {
	s := NewSelectionStore()
	a := NewAddress(0, 1, 1)
	s.SetSelected(KindSectionFooter, a, true)

	assert.True(t, s.IsSelected(KindSectionFooter, a))
	assert.False(t, s.IsSelected(KindSectionHeader, a))
	assert.False(t, s.IsSelected(KindFooter, a))
}

func TestSelectionStore_GridScopedKindsIgnoreSectionAndRow(t *testing.T) {
	s := NewSelectionStore()
	s.SetSelected(KindHeader, NewAddress(2, 5, 1), true)

	assert.True(t, s.IsSelected(KindHeader, NewAddress(0, 0, 1)))
	assert.True(t, s.IsSelected(KindHeader, NewAddress(1, 9, 1)))
	assert.False(t, s.IsSelected(KindHeader, NewAddress(2, 5, 2)))
	assert.Equal(t, []GridAddress{NewAddress(0, 0, 1)}, s.AllSelected(KindHeader))
}

func TestSelectionStore_SectionScopedKindsUseFullAddress(t *testing.T) {
	s := NewSelectionStore()
	s.SetSelected(KindSectionFooter, NewAddress(1, 0, 2), true)
	assert.False(t, s.IsSelected(KindSectionFooter, NewAddress(0, 0, 2)))
	assert.False(t, s.IsSelected(KindSectionFooter, NewAddress(1, 1, 2)))
}

func TestSelectionStore_AllSelectedIsSorted(t *testing.T) {
	s := NewSelectionStore()
	for _, a := range []GridAddress{NewAddress(1, 0, 0), NewAddress(0, 2, 1), NewAddress(0, 2, 0), NewAddress(0, 1, 5)} {
		s.SetSelected(KindSectionHeader, a, true)
	}
	assert.Equal(t, []GridAddress{
		NewAddress(0, 1, 5), NewAddress(0, 2, 0), NewAddress(0, 2, 1), NewAddress(1, 0, 0),
	}, s.AllSelected(KindSectionHeader))
}

func TestSelectionStore_ClearAndClearAll(t *testing.T) {
	s := NewSelectionStore()
	for _, k := range SupplementaryKinds {
		s.SetSelected(k, NewAddress(0, 0, 1), true)
	}

	s.Clear(KindFooter)
	assert.Equal(t, 0, s.Len(KindFooter))
	assert.Equal(t, 1, s.Len(KindHeader))

	s.ClearAll()
	for _, k := range SupplementaryKinds {
		assert.Empty(t, s.AllSelected(k), k.String())
	}
}

func TestSelectionStore_IgnoresCells(t *testing.T) {
	s := NewSelectionStore()
	s.SetSelected(KindCell, NewAddress(0, 0, 0), true)
	assert.False(t, s.IsSelected(KindCell, NewAddress(0, 0, 0)))
	assert.Empty(t, s.AllSelected(KindCell))
}
