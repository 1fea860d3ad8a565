package xlgrid

import "sort"

// ItemSet is an in-memory ItemSelector, used when the host has no native
// multi-selection primitive of its own.
type ItemSet struct {
	items map[FlatIndex]struct{}
}

// NewItemSet creates an empty ItemSet.
func NewItemSet() *ItemSet {
	return &ItemSet{items: make(map[FlatIndex]struct{})}
}

func (s *ItemSet) SelectItem(flat FlatIndex, _ bool) {
	s.items[flat] = struct{}{}
}

func (s *ItemSet) DeselectItem(flat FlatIndex, _ bool) {
	delete(s.items, flat)
}

// SelectedItems returns the selected indices ordered by section, then item.
func (s *ItemSet) SelectedItems() []FlatIndex {
	out := make([]FlatIndex, 0, len(s.items))
	for f := range s.items {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Section != out[j].Section {
			return out[i].Section < out[j].Section
		}
		return out[i].Item < out[j].Item
	})
	return out
}

// Contains reports whether flat is selected.
func (s *ItemSet) Contains(flat FlatIndex) bool {
	_, ok := s.items[flat]
	return ok
}

// Len returns the number of selected items.
func (s *ItemSet) Len() int {
	return len(s.items)
}
