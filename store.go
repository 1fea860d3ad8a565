package xlgrid

import "sort"

// SelectionStore records which supplementary elements are selected, one set per
// kind. Cells are not tracked here; their selection lives in the ItemSelector.
type SelectionStore struct {
	sets map[ElementKind]map[GridAddress]struct{}
}

// NewSelectionStore creates a store with an empty set for every supplementary kind.
func NewSelectionStore() *SelectionStore {
	s := &SelectionStore{sets: make(map[ElementKind]map[GridAddress]struct{}, len(SupplementaryKinds))}
	s.ClearAll()
	return s
}

// IsSelected reports whether the element of kind at addr is selected.
func (s *SelectionStore) IsSelected(kind ElementKind, addr GridAddress) bool {
	set, ok := s.sets[kind]
	if !ok {
		return false
	}
	_, ok = set[kind.key(addr)]
	return ok
}

// SetSelected marks or unmarks an element. It is idempotent and ignores KindCell.
func (s *SelectionStore) SetSelected(kind ElementKind, addr GridAddress, selected bool) {
	set, ok := s.sets[kind]
	if !ok {
		return
	}
	if selected {
		set[kind.key(addr)] = struct{}{}
	} else {
		delete(set, kind.key(addr))
	}
}

// AllSelected returns the selected addresses of kind, ordered by section, row, column.
func (s *SelectionStore) AllSelected(kind ElementKind) []GridAddress {
	set := s.sets[kind]
	out := make([]GridAddress, 0, len(set))
	for a := range set {
		out = append(out, a)
	}
	sortAddresses(out)
	return out
}

// Len returns how many elements of kind are selected.
func (s *SelectionStore) Len(kind ElementKind) int {
	return len(s.sets[kind])
}

// Clear empties the set of one kind.
func (s *SelectionStore) Clear(kind ElementKind) {
	if _, ok := s.sets[kind]; ok {
		s.sets[kind] = make(map[GridAddress]struct{})
	}
}

// ClearAll empties every set.
func (s *SelectionStore) ClearAll() {
	for _, k := range SupplementaryKinds {
		s.sets[k] = make(map[GridAddress]struct{})
	}
}

func sortAddresses(addrs []GridAddress) {
	sort.Slice(addrs, func(i, j int) bool {
		a, b := addrs[i], addrs[j]
		if a.Section != b.Section {
			return a.Section < b.Section
		}
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Column < b.Column
	})
}
