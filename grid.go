package xlgrid

import (
	"fmt"
	"log/slog"
)

// Grid is the addressing and selection engine behind a virtualized tabular view.
// It translates between substrate flat indices and logical addresses and keeps
// the selection state of cells and supplementary elements consistent.
//
// A Grid is not safe for concurrent use; callers serialize access.
type Grid struct {
	data  DataProvider
	opts  *Options
	meta  *MetadataCache
	store *SelectionStore
	ctl   *Controller
	log   *slog.Logger
}

// New creates a Grid over data.
func New(data DataProvider, opts ...Option) (*Grid, error) {
	if data == nil {
		return nil, fmt.Errorf("new grid: data provider: %w", ErrMissingRequiredProvider)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.selector == nil {
		o.selector = NewItemSet()
	}
	meta := NewMetadataCache(data, o.geometry)
	store := NewSelectionStore()
	return &Grid{
		data:  data,
		opts:  o,
		meta:  meta,
		store: store,
		ctl:   NewController(data, meta, store, o.selector, o),
		log:   o.logger,
	}, nil
}

// Reload drops cached metadata and every selection. The substrate is expected to
// reload its own items afterwards.
func (g *Grid) Reload() {
	g.meta.Invalidate()
	g.store.ClearAll()
	g.ctl.DeselectAllCells(false)
	g.log.Debug("grid reloaded")
}

// ReloadVisualOnly drops geometry-derived metadata and keeps selection state.
func (g *Grid) ReloadVisualOnly() {
	g.meta.InvalidateWidthOnly()
	g.log.Debug("grid visual reload")
}

// Selector returns the cell selection primitive in use.
func (g *Grid) Selector() ItemSelector {
	return g.opts.selector
}

// SetMultipleSelection toggles multiple selection at runtime.
func (g *Grid) SetMultipleSelection(allow bool) { g.opts.allowsMultiSelection = allow }

// SetRowSelection toggles row-selection mode at runtime.
func (g *Grid) SetRowSelection(enabled bool) { g.opts.rowSelection = enabled }

// SetCrossSelection toggles cross-selection at runtime.
func (g *Grid) SetCrossSelection(enabled bool) { g.opts.crossSelection = enabled }

// SetUserTouchCells toggles whether user taps may change cell selection.
func (g *Grid) SetUserTouchCells(enabled bool) { g.opts.userTouchCells = enabled }

// AllowsMultipleSelection reports the multiple selection flag.
func (g *Grid) AllowsMultipleSelection() bool { return g.opts.allowsMultiSelection }

// RowSelectionEnabled reports the row-selection flag.
func (g *Grid) RowSelectionEnabled() bool { return g.opts.rowSelection }

// CrossSelectionEnabled reports the cross-selection flag.
func (g *Grid) CrossSelectionEnabled() bool { return g.opts.crossSelection }

// ShouldSelectItem reports whether the substrate may select an item on user touch.
func (g *Grid) ShouldSelectItem(FlatIndex) bool { return g.opts.userTouchCells }

// ShouldDeselectItem reports whether the substrate may deselect an item on user touch.
func (g *Grid) ShouldDeselectItem(FlatIndex) bool { return g.opts.userTouchCells }

// SectionCount returns the cached section count.
func (g *Grid) SectionCount() (int, error) { return g.meta.SectionCount() }

// ColumnCount returns the cached column count.
func (g *Grid) ColumnCount() (int, error) { return g.meta.ColumnCount() }

// TotalColumnWidth returns the cached sum of column widths.
func (g *Grid) TotalColumnWidth() (float64, error) { return g.meta.TotalColumnWidth() }

// ColumnGroupings returns the cached grouped-header spans.
func (g *Grid) ColumnGroupings() ([]ColumnSpan, error) { return g.meta.ColumnGroupings() }

// RowCount returns the number of rows in section.
func (g *Grid) RowCount(section int) (int, error) {
	if err := g.checkSection(section); err != nil {
		return 0, err
	}
	return g.ctl.rowCount(section), nil
}

// ItemCount returns the number of flat items the substrate lays out in section.
func (g *Grid) ItemCount(section int) (int, error) {
	rows, err := g.RowCount(section)
	if err != nil {
		return 0, err
	}
	cols, err := g.meta.ColumnCount()
	if err != nil {
		return 0, err
	}
	return rows * cols, nil
}

// FrozenColumnCount returns the number of row-handle columns, 0 if the data
// provider does not say.
func (g *Grid) FrozenColumnCount() int {
	n, _ := g.ctl.frozenColumns()
	return n
}

// FrozenRowCount returns the pinned rows of section, 0 if the data provider does not say.
func (g *Grid) FrozenRowCount(section int) int {
	if fp, ok := g.data.(FrozenRowProvider); ok {
		return fp.FrozenRowCount(section)
	}
	return 0
}

// SupplementaryWidth returns the width of a supplementary element. index is a
// column, or a grouping index for KindGroupedHeader.
func (g *Grid) SupplementaryWidth(kind ElementKind, index int) (float64, error) {
	if kind == KindGroupedHeader {
		return g.meta.GroupingWidth(index)
	}
	if g.opts.geometry == nil {
		return 0, fmt.Errorf("supplementary width: %w", ErrMissingRequiredProvider)
	}
	cols, err := g.meta.ColumnCount()
	if err != nil {
		return 0, err
	}
	if index < 0 || index >= cols {
		return 0, outOfRange("column", index, cols)
	}
	return g.opts.geometry.ColumnWidth(index), nil
}

// ToFlat translates a cell address to its substrate index.
func (g *Grid) ToFlat(addr GridAddress) (FlatIndex, error) {
	if err := g.checkAddress(KindCell, addr); err != nil {
		return FlatIndex{}, newAddressError("translate", KindCell, addr, err)
	}
	cols, _ := g.meta.ColumnCount()
	return ToFlat(addr, cols)
}

// ToAddress translates a substrate index to its cell address.
func (g *Grid) ToAddress(flat FlatIndex) (GridAddress, error) {
	if err := g.checkFlat(flat); err != nil {
		return GridAddress{}, fmt.Errorf("translate %s: %w", flat, err)
	}
	cols, _ := g.meta.ColumnCount()
	return ToAddress(flat, cols)
}

// AddressesFor translates a batch of substrate indices, e.g. the visible items.
func (g *Grid) AddressesFor(flats []FlatIndex) ([]GridAddress, error) {
	out := make([]GridAddress, 0, len(flats))
	for _, f := range flats {
		a, err := g.ToAddress(f)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// IsSelected reports whether the element is selected. Hosts call it when an
// element comes back on screen.
func (g *Grid) IsSelected(kind ElementKind, addr GridAddress) bool {
	if g.checkAddress(kind, addr) != nil {
		return false
	}
	if kind != KindCell {
		return g.store.IsSelected(kind, addr)
	}
	cols, err := g.meta.ColumnCount()
	if err != nil || cols <= 0 {
		return false
	}
	flat := flatOf(addr, cols)
	if c, ok := g.opts.selector.(ItemContainer); ok {
		return c.Contains(flat)
	}
	for _, f := range g.opts.selector.SelectedItems() {
		if f == flat {
			return true
		}
	}
	return false
}

// Selected returns the selected supplementary elements of kind.
func (g *Grid) Selected(kind ElementKind) []GridAddress {
	if kind == KindCell {
		cells, _ := g.SelectedCells()
		return cells
	}
	return g.store.AllSelected(kind)
}

// SelectedCells returns the selected cells as logical addresses.
func (g *Grid) SelectedCells() ([]GridAddress, error) {
	cols, err := g.meta.ColumnCount()
	if err != nil {
		return nil, err
	}
	if cols <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidColumnCount, cols)
	}
	items := g.opts.selector.SelectedItems()
	out := make([]GridAddress, 0, len(items))
	for _, f := range items {
		out = append(out, addressOf(f, cols))
	}
	sortAddresses(out)
	return out, nil
}

// SelectCell selects a cell, or its row when the cell is in a frozen column.
func (g *Grid) SelectCell(addr GridAddress, animated bool) error {
	return g.guard("select cell", KindCell, addr, func() error { return g.ctl.SelectCell(addr, animated) })
}

// DeselectCell mirrors SelectCell.
func (g *Grid) DeselectCell(addr GridAddress, animated bool) error {
	return g.guard("deselect cell", KindCell, addr, func() error { return g.ctl.DeselectCell(addr, animated) })
}

// SelectRow selects every cell in addr's row.
func (g *Grid) SelectRow(addr GridAddress, animated bool) error {
	return g.guard("select row", KindCell, addr, func() error { return g.ctl.SelectRow(addr, animated) })
}

// DeselectRow deselects every cell in addr's row.
func (g *Grid) DeselectRow(addr GridAddress, animated bool) error {
	return g.guard("deselect row", KindCell, addr, func() error { return g.ctl.DeselectRow(addr, animated) })
}

// SelectSingleColumnSelection selects addr's whole column.
func (g *Grid) SelectSingleColumnSelection(addr GridAddress) error {
	return g.guard("select column", KindHeader, addr, func() error { return g.ctl.SelectColumn(addr, false) })
}

// DeselectSingleColumnSelection deselects addr's whole column.
func (g *Grid) DeselectSingleColumnSelection(addr GridAddress) error {
	return g.guard("deselect column", KindHeader, addr, func() error { return g.ctl.DeselectColumn(addr, false) })
}

// DeselectColumnsSelection clears column selections, keeping ignored when non-nil.
func (g *Grid) DeselectColumnsSelection(ignored *int) error {
	return g.ctl.DeselectColumnsSelection(ignored)
}

// DeselectAllCells deselects every cell.
func (g *Grid) DeselectAllCells(animated bool) {
	g.ctl.DeselectAllCells(animated)
}

// SelectSupplementary selects a header, footer, grouped header, section header or
// section footer programmatically. No event is raised.
func (g *Grid) SelectSupplementary(kind ElementKind, addr GridAddress) error {
	return g.guard("select", kind, addr, func() error { return g.ctl.SelectSupplementary(kind, addr) })
}

// DeselectSupplementary mirrors SelectSupplementary.
func (g *Grid) DeselectSupplementary(kind ElementKind, addr GridAddress) error {
	return g.guard("deselect", kind, addr, func() error { return g.ctl.DeselectSupplementary(kind, addr) })
}

// DidSelectItem is the substrate callback for a user selecting a cell.
func (g *Grid) DidSelectItem(flat FlatIndex) error {
	return g.guardFlat("did select", flat, g.ctl.DidSelectItem)
}

// DidDeselectItem is the substrate callback for a user deselecting a cell.
func (g *Grid) DidDeselectItem(flat FlatIndex) error {
	return g.guardFlat("did deselect", flat, g.ctl.DidDeselectItem)
}

// DidHighlightItem is the substrate callback for touch-down on a cell.
func (g *Grid) DidHighlightItem(flat FlatIndex) error {
	return g.guardFlat("highlight", flat, g.ctl.DidHighlightItem)
}

// DidUnhighlightItem is the substrate callback for touch-up on a cell.
func (g *Grid) DidUnhighlightItem(flat FlatIndex) error {
	return g.guardFlat("unhighlight", flat, g.ctl.DidUnhighlightItem)
}

// DidSelectSupplementary is the callback for a user selecting a supplementary element.
func (g *Grid) DidSelectSupplementary(kind ElementKind, addr GridAddress) error {
	return g.guard("did select", kind, addr, func() error { return g.ctl.DidSelectSupplementary(kind, addr) })
}

// DidDeselectSupplementary is the callback for a user deselecting a supplementary element.
func (g *Grid) DidDeselectSupplementary(kind ElementKind, addr GridAddress) error {
	return g.guard("did deselect", kind, addr, func() error { return g.ctl.DidDeselectSupplementary(kind, addr) })
}

// DidHighlightSupplementary is the callback for touch-down on a supplementary element.
func (g *Grid) DidHighlightSupplementary(kind ElementKind, addr GridAddress) error {
	return g.guard("highlight", kind, addr, func() error { return g.ctl.DidHighlightSupplementary(kind, addr) })
}

// DidUnhighlightSupplementary is the callback for touch-up on a supplementary element.
func (g *Grid) DidUnhighlightSupplementary(kind ElementKind, addr GridAddress) error {
	return g.guard("unhighlight", kind, addr, func() error { return g.ctl.DidUnhighlightSupplementary(kind, addr) })
}

// guard bounds-checks addr before running fn and logs failures. Nothing has been
// mutated when an error is returned.
func (g *Grid) guard(op string, kind ElementKind, addr GridAddress, fn func() error) error {
	if err := g.checkAddress(kind, addr); err != nil {
		err = newAddressError(op, kind, addr, err)
		g.log.Warn("selection aborted", "op", op, "kind", kind.String(), "address", addr.String(), "err", err)
		return err
	}
	if err := fn(); err != nil {
		g.log.Warn("selection aborted", "op", op, "kind", kind.String(), "address", addr.String(), "err", err)
		return err
	}
	return nil
}

func (g *Grid) guardFlat(op string, flat FlatIndex, fn func(FlatIndex) error) error {
	if err := g.checkFlat(flat); err != nil {
		err = fmt.Errorf("%s %s: %w", op, flat, err)
		g.log.Warn("selection aborted", "op", op, "index", flat.String(), "err", err)
		return err
	}
	if err := fn(flat); err != nil {
		g.log.Warn("selection aborted", "op", op, "index", flat.String(), "err", err)
		return err
	}
	return nil
}

func (g *Grid) checkSection(section int) error {
	sections, err := g.meta.SectionCount()
	if err != nil {
		return err
	}
	if section < 0 || section >= sections {
		return outOfRange("section", section, sections)
	}
	return nil
}

func (g *Grid) checkColumn(column int) error {
	cols, err := g.meta.ColumnCount()
	if err != nil {
		return err
	}
	if cols <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidColumnCount, cols)
	}
	if column < 0 || column >= cols {
		return outOfRange("column", column, cols)
	}
	return nil
}

// checkAddress validates the parts of addr that are meaningful for kind.
func (g *Grid) checkAddress(kind ElementKind, addr GridAddress) error {
	switch kind {
	case KindHeader, KindFooter:
		return g.checkColumn(addr.Column)
	case KindGroupedHeader:
		spans, err := g.meta.ColumnGroupings()
		if err != nil {
			return err
		}
		if addr.Column < 0 || addr.Column >= len(spans) {
			return outOfRange("grouping", addr.Column, len(spans))
		}
		return nil
	case KindSectionHeader, KindSectionFooter:
		if err := g.checkSection(addr.Section); err != nil {
			return err
		}
		if err := g.checkColumn(addr.Column); err != nil {
			return err
		}
		// Row 0 stays addressable in an empty section; column selection marks it.
		if rows := max(g.ctl.rowCount(addr.Section), 1); addr.Row < 0 || addr.Row >= rows {
			return outOfRange("row", addr.Row, rows)
		}
		return nil
	default:
		if err := g.checkSection(addr.Section); err != nil {
			return err
		}
		if err := g.checkColumn(addr.Column); err != nil {
			return err
		}
		if rows := g.ctl.rowCount(addr.Section); addr.Row < 0 || addr.Row >= rows {
			return outOfRange("row", addr.Row, rows)
		}
		return nil
	}
}

func (g *Grid) checkFlat(flat FlatIndex) error {
	if err := g.checkSection(flat.Section); err != nil {
		return err
	}
	cols, err := g.meta.ColumnCount()
	if err != nil {
		return err
	}
	if cols <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidColumnCount, cols)
	}
	if items := cols * g.ctl.rowCount(flat.Section); flat.Item < 0 || flat.Item >= items {
		return outOfRange("item", flat.Item, items)
	}
	return nil
}
