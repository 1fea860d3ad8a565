package xlgrid

import "fmt"

// Controller applies the selection cascade rules. It reads counts through the
// MetadataCache, records supplementary selection in the SelectionStore, drives
// cell selection through the ItemSelector and pushes flags to on-screen elements
// through the VisualSink.
//
// Cascades call the ItemSelector and the store directly and never raise events,
// so a cascade cannot re-enter the user-facing entry points.
type Controller struct {
	data     DataProvider
	meta     *MetadataCache
	store    *SelectionStore
	selector ItemSelector
	opts     *Options
}

// NewController wires a controller. opts is shared with the owning Grid so flag
// changes apply immediately.
func NewController(data DataProvider, meta *MetadataCache, store *SelectionStore, selector ItemSelector, opts *Options) *Controller {
	if opts == nil {
		opts = defaultOptions()
	}
	if selector == nil {
		selector = NewItemSet()
	}
	return &Controller{data: data, meta: meta, store: store, selector: selector, opts: opts}
}

// dims is the snapshot of counts a cascade works against.
type dims struct {
	sections int
	columns  int
}

func (c *Controller) dims() (dims, error) {
	sections, err := c.meta.SectionCount()
	if err != nil {
		return dims{}, err
	}
	cols, err := c.meta.ColumnCount()
	if err != nil {
		return dims{}, err
	}
	if cols <= 0 {
		return dims{}, fmt.Errorf("%w: %d", ErrInvalidColumnCount, cols)
	}
	return dims{sections: sections, columns: cols}, nil
}

func (c *Controller) rowCount(section int) int {
	if n := c.data.RowCount(section); n > 0 {
		return n
	}
	return 0
}

// frozenColumns returns the frozen column count and whether the data provider
// supplies one at all.
func (c *Controller) frozenColumns() (int, bool) {
	fp, ok := c.data.(FrozenColumnProvider)
	if !ok {
		return 0, false
	}
	return fp.FrozenColumnCount(), true
}

// elementIndex is the substrate index of a supplementary element.
func elementIndex(kind ElementKind, addr GridAddress, columns int) FlatIndex {
	if kind.isGridScoped() {
		return FlatIndex{Item: addr.Column}
	}
	return flatOf(addr, columns)
}

// mark records the selection of one supplementary element and updates its
// on-screen handle if there is one.
func (c *Controller) mark(kind ElementKind, addr GridAddress, columns int, selected bool) {
	c.store.SetSelected(kind, addr, selected)
	if h, ok := c.opts.visuals.Element(kind, elementIndex(kind, addr, columns)); ok {
		h.SetSelected(selected)
	}
}

func (c *Controller) setItem(addr GridAddress, columns int, selected, animated bool) {
	flat := flatOf(addr, columns)
	if selected {
		c.selector.SelectItem(flat, animated)
	} else {
		c.selector.DeselectItem(flat, animated)
	}
}

// setRow selects or deselects every cell of addr's row.
func (c *Controller) setRow(addr GridAddress, columns int, selected, animated bool) {
	for col := 0; col < columns; col++ {
		c.setItem(GridAddress{Section: addr.Section, Row: addr.Row, Column: col}, columns, selected, animated)
	}
}

// setSupplementaryCells cascades a section header or footer to the cells of
// its row. Empty sections have no cells to cascade to.
func (c *Controller) setSupplementaryCells(addr GridAddress, columns int, selected, animated bool) {
	if addr.Row < c.rowCount(addr.Section) {
		c.setRow(addr, columns, selected, animated)
	}
}

// setColumn selects or deselects the header and footer of column, its section
// footer in every section, and every cell in the column.
func (c *Controller) setColumn(column int, d dims, selected, animated bool) {
	c.mark(KindHeader, GridAddress{Column: column}, d.columns, selected)
	c.mark(KindFooter, GridAddress{Column: column}, d.columns, selected)
	for s := 0; s < d.sections; s++ {
		c.mark(KindSectionFooter, GridAddress{Section: s, Column: column}, d.columns, selected)
		c.setColumnCells(s, column, d.columns, selected, animated)
	}
}

func (c *Controller) setColumnCells(section, column, columns int, selected, animated bool) {
	rows := c.rowCount(section)
	for r := 0; r < rows; r++ {
		c.setItem(GridAddress{Section: section, Row: r, Column: column}, columns, selected, animated)
	}
}

// setSupplementaryRow marks the element of kind in every column of addr's row.
func (c *Controller) setSupplementaryRow(kind ElementKind, addr GridAddress, columns int, selected bool) {
	for col := 0; col < columns; col++ {
		c.mark(kind, GridAddress{Section: addr.Section, Row: addr.Row, Column: col}, columns, selected)
	}
}

func (c *Controller) highlightRow(kind ElementKind, addr GridAddress, columns int, highlighted bool) {
	for col := 0; col < columns; col++ {
		flat := flatOf(GridAddress{Section: addr.Section, Row: addr.Row, Column: col}, columns)
		if h, ok := c.opts.visuals.Element(kind, flat); ok {
			h.SetHighlighted(highlighted)
		}
	}
}

// SelectCell selects one cell, or its whole row when the cell sits in a frozen
// column. The data provider must implement FrozenColumnProvider.
func (c *Controller) SelectCell(addr GridAddress, animated bool) error {
	return c.toggleCell("select", addr, true, animated)
}

// DeselectCell mirrors SelectCell.
func (c *Controller) DeselectCell(addr GridAddress, animated bool) error {
	return c.toggleCell("deselect", addr, false, animated)
}

func (c *Controller) toggleCell(op string, addr GridAddress, selected, animated bool) error {
	frozen, ok := c.frozenColumns()
	if !ok {
		return newAddressError(op, KindCell, addr, fmt.Errorf("frozen column count: %w", ErrMissingRequiredProvider))
	}
	d, err := c.dims()
	if err != nil {
		return newAddressError(op, KindCell, addr, err)
	}
	if addr.Column < frozen {
		c.setRow(addr, d.columns, selected, animated)
		return nil
	}
	c.setItem(addr, d.columns, selected, animated)
	return nil
}

// SelectRow selects every cell of addr's row.
func (c *Controller) SelectRow(addr GridAddress, animated bool) error {
	d, err := c.dims()
	if err != nil {
		return newAddressError("select row", KindCell, addr, err)
	}
	c.setRow(addr, d.columns, true, animated)
	return nil
}

// DeselectRow deselects every cell of addr's row.
func (c *Controller) DeselectRow(addr GridAddress, animated bool) error {
	d, err := c.dims()
	if err != nil {
		return newAddressError("deselect row", KindCell, addr, err)
	}
	c.setRow(addr, d.columns, false, animated)
	return nil
}

// SelectColumn selects addr's column across the grid: header, footer, every
// section footer and every cell.
func (c *Controller) SelectColumn(addr GridAddress, animated bool) error {
	d, err := c.dims()
	if err != nil {
		return newAddressError("select column", KindCell, addr, err)
	}
	c.setColumn(addr.Column, d, true, animated)
	return nil
}

// DeselectColumn mirrors SelectColumn.
func (c *Controller) DeselectColumn(addr GridAddress, animated bool) error {
	d, err := c.dims()
	if err != nil {
		return newAddressError("deselect column", KindCell, addr, err)
	}
	c.setColumn(addr.Column, d, false, animated)
	return nil
}

// DeselectAllCells deselects every selected cell.
func (c *Controller) DeselectAllCells(animated bool) {
	for _, flat := range c.selector.SelectedItems() {
		c.selector.DeselectItem(flat, animated)
	}
}

// DeselectColumnsSelection clears every column-keyed selection (headers, footers,
// section footers) together with the cells of each selected header's column.
// The column given by ignored, if any, is kept.
func (c *Controller) DeselectColumnsSelection(ignored *int) error {
	d, err := c.dims()
	if err != nil {
		return fmt.Errorf("deselect columns: %w", err)
	}
	c.deselectColumns(ignored, d)
	return nil
}

func (c *Controller) deselectColumns(ignored *int, d dims) {
	keep := func(a GridAddress) bool { return ignored != nil && *ignored == a.Column }

	for _, a := range c.store.AllSelected(KindHeader) {
		if keep(a) {
			continue
		}
		c.mark(KindHeader, a, d.columns, false)
		for s := 0; s < d.sections; s++ {
			c.setColumnCells(s, a.Column, d.columns, false, false)
		}
	}
	for _, a := range c.store.AllSelected(KindFooter) {
		if !keep(a) {
			c.mark(KindFooter, a, d.columns, false)
		}
	}
	for _, a := range c.store.AllSelected(KindSectionFooter) {
		if !keep(a) {
			c.mark(KindSectionFooter, a, d.columns, false)
		}
	}
}

// deselectAllIgnoring enforces single selection: everything column-keyed outside
// addr's column is cleared, and every cell except addr.
func (c *Controller) deselectAllIgnoring(addr GridAddress, d dims) {
	column := addr.Column
	for _, kind := range []ElementKind{KindHeader, KindFooter, KindSectionFooter} {
		for _, a := range c.store.AllSelected(kind) {
			if a.Column != column {
				c.mark(kind, a, d.columns, false)
			}
		}
	}

	keep := flatOf(addr, d.columns)
	for _, flat := range c.selector.SelectedItems() {
		if flat != keep {
			c.selector.DeselectItem(flat, false)
		}
	}
}

func (c *Controller) crossSelects(addr GridAddress) bool {
	// Cross-selection has no defined meaning with multiple selection.
	return c.opts.crossSelection && !c.opts.allowsMultiSelection && addr.Column > 0
}

// DidSelectItem handles a user selecting the cell at flat. A missing frozen
// column provider counts as zero frozen columns here.
func (c *Controller) DidSelectItem(flat FlatIndex) error {
	d, err := c.dims()
	if err != nil {
		return fmt.Errorf("did select %s: %w", flat, err)
	}
	addr := addressOf(flat, d.columns)
	frozen, _ := c.frozenColumns()

	if c.opts.allowsMultiSelection {
		c.deselectColumns(nil, d)
	} else {
		c.deselectAllIgnoring(addr, d)
	}
	c.selector.SelectItem(flat, false)

	if addr.Column < frozen {
		c.setRow(addr, d.columns, true, false)
	}
	if c.crossSelects(addr) {
		c.setRow(addr, d.columns, true, false)
		c.setColumn(addr.Column, d, true, false)
	}

	c.opts.events.CellSelected(addr)
	return nil
}

// DidDeselectItem handles a user deselecting the cell at flat.
func (c *Controller) DidDeselectItem(flat FlatIndex) error {
	d, err := c.dims()
	if err != nil {
		return fmt.Errorf("did deselect %s: %w", flat, err)
	}
	addr := addressOf(flat, d.columns)
	frozen, _ := c.frozenColumns()

	c.selector.DeselectItem(flat, false)
	if addr.Column < frozen {
		c.setRow(addr, d.columns, false, false)
	}
	if c.crossSelects(addr) {
		c.setRow(addr, d.columns, false, false)
		c.setColumn(addr.Column, d, false, false)
	}

	c.opts.events.CellDeselected(addr)
	return nil
}

// DidHighlightItem highlights the whole row when a frozen-column cell is touched.
func (c *Controller) DidHighlightItem(flat FlatIndex) error {
	return c.highlightItem(flat, true)
}

// DidUnhighlightItem reverts DidHighlightItem.
func (c *Controller) DidUnhighlightItem(flat FlatIndex) error {
	return c.highlightItem(flat, false)
}

func (c *Controller) highlightItem(flat FlatIndex, on bool) error {
	d, err := c.dims()
	if err != nil {
		return fmt.Errorf("highlight %s: %w", flat, err)
	}
	addr := addressOf(flat, d.columns)
	if frozen, _ := c.frozenColumns(); addr.Column < frozen {
		c.highlightRow(KindCell, addr, d.columns, on)
	}
	return nil
}

// groupingAt returns the span of grouped header index.
func (c *Controller) groupingAt(index int) (ColumnSpan, error) {
	spans, err := c.meta.ColumnGroupings()
	if err != nil {
		return ColumnSpan{}, err
	}
	if index < 0 || index >= len(spans) {
		return ColumnSpan{}, outOfRange("grouping", index, len(spans))
	}
	return spans[index], nil
}

// SelectSupplementary selects a supplementary element without raising events.
// In row-selection mode a section header or footer selects its whole row,
// supplementary elements and cells alike.
func (c *Controller) SelectSupplementary(kind ElementKind, addr GridAddress) error {
	return c.toggleSupplementary("select", kind, addr, true)
}

// DeselectSupplementary mirrors SelectSupplementary.
func (c *Controller) DeselectSupplementary(kind ElementKind, addr GridAddress) error {
	return c.toggleSupplementary("deselect", kind, addr, false)
}

func (c *Controller) toggleSupplementary(op string, kind ElementKind, addr GridAddress, selected bool) error {
	if kind == KindCell {
		return c.toggleCell(op, addr, selected, false)
	}
	d, err := c.dims()
	if err != nil {
		return newAddressError(op, kind, addr, err)
	}
	if kind == KindGroupedHeader {
		if _, err := c.groupingAt(addr.Column); err != nil {
			return newAddressError(op, kind, addr, err)
		}
	}
	if kind.rowScoped() && c.opts.rowSelection {
		c.setSupplementaryRow(kind, addr, d.columns, selected)
		c.setSupplementaryCells(addr, d.columns, selected, false)
		return nil
	}
	c.mark(kind, addr, d.columns, selected)
	return nil
}

// DidSelectSupplementary handles a user selecting a supplementary element.
func (c *Controller) DidSelectSupplementary(kind ElementKind, addr GridAddress) error {
	return c.didToggleSupplementary(kind, addr, true)
}

// DidDeselectSupplementary handles a user deselecting a supplementary element.
func (c *Controller) DidDeselectSupplementary(kind ElementKind, addr GridAddress) error {
	return c.didToggleSupplementary(kind, addr, false)
}

func (c *Controller) didToggleSupplementary(kind ElementKind, addr GridAddress, selected bool) error {
	op := "did select"
	if !selected {
		op = "did deselect"
	}
	d, err := c.dims()
	if err != nil {
		return newAddressError(op, kind, addr, err)
	}

	ev := c.opts.events
	switch kind {
	case KindSectionHeader, KindSectionFooter:
		c.mark(kind, addr, d.columns, selected)
		if c.opts.rowSelection {
			c.setSupplementaryRow(kind, addr, d.columns, selected)
			c.setSupplementaryCells(addr, d.columns, selected, true)
		}
		switch {
		case kind == KindSectionHeader && selected:
			ev.SectionHeaderSelected(addr)
		case kind == KindSectionHeader:
			ev.SectionHeaderDeselected(addr)
		case selected:
			ev.SectionFooterSelected(addr)
		default:
			ev.SectionFooterDeselected(addr)
		}
	case KindHeader:
		c.mark(kind, addr, d.columns, selected)
		if selected {
			ev.HeaderSelected(addr.Column)
		} else {
			ev.HeaderDeselected(addr.Column)
		}
	case KindGroupedHeader:
		span, err := c.groupingAt(addr.Column)
		if err != nil {
			return newAddressError(op, kind, addr, err)
		}
		c.mark(kind, addr, d.columns, selected)
		if selected {
			ev.GroupedHeaderSelected(span, addr.Column)
		} else {
			ev.GroupedHeaderDeselected(span, addr.Column)
		}
	case KindFooter:
		c.mark(kind, addr, d.columns, selected)
		if selected {
			ev.FooterSelected(addr)
		} else {
			ev.FooterDeselected(addr)
		}
	case KindCell:
		if selected {
			return c.DidSelectItem(flatOf(addr, d.columns))
		}
		return c.DidDeselectItem(flatOf(addr, d.columns))
	}
	return nil
}

// DidHighlightSupplementary highlights the row behind a section header or footer
// in row-selection mode. Other kinds never cascade highlight.
func (c *Controller) DidHighlightSupplementary(kind ElementKind, addr GridAddress) error {
	return c.highlightSupplementary(kind, addr, true)
}

// DidUnhighlightSupplementary reverts DidHighlightSupplementary.
func (c *Controller) DidUnhighlightSupplementary(kind ElementKind, addr GridAddress) error {
	return c.highlightSupplementary(kind, addr, false)
}

func (c *Controller) highlightSupplementary(kind ElementKind, addr GridAddress, on bool) error {
	if !kind.rowScoped() || !c.opts.rowSelection {
		return nil
	}
	d, err := c.dims()
	if err != nil {
		return newAddressError("highlight", kind, addr, err)
	}
	c.highlightRow(kind, addr, d.columns, on)
	c.highlightRow(KindCell, addr, d.columns, on)
	return nil
}
