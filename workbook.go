package xlgrid

import (
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"
)

// Workbook exposes an xlsx workbook as grid providers. Every sheet is a section.
// The first headerRows rows of the first sheet form the grid header: the last of
// them holds the column titles, horizontal merges in the ones above become column
// groupings. Frozen panes of the first sheet give the frozen columns.
//
// Workbook implements DataProvider, FrozenColumnProvider, FrozenRowProvider,
// ColumnGroupingProvider, ValueProvider and GeometryProvider.
type Workbook struct {
	file       *excelize.File
	sheets     []string
	headerRows int

	header     [][]string   // header rows of the first sheet
	body       [][][]string // per section, rows below the header
	columns    int
	widths     []float64
	groupings  []ColumnSpan
	frozenCols int
	frozenRows []int
}

type workbookOptions struct {
	headerRows int
	sheets     []string
}

// WorkbookOption configures NewWorkbook.
type WorkbookOption func(*workbookOptions)

// WithHeaderRows sets how many leading rows form the header (default: 1).
func WithHeaderRows(n int) WorkbookOption {
	return func(o *workbookOptions) {
		if n >= 0 {
			o.headerRows = n
		}
	}
}

// WithSheets restricts the sections to the named sheets, in the given order.
func WithSheets(names ...string) WorkbookOption {
	return func(o *workbookOptions) { o.sheets = names }
}

// OpenWorkbook opens an xlsx file as grid providers.
func OpenWorkbook(path string, opts ...WorkbookOption) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %q: %w", path, err)
	}
	wb, err := NewWorkbook(f, opts...)
	if err != nil {
		f.Close()
		return nil, err
	}
	return wb, nil
}

// NewWorkbook reads f into memory. The file stays owned by the Workbook.
func NewWorkbook(f *excelize.File, opts ...WorkbookOption) (*Workbook, error) {
	o := &workbookOptions{headerRows: 1}
	for _, opt := range opts {
		opt(o)
	}

	sheets := o.sheets
	if len(sheets) == 0 {
		sheets = f.GetSheetList()
	}
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	wb := &Workbook{file: f, sheets: sheets, headerRows: o.headerRows}
	if err := wb.read(); err != nil {
		return nil, err
	}
	return wb, nil
}

func (wb *Workbook) read() error {
	for i, sheet := range wb.sheets {
		rows, err := wb.file.GetRows(sheet)
		if err != nil {
			return fmt.Errorf("read rows from sheet %q: %w", sheet, err)
		}
		for _, r := range rows {
			wb.columns = max(wb.columns, len(r))
		}

		split := min(wb.headerRows, len(rows))
		if i == 0 {
			wb.header = rows[:split]
		}
		wb.body = append(wb.body, rows[split:])

		frozenRows := 0
		if panes, err := wb.file.GetPanes(sheet); err == nil && panes.Freeze {
			frozenRows = max(panes.YSplit-wb.headerRows, 0)
			if i == 0 {
				wb.frozenCols = panes.XSplit
			}
		}
		wb.frozenRows = append(wb.frozenRows, frozenRows)
	}

	first := wb.sheets[0]
	wb.widths = make([]float64, wb.columns)
	for c := range wb.widths {
		w, err := wb.file.GetColWidth(first, ColToName(c))
		if err != nil {
			return fmt.Errorf("read width of column %s: %w", ColToName(c), err)
		}
		wb.widths[c] = w
	}

	groupings, err := wb.readGroupings(first)
	if err != nil {
		return err
	}
	wb.groupings = groupings
	return nil
}

// readGroupings collects horizontal merges above the title row.
func (wb *Workbook) readGroupings(sheet string) ([]ColumnSpan, error) {
	merges, err := wb.file.GetMergeCells(sheet)
	if err != nil {
		return nil, fmt.Errorf("read merged cells from sheet %q: %w", sheet, err)
	}

	var spans []ColumnSpan
	for _, m := range merges {
		startCol, startRow, err := excelize.CellNameToCoordinates(m.GetStartAxis())
		if err != nil {
			continue
		}
		endCol, endRow, err := excelize.CellNameToCoordinates(m.GetEndAxis())
		if err != nil {
			continue
		}
		if startRow != endRow || startRow >= wb.headerRows || startCol > wb.columns {
			continue
		}
		spans = append(spans, ColumnSpan{Start: startCol - 1, End: min(endCol, wb.columns) - 1})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })

	out := spans[:0]
	prevEnd := -1
	for _, s := range spans {
		if s.Start <= prevEnd {
			continue
		}
		out = append(out, s)
		prevEnd = s.End
	}
	return out, nil
}

func (wb *Workbook) SectionCount() int { return len(wb.sheets) }

func (wb *Workbook) ColumnCount() int { return wb.columns }

func (wb *Workbook) RowCount(section int) int {
	if section < 0 || section >= len(wb.body) {
		return 0
	}
	return len(wb.body[section])
}

func (wb *Workbook) FrozenColumnCount() int { return wb.frozenCols }

func (wb *Workbook) FrozenRowCount(section int) int {
	if section < 0 || section >= len(wb.frozenRows) {
		return 0
	}
	return wb.frozenRows[section]
}

func (wb *Workbook) ColumnGroupings() []ColumnSpan {
	return append([]ColumnSpan(nil), wb.groupings...)
}

func (wb *Workbook) CellValue(addr GridAddress) string {
	if addr.Section < 0 || addr.Section >= len(wb.body) {
		return ""
	}
	rows := wb.body[addr.Section]
	if addr.Row < 0 || addr.Row >= len(rows) || addr.Column < 0 || addr.Column >= len(rows[addr.Row]) {
		return ""
	}
	return rows[addr.Row][addr.Column]
}

func (wb *Workbook) ColumnWidth(column int) float64 {
	if column < 0 || column >= len(wb.widths) {
		return 0
	}
	return wb.widths[column]
}

func (wb *Workbook) RowHeight(addr GridAddress) float64 {
	if addr.Section < 0 || addr.Section >= len(wb.sheets) {
		return 0
	}
	h, err := wb.file.GetRowHeight(wb.sheets[addr.Section], wb.headerRows+addr.Row+1)
	if err != nil {
		return 0
	}
	return h
}

func (wb *Workbook) SupplementaryHeight(kind ElementKind, _ int) float64 {
	var row int
	switch {
	case kind == KindHeader && wb.headerRows > 0:
		row = wb.headerRows
	case kind == KindGroupedHeader && wb.headerRows > 1:
		row = 1
	default:
		return 0
	}
	h, err := wb.file.GetRowHeight(wb.sheets[0], row)
	if err != nil {
		return 0
	}
	return h
}

// SheetName returns the sheet behind section.
func (wb *Workbook) SheetName(section int) string {
	if section < 0 || section >= len(wb.sheets) {
		return ""
	}
	return wb.sheets[section]
}

// ColumnTitle returns the header text of column, or its letter when there is none.
func (wb *Workbook) ColumnTitle(column int) string {
	if n := len(wb.header); n > 0 && column >= 0 && column < len(wb.header[n-1]) {
		if t := wb.header[n-1][column]; t != "" {
			return t
		}
	}
	return ColToName(column)
}

// GroupingTitle returns the text of the merged cell behind grouping index.
func (wb *Workbook) GroupingTitle(index int) string {
	if index < 0 || index >= len(wb.groupings) {
		return ""
	}
	start := wb.groupings[index].Start
	for _, row := range wb.header {
		if start < len(row) && row[start] != "" {
			return row[start]
		}
	}
	return ""
}

// MarkSelection fills the selected cells and header titles in the workbook.
// Existing styles of those cells are replaced.
func (wb *Workbook) MarkSelection(g *Grid) error {
	fill, err := wb.file.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFF2CC"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create selection style: %w", err)
	}
	bold, err := wb.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFE699"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header selection style: %w", err)
	}

	cells, err := g.SelectedCells()
	if err != nil {
		return err
	}
	for _, a := range cells {
		if err := wb.styleRange(wb.SheetName(a.Section), a.Column, wb.headerRows+a.Row, a.Column, fill); err != nil {
			return err
		}
	}
	if wb.headerRows == 0 {
		return nil
	}
	for _, a := range g.Selected(KindHeader) {
		if err := wb.styleRange(wb.sheets[0], a.Column, wb.headerRows-1, a.Column, bold); err != nil {
			return err
		}
	}
	for _, a := range g.Selected(KindGroupedHeader) {
		if a.Column >= len(wb.groupings) {
			continue
		}
		span := wb.groupings[a.Column]
		if err := wb.styleRange(wb.sheets[0], span.Start, 0, span.End, bold); err != nil {
			return err
		}
	}
	return nil
}

// styleRange applies style to one row from column first to last; row is 0-based.
func (wb *Workbook) styleRange(sheet string, first, row, last, style int) error {
	from, err := excelize.CoordinatesToCellName(first+1, row+1)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(last+1, row+1)
	if err != nil {
		return err
	}
	if err := wb.file.SetCellStyle(sheet, from, to, style); err != nil {
		return fmt.Errorf("style %s!%s:%s: %w", sheet, from, to, err)
	}
	return nil
}

// Write writes the workbook to w.
func (wb *Workbook) Write(w io.Writer) error {
	if _, err := wb.file.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Close releases the underlying file.
func (wb *Workbook) Close() error {
	return wb.file.Close()
}
