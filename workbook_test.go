package xlgrid

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func setRows(t *testing.T, f *excelize.File, sheet string, rows [][]any) {
	t.Helper()
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
}

// newOrdersFile builds a two-sheet workbook: a grouping row and a title row on
// top of three order lines, and a second sheet with one line.
func newOrdersFile(t *testing.T) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })

	setRows(t, f, "Sheet1", [][]any{
		{"Item", "", "Money"},
		{"Name", "Qty", "Price", "Total"},
		{"Apple", 3, 1.5, 4.5},
		{"Pear", 2, 2, 4},
		{"Plum", 10, 0.5, 5},
	})
	require.NoError(t, f.MergeCell("Sheet1", "A1", "B1"))
	require.NoError(t, f.MergeCell("Sheet1", "C1", "D1"))
	require.NoError(t, f.SetPanes("Sheet1", &excelize.Panes{
		Freeze: true, XSplit: 1, YSplit: 3, TopLeftCell: "B4", ActivePane: "bottomRight",
	}))
	require.NoError(t, f.SetColWidth("Sheet1", "A", "A", 20))
	require.NoError(t, f.SetRowHeight("Sheet1", 3, 30))

	_, err := f.NewSheet("Other")
	require.NoError(t, err)
	setRows(t, f, "Other", [][]any{
		{"-"},
		{"-"},
		{"Fig", 1, 3, 3},
	})
	return f
}

func TestNewWorkbook_Providers(t *testing.T) {
	wb, err := NewWorkbook(newOrdersFile(t), WithHeaderRows(2))
	require.NoError(t, err)

	assert.Equal(t, 2, wb.SectionCount())
	assert.Equal(t, 4, wb.ColumnCount())
	assert.Equal(t, 3, wb.RowCount(0))
	assert.Equal(t, 1, wb.RowCount(1))
	assert.Zero(t, wb.RowCount(2))

	assert.Equal(t, 1, wb.FrozenColumnCount())
	assert.Equal(t, 1, wb.FrozenRowCount(0))
	assert.Zero(t, wb.FrozenRowCount(1))

	assert.Equal(t, []ColumnSpan{{Start: 0, End: 1}, {Start: 2, End: 3}}, wb.ColumnGroupings())
	assert.Equal(t, "Money", wb.GroupingTitle(1))
	assert.Empty(t, wb.GroupingTitle(2))

	assert.Equal(t, "Price", wb.ColumnTitle(2))
	assert.Equal(t, "H", wb.ColumnTitle(7))
	assert.Equal(t, "Other", wb.SheetName(1))

	assert.Equal(t, "Pear", wb.CellValue(NewAddress(0, 1, 0)))
	assert.Equal(t, "Fig", wb.CellValue(NewAddress(1, 0, 0)))
	assert.Empty(t, wb.CellValue(NewAddress(1, 3, 0)))

	assert.Equal(t, 20.0, wb.ColumnWidth(0))
	assert.Greater(t, wb.ColumnWidth(1), 0.0)
	assert.Zero(t, wb.ColumnWidth(9))
	assert.Equal(t, 30.0, wb.RowHeight(NewAddress(0, 0, 0)))
}

func TestNewWorkbook_WithSheets(t *testing.T) {
	wb, err := NewWorkbook(newOrdersFile(t), WithHeaderRows(2), WithSheets("Other"))
	require.NoError(t, err)
	assert.Equal(t, 1, wb.SectionCount())
	assert.Equal(t, "Other", wb.SheetName(0))
	assert.Empty(t, wb.ColumnGroupings())

	_, err = NewWorkbook(newOrdersFile(t), WithSheets("Missing"))
	assert.Error(t, err)
}

func TestNewWorkbook_DefaultHeaderRow(t *testing.T) {
	wb, err := NewWorkbook(newOrdersFile(t))
	require.NoError(t, err)
	assert.Equal(t, 4, wb.RowCount(0))
	assert.Equal(t, "Qty", wb.CellValue(NewAddress(0, 0, 1)))
	assert.Equal(t, 2, wb.FrozenRowCount(0))
	assert.Empty(t, wb.ColumnGroupings())
}

func TestOpenWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.xlsx")
	require.NoError(t, newOrdersFile(t).SaveAs(path))

	wb, err := OpenWorkbook(path, WithHeaderRows(2))
	require.NoError(t, err)
	defer wb.Close()
	assert.Equal(t, 3, wb.RowCount(0))

	_, err = OpenWorkbook(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}

func TestWorkbook_DrivesGrid(t *testing.T) {
	wb, err := NewWorkbook(newOrdersFile(t), WithHeaderRows(2))
	require.NoError(t, err)
	g, err := New(wb, WithGeometry(wb))
	require.NoError(t, err)

	// frozen name column selects the line
	require.NoError(t, g.SelectCell(NewAddress(0, 2, 0), false))
	assert.Equal(t, flats(0, 8, 9, 10, 11), items(g))

	w, err := g.SupplementaryWidth(KindGroupedHeader, 0)
	require.NoError(t, err)
	assert.Equal(t, wb.ColumnWidth(0)+wb.ColumnWidth(1), w)

	found, err := g.FindWhere("number >= 4.5 && column == 3")
	require.NoError(t, err)
	assert.Equal(t, []GridAddress{NewAddress(0, 0, 3), NewAddress(0, 2, 3)}, found)
}

func TestWorkbook_MarkSelection(t *testing.T) {
	wb, err := NewWorkbook(newOrdersFile(t), WithHeaderRows(2))
	require.NoError(t, err)
	g, err := New(wb, WithGeometry(wb))
	require.NoError(t, err)

	require.NoError(t, g.SelectCell(NewAddress(0, 1, 2), false))
	require.NoError(t, g.SelectSupplementary(KindHeader, NewAddress(0, 0, 3)))
	require.NoError(t, g.SelectSupplementary(KindGroupedHeader, NewAddress(0, 0, 0)))
	require.NoError(t, wb.MarkSelection(g))

	var buf bytes.Buffer
	require.NoError(t, wb.Write(&buf))
	out, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer out.Close()

	styled := func(cell string) bool {
		id, err := out.GetCellStyle("Sheet1", cell)
		require.NoError(t, err)
		return id != 0
	}
	assert.True(t, styled("C4"))
	assert.True(t, styled("D2"))
	assert.True(t, styled("A1"))
	assert.True(t, styled("B1"))
	assert.False(t, styled("C3"))
	assert.False(t, styled("C2"))
	assert.False(t, styled("C1"))
}
