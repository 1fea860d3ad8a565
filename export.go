package xlgrid

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ReportSheet is the sheet name WriteSelectionReport writes to.
const ReportSheet = "Selection"

// WriteSelectionReport writes an xlsx workbook listing every selected element of g,
// supplementary kinds first, then cells. values may be nil.
func WriteSelectionReport(w io.Writer, g *Grid, values ValueProvider) error {
	cells, err := g.SelectedCells()
	if err != nil {
		return fmt.Errorf("selection report: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", ReportSheet); err != nil {
		return fmt.Errorf("selection report: %w", err)
	}

	row := 1
	put := func(vals ...any) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		row++
		return f.SetSheetRow(ReportSheet, cell, &vals)
	}

	if err := put("Kind", "Section", "Row", "Column", "Cell", "Value"); err != nil {
		return fmt.Errorf("selection report: %w", err)
	}
	for _, kind := range SupplementaryKinds {
		for _, a := range g.Selected(kind) {
			if err := put(kind.String(), a.Section, a.Row, a.Column, "", ""); err != nil {
				return fmt.Errorf("selection report: %w", err)
			}
		}
	}
	for _, a := range cells {
		var v string
		if values != nil {
			v = values.CellValue(a)
		}
		if err := put(KindCell.String(), a.Section, a.Row, a.Column, a.CellName(), v); err != nil {
			return fmt.Errorf("selection report: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write selection report: %w", err)
	}
	return nil
}
