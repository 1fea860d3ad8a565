package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/javajack/xlgrid"
)

type selectFlags struct {
	where   string
	columns []int
	report  string
	mark    string
}

func newSelectCmd(a *app) *cobra.Command {
	var sf selectFlags
	cmd := &cobra.Command{
		Use:   "select <workbook.xlsx> [address...]",
		Short: "Apply selection gestures and print the result",
		Long: `Each address is tapped in order as a user would, so the selection rules
apply: in single-selection mode only the last tap survives. Addresses are
"section:row:column" or a cell name such as "B3" or "2!B3" (section 2).
Rows count from the first row below the header.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, g, err := a.open(args[0])
			if err != nil {
				return err
			}
			defer wb.Close()

			if err := applySelection(g, args[1:], sf); err != nil {
				return err
			}
			if err := printSelection(cmd.OutOrStdout(), wb, g); err != nil {
				return err
			}

			if sf.report != "" {
				err := writeFile(sf.report, func(f *os.File) error {
					return xlgrid.WriteSelectionReport(f, g, wb)
				})
				if err != nil {
					return err
				}
				a.log.Info("selection report written", "path", sf.report)
			}
			if sf.mark != "" {
				if err := wb.MarkSelection(g); err != nil {
					return err
				}
				if err := writeFile(sf.mark, func(f *os.File) error { return wb.Write(f) }); err != nil {
					return err
				}
				a.log.Info("marked workbook written", "path", sf.mark)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&sf.where, "where", "w", "", `Also select cells matching an expression, e.g. 'column == 2 && number > 10'`)
	f.IntSliceVarP(&sf.columns, "column", "c", nil, "Select whole columns by index")
	f.StringVar(&sf.report, "report", "", "Write an xlsx report of the selection to this path")
	f.StringVar(&sf.mark, "mark", "", "Write a copy of the workbook with the selection filled in")
	return cmd
}

func applySelection(g *xlgrid.Grid, addrs []string, sf selectFlags) error {
	for _, c := range sf.columns {
		if err := g.SelectSingleColumnSelection(xlgrid.NewAddress(0, 0, c)); err != nil {
			return err
		}
	}
	for _, s := range addrs {
		addr, err := xlgrid.ParseAddress(s)
		if err != nil {
			return err
		}
		flat, err := g.ToFlat(addr)
		if err != nil {
			return err
		}
		if err := g.DidSelectItem(flat); err != nil {
			return err
		}
	}
	if sf.where != "" {
		if _, err := g.SelectWhere(sf.where); err != nil {
			return err
		}
	}
	return nil
}

func printSelection(w io.Writer, wb *xlgrid.Workbook, g *xlgrid.Grid) error {
	for _, kind := range xlgrid.SupplementaryKinds {
		for _, a := range g.Selected(kind) {
			switch kind {
			case xlgrid.KindHeader:
				fmt.Fprintf(w, "%s\t%s\t%s\n", kind, xlgrid.ColToName(a.Column), wb.ColumnTitle(a.Column))
			case xlgrid.KindGroupedHeader:
				fmt.Fprintf(w, "%s\t%d\t%s\n", kind, a.Column, wb.GroupingTitle(a.Column))
			default:
				fmt.Fprintf(w, "%s\t%s\n", kind, a)
			}
		}
	}
	cells, err := g.SelectedCells()
	if err != nil {
		return err
	}
	for _, a := range cells {
		fmt.Fprintf(w, "cell\t%s!%s\t%s\n", wb.SheetName(a.Section), a.CellName(), wb.CellValue(a))
	}
	return nil
}
