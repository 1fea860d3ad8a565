package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/javajack/xlgrid"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <workbook.xlsx>",
		Short: "Print the grid layout of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, g, err := a.open(args[0])
			if err != nil {
				return err
			}
			defer wb.Close()
			return inspect(cmd.OutOrStdout(), wb, g)
		},
	}
}

func inspect(w io.Writer, wb *xlgrid.Workbook, g *xlgrid.Grid) error {
	tree, err := g.Describe()
	if err != nil {
		return err
	}
	io.WriteString(w, tree)

	cols, _ := g.ColumnCount()
	fmt.Fprintln(w, "Columns:")
	for c := 0; c < cols; c++ {
		fmt.Fprintf(w, "  %-3s %-20q %6.2f\n", xlgrid.ColToName(c), wb.ColumnTitle(c), wb.ColumnWidth(c))
	}
	spans, _ := g.ColumnGroupings()
	for i := range spans {
		fmt.Fprintf(w, "Grouping %d: %q\n", i, wb.GroupingTitle(i))
	}
	sections, _ := g.SectionCount()
	for s := 0; s < sections; s++ {
		fmt.Fprintf(w, "Section %d: sheet %q\n", s, wb.SheetName(s))
	}

	issues := g.Validate()
	for _, is := range issues {
		fmt.Fprintln(w, is)
	}
	return nil
}
