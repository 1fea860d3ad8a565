// Command xlgrid inspects, selects and browses xlsx workbooks through the
// xlgrid selection engine.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/javajack/xlgrid"
)

// app carries state shared by the subcommands.
type app struct {
	cfg Config
	log *slog.Logger

	configPath string
	logLevel   string
	headerRows int
	sheets     []string
	multi      bool
	cross      bool
	rowSelect  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "xlgrid",
		Short: "Selection engine for xlsx grids",
		Long: `xlgrid treats every sheet of a workbook as a section of one grid and
applies the grid selection rules: frozen columns select rows, cross-selection
selects a row and a column, column selections carry headers and footers.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML config file (default: $"+ConfigEnv+")")
	pf.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.IntVar(&a.headerRows, "header-rows", 1, "Leading rows of the first sheet that form the header")
	pf.StringSliceVar(&a.sheets, "sheets", nil, "Sheets to load, in order (default: all)")
	pf.BoolVar(&a.multi, "multi", false, "Allow multiple selection")
	pf.BoolVar(&a.cross, "cross", false, "Enable cross-selection")
	pf.BoolVar(&a.rowSelect, "row-selection", true, "Section headers and footers select their whole row")

	root.AddCommand(newInspectCmd(a), newSelectCmd(a), newViewCmd(a))
	return root
}

// setup loads .env, the config file and the logger. Flags set on the command
// line win over the file.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	// A missing .env is fine; the environment still applies.
	_ = godotenv.Load()

	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("header-rows") {
		cfg.HeaderRows = a.headerRows
	}
	if flags.Changed("sheets") {
		cfg.Sheets = a.sheets
	}
	if flags.Changed("multi") {
		cfg.MultipleSelection = a.multi
	}
	if flags.Changed("cross") {
		cfg.CrossSelection = a.cross
	}
	if flags.Changed("row-selection") {
		cfg.RowSelection = a.rowSelect
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}

	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

// open loads the workbook at path and builds a grid over it.
func (a *app) open(path string, extra ...xlgrid.Option) (*xlgrid.Workbook, *xlgrid.Grid, error) {
	wb, err := xlgrid.OpenWorkbook(path, a.cfg.workbookOptions()...)
	if err != nil {
		return nil, nil, err
	}
	opts := append(a.cfg.gridOptions(a.log), xlgrid.WithGeometry(wb))
	g, err := xlgrid.New(wb, append(opts, extra...)...)
	if err != nil {
		wb.Close()
		return nil, nil, err
	}
	a.log.Debug("workbook loaded", "path", path, "sections", wb.SectionCount(), "columns", wb.ColumnCount())
	return wb, g, nil
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
