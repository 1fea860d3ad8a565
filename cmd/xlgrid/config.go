package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/javajack/xlgrid"
)

// ConfigEnv names the environment variable holding the default config path.
const ConfigEnv = "XLGRID_CONFIG"

// Config is the YAML configuration of the CLI. Flags override it.
type Config struct {
	MultipleSelection bool     `yaml:"multiple_selection"`
	RowSelection      bool     `yaml:"row_selection"`
	CrossSelection    bool     `yaml:"cross_selection"`
	UserTouchCells    bool     `yaml:"user_touch_cells"`
	HeaderRows        int      `yaml:"header_rows"`
	Sheets            []string `yaml:"sheets"`
	LogLevel          string   `yaml:"log_level"`
}

func defaultConfig() Config {
	return Config{
		RowSelection:   true,
		UserTouchCells: true,
		HeaderRows:     1,
		LogLevel:       "warn",
	}
}

// loadConfig reads path, or the file named by XLGRID_CONFIG when path is empty.
// Keys missing from the file keep their defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.HeaderRows < 0 {
		return cfg, fmt.Errorf("parse config %s: header_rows must not be negative", path)
	}
	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return level, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}

func (c Config) gridOptions(log *slog.Logger) []xlgrid.Option {
	return []xlgrid.Option{
		xlgrid.WithMultipleSelection(c.MultipleSelection),
		xlgrid.WithRowSelection(c.RowSelection),
		xlgrid.WithCrossSelection(c.CrossSelection),
		xlgrid.WithUserTouchCells(c.UserTouchCells),
		xlgrid.WithLogger(log),
	}
}

func (c Config) workbookOptions() []xlgrid.WorkbookOption {
	opts := []xlgrid.WorkbookOption{xlgrid.WithHeaderRows(c.HeaderRows)}
	if len(c.Sheets) > 0 {
		opts = append(opts, xlgrid.WithSheets(c.Sheets...))
	}
	return opts
}
