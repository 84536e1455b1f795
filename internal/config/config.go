// Package config loads ganttr's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/sadopc/ganttr/internal/gantt"
)

// Sentinel errors.
var (
	ErrNotFound = errors.New("config file not found")
	ErrInvalid  = errors.New("invalid config")
)

// Config is the full configuration file.
type Config struct {
	Chart    ChartConfig    `yaml:"chart"`
	Terminal TerminalConfig `yaml:"terminal"`
	Drag     DragConfig     `yaml:"drag"`
	SVG      SVGConfig      `yaml:"svg"`
}

// ChartConfig holds the layout options shared by every renderer.
type ChartConfig struct {
	DayWidth     Length  `yaml:"day_width"`
	SidebarWidth Length  `yaml:"sidebar_width"`
	LeadDays     int     `yaml:"lead_days"`
	TrailDays    int     `yaml:"trail_days"`
	RootFontPx   float64 `yaml:"root_font_px"`
}

// TerminalConfig maps pixel lengths onto terminal columns.
type TerminalConfig struct {
	CellPx float64 `yaml:"cell_px"`
}

// DragConfig controls the infinite timeline.
type DragConfig struct {
	Infinite      bool   `yaml:"infinite"`
	EdgeThreshold Length `yaml:"edge_threshold"`
	ExtendDays    int    `yaml:"extend_days"`
}

// SVGConfig sizes the SVG export.
type SVGConfig struct {
	Width     int `yaml:"width"`
	RowHeight int `yaml:"row_height"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Chart: ChartConfig{
			DayWidth:     MustLength(DefaultDayWidth),
			SidebarWidth: MustLength(DefaultSidebarWidth),
			LeadDays:     DefaultLeadDays,
			TrailDays:    DefaultTrailDays,
			RootFontPx:   DefaultRootFontPx,
		},
		Terminal: TerminalConfig{CellPx: DefaultCellPx},
		Drag: DragConfig{
			EdgeThreshold: MustLength(DefaultEdgeThreshold),
			ExtendDays:    DefaultExtendDays,
		},
		SVG: SVGConfig{Width: DefaultSVGWidth, RowHeight: DefaultSVGRowHeight},
	}
}

// DefaultPath returns ~/.config/ganttr/config.yml.
func DefaultPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "ganttr", FileName), nil
}

// Load reads the config file at path on top of the defaults, so keys
// missing from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault is Load that falls back to the defaults when the file does
// not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Chart.DayWidth.Value <= 0 {
		return fmt.Errorf("%w: chart.day_width must be positive", ErrInvalid)
	}
	if c.Chart.DayWidth.Unit == Vw {
		return fmt.Errorf("%w: chart.day_width cannot be relative to the viewport", ErrInvalid)
	}
	if c.Chart.LeadDays < 0 || c.Chart.TrailDays < 0 {
		return fmt.Errorf("%w: chart.lead_days and chart.trail_days must be >= 0", ErrInvalid)
	}
	if c.Chart.RootFontPx <= 0 {
		return fmt.Errorf("%w: chart.root_font_px must be positive", ErrInvalid)
	}
	if c.Terminal.CellPx <= 0 {
		return fmt.Errorf("%w: terminal.cell_px must be positive", ErrInvalid)
	}
	if c.Drag.ExtendDays < 1 {
		return fmt.Errorf("%w: drag.extend_days must be >= 1", ErrInvalid)
	}
	if c.SVG.Width < 1 || c.SVG.RowHeight < 1 {
		return fmt.Errorf("%w: svg.width and svg.row_height must be positive", ErrInvalid)
	}
	return nil
}

// Metrics returns the metrics for a viewport viewportPx pixels wide.
func (c *Config) Metrics(viewportPx float64) Metrics {
	return Metrics{RootFontPx: c.Chart.RootFontPx, ViewportPx: viewportPx}
}

// Options resolves the configuration into chart options measured in units
// of unitPx pixels, for a viewport viewportPx pixels wide.
func (c *Config) Options(unitPx, viewportPx float64) gantt.Options {
	m := c.Metrics(viewportPx)
	opts := gantt.DefaultOptions()
	opts.DayWidth = max(c.Chart.DayWidth.Resolve(m, unitPx), 1)
	opts.LeadDays = c.Chart.LeadDays
	opts.TrailDays = c.Chart.TrailDays
	opts.Extension = gantt.Extension{
		Enabled:       c.Drag.Infinite,
		EdgeThreshold: c.Drag.EdgeThreshold.Resolve(m, unitPx),
		Days:          c.Drag.ExtendDays,
	}
	return opts
}

// TerminalOptions returns chart options in terminal columns for a terminal
// cols columns wide.
func (c *Config) TerminalOptions(cols int) gantt.Options {
	return c.Options(c.Terminal.CellPx, float64(cols)*c.Terminal.CellPx)
}

// SVGOptions returns chart options in pixels.
func (c *Config) SVGOptions() gantt.Options {
	return c.Options(1, float64(c.SVG.Width))
}

// SidebarColumns resolves a sidebar width to terminal columns for a
// terminal cols columns wide.
func (c *Config) SidebarColumns(width Length, cols int) int {
	return width.Resolve(c.Metrics(float64(cols)*c.Terminal.CellPx), c.Terminal.CellPx)
}

// Save writes the configuration to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
