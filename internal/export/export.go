package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sadopc/ganttr/internal/config"
	"github.com/sadopc/ganttr/internal/gantt"
)

// Format is an export file format.
type Format string

const (
	SVG  Format = "svg"
	CSV  Format = "csv"
	JSON Format = "json"
)

// Formats lists the supported formats in menu order.
var Formats = []Format{SVG, CSV, JSON}

// ErrUnknownFormat is returned for a format Write cannot produce.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat accepts a format name in any case.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// OptionsFromConfig sizes an SVG export from cfg. The sidebar width is
// resolved against the configured SVG width.
func OptionsFromConfig(cfg *config.Config, colors map[string]string) SVGOptions {
	m := cfg.Metrics(float64(cfg.SVG.Width))
	return SVGOptions{
		SidebarWidth: cfg.Chart.SidebarWidth.Resolve(m, 1),
		RowHeight:    cfg.SVG.RowHeight,
		Colors:       colors,
	}
}

// Write exports c to path in the given format. svg is only used for SVG.
func Write(c *gantt.Chart, format Format, path string, svg SVGOptions) error {
	switch format {
	case SVG:
		return ToSVG(c, svg, path)
	case CSV:
		return ToCSV(c, path)
	case JSON:
		return ToJSON(c, path)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
