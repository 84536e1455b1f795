package export

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"github.com/sadopc/ganttr/internal/gantt"
)

// DefaultBarColor is used for tasks whose category has no colour.
const DefaultBarColor = "#6C63FF"

const (
	svgHeaderRow = 24 // height of the month row and of the day row
	svgFontSize  = 12
)

// SVGOptions sizes the SVG rendering. Lengths are in pixels; the chart's
// day width is taken as pixels too.
type SVGOptions struct {
	SidebarWidth int
	RowHeight    int
	Colors       map[string]string // category -> colour
}

// RenderSVG draws the whole timeline: sidebar, month and day header, one
// bar per task with its progress, and the today marker when today is in
// the window.
func RenderSVG(c *gantt.Chart, opts SVGOptions) string {
	if opts.RowHeight <= 0 {
		opts.RowHeight = 32
	}
	sidebar := max(opts.SidebarWidth, 0)
	dw := c.DayWidth()
	days := gantt.EnumerateDays(c.Window())
	grid := gantt.BuildGrid(c.Window(), dw)
	rows := layoutRows(c)

	headerH := 2 * svgHeaderRow
	width := sidebar + gantt.TotalWidth(grid)
	height := headerH + len(rows)*opts.RowHeight

	var svg strings.Builder
	fmt.Fprintf(&svg, `<?xml version="1.0" encoding="UTF-8"?>
<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="#FFFFFF"/>
<defs>
<style>
.month-text { font-family: sans-serif; font-size: %dpx; font-weight: bold; fill: #111827; }
.day-text { font-family: sans-serif; font-size: %dpx; fill: #6B7280; text-anchor: middle; }
.today-text { font-family: sans-serif; font-size: %dpx; font-weight: bold; fill: #FFFFFF; text-anchor: middle; }
.task-text { font-family: sans-serif; font-size: %dpx; fill: #111827; }
</style>
</defs>
`, width, height, svgFontSize, svgFontSize-2, svgFontSize-2, svgFontSize)

	// Day grid lines, behind everything else
	for i := range days {
		x := sidebar + i*dw
		fmt.Fprintf(&svg, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#F3F4F6"/>`+"\n",
			x, svgHeaderRow, x, height)
	}

	// Month row
	x := sidebar
	for _, m := range grid {
		fmt.Fprintf(&svg, `<line x1="%d" y1="0" x2="%d" y2="%d" stroke="#E5E7EB"/>`+"\n", x, x, headerH)
		fmt.Fprintf(&svg, `<text x="%d" y="%d" class="month-text">%s</text>`+"\n",
			x+8, svgHeaderRow-8, escapeXML(m.Label))
		x += m.Width
	}

	// Day row
	today := c.Today()
	for i, d := range days {
		cx := sidebar + i*dw + dw/2
		class := "day-text"
		if d.Equal(today) {
			class = "today-text"
			fmt.Fprintf(&svg, `<circle cx="%d" cy="%d" r="%d" fill="#EF4444"/>`+"\n",
				cx, svgHeaderRow+svgHeaderRow/2, svgHeaderRow/2-2)
		}
		fmt.Fprintf(&svg, `<text x="%d" y="%d" class="%s">%d</text>`+"\n",
			cx, 2*svgHeaderRow-8, class, d.Day())
	}
	fmt.Fprintf(&svg, `<line x1="0" y1="%d" x2="%d" y2="%d" stroke="#E5E7EB"/>`+"\n", headerH, width, headerH)

	// Sidebar
	if sidebar > 0 {
		fmt.Fprintf(&svg, `<rect x="0" y="0" width="%d" height="%d" fill="#F9FAFB"/>`+"\n", sidebar, height)
		fmt.Fprintf(&svg, `<text x="8" y="%d" class="month-text">Tasks</text>`+"\n", svgHeaderRow+svgHeaderRow/2)
		fmt.Fprintf(&svg, `<line x1="%d" y1="0" x2="%d" y2="%d" stroke="#E5E7EB"/>`+"\n", sidebar, sidebar, height)
	}

	// Bars
	for i, r := range rows {
		y := headerH + i*opts.RowHeight
		pad := opts.RowHeight / 5
		color := barColor(r.Task.Category, opts.Colors)

		if sidebar > 0 {
			label := r.Task.Name
			if r.Task.Icon != "" {
				label = r.Task.Icon + " " + label
			}
			fmt.Fprintf(&svg, `<text x="8" y="%d" class="task-text">%s</text>`+"\n",
				y+opts.RowHeight/2+svgFontSize/3, escapeXML(label))
		}

		bx := sidebar + r.Bar.Left
		bh := opts.RowHeight - 2*pad
		fmt.Fprintf(&svg, `<rect x="%d" y="%d" width="%d" height="%d" rx="4" fill="%s" fill-opacity="0.3"><title>%s</title></rect>`+"\n",
			bx, y+pad, r.Bar.Width, bh, escapeXML(color), escapeXML(r.Task.Name))
		if r.Progress > 0 {
			fmt.Fprintf(&svg, `<rect x="%d" y="%d" width="%d" height="%d" rx="4" fill="%s"/>`+"\n",
				bx, y+pad, r.Progress, bh, escapeXML(color))
		}
	}

	// Now marker
	if mx, ok := gantt.TodayMarker(days, today, dw); ok {
		fmt.Fprintf(&svg, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#EF4444" stroke-width="2" stroke-dasharray="4 2"/>`+"\n",
			sidebar+mx, headerH, sidebar+mx, height)
	}

	svg.WriteString("</svg>\n")
	return svg.String()
}

// ToSVG renders the chart and writes it to path.
func ToSVG(c *gantt.Chart, opts SVGOptions, path string) error {
	if err := os.WriteFile(path, []byte(RenderSVG(c, opts)), 0o644); err != nil {
		return fmt.Errorf("write svg file: %w", err)
	}
	return nil
}

func barColor(category string, colors map[string]string) string {
	if c, ok := colors[category]; ok && c != "" {
		return c
	}
	return DefaultBarColor
}

// escapeXML escapes s for text or a quoted attribute. Invalid UTF-8 becomes
// U+FFFD.
func escapeXML(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
