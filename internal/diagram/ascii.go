package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexiusacademia/oudmold/internal/mold"
	"github.com/guptarohit/asciigraph"
)

// Character cells are roughly twice as tall as they are wide
const cellAspect = 2.0

// asciiCanvas is a character grid covering the scene's axis limits
type asciiCanvas struct {
	cells      [][]rune
	cols, rows int
	xmin, xmax float64
	ymin, ymax float64
}

func newASCIICanvas(s *Scene, cols int) *asciiCanvas {
	if cols < 10 {
		cols = 10
	}
	xmin, xmax, ymin, ymax := s.XMin, s.XMax, s.YMin, s.YMax
	if s.Mode == Review {
		// The review limits are padded for the figure, fit the drawing instead
		r := math.Max(s.Section.FaceRadius, s.Section.BackRadius)
		xmin, xmax, ymin, ymax = -r, r, 0, r
	}

	rows := 1
	if xmax > xmin && ymax > ymin {
		rows = int(float64(cols)*(ymax-ymin)/(xmax-xmin)/cellAspect) + 1
	}

	cells := make([][]rune, rows)
	for i := range cells {
		cells[i] = []rune(strings.Repeat(" ", cols))
	}
	return &asciiCanvas{cells: cells, cols: cols, rows: rows, xmin: xmin, xmax: xmax, ymin: ymin, ymax: ymax}
}

func (c *asciiCanvas) cell(p mold.Point) (col, row int, ok bool) {
	if c.xmax <= c.xmin || c.ymax <= c.ymin || math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return 0, 0, false
	}
	col = int(math.Round((p.X - c.xmin) / (c.xmax - c.xmin) * float64(c.cols-1)))
	row = c.rows - 1 - int(math.Round((p.Y-c.ymin)/(c.ymax-c.ymin)*float64(c.rows-1)))
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return 0, 0, false
	}
	return col, row, true
}

func (c *asciiCanvas) plot(p mold.Point, ch rune) {
	if col, row, ok := c.cell(p); ok {
		c.cells[row][col] = ch
	}
}

// line marks every cell crossed by the polyline
func (c *asciiCanvas) line(pts []mold.Point, ch rune) {
	stepX := (c.xmax - c.xmin) / float64(c.cols) / 2
	stepY := (c.ymax - c.ymin) / float64(c.rows) / 2
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		d := math.Max(math.Abs(b.X-a.X)/stepX, math.Abs(b.Y-a.Y)/stepY)
		if math.IsNaN(d) || math.IsInf(d, 0) {
			continue
		}
		n := int(math.Min(d, 10000)) + 1
		for k := 0; k <= n; k++ {
			t := float64(k) / float64(n)
			c.plot(mold.Point{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)}, ch)
		}
	}
	if len(pts) == 1 {
		c.plot(pts[0], ch)
	}
}

func (c *asciiCanvas) String() string {
	var sb strings.Builder
	for _, row := range c.cells {
		sb.WriteString("  │")
		sb.WriteString(strings.TrimRight(string(row), " "))
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("  └%s\n", strings.Repeat("─", c.cols)))
	return sb.String()
}

// DrawASCIITemplate creates an ASCII preview of a template, cols characters wide
func DrawASCIITemplate(s *Scene, cols int) string {
	c := newASCIICanvas(s, cols)

	for _, g := range s.Guides {
		c.line(g.Points, '·')
	}
	c.line(s.WidthBand.Points, '-')
	for _, sp := range s.Spokes {
		c.line(sp.Points, ':')
	}
	c.line(s.Ribs.Points, '#')
	c.line(s.Mirror.Points, '#')
	for _, p := range mold.Polyline(s.Points) {
		c.plot(p, '●')
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  TEMPLATE PREVIEW (%s mode)\n", s.Mode))
	sb.WriteString("  ─────────────────────────\n")
	sb.WriteString(c.String())

	// Legend
	sb.WriteString("\n")
	sb.WriteString("  Legend:\n")
	if len(s.Guides) > 0 {
		sb.WriteString("  ··· = Face, back and midline guides\n")
	}
	sb.WriteString(fmt.Sprintf("  --- = Template width band (%.1f mm)\n", s.Section.WidthSection))
	sb.WriteString("  ### = Rib outline, ●●● = rib joints, ::: = rib lines\n")
	sb.WriteString(fmt.Sprintf("  x from %.1f to %.1f mm, y from %.1f to %.1f mm\n", c.xmin, c.xmax, c.ymin, c.ymax))

	return sb.String()
}

// DrawSpokeProfile graphs the distance from the centre to each rib joint,
// left edge to right edge. An empty string means there is nothing to draw.
func DrawSpokeProfile(s *Scene) string {
	var spokes []float64
	for _, p := range finite(mold.Polyline(s.Points)) {
		spokes = append(spokes, math.Hypot(p.X, p.Y))
	}
	if len(spokes) < 2 {
		return ""
	}

	graph := asciigraph.Plot(spokes,
		asciigraph.Height(8),
		asciigraph.Precision(1),
		asciigraph.Offset(4),
		asciigraph.Caption("Spoke length per rib joint (mm)"),
	)
	return "\n" + graph + "\n"
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len(title)
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-2, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-2, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
