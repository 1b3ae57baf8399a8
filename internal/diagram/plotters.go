package diagram

import (
	"math"
	"strconv"

	"github.com/alexiusacademia/oudmold/internal/mold"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// mmTicks places ticks on every multiple of Minor, labelling those that are
// also multiples of Major.
type mmTicks struct {
	Major, Minor float64
}

var _ plot.Ticker = mmTicks{}

// Ticks implements plot.Ticker
func (t mmTicks) Ticks(min, max float64) []plot.Tick {
	if t.Minor <= 0 || math.IsInf(min, 0) || math.IsInf(max, 0) || min > max {
		return nil
	}
	every := int64(math.Round(t.Major / t.Minor))
	if every < 1 {
		every = 1
	}

	var ticks []plot.Tick
	for i := int64(math.Ceil(min/t.Minor - 1e-9)); float64(i)*t.Minor <= max+1e-9; i++ {
		v := float64(i) * t.Minor
		tick := plot.Tick{Value: v}
		if i%every == 0 {
			tick.Label = strconv.FormatFloat(v, 'f', -1, 64)
		}
		ticks = append(ticks, tick)
	}
	return ticks
}

// gridLines draws a line across the data area at every tick, major ticks
// heavier than minor ones. plotter.Grid skips minor ticks.
type gridLines struct {
	ticks        plot.Ticker
	major, minor draw.LineStyle
}

// Plot implements plot.Plotter
func (g gridLines) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	for _, tk := range g.ticks.Ticks(p.X.Min, p.X.Max) {
		x := trX(tk.Value)
		c.StrokeLine2(g.style(tk), x, c.Min.Y, x, c.Max.Y)
	}
	for _, tk := range g.ticks.Ticks(p.Y.Min, p.Y.Max) {
		y := trY(tk.Value)
		c.StrokeLine2(g.style(tk), c.Min.X, y, c.Max.X, y)
	}
}

func (g gridLines) style(tk plot.Tick) draw.LineStyle {
	if tk.IsMinor() {
		return g.minor
	}
	return g.major
}

// markers draws a glyph at every point. Unlike plotter.Scatter it reports no
// glyph boxes, so the plot does not pad the data area and print scale is kept.
type markers struct {
	points []mold.Point
	style  draw.GlyphStyle
}

// Plot implements plot.Plotter
func (m markers) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	for _, pt := range m.points {
		c.DrawGlyph(m.style, vg.Point{X: trX(pt.X), Y: trY(pt.Y)})
	}
}

// strokes draws a line plotter without its glyph boxes, which would pad the
// data area by half the line width and shift the print scale.
type strokes struct {
	line *plotter.Line
}

// Plot implements plot.Plotter
func (s strokes) Plot(c draw.Canvas, p *plot.Plot) {
	s.line.Plot(c, p)
}
