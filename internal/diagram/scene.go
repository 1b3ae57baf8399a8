package diagram

import (
	"fmt"
	"image/color"
	"math"
	"slices"

	"github.com/alexiusacademia/oudmold/internal/mold"
	"gonum.org/v1/plot/vg"
)

// Mode selects how a template is laid out
type Mode int

const (
	// Review draws every annotation on a fixed size figure for checking on screen
	Review Mode = iota

	// Print draws a label-free figure at true millimetre scale
	Print
)

func (m Mode) String() string {
	switch m {
	case Review:
		return "review"
	case Print:
		return "print"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Defaults for scene layout
const (
	DefaultDPI = 300

	// Tick spacing in mm, independent of section size
	MajorTick = 20.0
	MinorTick = 5.0

	// Review figure size
	ReviewWidth  = 16 * vg.Inch
	ReviewHeight = 12 * vg.Inch

	// Marker and line sizes shrink by this factor in print mode
	printScale = 4

	// Labels sit this fraction of max(face, back) above their point
	labelOffset = 0.03
)

var (
	// matplotlib's tab:blue
	ribColor   = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	guideColor = color.NRGBA{A: 0x80}
	gridColor  = color.Gray{Y: 0xb0}
)

// Options controls scene construction
type Options struct {
	Mode Mode
	DPI  int

	// Sample spacing of the guide arcs (mm); 0 selects mold.DefaultArcStep
	Step float64
}

// Curve is a polyline with its drawing style
type Curve struct {
	Points []mold.Point
	Color  color.Color
	Width  vg.Length
	Dashes []vg.Length

	// Radius of a marker drawn at every point, 0 for none
	MarkerRadius vg.Length
}

// Label is a text annotation anchored at a data point
type Label struct {
	At   mold.Point
	Text string
	Size vg.Length
}

// Scene holds everything drawn for one section. It is built once by
// BuildScene and handed to the renderers; nothing else is shared between calls.
type Scene struct {
	Section mold.Section
	Mode    Mode
	DPI     int

	// Rib intersection points as returned by mold.RibPoints
	Points []mold.Point

	Guides    []Curve // face, back and midline arcs (review only)
	WidthBand Curve
	Ribs      Curve
	Mirror    Curve
	Spokes    []Curve
	Labels    []Label

	MajorTick float64
	MinorTick float64
	MajorGrid vg.Length
	MinorGrid vg.Length

	// Axis limits in mm
	XMin, XMax float64
	YMin, YMax float64

	// Figure size
	Width, Height vg.Length

	// Axis labels and tick labels are drawn
	AxisLabels bool

	// The limits are widened at plot time so both axes share one mm length
	EqualAspect bool

	// Uniform white borders are trimmed from raster exports
	Trim bool
}

// BuildScene lays out the template of one section
func BuildScene(sec mold.Section, opts Options) *Scene {
	dpi := opts.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	s := &Scene{
		Section:   sec,
		Mode:      opts.Mode,
		DPI:       dpi,
		Points:    sec.Points(),
		MajorTick: MajorTick,
		MinorTick: MinorTick,
		MajorGrid: vg.Points(1),
		MinorGrid: vg.Points(0.2),
	}

	face, back := sec.FaceRadius, sec.BackRadius
	printing := opts.Mode == Print

	if !printing {
		for _, r := range mold.GuideRadii(face, back) {
			s.Guides = append(s.Guides, Curve{
				Points: slices.Collect(mold.HalfCircleArc(r, opts.Step)),
				Color:  guideColor,
				Width:  vg.Points(1),
				Dashes: []vg.Length{vg.Points(4), vg.Points(2)},
			})
		}
	}

	s.WidthBand = Curve{
		Points: slices.Collect(mold.HalfCircleArc(mold.WidthRadius(face, sec.WidthSection), opts.Step)),
		Color:  color.Black,
		Width:  vg.Points(1),
	}

	scale := vg.Length(1)
	if printing {
		scale = printScale
	}
	s.Ribs = Curve{
		Points:       s.Points,
		Color:        ribColor,
		Width:        vg.Points(3) / scale,
		MarkerRadius: vg.Points(5) / scale,
	}
	s.Mirror = s.Ribs
	s.Mirror.Points = mold.MirrorTail(s.Points)

	// The last point repeats the center rib corner on the left
	offset := labelOffset * math.Max(face, back)
	for i := 0; i < len(s.Points)-1; i++ {
		p := s.Points[i]
		for _, end := range []mold.Point{p, {X: -p.X, Y: p.Y}} {
			s.Spokes = append(s.Spokes, Curve{
				Points: []mold.Point{{}, end},
				Color:  ribColor,
				Width:  vg.Points(1) / scale,
				Dashes: []vg.Length{vg.Points(4) / scale, vg.Points(2) / scale},
			})
		}
		if !printing {
			s.Labels = append(s.Labels, Label{
				At:   mold.Point{X: p.X, Y: p.Y + offset},
				Text: fmt.Sprintf("(%.1f, %.1f)", p.X, p.Y),
				Size: vg.Points(12),
			})
		}
	}

	if printing {
		s.XMin, s.XMax = -face, face
		s.YMin, s.YMax = 0, back
		s.Width = vg.Length(2*face) * vg.Millimeter
		s.Height = vg.Length(back) * vg.Millimeter
		return s
	}

	r := math.Max(face, back)
	s.XMin, s.XMax = -r, r
	s.YMin, s.YMax = 0, r+2*offset
	s.Width, s.Height = ReviewWidth, ReviewHeight
	s.AxisLabels = true
	s.EqualAspect = true
	s.Trim = true
	return s
}

// equalAspect widens the shorter data span so one mm takes the same length on
// both axes of a w×h data area. The x span grows about its centre, the y span upward.
func equalAspect(xmin, xmax, ymin, ymax float64, w, h vg.Length) (float64, float64, float64, float64) {
	dx, dy := xmax-xmin, ymax-ymin
	if dx <= 0 || dy <= 0 || w <= 0 || h <= 0 {
		return xmin, xmax, ymin, ymax
	}
	ratio := float64(w / h)
	if dx/dy > ratio {
		ymax = ymin + dx/ratio
	} else {
		grow := (dy*ratio - dx) / 2
		xmin, xmax = xmin-grow, xmax+grow
	}
	return xmin, xmax, ymin, ymax
}

// RasterSize returns the pixel size of a print-mode raster of a section:
// the face width and bowl depth converted to inches at dpi.
func RasterSize(face, back float64, dpi int) (w, h int) {
	w = int(math.Round(2 * face / 25.4 * float64(dpi)))
	h = int(math.Round(back / 25.4 * float64(dpi)))
	return w, h
}
