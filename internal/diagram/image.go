package diagram

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexiusacademia/oudmold/internal/mold"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Plot converts the scene into a gonum plot
func (s *Scene) Plot() (*plot.Plot, error) {
	p := plot.New()

	ticks := mmTicks{Major: s.MajorTick, Minor: s.MinorTick}
	p.Add(gridLines{
		ticks: ticks,
		major: draw.LineStyle{Color: gridColor, Width: s.MajorGrid},
		minor: draw.LineStyle{Color: gridColor, Width: s.MinorGrid},
	})

	curves := make([]Curve, 0, len(s.Guides)+len(s.Spokes)+3)
	curves = append(curves, s.Guides...)
	curves = append(curves, s.WidthBand)
	curves = append(curves, s.Spokes...)
	curves = append(curves, s.Ribs, s.Mirror)

	for _, c := range curves {
		c.Points = finite(c.Points)
		line, err := newLine(c)
		if err != nil {
			return nil, err
		}
		p.Add(strokes{line})

		if c.MarkerRadius > 0 {
			p.Add(markers{
				points: c.Points,
				style: draw.GlyphStyle{
					Color:  c.Color,
					Radius: c.MarkerRadius,
					Shape:  draw.CircleGlyph{},
				},
			})
		}
	}

	var labels []Label
	for _, l := range s.Labels {
		if len(finite([]mold.Point{l.At})) == 1 {
			labels = append(labels, l)
		}
	}
	if len(labels) > 0 {
		lbls := plotter.XYLabels{
			XYs:    make(plotter.XYs, len(labels)),
			Labels: make([]string, len(labels)),
		}
		for i, l := range labels {
			lbls.XYs[i] = plotter.XY{X: l.At.X, Y: l.At.Y}
			lbls.Labels[i] = l.Text
		}
		l, err := plotter.NewLabels(lbls)
		if err != nil {
			return nil, err
		}
		for i := range l.TextStyle {
			l.TextStyle[i].Color = color.Black
			l.TextStyle[i].Font.Size = labels[i].Size
			l.TextStyle[i].Font.Weight = xfont.WeightBold
		}
		p.Add(l)
	}

	// Limits are set last, Add widens them to the data range
	p.X.Min, p.X.Max = s.XMin, s.XMax
	p.Y.Min, p.Y.Max = s.YMin, s.YMax

	for _, a := range []*plot.Axis{&p.X, &p.Y} {
		a.Padding = 0
		a.Tick.Marker = ticks
		if !s.AxisLabels {
			hideAxis(a)
		}
	}
	if s.AxisLabels {
		p.X.Label.Text = "x coordinate (mm)"
		p.Y.Label.Text = "y coordinate (mm)"
		p.X.Label.TextStyle.Font.Size = vg.Points(16)
		p.Y.Label.TextStyle.Font.Size = vg.Points(16)
	}
	if s.EqualAspect {
		fitAspect(p, s.Width, s.Height)
	}

	return p, nil
}

// fitAspect widens the axis limits so one mm takes the same length on both
// axes of the data area left once tick and axis labels have taken their room.
// The y axis width follows its tick labels, so the fit is repeated until they settle.
func fitAspect(p *plot.Plot, w, h vg.Length) {
	c := draw.Canvas{Rectangle: vg.Rectangle{Max: vg.Point{X: w, Y: h}}}
	for range 4 {
		size := p.DataCanvas(c).Size()
		p.X.Min, p.X.Max, p.Y.Min, p.Y.Max = equalAspect(p.X.Min, p.X.Max, p.Y.Min, p.Y.Max, size.X, size.Y)
	}
}

// hideAxis removes everything that takes up room next to the data area
func hideAxis(a *plot.Axis) {
	a.Label.Text = ""
	a.Padding = 0
	a.LineStyle.Width = 0
	a.LineStyle.Color = color.Transparent
	a.Tick.Length = 0
	a.Tick.Marker = plot.ConstantTicks(nil)
}

// finite drops points gonum cannot plot. Degenerate sections (no ribs, zero
// radii) still render, with the undefined points missing.
func finite(pts []mold.Point) []mold.Point {
	out := pts[:0:0]
	for _, p := range pts {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func newLine(c Curve) (*plotter.Line, error) {
	xys := make(plotter.XYs, len(c.Points))
	for i, pt := range c.Points {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Color = c.Color
	line.LineStyle.Width = c.Width
	line.LineStyle.Dashes = c.Dashes
	return line, nil
}

// Render draws the scene onto an image at the scene's DPI
func Render(s *Scene) (image.Image, error) {
	p, err := s.Plot()
	if err != nil {
		return nil, err
	}

	c := vgimg.NewWith(vgimg.UseWH(s.Width, s.Height), vgimg.UseDPI(s.DPI))
	p.Draw(draw.New(c))

	var img image.Image = c.Image()
	if s.Trim {
		img = trimWhite(img)
	}
	return img, nil
}

// OutputName returns the file Export writes for filename: unchanged for a
// known extension, with ".png" appended otherwise.
func OutputName(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".svg", ".pdf", ".eps", ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp":
		return filename
	}
	return filename + ".png"
}

// Export writes the scene to filename. The format follows the extension:
// png, jpg, tif and bmp are rasterised at the scene's DPI, svg, pdf and eps
// are written as vector graphics. See OutputName for other extensions.
func Export(s *Scene, filename string) error {
	filename = OutputName(filename)
	ext := strings.ToLower(filepath.Ext(filename))

	if err := ensureDir(filename); err != nil {
		return err
	}

	switch ext {
	case ".svg", ".pdf", ".eps":
		p, err := s.Plot()
		if err != nil {
			return err
		}
		var c vg.CanvasWriterTo
		switch ext {
		case ".svg":
			c = vgsvg.New(s.Width, s.Height)
		case ".pdf":
			c = vgpdf.New(s.Width, s.Height)
		default:
			c = vgeps.New(s.Width, s.Height)
		}
		p.Draw(draw.New(c))
		return writeFile(filename, c.WriteTo)
	}

	img, err := Render(s)
	if err != nil {
		return err
	}
	return writeFile(filename, imageWriter(ext, img))
}

// ensureDir creates the directory of filename if needed
func ensureDir(filename string) error {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

func writeFile(filename string, write func(io.Writer) (int64, error)) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if _, err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func imageWriter(ext string, img image.Image) func(io.Writer) (int64, error) {
	return func(w io.Writer) (int64, error) {
		return 0, encodeImage(w, ext, img)
	}
}

func encodeImage(w io.Writer, ext string, img image.Image) error {
	switch ext {
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case ".tif", ".tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case ".bmp":
		return bmp.Encode(w, img)
	default:
		return png.Encode(w, img)
	}
}

// trimWhite crops the uniform white border around the drawing
func trimWhite(img image.Image) image.Image {
	b := img.Bounds()
	white := whiteAt(img)

	blankRow := func(y int) bool {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !white(x, y) {
				return false
			}
		}
		return true
	}
	blankCol := func(x, y0, y1 int) bool {
		for y := y0; y < y1; y++ {
			if !white(x, y) {
				return false
			}
		}
		return true
	}

	top := b.Min.Y
	for top < b.Max.Y && blankRow(top) {
		top++
	}
	if top == b.Max.Y {
		return img
	}
	bottom := b.Max.Y
	for blankRow(bottom - 1) {
		bottom--
	}
	left := b.Min.X
	for blankCol(left, top, bottom) {
		left++
	}
	right := b.Max.X
	for blankCol(right-1, top, bottom) {
		right--
	}

	box := image.Rect(left, top, right, bottom)
	if box == b {
		return img
	}
	out := image.NewRGBA(image.Rect(0, 0, box.Dx(), box.Dy()))
	xdraw.Copy(out, image.Point{}, img, box, xdraw.Src, nil)
	return out
}

func whiteAt(img image.Image) func(x, y int) bool {
	if rgba, ok := img.(*image.RGBA); ok {
		return func(x, y int) bool {
			i := rgba.PixOffset(x, y)
			return rgba.Pix[i] == 0xff && rgba.Pix[i+1] == 0xff && rgba.Pix[i+2] == 0xff
		}
	}
	return func(x, y int) bool {
		r, g, b, _ := img.At(x, y).RGBA()
		return r == 0xffff && g == 0xffff && b == 0xffff
	}
}
