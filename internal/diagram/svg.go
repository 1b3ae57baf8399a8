package diagram

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
)

// RasterizeSVG renders an SVG template to a PNG at dpi. SVG user units are
// taken as points (1/72 in), which is what the vector export writes, so a
// print-mode SVG comes out at the same true scale as a direct PNG export.
func RasterizeSVG(in, out string, dpi int) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return err
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	width := int(math.Round(float64(icon.ViewBox.W) / 72 * float64(dpi)))
	height := int(math.Round(float64(icon.ViewBox.H) / 72 * float64(dpi)))
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%s: svg has no usable viewBox", in)
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, xdraw.Src)

	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	scanner.SetClip(img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)

	if err := ensureDir(out); err != nil {
		return err
	}
	return writeFile(out, imageWriter(".png", img))
}
