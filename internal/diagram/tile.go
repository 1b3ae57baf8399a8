package diagram

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"
)

// Paper is a printable sheet size in millimetres (portrait)
type Paper struct {
	Name          string
	Width, Height float64
}

// Supported paper sizes
var Papers = []Paper{
	{Name: "a4", Width: 210, Height: 297},
	{Name: "a3", Width: 297, Height: 420},
	{Name: "letter", Width: 215.9, Height: 279.4},
	{Name: "legal", Width: 215.9, Height: 355.6},
}

// LookupPaper finds a paper size by name, ignoring case
func LookupPaper(name string) (Paper, bool) {
	for _, p := range Papers {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Paper{}, false
}

// Pixels returns the sheet size in pixels at dpi
func (p Paper) Pixels(dpi int) (w, h int) {
	w = int(math.Round(p.Width / 25.4 * float64(dpi)))
	h = int(math.Round(p.Height / 25.4 * float64(dpi)))
	return w, h
}

// PageTiles splits bounds into page-sized rectangles, row by row from the
// top left. Tiles on the right and bottom edges are cut to bounds.
func PageTiles(bounds image.Rectangle, pageW, pageH int) []image.Rectangle {
	if pageW <= 0 || pageH <= 0 || bounds.Empty() {
		return nil
	}
	var tiles []image.Rectangle
	for y := bounds.Min.Y; y < bounds.Max.Y; y += pageH {
		for x := bounds.Min.X; x < bounds.Max.X; x += pageW {
			tiles = append(tiles, image.Rect(x, y, x+pageW, y+pageH).Intersect(bounds))
		}
	}
	return tiles
}

// pageLayout picks portrait or landscape, whichever needs fewer sheets
func pageLayout(bounds image.Rectangle, paper Paper, dpi int) (w, h int) {
	w, h = paper.Pixels(dpi)
	portrait := len(PageTiles(bounds, w, h))
	landscape := len(PageTiles(bounds, h, w))
	if landscape < portrait {
		return h, w
	}
	return w, h
}

// ExportPages renders the scene and writes it as a series of PNG sheets of
// the given paper at the scene's DPI, named base-p01.png, base-p02.png, …
// Each sheet holds one tile at its top left corner, so printing every sheet
// at 100% keeps the template at true scale.
func ExportPages(s *Scene, paper Paper, base string) ([]string, error) {
	img, err := Render(s)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	pageW, pageH := pageLayout(b, paper, s.DPI)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if err := ensureDir(base); err != nil {
		return nil, err
	}

	var files []string
	for i, tile := range PageTiles(b, pageW, pageH) {
		page := image.NewRGBA(image.Rect(0, 0, pageW, pageH))
		xdraw.Draw(page, page.Bounds(), image.NewUniform(color.White), image.Point{}, xdraw.Src)
		xdraw.Copy(page, image.Point{}, img, tile, xdraw.Src, nil)

		name := fmt.Sprintf("%s-p%02d.png", base, i+1)
		if err := writeFile(name, imageWriter(".png", page)); err != nil {
			return files, err
		}
		files = append(files, name)
	}
	return files, nil
}
