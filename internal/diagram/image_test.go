package diagram

import (
	"bytes"
	"image"
	"image/color"
	_ "image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

func decodeConfig(t *testing.T, path string) image.Config {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decoding %s: %v", path, err)
	}
	return cfg
}

func within(got, want, tol int) bool {
	d := got - want
	return d >= -tol && d <= tol
}

func TestExportPrintScale(t *testing.T) {
	tests := []struct {
		face, back float64
		dpi        int
	}{
		{118, 133, 300},
		{150, 160, 100},
		{95, 110, 72},
	}
	for _, tt := range tests {
		s := BuildScene(testSection(tt.face, tt.back, 16), Options{Mode: Print, DPI: tt.dpi})
		path := filepath.Join(t.TempDir(), "template.png")
		if err := Export(s, path); err != nil {
			t.Fatalf("Export: %v", err)
		}

		cfg := decodeConfig(t, path)
		w, h := RasterSize(tt.face, tt.back, tt.dpi)
		if !within(cfg.Width, w, 1) || !within(cfg.Height, h, 1) {
			t.Errorf("f=%v b=%v dpi=%d: got %d×%d px, expected %d×%d", tt.face, tt.back, tt.dpi, cfg.Width, cfg.Height, w, h)
		}
	}
}

func TestPrintDataAreaFillsCanvas(t *testing.T) {
	s := BuildScene(testSection(118, 133, 16), Options{Mode: Print, DPI: 300})
	p, err := s.Plot()
	if err != nil {
		t.Fatalf("Plot: %v", err)
	}

	c := draw.New(vgimg.NewWith(vgimg.UseWH(s.Width, s.Height), vgimg.UseDPI(s.DPI)))
	da := p.DataCanvas(c)
	approx := cmpopts.EquateApprox(0, 1e-6)
	diff(t, rectFloats(c.Rectangle), rectFloats(da.Rectangle), approx)

	// One mm of data is one mm of paper on both axes
	diff(t, float64(vg.Millimeter), float64(da.Size().X)/(p.X.Max-p.X.Min), approx)
	diff(t, float64(vg.Millimeter), float64(da.Size().Y)/(p.Y.Max-p.Y.Min), approx)
}

func rectFloats(r vg.Rectangle) []float64 {
	return []float64{float64(r.Min.X), float64(r.Min.Y), float64(r.Max.X), float64(r.Max.Y)}
}

func TestReviewEqualAspect(t *testing.T) {
	for _, sec := range []struct{ face, back float64 }{{150, 160}, {200, 100}, {60, 180}} {
		s := BuildScene(testSection(sec.face, sec.back, 15), Options{Mode: Review, DPI: 100})
		p, err := s.Plot()
		if err != nil {
			t.Fatalf("Plot: %v", err)
		}

		c := draw.New(vgimg.NewWith(vgimg.UseWH(s.Width, s.Height), vgimg.UseDPI(s.DPI)))
		da := p.DataCanvas(c)
		xs := float64(da.Size().X) / (p.X.Max - p.X.Min)
		ys := float64(da.Size().Y) / (p.Y.Max - p.Y.Min)
		if ratio := xs / ys; ratio < 0.999 || ratio > 1.001 {
			t.Errorf("f=%v b=%v: got %.4f pt/mm on x and %.4f on y", sec.face, sec.back, xs, ys)
		}
		if p.X.Min > -sec.face || p.X.Max < sec.face || p.Y.Min > 0 || p.Y.Max < sec.back {
			t.Errorf("f=%v b=%v: limits [%v, %v]×[%v, %v] do not hold the drawing",
				sec.face, sec.back, p.X.Min, p.X.Max, p.Y.Min, p.Y.Max)
		}
	}
}

func TestExportPrintNotTrimmed(t *testing.T) {
	s := BuildScene(testSection(100, 60, 8), Options{Mode: Print, DPI: 50})
	img, err := Render(s)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	w, h := RasterSize(100, 60, 50)
	if b := img.Bounds(); !within(b.Dx(), w, 1) || !within(b.Dy(), h, 1) {
		t.Errorf("got %v, expected %d×%d", b, w, h)
	}
}

func TestExportReviewTrimmed(t *testing.T) {
	s := BuildScene(testSection(150, 160, 15), Options{Mode: Review, DPI: 20})
	path := filepath.Join(t.TempDir(), "review.png")
	if err := Export(s, path); err != nil {
		t.Fatalf("Export: %v", err)
	}
	cfg := decodeConfig(t, path)
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > 16*20 || cfg.Height > 12*20 {
		t.Errorf("got %d×%d px, expected at most 320×240", cfg.Width, cfg.Height)
	}
}

func TestExportFormats(t *testing.T) {
	s := BuildScene(testSection(80, 90, 10), Options{Mode: Print, DPI: 40})
	dir := t.TempDir()

	// Magic bytes, or a marker found near the start for the text formats
	prefixes := map[string][]byte{
		"t.pdf": []byte("%PDF"),
		"t.jpg": {0xff, 0xd8},
		"t.bmp": []byte("BM"),
		"t.tif": []byte("II*\x00"),
	}
	markers := map[string][]byte{
		"t.svg": []byte("<svg"),
		"t.eps": []byte("PS-Adobe"),
	}
	for name, marker := range markers {
		path := filepath.Join(dir, name)
		if err := Export(s, path); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Contains(data[:min(len(data), 512)], marker) {
			t.Errorf("%s does not contain %q", name, marker)
		}
	}
	for name, prefix := range prefixes {
		path := filepath.Join(dir, "sub", name)
		if err := Export(s, path); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(data, prefix) {
			t.Errorf("%s starts with %q, expected %q", name, data[:min(len(data), 8)], prefix)
		}
	}
}

func TestOutputName(t *testing.T) {
	tests := map[string]string{
		"front.png":      "front.png",
		"front.SVG":      "front.SVG",
		"out/front.jpeg": "out/front.jpeg",
		"front.out":      "front.out.png",
		"front":          "front.png",
	}
	for in, want := range tests {
		if got := OutputName(in); got != want {
			t.Errorf("OutputName(%q) = %q, expected %q", in, got, want)
		}
	}
}

func TestExportUnknownExtension(t *testing.T) {
	s := BuildScene(testSection(80, 90, 10), Options{Mode: Print, DPI: 40})
	path := filepath.Join(t.TempDir(), "template.out")
	if err := Export(s, path); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if _, err := os.Stat(path + ".png"); err != nil {
		t.Errorf("expected %s.png: %v", path, err)
	}
}

func TestExportUnwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	s := BuildScene(testSection(80, 90, 10), Options{Mode: Print, DPI: 40})
	if err := Export(s, filepath.Join(blocker, "template.png")); err == nil {
		t.Error("expected an error exporting below a regular file")
	}
}

func TestExportDegenerate(t *testing.T) {
	// No ribs: the center rib corner is undefined and left out
	s := BuildScene(testSection(80, 90, 0), Options{Mode: Review, DPI: 10})
	if err := Export(s, filepath.Join(t.TempDir(), "t.png")); err != nil {
		t.Errorf("Export: %v", err)
	}
}

func TestTrimWhite(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	for y := 5; y < 12; y++ {
		for x := 10; x < 25; x++ {
			img.Set(x, y, color.Black)
		}
	}

	got := trimWhite(img)
	if b := got.Bounds(); b.Dx() != 15 || b.Dy() != 7 {
		t.Errorf("got bounds %v, expected 15×7", b)
	}

	blank := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range blank.Pix {
		blank.Pix[i] = 0xff
	}
	if got := trimWhite(blank); got != image.Image(blank) {
		t.Error("blank image should be returned unchanged")
	}
}
