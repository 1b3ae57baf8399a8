package diagram

import (
	"math"
	"strings"
	"testing"

	"github.com/alexiusacademia/oudmold/internal/mold"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func testSection(face, back float64, ribs int) mold.Section {
	return *mold.NewSection(face, back, ribs)
}

func TestBuildSceneReview(t *testing.T) {
	s := BuildScene(testSection(150, 160, 15), Options{Mode: Review})

	if s.DPI != DefaultDPI {
		t.Errorf("got dpi %d, expected %d", s.DPI, DefaultDPI)
	}
	if len(s.Points) != 9 {
		t.Fatalf("got %d rib points, expected 9", len(s.Points))
	}
	if len(s.Guides) != 3 {
		t.Errorf("got %d guide arcs, expected 3", len(s.Guides))
	}
	if len(s.Spokes) != 2*8 {
		t.Errorf("got %d spokes, expected 16", len(s.Spokes))
	}
	if len(s.Labels) != 8 {
		t.Fatalf("got %d labels, expected 8", len(s.Labels))
	}
	if got := s.Labels[0].Text; got != "(150.0, 0.0)" {
		t.Errorf("got first label %q", got)
	}
	diff(t, mold.Point{X: 150, Y: 0.03 * 160}, s.Labels[0].At, cmpopts.EquateApprox(0, 1e-9))

	if !s.AxisLabels || !s.Trim {
		t.Errorf("got axis labels %v and trim %v, expected both", s.AxisLabels, s.Trim)
	}
	if s.Width != ReviewWidth || s.Height != ReviewHeight {
		t.Errorf("got figure %v×%v", s.Width, s.Height)
	}
	if !s.EqualAspect {
		t.Error("review scene should keep an equal aspect")
	}
	if s.XMin > -160 || s.XMax < 160 || s.YMin != 0 || s.YMax < 160 {
		t.Errorf("limits [%v, %v]×[%v, %v] do not hold the drawing", s.XMin, s.XMax, s.YMin, s.YMax)
	}
}

func TestBuildScenePrint(t *testing.T) {
	review := BuildScene(testSection(118, 133, 16), Options{Mode: Review})
	s := BuildScene(testSection(118, 133, 16), Options{Mode: Print, DPI: 600})

	if len(s.Guides) != 0 || len(s.Labels) != 0 {
		t.Errorf("got %d guides and %d labels, expected none", len(s.Guides), len(s.Labels))
	}
	if len(s.WidthBand.Points) == 0 {
		t.Error("width band missing in print mode")
	}
	if len(s.Spokes) != 2*(len(s.Points)-1) {
		t.Errorf("got %d spokes", len(s.Spokes))
	}
	if s.AxisLabels || s.Trim {
		t.Errorf("got axis labels %v and trim %v, expected neither", s.AxisLabels, s.Trim)
	}
	diff(t, []float64{-118, 118, 0, 133}, []float64{s.XMin, s.XMax, s.YMin, s.YMax})

	approx := cmpopts.EquateApprox(0, 1e-9)
	diff(t, 236/25.4*72, float64(s.Width), approx)
	diff(t, 133/25.4*72, float64(s.Height), approx)

	if s.Ribs.Width*4 != review.Ribs.Width || s.Ribs.MarkerRadius*4 != review.Ribs.MarkerRadius {
		t.Errorf("got print rib style %v/%v, review %v/%v", s.Ribs.Width, s.Ribs.MarkerRadius, review.Ribs.Width, review.Ribs.MarkerRadius)
	}
}

func TestSceneSymmetric(t *testing.T) {
	s := BuildScene(testSection(140, 120, 12), Options{Mode: Review})

	for i := 0; i < len(s.Spokes); i += 2 {
		a, b := s.Spokes[i].Points, s.Spokes[i+1].Points
		if a[0] != (mold.Point{}) || b[0] != (mold.Point{}) {
			t.Fatalf("spoke %d does not start at the origin", i)
		}
		if a[1].X != -b[1].X || a[1].Y != b[1].Y {
			t.Errorf("spokes to %v and %v are not mirrored", a[1], b[1])
		}
	}

	if got, want := len(s.Mirror.Points), len(s.Ribs.Points)-1; got != want {
		t.Fatalf("got %d mirror points, expected %d", got, want)
	}
	for i, p := range s.Mirror.Points {
		q := s.Ribs.Points[len(s.Ribs.Points)-2-i]
		if p.X != -q.X || p.Y != q.Y {
			t.Errorf("mirror point %d %v does not reflect %v", i, p, q)
		}
	}
}

func TestScenePure(t *testing.T) {
	a := BuildScene(testSection(150, 160, 16), Options{Mode: Print})
	b := BuildScene(testSection(150, 160, 16), Options{Mode: Print})
	diff(t, a, b)
}

func TestEqualAspect(t *testing.T) {
	xmin, xmax, ymin, ymax := equalAspect(-10, 10, 0, 5, 4*vg.Inch, 2*vg.Inch)
	diff(t, []float64{-10, 10, 0, 10}, []float64{xmin, xmax, ymin, ymax})

	xmin, xmax, ymin, ymax = equalAspect(-10, 10, 0, 20, 4*vg.Inch, 2*vg.Inch)
	diff(t, []float64{-40, 40, 0, 20}, []float64{xmin, xmax, ymin, ymax})
}

func TestRasterSize(t *testing.T) {
	w, h := RasterSize(118, 133, 300)
	if w != 2787 || h != 1571 {
		t.Errorf("got %d×%d, expected 2787×1571", w, h)
	}
}

func TestMMTicks(t *testing.T) {
	ticks := mmTicks{Major: MajorTick, Minor: MinorTick}.Ticks(-22, 21)

	var values []float64
	var labels []string
	for _, tk := range ticks {
		values = append(values, tk.Value)
		if !tk.IsMinor() {
			labels = append(labels, tk.Label)
		}
	}
	diff(t, []float64{-20, -15, -10, -5, 0, 5, 10, 15, 20}, values)
	diff(t, []string{"-20", "0", "20"}, labels)

	if got := (mmTicks{Major: 20, Minor: 5}).Ticks(math.Inf(-1), 0); got != nil {
		t.Errorf("got %v for an infinite range", got)
	}
	var _ plot.Ticker = mmTicks{}
}

func TestDrawASCIITemplate(t *testing.T) {
	s := BuildScene(testSection(150, 160, 15), Options{Mode: Print})
	out := DrawASCIITemplate(s, 60)

	for _, want := range []string{"TEMPLATE PREVIEW (print mode)", "●", "#", "Template width band (35.0 mm)"} {
		if !strings.Contains(out, want) {
			t.Errorf("preview is missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "midline guides") {
		t.Error("print preview lists guide arcs")
	}

	review := DrawASCIITemplate(BuildScene(testSection(150, 160, 15), Options{Mode: Review}), 60)
	if !strings.Contains(review, "midline guides") {
		t.Error("review preview is missing the guide legend")
	}
}

func TestDrawSpokeProfile(t *testing.T) {
	out := DrawSpokeProfile(BuildScene(testSection(150, 160, 15), Options{Mode: Print}))
	if !strings.Contains(out, "Spoke length per rib joint") {
		t.Errorf("profile is missing its caption:\n%s", out)
	}
	if got := DrawSpokeProfile(BuildScene(testSection(150, 160, 0), Options{Mode: Print})); got != "" {
		t.Errorf("got %q for a section without ribs", got)
	}
}
