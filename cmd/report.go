package cmd

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/alexiusacademia/oudmold/internal/diagram"
	"github.com/alexiusacademia/oudmold/internal/mold"
)

// printTemplateReport prints the section inputs and the rib coordinates
func printTemplateReport(out io.Writer, s *diagram.Scene) {
	sec := s.Section

	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "                 OUD MOLD SECTION TEMPLATE")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	if sec.Name != "" {
		fmt.Fprintf(out, "  Section: %s\n", sec.Name)
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "SECTION GEOMETRY:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Face radius:\t%.1f mm\n", sec.FaceRadius)
	fmt.Fprintf(w, "  Back radius (bowl depth):\t%.1f mm\n", sec.BackRadius)
	fmt.Fprintf(w, "  Template width:\t%.1f mm\n", sec.WidthSection)
	fmt.Fprintf(w, "  Number of ribs:\t%d\n", sec.NumRibs)
	fmt.Fprintf(w, "  Divisions per quarter:\t%d\n", mold.NumDivisions(sec.NumRibs))
	fmt.Fprintf(w, "  Rib angle:\t%.2f°\n", mold.DeltaAngle(sec.NumRibs))
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprintln(out, "RIB POINTS:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  #\tAngle\tX (mm)\tY (mm)\tSpoke (mm)\n")
	fmt.Fprintf(w, "  ─\t─────\t──────\t──────\t──────────\n")
	divisions := mold.NumDivisions(sec.NumRibs)
	for i, p := range s.Points {
		angle := "center"
		if i < divisions {
			angle = fmt.Sprintf("%.1f°", mold.DeltaAngle(sec.NumRibs)*float64(i))
		}
		fmt.Fprintf(w, "  %d\t%s\t%.1f\t%.1f\t%.1f\n", i+1, angle, p.X, p.Y, math.Hypot(p.X, p.Y))
	}
	w.Flush()
	fmt.Fprint(out, diagram.DrawSpokeProfile(s))
	fmt.Fprintln(out)

	fmt.Fprintln(out, "OUTPUT:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Mode:\t%s\n", s.Mode)
	fmt.Fprintf(w, "  Resolution:\t%d dpi\n", s.DPI)
	if s.Mode == diagram.Print {
		pw, ph := diagram.RasterSize(sec.FaceRadius, sec.BackRadius, s.DPI)
		fmt.Fprintf(w, "  Sheet size:\t%.1f × %.1f mm\n", 2*sec.FaceRadius, sec.BackRadius)
		fmt.Fprintf(w, "  Raster size:\t%d × %d px\n", pw, ph)
	}
	w.Flush()
	fmt.Fprintln(out)
}

// warnSection prints validation findings; the template is still generated
func warnSection(out io.Writer, sec mold.Section) {
	if err := sec.Validate(); err != nil {
		label := sec.Name
		if label == "" {
			label = "section"
		}
		fmt.Fprintf(out, "Warning: %s: %v\n", label, err)
	}
}
