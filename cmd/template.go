package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/oudmold/internal/diagram"
	"github.com/alexiusacademia/oudmold/internal/mold"
	"github.com/spf13/cobra"
)

var (
	templateFace    float64
	templateBack    float64
	templateRibs    int
	templateWidth   float64
	templateDPI     int
	templatePrint   bool
	templateOutput  string
	templatePage    string
	templateDiagram bool
	templateName    string
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Generate the mold template of one section",
	Long: `Generate the mold section template for one position along the oud body.

The section is the half ellipse spanned by the face radius (half the width of
the soundboard at that position) and the back radius (the bowl depth). Rib
joints are spaced at equal angles and joined by straight chords, mirrored
about the vertical axis.

Without --output the rib coordinates and an ASCII preview are printed.
With --print the exported figure is sized to 2·face × back millimetres at
--dpi, so it can be printed at 100% and cut out.

Examples:
  oudmold template --face 150 --back 160 --ribs 15
  oudmold template --face 118 --back 133 -n 16 --print -o front.png
  oudmold template --face 200 --back 210 --print -o s300.png --page a4
  oudmold template --face 150 --back 160 -o s100.svg --print`,
	RunE: runTemplate,
}

func init() {
	rootCmd.AddCommand(templateCmd)

	// Section geometry
	templateCmd.Flags().Float64Var(&templateFace, "face", 0, "Face radius, half the soundboard width (mm) [required]")
	templateCmd.Flags().Float64Var(&templateBack, "back", 0, "Back radius, the bowl depth (mm) [required]")
	templateCmd.Flags().IntVarP(&templateRibs, "ribs", "n", 0, "Number of ribs [required]")
	templateCmd.Flags().Float64Var(&templateWidth, "width", mold.DefaultWidthSection, "Template width band (mm)")
	templateCmd.Flags().StringVar(&templateName, "name", "", "Section name shown in the report")

	templateCmd.MarkFlagRequired("face")
	templateCmd.MarkFlagRequired("back")
	templateCmd.MarkFlagRequired("ribs")

	// Output options
	templateCmd.Flags().BoolVar(&templatePrint, "print", false, "Print mode: true scale, no guides, labels or axes")
	templateCmd.Flags().IntVar(&templateDPI, "dpi", diagram.DefaultDPI, "Raster resolution (dots per inch)")
	templateCmd.Flags().StringVarP(&templateOutput, "output", "o", "", "Export template to file (png, jpg, tif, bmp, svg, pdf, eps)")
	templateCmd.Flags().StringVar(&templatePage, "page", "", "Also split the template into printable sheets (a4, a3, letter, legal)")
	templateCmd.Flags().BoolVar(&templateDiagram, "diagram", false, "Show the ASCII preview when exporting")
}

func runTemplate(cmd *cobra.Command, args []string) error {
	sec := mold.Section{
		Name:         templateName,
		FaceRadius:   templateFace,
		BackRadius:   templateBack,
		NumRibs:      templateRibs,
		WidthSection: templateWidth,
	}
	warnSection(os.Stdout, sec)

	mode := diagram.Review
	if templatePrint {
		mode = diagram.Print
	}
	s := diagram.BuildScene(sec, diagram.Options{Mode: mode, DPI: templateDPI})

	printTemplateReport(os.Stdout, s)

	if templateOutput == "" || templateDiagram {
		fmt.Print(diagram.DrawASCIITemplate(s, 60))
	}

	out := templateOutput
	if out != "" {
		out = diagram.OutputName(out)
		if err := diagram.Export(s, out); err != nil {
			return err
		}
		fmt.Printf("\nTemplate exported to: %s\n", out)
	}

	if templatePage != "" {
		return exportPages(s, templatePage, pagesBase(out, sec))
	}
	return nil
}

// exportPages splits a scene into sheets of the named paper size
func exportPages(s *diagram.Scene, page, base string) error {
	paper, ok := diagram.LookupPaper(page)
	if !ok {
		return fmt.Errorf("unknown page size %q (use a4, a3, letter or legal)", page)
	}
	if s.Mode != diagram.Print {
		fmt.Println("Warning: pages are not at true scale outside print mode (use --print)")
	}

	files, err := diagram.ExportPages(s, paper, base)
	if err != nil {
		return fmt.Errorf("exporting pages: %w", err)
	}
	fmt.Printf("Pages exported (%s, %d dpi): %d\n", paper.Name, s.DPI, len(files))
	for _, f := range files {
		fmt.Printf("  %s\n", f)
	}
	return nil
}

func pagesBase(output string, sec mold.Section) string {
	if output != "" {
		return output
	}
	if sec.Name != "" {
		return sec.Name
	}
	return "template"
}
