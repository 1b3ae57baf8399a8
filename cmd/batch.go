package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/oudmold/internal/diagram"
	"github.com/alexiusacademia/oudmold/internal/mold"
	"github.com/spf13/cobra"
)

var (
	batchFile   string
	batchPrint  bool
	batchDir    string
	batchDPI    int
	batchFormat string
	batchPage   string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate templates for a series of sections",
	Long: `Generate one template per section listed in a job file.

A job gives the rib count and parallel lists of positions along the body
with their face and back radii, plus optional named extra sections such as
the front and back auxiliary molds. Without --file the built-in example job
is used.

Job file (YAML or JSON):
  ribs: 15
  positions: [100, 200, 300]
  face: [150, 180, 200]
  back: [160, 200, 210]
  extra:
    - {name: front, face: 118, back: 133}
    - {name: back, face: 95, back: 110}

Examples:
  oudmold batch
  oudmold batch -f body.yaml --print --dir templates
  oudmold batch -f body.json --print --format pdf
  oudmold batch --print --page a4 --dir sheets`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchFile, "file", "f", "", "Path to job file (.yaml, .yml or .json)")

	// Overrides of the job's output options
	batchCmd.Flags().BoolVar(&batchPrint, "print", false, "Print mode: true scale, no guides, labels or axes")
	batchCmd.Flags().StringVar(&batchDir, "dir", "", "Output directory")
	batchCmd.Flags().IntVar(&batchDPI, "dpi", mold.DefaultDPI, "Raster resolution (dots per inch)")
	batchCmd.Flags().StringVar(&batchFormat, "format", mold.DefaultFormat, "Output format (png, jpg, tif, bmp, svg, pdf, eps)")
	batchCmd.Flags().StringVar(&batchPage, "page", "", "Also split each template into printable sheets (a4, a3, letter, legal)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	job := mold.ExampleJob()
	if batchFile != "" {
		var err error
		job, err = mold.LoadJob(batchFile)
		if err != nil {
			return err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("print") {
		job.Print = batchPrint
	}
	if flags.Changed("dir") {
		job.OutputDir = batchDir
	}
	if flags.Changed("dpi") {
		job.DPI = batchDPI
	}
	if flags.Changed("format") {
		job.Format = batchFormat
	}
	if flags.Changed("page") {
		job.Page = batchPage
	}

	sections, err := job.Sections()
	if err != nil {
		return err
	}

	mode := diagram.Review
	if job.Print {
		mode = diagram.Print
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("                 OUD MOLD BATCH")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Sections:\t%d\n", len(sections))
	fmt.Fprintf(w, "  Ribs:\t%d\n", job.Ribs)
	fmt.Fprintf(w, "  Mode:\t%s\n", mode)
	fmt.Fprintf(w, "  Resolution:\t%d dpi\n", job.DPI)
	fmt.Fprintf(w, "  Format:\t%s\n", job.Format)
	w.Flush()
	fmt.Println()

	// One section at a time; nothing rendered is kept between sections
	var summary []string
	for _, sec := range sections {
		warnSection(os.Stdout, sec)

		s := diagram.BuildScene(sec, diagram.Options{Mode: mode, DPI: job.DPI})
		out := diagram.OutputName(job.Filename(sec))
		if err := diagram.Export(s, out); err != nil {
			return fmt.Errorf("section %s: %w", sec.Name, err)
		}
		fmt.Printf("Template exported to: %s\n", out)

		if job.Page != "" {
			if err := exportPages(s, job.Page, out); err != nil {
				return fmt.Errorf("section %s: %w", sec.Name, err)
			}
		}

		summary = append(summary, fmt.Sprintf("%-8s face %6.1f  back %6.1f mm",
			sec.Name, sec.FaceRadius, sec.BackRadius))
	}

	fmt.Println()
	fmt.Print(diagram.DrawSummaryBox("GENERATED TEMPLATES", summary))
	return nil
}
