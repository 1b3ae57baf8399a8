package cmd

import (
	"fmt"

	"github.com/alexiusacademia/oudmold/internal/diagram"
	"github.com/spf13/cobra"
)

var (
	rasterizeInput  string
	rasterizeOutput string
	rasterizeDPI    int
)

var rasterizeCmd = &cobra.Command{
	Use:   "rasterize",
	Short: "Convert an SVG template to PNG",
	Long: `Rasterize an SVG template, such as one written by "template -o x.svg",
to a PNG at the given resolution. SVG units are read as points, so a
print-mode SVG keeps its true scale.

Examples:
  oudmold rasterize -i s100.svg -o s100.png
  oudmold rasterize -i front.svg -o front.png --dpi 600`,
	RunE: runRasterize,
}

func init() {
	rootCmd.AddCommand(rasterizeCmd)

	rasterizeCmd.Flags().StringVarP(&rasterizeInput, "input", "i", "", "SVG file to rasterize [required]")
	rasterizeCmd.Flags().StringVarP(&rasterizeOutput, "output", "o", "", "PNG file to write [required]")
	rasterizeCmd.Flags().IntVar(&rasterizeDPI, "dpi", diagram.DefaultDPI, "Raster resolution (dots per inch)")

	rasterizeCmd.MarkFlagRequired("input")
	rasterizeCmd.MarkFlagRequired("output")
}

func runRasterize(cmd *cobra.Command, args []string) error {
	if err := diagram.RasterizeSVG(rasterizeInput, rasterizeOutput, rasterizeDPI); err != nil {
		return err
	}
	fmt.Printf("Template exported to: %s\n", rasterizeOutput)
	return nil
}
