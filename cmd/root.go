package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/oudmold/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "oudmold",
	Short: "Oud Mold Template Generator",
	Long: `oudmold - Oud Mold Template Generator

A CLI tool that draws the cross-section templates used to build
the mold of an oud bowl.

For each section of the body you give the face half-width and the
bowl depth; the tool computes where the ribs meet at that section
and draws the outline:
  - Review sheets with guide arcs and rib coordinates
  - Print sheets at true millimetre scale for tracing
  - Batch generation of every section of a mold
  - Splitting oversized templates over A4/A3/Letter pages

Ribs are spaced evenly in angle on an ellipse through the face edge
and the bowl depth, which is easy to reproduce on paper as well.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   oudmold v%-47s║\n", version.Version)
		fmt.Println("  ║   Oud Mold Template Generator                             ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Draws the section templates of an oud bowl mold.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Rib intersection points for any face width and bowl depth")
		fmt.Println("    • Review sheets with guide arcs and coordinates")
		fmt.Println("    • True-scale print sheets (PNG, JPEG, TIFF, BMP, SVG, PDF, EPS)")
		fmt.Println("    • Batch generation from JSON or YAML job files")
		fmt.Println()
		fmt.Println("  Use 'oudmold --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
