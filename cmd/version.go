package cmd

import (
	"fmt"

	"github.com/alexiusacademia/oudmold/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of oudmold",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("oudmold v%s\n", version.Version)
		fmt.Println("Oud Mold Template Generator")
		if version.GitCommit != "unknown" {
			fmt.Printf("Commit %s, built %s\n", version.GitCommit, version.BuildTime)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
