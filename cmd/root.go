package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "golsh",
	Short: "In-memory approximate nearest neighbor search with LSH",
	Long: `golsh builds locality-sensitive hash indexes over high-dimensional
vectors and answers k-nearest-neighbor queries from them.`,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
