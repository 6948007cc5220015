package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "temporalgraphd",
	Short: "Temporal-graph differential analysis engine",
	Long: `Temporalgraphd analyses temporal graphs through their static expansion:
windowed differentials, eternal twins, maximum degree and (exact or
heuristic) tree-width, including the delta-differential tree-width
aggregate over all window start times.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
