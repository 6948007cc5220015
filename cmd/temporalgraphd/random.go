package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	temporalgraph "github.com/go-temporalgraph/go-temporalgraph"
)

var (
	randomVertices  int
	randomSnapshots int
	randomEdgeProb  float64
	randomSeed      int64
)

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Generate a random temporal graph as interchange JSON on stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		var gen temporalgraph.Generator
		if cmd.Flags().Changed("seed") {
			gen = temporalgraph.NewSeededGenerator(randomSeed)
		}

		graph, err := gen.Generate(randomVertices, randomSnapshots, randomEdgeProb)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(graph.Document())
	},
}

func init() {
	randomCmd.Flags().IntVarP(&randomVertices, "vertices", "n", 10, "number of vertices")
	randomCmd.Flags().IntVarP(&randomSnapshots, "snapshots", "t", 5, "number of snapshots (lifetime)")
	randomCmd.Flags().Float64VarP(&randomEdgeProb, "probability", "p", 0.2, "per-snapshot edge probability")
	randomCmd.Flags().Int64Var(&randomSeed, "seed", 0, "seed for reproducible output")
	rootCmd.AddCommand(randomCmd)
}
