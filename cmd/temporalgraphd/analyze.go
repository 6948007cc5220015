package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	temporalgraph "github.com/go-temporalgraph/go-temporalgraph"
)

var (
	analyzeT0    int
	analyzeDelta int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze a temporal graph read as interchange JSON from a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := io.Reader(os.Stdin)
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			input = f
		}

		data, err := io.ReadAll(input)
		if err != nil {
			return fmt.Errorf("read graph: %w", err)
		}
		var graph temporalgraph.Graph
		if err := json.Unmarshal(data, &graph); err != nil {
			return err
		}

		analysis, err := temporalgraph.Analyze(cmd.Context(), graph, analyzeT0, analyzeDelta)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "vertices:              %d\n", analysis.NumVertices)
		fmt.Fprintf(out, "lifetime:              %d\n", analysis.Lifetime)
		fmt.Fprintf(out, "union graph edges:     %d\n", analysis.UnionEdgeCount)
		fmt.Fprintf(out, "eternal twins:         %d\n", len(analysis.Twins))
		for _, twin := range analysis.Twins {
			fmt.Fprintf(out, "  {%d, %d}\n", twin.U, twin.V)
		}
		fmt.Fprintf(out, "window:                t0=%d delta=%d\n", analysis.Window.T0, analysis.Window.Delta)
		fmt.Fprintf(out, "max degree:            %d\n", analysis.MaxDegree)
		fmt.Fprintf(out, "tree-width:            %d (%s)\n", analysis.WindowReport.Width, analysis.WindowReport.Mode)
		fmt.Fprintf(out, "differential tree-width (delta=%d): %d\n", analysis.Differential.Delta, analysis.Differential.Minimum)
		for _, ww := range analysis.Differential.PerStart {
			fmt.Fprintf(out, "  t0=%-3d tw=%d (%s)\n", ww.T0, ww.Width, ww.Mode)
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().IntVar(&analyzeT0, "t0", 0, "window start time")
	analyzeCmd.Flags().IntVar(&analyzeDelta, "delta", 2, "window width")
	rootCmd.AddCommand(analyzeCmd)
}
