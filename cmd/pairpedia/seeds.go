
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kcarka/pairpedia/internal/index"
)

var seedsFlags struct {
	index    string
	outDir   string
	maxPairs int
}

var seedsCmd = &cobra.Command{
	Use:   "seeds",
	Short: "Export harvest seed files from a pair index",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := index.ExportSeeds(seedsFlags.index, seedsFlags.outDir, seedsFlags.maxPairs)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d pairs to %s\n", n, seedsFlags.outDir)
		return nil
	},
}

func init() {
	seedsCmd.Flags().StringVar(&seedsFlags.index, "index", "data/indices/pairs_index.jsonl", "input index file")
	seedsCmd.Flags().StringVar(&seedsFlags.outDir, "out-dir", "data/seeds", "output directory")
	seedsCmd.Flags().IntVar(&seedsFlags.maxPairs, "max-pairs", 0, "cap exported pairs (0 = no limit)")
}
