
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kcarka/pairpedia/internal/ioformats"
	"github.com/kcarka/pairpedia/internal/pipeline"
)

var harvestFlags struct {
	sources string
	outDir  string
}

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Fetch and parse both pages of every seed row into document trees",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := ioformats.ReadSourcesCSV(harvestFlags.sources)
		if err != nil {
			return err
		}
		client, err := newFetchClient(cfg.HTTP.WikiPoliteDelay)
		if err != nil {
			return err
		}
		h := pipeline.NewHarvester(client, cfg.Sources.WikipediaRestURL, log)
		if err := h.Run(cmd.Context(), rows, harvestFlags.outDir); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "harvested %d rows into %s\n", len(rows), harvestFlags.outDir)
		return nil
	},
}

func init() {
	harvestCmd.Flags().StringVar(&harvestFlags.sources, "sources", "data/sources.csv", "sources CSV (Category, Subcategory, Name, Wikipedia_URL, Grokipedia_URL)")
	harvestCmd.Flags().StringVar(&harvestFlags.outDir, "out-dir", "data/output", "output directory")
}
