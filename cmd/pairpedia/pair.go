
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kcarka/pairpedia/internal/index"
	"github.com/kcarka/pairpedia/internal/plan"
)

var pairFlags struct {
	category  string
	limit     int
	maxDepth  int
	forceType string
	out       string
	manifest  string
	planFile  string
	outDir    string
}

var pairCmd = &cobra.Command{
	Use:   "pair",
	Short: "Build a pair index: discover titles and gate them against Grokipedia",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newMatcher()
		if err != nil {
			return err
		}
		builder := index.NewBuilder(newCrawler(), m, cfg.Sources.WikipediaBaseURL, cfg.Cache.Dir, log)

		if pairFlags.planFile != "" {
			return runPlans(cmd, builder)
		}

		if err := os.MkdirAll(filepath.Dir(pairFlags.out), 0o755); err != nil {
			return err
		}
		manifest, err := builder.Build(cmd.Context(), index.BuildParams{
			Category:  pairFlags.category,
			Limit:     pairFlags.limit,
			MaxDepth:  pairFlags.maxDepth,
			ForceType: pairFlags.forceType,
			OutIndex:  pairFlags.out,
			Manifest:  pairFlags.manifest,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d pairs to %s (match rate %.2f)\n",
			manifest.PairsMatched, pairFlags.out, manifest.MatchRate)
		return nil
	},
}

// runPlans executes every entry of the plan file into per-plan index and
// manifest files under --out-dir.
func runPlans(cmd *cobra.Command, builder *index.Builder) error {
	plans, err := plan.Load(pairFlags.planFile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(pairFlags.outDir, 0o755); err != nil {
		return err
	}
	for _, p := range plans {
		log.Info("running plan", zap.String("plan", p.Name), zap.String("category", p.Category))
		manifest, err := builder.Build(cmd.Context(), index.BuildParams{
			Category:  p.Category,
			Limit:     p.Limit,
			MaxDepth:  p.MaxDepth,
			ForceType: p.Type,
			OutIndex:  filepath.Join(pairFlags.outDir, "index_"+p.Name+".jsonl"),
			Manifest:  filepath.Join(pairFlags.outDir, "manifest_"+p.Name+".json"),
		})
		if err != nil {
			return fmt.Errorf("plan %q: %w", p.Name, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "plan %s: %d pairs (match rate %.2f)\n",
			p.Name, manifest.PairsMatched, manifest.MatchRate)
	}
	return nil
}

func init() {
	pairCmd.Flags().StringVar(&pairFlags.category, "category", "Category:Politics of the United States", "root category")
	pairCmd.Flags().IntVar(&pairFlags.limit, "limit", 200, "max pages to discover")
	pairCmd.Flags().IntVar(&pairFlags.maxDepth, "max-depth", 2, "max subcategory depth")
	pairCmd.Flags().StringVar(&pairFlags.forceType, "type", "", "force every record to this type label")
	pairCmd.Flags().StringVar(&pairFlags.out, "out", "data/indices/pairs_index.jsonl", "output index file")
	pairCmd.Flags().StringVar(&pairFlags.manifest, "manifest", "data/indices/manifest.json", "output manifest file")
	pairCmd.Flags().StringVar(&pairFlags.planFile, "plan", "", "YAML plan file; runs every plan instead of --category")
	pairCmd.Flags().StringVar(&pairFlags.outDir, "out-dir", "data/indices", "output directory for plan runs")
}
