
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kcarka/pairpedia/internal/ioformats"
)

var discoverFlags struct {
	category string
	limit    int
	maxDepth int
	out      string
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Walk a category graph and list candidate article titles",
	RunE: func(cmd *cobra.Command, args []string) error {
		crawler := newCrawler()
		titles, err := crawler.Discover(cmd.Context(), discoverFlags.category, discoverFlags.limit, discoverFlags.maxDepth)
		if err != nil {
			return err
		}
		log.Info("discovery finished",
			zap.String("category", discoverFlags.category),
			zap.Int("titles", len(titles)))

		if discoverFlags.out == "" {
			for _, title := range titles {
				fmt.Fprintln(cmd.OutOrStdout(), title)
			}
			return nil
		}
		return ioformats.WriteLines(discoverFlags.out, titles)
	},
}

func init() {
	discoverCmd.Flags().StringVar(&discoverFlags.category, "category", "Category:Politics of the United States", "root category")
	discoverCmd.Flags().IntVar(&discoverFlags.limit, "limit", 200, "max pages to discover")
	discoverCmd.Flags().IntVar(&discoverFlags.maxDepth, "max-depth", 2, "max subcategory depth")
	discoverCmd.Flags().StringVar(&discoverFlags.out, "out", "", "output file, one title per line (default stdout)")
}
