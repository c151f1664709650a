
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kcarka/pairpedia/internal/index"
	"github.com/kcarka/pairpedia/internal/ioformats"
)

var mergeFlags struct {
	inputs   []string
	quota    int
	out      string
	manifest string
}

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Concatenate pair indices with URL dedup and optional per-type quota",
	Long: `Merge any number of index files, dropping duplicate URL pairs in
first-seen order. An input given as "type=path" relabels every record from
that file before merging; --quota N keeps at most N records per type.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(mergeFlags.inputs) == 0 {
			return fmt.Errorf("at least one --in is required")
		}
		inputs := make([]index.MergeInput, 0, len(mergeFlags.inputs))
		for _, raw := range mergeFlags.inputs {
			in := index.MergeInput{Path: raw}
			if ty, path, ok := strings.Cut(raw, "="); ok {
				in = index.MergeInput{Path: path, ForceType: ty}
			}
			inputs = append(inputs, in)
		}

		merged, manifest, err := index.Merge(inputs, mergeFlags.quota, log)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(mergeFlags.out), 0o755); err != nil {
			return err
		}
		if err := ioformats.WritePairIndex(mergeFlags.out, merged); err != nil {
			return err
		}
		if mergeFlags.manifest != "" {
			if err := ioformats.WriteJSON(mergeFlags.manifest, manifest); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d records to %s\n", manifest.TotalSelected, mergeFlags.out)
		return nil
	},
}

func init() {
	mergeCmd.Flags().StringArrayVar(&mergeFlags.inputs, "in", nil, `input index, optionally "type=path" to force a label`)
	mergeCmd.Flags().IntVar(&mergeFlags.quota, "quota", 0, "max records per type (0 = keep all)")
	mergeCmd.Flags().StringVar(&mergeFlags.out, "out", "data/indices/pairs_index_merged.jsonl", "output index file")
	mergeCmd.Flags().StringVar(&mergeFlags.manifest, "manifest", "", "optional output manifest file")
}
