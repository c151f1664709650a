
package index

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/kcarka/pairpedia/internal/classifier"
	"github.com/kcarka/pairpedia/internal/ioformats"
	"github.com/kcarka/pairpedia/internal/models"
)

// MergeInput is one index file to merge. A non-empty ForceType relabels
// every record from that file, the way per-type discovery runs are folded
// into one balanced index.
type MergeInput struct {
	Path      string
	ForceType string
}

type TypeStats struct {
	Available int `json:"available"`
	Selected  int `json:"selected"`
}

type MergeManifest struct {
	QuotaPerType  int                  `json:"quota_per_type"`
	Sources       []string             `json:"sources"`
	Stats         map[string]TypeStats `json:"stats,omitempty"`
	TotalSelected int                  `json:"total_selected"`
}

// Merge concatenates indices, dropping duplicate (wikipedia_url,
// grokipedia_url) pairs in first-seen order. With quota > 0 the result is
// rebalanced to at most quota records per type, deterministic first-N;
// quota 0 keeps everything. Missing input files are skipped with a warning.
func Merge(inputs []MergeInput, quota int, log *zap.Logger) ([]models.PairRecord, MergeManifest, error) {
	type urlPair struct{ wiki, grok string }
	seen := map[urlPair]struct{}{}
	var merged []models.PairRecord
	sources := make([]string, 0, len(inputs))

	for _, in := range inputs {
		sources = append(sources, in.Path)
		if _, err := os.Stat(in.Path); err != nil {
			log.Warn("missing index input, skipping", zap.String("path", in.Path))
			continue
		}
		records, err := ioformats.ReadPairIndex(in.Path)
		if err != nil {
			return nil, MergeManifest{}, fmt.Errorf("read %s: %w", in.Path, err)
		}
		for _, rec := range records {
			if in.ForceType != "" {
				rec.Type = in.ForceType
			}
			k := urlPair{wiki: rec.WikipediaURL, grok: rec.GrokipediaURL}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			merged = append(merged, rec)
		}
	}

	manifest := MergeManifest{QuotaPerType: quota, Sources: sources}
	if quota <= 0 {
		manifest.TotalSelected = len(merged)
		return merged, manifest, nil
	}

	buckets := map[string][]models.PairRecord{}
	for _, rec := range merged {
		buckets[rec.Type] = append(buckets[rec.Type], rec)
	}

	manifest.Stats = map[string]TypeStats{}
	var chosen []models.PairRecord
	for _, ty := range classifier.Types {
		recs := buckets[ty]
		take := recs
		if len(take) > quota {
			take = take[:quota]
		}
		chosen = append(chosen, take...)
		manifest.Stats[ty] = TypeStats{Available: len(recs), Selected: len(take)}
	}
	manifest.TotalSelected = len(chosen)
	return chosen, manifest, nil
}
