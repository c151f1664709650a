
package index

import (
	"os"
	"path/filepath"

	"github.com/kcarka/pairpedia/internal/ioformats"
)

// ExportSeeds turns an index file into the harvest inputs: two aligned URL
// line files plus the per-record metadata as JSONL. maxPairs <= 0 means no
// cap. Returns the number of pairs exported.
func ExportSeeds(indexPath, outDir string, maxPairs int) (int, error) {
	records, err := ioformats.ReadPairIndex(indexPath)
	if err != nil {
		return 0, err
	}
	if maxPairs > 0 && len(records) > maxPairs {
		records = records[:maxPairs]
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, err
	}

	wikiURLs := make([]string, 0, len(records))
	grokURLs := make([]string, 0, len(records))
	for _, rec := range records {
		wikiURLs = append(wikiURLs, rec.WikipediaURL)
		grokURLs = append(grokURLs, rec.GrokipediaURL)
	}

	if err := ioformats.WriteLines(filepath.Join(outDir, "wikipedia_urls.txt"), wikiURLs); err != nil {
		return 0, err
	}
	if err := ioformats.WriteLines(filepath.Join(outDir, "grokipedia_urls.txt"), grokURLs); err != nil {
		return 0, err
	}
	if err := ioformats.WritePairIndex(filepath.Join(outDir, "pairs_meta.jsonl"), records); err != nil {
		return 0, err
	}
	return len(records), nil
}
