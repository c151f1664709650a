
package index

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kcarka/pairpedia/internal/ioformats"
	"github.com/kcarka/pairpedia/internal/models"
)

func TestExportSeeds(t *testing.T) {
	dir := t.TempDir()
	indexPath := writeIndex(t, dir, "index.jsonl", []models.PairRecord{
		rec("One", "law"),
		rec("Two", "event"),
	})
	outDir := filepath.Join(dir, "seeds")

	n, err := ExportSeeds(indexPath, outDir, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	wiki, err := ioformats.ReadLines(filepath.Join(outDir, "wikipedia_urls.txt"))
	require.NoError(t, err)
	grok, err := ioformats.ReadLines(filepath.Join(outDir, "grokipedia_urls.txt"))
	require.NoError(t, err)
	// the two files stay aligned line for line
	assert.Equal(t, []string{"https://en.wikipedia.org/wiki/One", "https://en.wikipedia.org/wiki/Two"}, wiki)
	assert.Equal(t, []string{"https://grokipedia.com/page/One", "https://grokipedia.com/page/Two"}, grok)

	meta, err := ioformats.ReadPairIndex(filepath.Join(outDir, "pairs_meta.jsonl"))
	require.NoError(t, err)
	require.Len(t, meta, 2)
	assert.Equal(t, "One", meta[0].Title)
}

func TestExportSeedsMaxPairs(t *testing.T) {
	dir := t.TempDir()
	indexPath := writeIndex(t, dir, "index.jsonl", []models.PairRecord{
		rec("One", "law"), rec("Two", "event"), rec("Three", "biography"),
	})
	outDir := filepath.Join(dir, "seeds")

	n, err := ExportSeeds(indexPath, outDir, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	wiki, err := ioformats.ReadLines(filepath.Join(outDir, "wikipedia_urls.txt"))
	require.NoError(t, err)
	assert.Len(t, wiki, 2)
}
