
package httpcache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetMissingEntry(t *testing.T) {
	c, err := New(t.TempDir(), 24*time.Hour)
	require.NoError(t, err)

	_, ok := c.Get("https://example.com/none")
	require.False(t, ok)
}

func TestPutThenGet(t *testing.T) {
	c, err := New(t.TempDir(), 24*time.Hour)
	require.NoError(t, err)

	require.NoError(t, c.Put("https://example.com/a", 200, "<html>body</html>", 120*time.Millisecond))

	entry, ok := c.Get("https://example.com/a")
	require.True(t, ok)
	require.Equal(t, 200, entry.StatusCode)
	require.Equal(t, "<html>body</html>", entry.Body)
	require.Equal(t, "https://example.com/a", entry.URL)
}

func TestExpiredEntryIsAbsent(t *testing.T) {
	now := time.Now()
	c, err := New(t.TempDir(), time.Hour)
	require.NoError(t, err)
	c.WithClock(func() time.Time { return now })

	require.NoError(t, c.Put("https://example.com/a", 200, "body", 0))

	// body file still on disk, but an hour and change has passed
	now = now.Add(time.Hour + time.Minute)
	_, ok := c.Get("https://example.com/a")
	require.False(t, ok)
}

func TestFreshJustInsideTTL(t *testing.T) {
	now := time.Now()
	c, err := New(t.TempDir(), time.Hour)
	require.NoError(t, err)
	c.WithClock(func() time.Time { return now })

	require.NoError(t, c.Put("https://example.com/a", 200, "body", 0))

	now = now.Add(59 * time.Minute)
	_, ok := c.Get("https://example.com/a")
	require.True(t, ok)
}

func TestCorruptMetaIsAMiss(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir, 24*time.Hour)
	require.NoError(t, err)

	require.NoError(t, c.Put("https://example.com/a", 200, "body", 0))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".json" {
			require.NoError(t, os.WriteFile(filepath.Join(dir, e.Name()), []byte("{not json"), 0o644))
		}
	}

	_, ok := c.Get("https://example.com/a")
	require.False(t, ok)
}

func TestMissingBodyIsAMiss(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir, 24*time.Hour)
	require.NoError(t, err)

	require.NoError(t, c.Put("https://example.com/a", 200, "body", 0))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".txt" {
			require.NoError(t, os.Remove(filepath.Join(dir, e.Name())))
		}
	}

	_, ok := c.Get("https://example.com/a")
	require.False(t, ok)
}

func TestPutOverwrites(t *testing.T) {
	c, err := New(t.TempDir(), 24*time.Hour)
	require.NoError(t, err)

	require.NoError(t, c.Put("https://example.com/a", 404, "not found", 0))
	require.NoError(t, c.Put("https://example.com/a", 200, "found now", 0))

	entry, ok := c.Get("https://example.com/a")
	require.True(t, ok)
	require.Equal(t, 200, entry.StatusCode)
	require.Equal(t, "found now", entry.Body)
}
