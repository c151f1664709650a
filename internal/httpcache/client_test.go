
package httpcache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, ttl time.Duration) (*Client, *atomic.Int32, *httptest.Server) {
	t.Helper()
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("nope"))
		default:
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html>hello</html>"))
		}
	}))
	t.Cleanup(ts.Close)

	cache, err := New(t.TempDir(), ttl)
	require.NoError(t, err)
	client := NewClient(cache, 5*time.Second, "pairpedia-test/0.1", time.Second, zap.NewNop())
	client.WithSleep(func(time.Duration) {})
	return client, &hits, ts
}

func TestSecondGetComesFromCache(t *testing.T) {
	client, hits, ts := newTestClient(t, 24*time.Hour)

	first, err := client.Get(context.Background(), ts.URL+"/page")
	require.NoError(t, err)
	require.False(t, first.FromCache)
	require.Equal(t, 200, first.StatusCode)

	second, err := client.Get(context.Background(), ts.URL+"/page")
	require.NoError(t, err)
	require.True(t, second.FromCache)
	require.Equal(t, first.Body, second.Body)
	require.Equal(t, int32(1), hits.Load())
}

func TestNon2xxIsCachedToo(t *testing.T) {
	client, hits, ts := newTestClient(t, 24*time.Hour)

	first, err := client.Get(context.Background(), ts.URL+"/missing")
	require.NoError(t, err)
	require.Equal(t, 404, first.StatusCode)

	second, err := client.Get(context.Background(), ts.URL+"/missing")
	require.NoError(t, err)
	require.True(t, second.FromCache)
	require.Equal(t, 404, second.StatusCode)
	require.Equal(t, int32(1), hits.Load())
}

func TestExpiredEntryRefetches(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("v"))
	}))
	defer ts.Close()

	now := time.Now()
	cache, err := New(t.TempDir(), time.Hour)
	require.NoError(t, err)
	cache.WithClock(func() time.Time { return now })

	client := NewClient(cache, 5*time.Second, "pairpedia-test/0.1", 0, zap.NewNop())
	client.WithSleep(func(time.Duration) {})

	_, err = client.Get(context.Background(), ts.URL)
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	res, err := client.Get(context.Background(), ts.URL)
	require.NoError(t, err)
	require.False(t, res.FromCache)
	require.Equal(t, int32(2), hits.Load())
}

func TestPoliteDelayOnMissOnly(t *testing.T) {
	var slept []time.Duration
	client, _, ts := newTestClient(t, 24*time.Hour)
	client.WithSleep(func(d time.Duration) { slept = append(slept, d) })

	_, err := client.Get(context.Background(), ts.URL+"/page")
	require.NoError(t, err)
	require.Len(t, slept, 1)
	require.Equal(t, time.Second, slept[0])

	_, err = client.Get(context.Background(), ts.URL+"/page")
	require.NoError(t, err)
	require.Len(t, slept, 1) // cache hit sleeps nothing
}

func TestTransportErrorNotCached(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close() // connection refused from here on

	cache, err := New(t.TempDir(), 24*time.Hour)
	require.NoError(t, err)
	client := NewClient(cache, time.Second, "pairpedia-test/0.1", 0, zap.NewNop())
	client.WithSleep(func(time.Duration) {})

	_, err = client.Get(context.Background(), url)
	require.Error(t, err)

	_, ok := cache.Get(url)
	require.False(t, ok)
}
