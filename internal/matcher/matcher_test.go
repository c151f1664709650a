
package matcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kcarka/pairpedia/internal/httpcache"
)

func newTestMatcher(t *testing.T, handler http.HandlerFunc) *Matcher {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	cache, err := httpcache.New(t.TempDir(), 24*time.Hour)
	require.NoError(t, err)
	client := httpcache.NewClient(cache, 5*time.Second, "pairpedia-test/0.1", 0, zap.NewNop())
	client.WithSleep(func(time.Duration) {})
	return New(client, ts.URL, DefaultMinChars, zap.NewNop())
}

func longArticle() string {
	return "<html><body><main>" + strings.Repeat("Substantive prose about the subject. ", 30) + "</main></body></html>"
}

func TestPageURLSlug(t *testing.T) {
	m := New(nil, "https://grokipedia.com", 0, zap.NewNop())
	require.Equal(t, "https://grokipedia.com/page/Voting_Rights_Act", m.PageURL("Voting Rights Act"))
}

func TestMatchOK(t *testing.T) {
	m := newTestMatcher(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/page/Some_Title", r.URL.Path)
		_, _ = w.Write([]byte(longArticle()))
	})

	res, err := m.Match(context.Background(), "Some Title")
	require.NoError(t, err)
	require.True(t, res.Matched)
	require.Equal(t, "ok", res.Reason)
	require.Equal(t, 200, res.StatusCode)
}

func TestMatchNon200(t *testing.T) {
	m := newTestMatcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	res, err := m.Match(context.Background(), "Missing Page")
	require.NoError(t, err)
	require.False(t, res.Matched)
	require.Equal(t, "http_404", res.Reason)
	require.Equal(t, 404, res.StatusCode)
}

func TestMatchTooShortDespite200(t *testing.T) {
	// navigation chrome pads the raw HTML well past the threshold, but the
	// visible text after stripping stays under it
	page := "<html><body>" +
		"<nav>" + strings.Repeat("Home About Contact ", 60) + "</nav>" +
		"<script>" + strings.Repeat("var x = 1;", 100) + "</script>" +
		"<main>Stub.</main>" +
		"<footer>" + strings.Repeat("Legal Privacy Terms ", 60) + "</footer>" +
		"</body></html>"
	m := newTestMatcher(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	})

	res, err := m.Match(context.Background(), "Stub Page")
	require.NoError(t, err)
	require.False(t, res.Matched)
	require.Equal(t, "empty_or_too_short", res.Reason)
	require.Equal(t, 200, res.StatusCode)
}

func TestMatchEmptyBody(t *testing.T) {
	m := newTestMatcher(t, func(w http.ResponseWriter, r *http.Request) {})

	res, err := m.Match(context.Background(), "Empty Page")
	require.NoError(t, err)
	require.False(t, res.Matched)
	require.Equal(t, "empty_or_too_short", res.Reason)
}

func TestMatchTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := ts.URL
	ts.Close()

	cache, err := httpcache.New(t.TempDir(), 24*time.Hour)
	require.NoError(t, err)
	client := httpcache.NewClient(cache, time.Second, "pairpedia-test/0.1", 0, zap.NewNop())
	client.WithSleep(func(time.Duration) {})
	m := New(client, base, DefaultMinChars, zap.NewNop())

	_, err = m.Match(context.Background(), "Unreachable")
	require.Error(t, err)
}

func TestMatchSecondCallUsesCache(t *testing.T) {
	var hits int
	m := newTestMatcher(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(longArticle()))
	})

	_, err := m.Match(context.Background(), "Some Title")
	require.NoError(t, err)
	_, err = m.Match(context.Background(), "Some Title")
	require.NoError(t, err)
	require.Equal(t, 1, hits)
}
