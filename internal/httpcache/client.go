
package httpcache

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// FetchResult is what callers see from a cached GET.
type FetchResult struct {
	URL        string
	StatusCode int
	Body       string
	FromCache  bool
	Elapsed    time.Duration
}

// Client performs cache-first GETs. On a miss it issues exactly one network
// request, sleeps the polite delay unconditionally, and persists the result
// regardless of status code so rejecting hosts are not re-hammered. It never
// retries.
type Client struct {
	cache       *Cache
	http        *http.Client
	userAgent   string
	politeDelay time.Duration
	sleep       func(time.Duration)
	log         *zap.Logger
}

func NewClient(cache *Cache, timeout time.Duration, userAgent string, politeDelay time.Duration, log *zap.Logger) *Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Client{
		cache: cache,
		http: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		userAgent:   userAgent,
		politeDelay: politeDelay,
		sleep:       time.Sleep,
		log:         log,
	}
}

// WithSleep replaces the delay function, for tests.
func (c *Client) WithSleep(sleep func(time.Duration)) *Client {
	c.sleep = sleep
	return c
}

// Get returns the cached response for url when fresh, with no network call
// and no delay. Otherwise it fetches once; a transport error is returned
// without sleeping or caching.
func (c *Client) Get(ctx context.Context, url string) (FetchResult, error) {
	if entry, ok := c.cache.Get(url); ok {
		return FetchResult{
			URL:        url,
			StatusCode: entry.StatusCode,
			Body:       entry.Body,
			FromCache:  true,
			Elapsed:    entry.Elapsed,
		}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return FetchResult{}, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return FetchResult{}, err
	}
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	elapsed := time.Since(start)
	if err != nil {
		return FetchResult{}, err
	}

	body := decodeToUTF8(data, resp.Header.Get("Content-Type"))

	// polite throttling toward the remote host, hit or reject alike
	c.sleep(c.politeDelay)

	if err := c.cache.Put(url, resp.StatusCode, body, elapsed); err != nil {
		c.log.Warn("cache write failed", zap.String("url", url), zap.Error(err))
	}
	return FetchResult{
		URL:        url,
		StatusCode: resp.StatusCode,
		Body:       body,
		FromCache:  false,
		Elapsed:    elapsed,
	}, nil
}

// decodeToUTF8 stores cache bodies decoded so the parsers never see the
// original charset.
func decodeToUTF8(data []byte, contentType string) string {
	enc, _, _ := charset.DetermineEncoding(data, contentType)
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		if utf8.Valid(data) {
			return string(data)
		}
		return string(bytes.ToValidUTF8(data, []byte("�")))
	}
	return string(decoded)
}
