
// Package discovery walks a MediaWiki category graph breadth-first and
// collects candidate article titles.
package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Options configures the listing client. Zero fields fall back to the
// values the live Wikipedia API tolerates.
type Options struct {
	APIURL        string
	UserAgent     string
	PageSize      int           // max members per API call
	MemberCap     int           // max members listed per category per type
	RetryAttempts int
	RetryBackoff  time.Duration
	PageSleep     time.Duration // between pagination calls
}

func (o *Options) fill() {
	if o.APIURL == "" {
		o.APIURL = "https://en.wikipedia.org/w/api.php"
	}
	if o.PageSize <= 0 {
		o.PageSize = 200
	}
	if o.MemberCap <= 0 {
		o.MemberCap = 500
	}
	if o.RetryAttempts <= 0 {
		o.RetryAttempts = 4
	}
}

// Crawler lists category members through a paginated API, one request at a
// time. It holds no per-crawl state; that lives in the session inside
// Discover, so independent crawls in one process cannot cross-contaminate.
type Crawler struct {
	http  *http.Client
	opts  Options
	sleep func(time.Duration)
	log   *zap.Logger
}

func New(timeout time.Duration, opts Options, log *zap.Logger) *Crawler {
	opts.fill()
	return &Crawler{
		http:  &http.Client{Timeout: timeout},
		opts:  opts,
		sleep: time.Sleep,
		log:   log,
	}
}

// WithSleep replaces backoff and pagination sleeps, for tests.
func (c *Crawler) WithSleep(sleep func(time.Duration)) *Crawler {
	c.sleep = sleep
	return c
}

var badTitlePrefixes = []string{"List of", "Outline of", "Timeline of", "Index of"}

// isBadTitle rejects list-like pages and anything carrying a namespace.
func isBadTitle(title string) bool {
	for _, p := range badTitlePrefixes {
		if strings.HasPrefix(title, p) {
			return true
		}
	}
	return strings.Contains(title, ":")
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

type listResponse struct {
	Query struct {
		CategoryMembers []struct {
			Title string `json:"title"`
		} `json:"categorymembers"`
	} `json:"query"`
	Continue struct {
		CmContinue string `json:"cmcontinue"`
	} `json:"continue"`
}

// listOnce performs a single categorymembers call with retries on transient
// failures. Exhausting the retries returns the last error.
func (c *Crawler) listOnce(ctx context.Context, params url.Values) (*listResponse, error) {
	var lastErr error
	for attempt := 0; attempt < c.opts.RetryAttempts; attempt++ {
		if attempt > 0 {
			c.sleep(c.opts.RetryBackoff)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.APIURL+"?"+params.Encode(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		if retryableStatus(resp.StatusCode) {
			resp.Body.Close()
			lastErr = fmt.Errorf("http status %d", resp.StatusCode)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("http status %d", resp.StatusCode)
		}
		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		var out listResponse
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("decode listing response: %w", err)
		}
		return &out, nil
	}
	return nil, lastErr
}

// listMembers lists a category's direct members of one type ("page" or
// "subcat"), following continuation tokens up to the member cap.
func (c *Crawler) listMembers(ctx context.Context, category, cmtype string) ([]string, error) {
	var titles []string
	cont := ""
	for len(titles) < c.opts.MemberCap {
		limit := c.opts.PageSize
		if rest := c.opts.MemberCap - len(titles); rest < limit {
			limit = rest
		}
		params := url.Values{
			"action":  {"query"},
			"list":    {"categorymembers"},
			"cmtitle": {category},
			"cmlimit": {strconv.Itoa(limit)},
			"cmtype":  {cmtype},
			"format":  {"json"},
		}
		if cont != "" {
			params.Set("cmcontinue", cont)
		}

		resp, err := c.listOnce(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("list %s members of %q: %w", cmtype, category, err)
		}
		for _, m := range resp.Query.CategoryMembers {
			titles = append(titles, m.Title)
		}
		cont = resp.Continue.CmContinue
		if cont == "" {
			break
		}
		c.sleep(c.opts.PageSleep)
	}
	return titles, nil
}

type frontierItem struct {
	category string
	depth    int
}

// Discover walks subcategories of rootCategory up to maxDepth and returns
// article titles in discovery order, truncated at limitPages. A listing
// failure after retries aborts the whole crawl.
func (c *Crawler) Discover(ctx context.Context, rootCategory string, limitPages, maxDepth int) ([]string, error) {
	frontier := []frontierItem{{category: rootCategory, depth: 0}}
	seenCategories := map[string]struct{}{rootCategory: {}}
	seenPages := map[string]struct{}{}
	var pages []string

	for len(frontier) > 0 && len(pages) < limitPages {
		head := frontier[0]
		frontier = frontier[1:]

		members, err := c.listMembers(ctx, head.category, "page")
		if err != nil {
			return nil, err
		}
		for _, title := range members {
			if title == "" || isBadTitle(title) {
				continue
			}
			if _, seen := seenPages[title]; seen {
				continue
			}
			seenPages[title] = struct{}{}
			pages = append(pages, title)
			if len(pages) >= limitPages {
				break
			}
		}
		c.log.Debug("category listed",
			zap.String("category", head.category),
			zap.Int("depth", head.depth),
			zap.Int("pages_total", len(pages)))

		if len(pages) >= limitPages {
			break
		}

		if head.depth < maxDepth {
			subcats, err := c.listMembers(ctx, head.category, "subcat")
			if err != nil {
				return nil, err
			}
			for _, sub := range subcats {
				if !strings.HasPrefix(sub, "Category:") {
					continue
				}
				if _, seen := seenCategories[sub]; seen {
					continue
				}
				seenCategories[sub] = struct{}{}
				frontier = append(frontier, frontierItem{category: sub, depth: head.depth + 1})
			}
		}
	}

	if len(pages) > limitPages {
		pages = pages[:limitPages]
	}
	return pages, nil
}
