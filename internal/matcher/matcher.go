
// Package matcher decides whether a candidate title has a substantive
// counterpart on the second source. It is an existence gate, not a
// content-equivalence check.
package matcher

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/kcarka/pairpedia/internal/httpcache"
	"github.com/kcarka/pairpedia/internal/models"
)

// DefaultMinChars is the visible-text floor below which a 200 page is still
// treated as no match.
const DefaultMinChars = 600

const nonContentSelector = "script,style,nav,aside,footer,header"

var spaceRe = regexp.MustCompile(`\s+`)

type Matcher struct {
	client   *httpcache.Client
	baseURL  string
	minChars int
	log      *zap.Logger
}

func New(client *httpcache.Client, baseURL string, minChars int, log *zap.Logger) *Matcher {
	if minChars <= 0 {
		minChars = DefaultMinChars
	}
	return &Matcher{
		client:   client,
		baseURL:  strings.TrimRight(baseURL, "/"),
		minChars: minChars,
		log:      log,
	}
}

// PageURL derives the second-source URL for a title: spaces become
// underscores on the /page/ prefix.
func (m *Matcher) PageURL(title string) string {
	return m.baseURL + "/page/" + strings.ReplaceAll(title, " ", "_")
}

// Match fetches the derived page through the cache and applies the
// gatekeeping rule. A transport error is returned as an error; everything
// else, including rejections, is a normal result.
func (m *Matcher) Match(ctx context.Context, title string) (models.PairingResult, error) {
	pageURL := m.PageURL(title)
	res, err := m.client.Get(ctx, pageURL)
	if err != nil {
		return models.PairingResult{}, fmt.Errorf("fetch %s: %w", pageURL, err)
	}

	result := models.PairingResult{
		Title:      title,
		URL:        pageURL,
		StatusCode: res.StatusCode,
	}
	if res.StatusCode != 200 {
		result.Reason = fmt.Sprintf("http_%d", res.StatusCode)
		return result, nil
	}
	if !hasSubstantiveText(res.Body, m.minChars) {
		result.Reason = "empty_or_too_short"
		return result, nil
	}
	result.Matched = true
	result.Reason = "ok"
	m.log.Debug("title matched", zap.String("title", title), zap.Bool("from_cache", res.FromCache))
	return result, nil
}

// hasSubstantiveText strips non-content markup and measures what is left.
func hasSubstantiveText(body string, minChars int) bool {
	if body == "" {
		return false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return false
	}
	doc.Find(nonContentSelector).Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})
	text := strings.TrimSpace(spaceRe.ReplaceAllString(doc.Text(), " "))
	return len(text) >= minChars
}
