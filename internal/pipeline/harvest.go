
// Package pipeline drives the harvest: fetch both pages of every seed row
// through the cache, parse them into document trees, and write the parsed,
// spans-only and reference-domain outputs.
package pipeline

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/kcarka/pairpedia/internal/httpcache"
	"github.com/kcarka/pairpedia/internal/ioformats"
	"github.com/kcarka/pairpedia/internal/models"
	"github.com/kcarka/pairpedia/internal/parser"
)

type Harvester struct {
	client  *httpcache.Client
	restURL string // Wikipedia REST page-HTML endpoint, fallback fetch
	log     *zap.Logger
}

func NewHarvester(client *httpcache.Client, restURL string, log *zap.Logger) *Harvester {
	return &Harvester{
		client:  client,
		restURL: strings.TrimRight(restURL, "/"),
		log:     log,
	}
}

type platformSpec struct {
	name  string
	url   func(models.SeedRow) string
	fetch func(ctx context.Context, h *Harvester, pageURL string) (string, error)
	parse func(markup string) models.DocumentTree
}

var platforms = []platformSpec{
	{
		name: "wikipedia",
		url:  func(r models.SeedRow) string { return r.WikipediaURL },
		fetch: func(ctx context.Context, h *Harvester, pageURL string) (string, error) {
			return h.fetchWikipedia(ctx, pageURL)
		},
		parse: parser.ParseWikipedia,
	},
	{
		name: "grokipedia",
		url:  func(r models.SeedRow) string { return r.GrokipediaURL },
		fetch: func(ctx context.Context, h *Harvester, pageURL string) (string, error) {
			return h.fetchPlain(ctx, pageURL)
		},
		parse: parser.ParseGrokipedia,
	},
}

// Run harvests every seed row for both platforms. A single row's fetch or
// parse trouble is logged and skipped; only output-writing failures abort.
func (h *Harvester) Run(ctx context.Context, rows []models.SeedRow, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	for _, p := range platforms {
		if err := h.runPlatform(ctx, p, rows, outDir); err != nil {
			return err
		}
	}
	return nil
}

func (h *Harvester) runPlatform(ctx context.Context, p platformSpec, rows []models.SeedRow, outDir string) error {
	docs := []models.ArticleDocument{}
	domainsByRow := make([][]string, len(rows))
	for i := range domainsByRow {
		domainsByRow[i] = []string{}
	}

	for i, row := range rows {
		pageURL := p.url(row)
		if pageURL == "" {
			continue
		}
		markup, err := p.fetch(ctx, h, pageURL)
		if err != nil {
			h.log.Warn("row fetch failed, skipping",
				zap.String("platform", p.name),
				zap.Int("row", i),
				zap.String("url", pageURL),
				zap.Error(err))
			continue
		}
		tree := p.parse(markup)
		docs = append(docs, models.ArticleDocument{
			URL:         pageURL,
			Index:       i,
			Category:    row.Category,
			Subcategory: row.Subcategory,
			Name:        row.Name,
			Tree:        tree,
		})
		domainsByRow[i] = referenceDomains(tree.References)
		h.log.Info("article harvested",
			zap.String("platform", p.name),
			zap.String("name", row.Name),
			zap.Int("sections", len(tree.Sections)),
			zap.Int("references", len(tree.References)))
	}

	parsedPath := filepath.Join(outDir, p.name+"_parsed.json")
	if err := ioformats.WriteJSON(parsedPath, docs); err != nil {
		return fmt.Errorf("write %s: %w", parsedPath, err)
	}
	for _, doc := range docs {
		spansPath := filepath.Join(outDir, fmt.Sprintf("%s_spans_%d_%s.json", p.name, doc.Index, slugify(doc.Name)))
		if err := ioformats.WriteJSON(spansPath, FlattenSpans(doc.Tree)); err != nil {
			return fmt.Errorf("write %s: %w", spansPath, err)
		}
	}
	refsPath := filepath.Join(outDir, p.name+"_references.json")
	if err := ioformats.WriteJSON(refsPath, domainsByRow); err != nil {
		return fmt.Errorf("write %s: %w", refsPath, err)
	}
	return nil
}

// fetchPlain returns the body for any 200 response and an error otherwise.
func (h *Harvester) fetchPlain(ctx context.Context, pageURL string) (string, error) {
	res, err := h.client.Get(ctx, pageURL)
	if err != nil {
		return "", err
	}
	if res.StatusCode != 200 {
		return "", fmt.Errorf("http status %d", res.StatusCode)
	}
	return res.Body, nil
}

// fetchWikipedia tries the article URL directly and falls back to the REST
// page-HTML endpoint when the direct GET is blocked.
func (h *Harvester) fetchWikipedia(ctx context.Context, pageURL string) (string, error) {
	body, directErr := h.fetchPlain(ctx, pageURL)
	if directErr == nil {
		return body, nil
	}
	title := wikiTitleFromURL(pageURL)
	if title == "" || h.restURL == "" {
		return "", directErr
	}
	h.log.Debug("direct fetch failed, trying REST endpoint",
		zap.String("url", pageURL), zap.Error(directErr))
	body, restErr := h.fetchPlain(ctx, h.restURL+"/"+title)
	if restErr != nil {
		return "", fmt.Errorf("direct: %v; rest: %w", directErr, restErr)
	}
	return body, nil
}

func wikiTitleFromURL(pageURL string) string {
	const marker = "/wiki/"
	i := strings.Index(pageURL, marker)
	if i < 0 {
		return ""
	}
	return pageURL[i+len(marker):]
}

// FlattenSpans collects every leaf text unit in document order, walking
// sections depth-first through all nesting levels.
func FlattenSpans(tree models.DocumentTree) []string {
	spans := []string{}
	var walk func(sections []models.Section)
	walk = func(sections []models.Section) {
		for _, sec := range sections {
			spans = append(spans, sec.Spans...)
			walk(sec.Subsections)
		}
	}
	walk(tree.Sections)
	return spans
}

var multiDotRe = regexp.MustCompile(`\.+`)

// DomainRoot reduces a reference URL to its bare domain: scheme dropped,
// www. and news. prefixes stripped, runs of dots collapsed. Empty when the
// URL does not parse or has no host.
func DomainRoot(ref string) string {
	u, err := url.Parse(ref)
	if err != nil || u.Host == "" {
		return ""
	}
	domain := u.Host
	domain = strings.TrimPrefix(domain, "www.")
	domain = strings.TrimPrefix(domain, "news.")
	domain = multiDotRe.ReplaceAllString(domain, ".")
	return strings.Trim(domain, ".")
}

// referenceDomains returns the sorted unique domain roots cited by one
// article.
func referenceDomains(refs []models.Reference) []string {
	set := map[string]struct{}{}
	for _, ref := range refs {
		if ref.URL == "" {
			continue
		}
		if domain := DomainRoot(ref.URL); domain != "" {
			set[domain] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for domain := range set {
		out = append(out, domain)
	}
	sort.Strings(out)
	return out
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	slug := slugRe.ReplaceAllString(strings.ToLower(name), "_")
	return strings.Trim(slug, "_")
}
