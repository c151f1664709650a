
// Package index builds, merges and exports pair indices: line-delimited
// JSON records linking a Wikipedia title to its confirmed Grokipedia
// counterpart.
package index

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kcarka/pairpedia/internal/classifier"
	"github.com/kcarka/pairpedia/internal/ioformats"
	"github.com/kcarka/pairpedia/internal/models"
)

// Discoverer yields candidate titles for a root category.
type Discoverer interface {
	Discover(ctx context.Context, rootCategory string, limitPages, maxDepth int) ([]string, error)
}

// TitleMatcher checks one title against the second source.
type TitleMatcher interface {
	Match(ctx context.Context, title string) (models.PairingResult, error)
	PageURL(title string) string
}

type Builder struct {
	discoverer Discoverer
	matcher    TitleMatcher
	wikiBase   string
	cacheDir   string
	log        *zap.Logger
	now        func() time.Time
}

func NewBuilder(d Discoverer, m TitleMatcher, wikiBase, cacheDir string, log *zap.Logger) *Builder {
	return &Builder{
		discoverer: d,
		matcher:    m,
		wikiBase:   strings.TrimRight(wikiBase, "/"),
		cacheDir:   cacheDir,
		log:        log,
		now:        time.Now,
	}
}

// WikipediaURL derives the first-source URL for a title.
func (b *Builder) WikipediaURL(title string) string {
	return b.wikiBase + "/wiki/" + strings.ReplaceAll(title, " ", "_")
}

type BuildParams struct {
	Category  string
	Limit     int
	MaxDepth  int
	ForceType string // when set, overrides the classifier's label
	OutIndex  string
	Manifest  string
}

// Build discovers titles under the category, gates each against the second
// source and streams matched records to the index file. Discovery failure
// is fatal; a single title's fetch failure is tallied and skipped.
func (b *Builder) Build(ctx context.Context, p BuildParams) (models.IndexManifest, error) {
	started := b.now()
	runID := uuid.NewString()
	log := b.log.With(zap.String("run_id", runID), zap.String("category", p.Category))

	titles, err := b.discoverer.Discover(ctx, p.Category, p.Limit, p.MaxDepth)
	if err != nil {
		return models.IndexManifest{}, fmt.Errorf("discover %q: %w", p.Category, err)
	}
	log.Info("discovery finished", zap.Int("titles", len(titles)))

	out, err := os.Create(p.OutIndex)
	if err != nil {
		return models.IndexManifest{}, err
	}
	defer out.Close()
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)

	total := 0
	matched := 0
	failures := map[string]int{}

	for _, title := range titles {
		total++
		res, err := b.matcher.Match(ctx, title)
		if err != nil {
			// transport failure: record and move on, never abort the run
			failures["fetch_error"]++
			log.Warn("match fetch failed", zap.String("title", title), zap.Error(err))
			continue
		}
		if !res.Matched {
			failures[res.Reason]++
			continue
		}

		ty := classifier.Classify(title)
		if p.ForceType != "" {
			ty.Type = p.ForceType
		}
		rec := models.PairRecord{
			Title:          title,
			Type:           ty.Type,
			TypeConfidence: ty.Confidence,
			TypeEvidence:   ty.Evidence,
			WikipediaURL:   b.WikipediaURL(title),
			GrokipediaURL:  res.URL,
			Pairing: models.PairingMeta{
				Method:     "exact_title_to_slug",
				Confidence: 1.0,
				GrokStatus: res.StatusCode,
			},
		}
		if err := enc.Encode(rec); err != nil {
			return models.IndexManifest{}, fmt.Errorf("write index record: %w", err)
		}
		matched++
	}

	elapsed := b.now().Sub(started)
	manifest := models.IndexManifest{
		RunID:                 runID,
		Category:              p.Category,
		Limit:                 p.Limit,
		TotalTitlesConsidered: total,
		PairsMatched:          matched,
		FailureReasons:        failures,
		CacheDir:              b.cacheDir,
		OutIndex:              p.OutIndex,
		GeneratedAtUnix:       float64(b.now().UnixNano()) / float64(time.Second),
		ElapsedSec:            elapsed.Seconds(),
	}
	if total > 0 {
		manifest.MatchRate = float64(matched) / float64(total)
	}
	if p.Manifest != "" {
		if err := ioformats.WriteJSON(p.Manifest, manifest); err != nil {
			return manifest, fmt.Errorf("write manifest: %w", err)
		}
	}
	log.Info("index built",
		zap.Int("matched", matched),
		zap.Int("considered", total),
		zap.Float64("match_rate", manifest.MatchRate))
	return manifest, nil
}
