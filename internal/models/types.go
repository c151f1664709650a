
package models

// Section is one heading-scoped block of an article. Subsections nest at
// most two levels below a top-level section (h3 and, for Wikipedia, h4).
type Section struct {
	Title       string    `json:"title"`
	Spans       []string  `json:"spans"`
	Subsections []Section `json:"subsections"`
}

// Reference is one cited source. URL is empty when the reference item
// carried no hyperlink.
type Reference struct {
	URL  string `json:"url,omitempty"`
	Text string `json:"text"`
}

// DocumentTree is the parsed shape of a single article.
type DocumentTree struct {
	Sections   []Section   `json:"sections"`
	References []Reference `json:"references"`
}

// PairingResult records the outcome of checking one candidate title against
// the second source. Reason is "ok", "http_<status>" or "empty_or_too_short".
type PairingResult struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	Matched    bool   `json:"matched"`
	StatusCode int    `json:"status_code"`
	Reason     string `json:"reason"`
}

// TypeResult is a coarse title classification with evidence for audit.
type TypeResult struct {
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
	Evidence   string  `json:"evidence"`
}

type PairingMeta struct {
	Method     string  `json:"method"`
	Confidence float64 `json:"confidence"`
	GrokStatus int     `json:"grok_status"`
}

// PairRecord is one line of a pair index (JSONL).
type PairRecord struct {
	Title          string      `json:"title"`
	Type           string      `json:"type"`
	TypeConfidence float64     `json:"type_confidence"`
	TypeEvidence   string      `json:"type_evidence"`
	WikipediaURL   string      `json:"wikipedia_url"`
	GrokipediaURL  string      `json:"grokipedia_url"`
	Pairing        PairingMeta `json:"pairing"`
}

// IndexManifest summarizes a pair-index build run.
type IndexManifest struct {
	RunID                 string         `json:"run_id"`
	Category              string         `json:"category"`
	Limit                 int            `json:"limit"`
	TotalTitlesConsidered int            `json:"total_titles_considered"`
	PairsMatched          int            `json:"pairs_matched"`
	MatchRate             float64        `json:"match_rate"`
	FailureReasons        map[string]int `json:"failure_reasons"`
	CacheDir              string         `json:"cache_dir"`
	OutIndex              string         `json:"out_index"`
	GeneratedAtUnix       float64        `json:"generated_at_unix"`
	ElapsedSec            float64        `json:"elapsed_sec"`
}

// SeedRow is one row of the harvest sources CSV.
type SeedRow struct {
	Category      string
	Subcategory   string
	Name          string
	WikipediaURL  string
	GrokipediaURL string
}

// ArticleDocument pairs a parsed tree with its seed-row provenance.
type ArticleDocument struct {
	URL         string       `json:"url"`
	Index       int          `json:"index"`
	Category    string       `json:"category"`
	Subcategory string       `json:"subcategory"`
	Name        string       `json:"name"`
	Tree        DocumentTree `json:"tree"`
}
