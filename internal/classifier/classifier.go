
// Package classifier maps article titles to a coarse document type for
// downstream stratification. Precedence is fixed: law wins over event wins
// over institution; the name-shape heuristic only applies when no keyword
// pattern fires.
package classifier

import (
	"regexp"
	"strings"

	"github.com/kcarka/pairpedia/internal/models"
)

// Types is the closed label set, in quota order.
var Types = []string{"biography", "institution", "law", "event"}

var lawPatterns = compile([]string{
	`\bAct\b`,
	`\bBill\b`,
	`\bLaw\b`,
	`\bAmendment\b`,
	`\bTreaty\b`,
	`\bExecutive Order\b`,
	`\bRegulation\b`,
	`\bPolicy\b`,
	`\bAffordable Care Act\b`,
	`\bCivil Rights Act\b`,
	`\bPatriot Act\b`,
	`\bVoting Rights Act\b`,
})

var eventPatterns = compile([]string{
	`\bElection\b`,
	`\bPresidential election\b`,
	`\bMidterm elections\b`,
	`\bInauguration\b`,
	`\bImpeachment\b`,
	`\bTrial\b`,
	`\bProtest\b`,
	`\bRiot\b`,
	`\bAttack\b`,
	`\bCoup\b`,
	`\bWar\b`,
	`\bConflict\b`,
	`\bCrisis\b`,
	`\bSummit\b`,
	`\bDebate\b`,
	`\bConvention\b`,
	`\bscandal\b`,
	`\binvestigation\b`,
	`\b\d{4}\b`, // a bare year is a strong event hint
})

var institutionPatterns = compile([]string{
	`\bDepartment\b`,
	`\bMinistry\b`,
	`\bAgency\b`,
	`\bBureau\b`,
	`\bCommission\b`,
	`\bCommittee\b`,
	`\bCouncil\b`,
	`\bCourt\b`,
	`\bCongress\b`,
	`\bParliament\b`,
	`\bSenate\b`,
	`\bHouse of Representatives\b`,
	`\bSupreme Court\b`,
	`\bWhite House\b`,
	`\bCabinet\b`,
	`\bFBI\b`,
	`\bCIA\b`,
	`\bNSA\b`,
	`\bPentagon\b`,
	`\bDemocratic Party\b`,
	`\bRepublican Party\b`,
	`\bLabour Party\b`,
	`\bConservative Party\b`,
	`\bGovernment\b`,
	`\bAdministration\b`,
})

type pattern struct {
	re  *regexp.Regexp
	src string
}

func compile(sources []string) []pattern {
	out := make([]pattern, 0, len(sources))
	for _, src := range sources {
		out = append(out, pattern{re: regexp.MustCompile(`(?i)` + src), src: src})
	}
	return out
}

func matchAny(title string, patterns []pattern) (string, bool) {
	for _, p := range patterns {
		if p.re.MatchString(title) {
			return p.src, true
		}
	}
	return "", false
}

// nameShaped reports whether a title looks like a person name: two to four
// tokens with none of the disallowed punctuation.
func nameShaped(title string) bool {
	tokens := strings.Fields(title)
	if len(tokens) < 2 || len(tokens) > 4 {
		return false
	}
	return !strings.ContainsAny(title, ",():")
}

// Classify labels a title with a confidence and an evidence string. A title
// matching several pattern groups always takes the highest-precedence one.
func Classify(title string) models.TypeResult {
	t := strings.TrimSpace(title)

	if src, ok := matchAny(t, lawPatterns); ok {
		return models.TypeResult{Type: "law", Confidence: 0.90, Evidence: "title_match:" + src}
	}
	if src, ok := matchAny(t, eventPatterns); ok {
		return models.TypeResult{Type: "event", Confidence: 0.85, Evidence: "title_match:" + src}
	}
	if src, ok := matchAny(t, institutionPatterns); ok {
		return models.TypeResult{Type: "institution", Confidence: 0.85, Evidence: "title_match:" + src}
	}
	if nameShaped(t) {
		return models.TypeResult{Type: "biography", Confidence: 0.70, Evidence: "default_name_like_title"}
	}
	return models.TypeResult{Type: "institution", Confidence: 0.55, Evidence: "fallback_generic"}
}
