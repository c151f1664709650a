
package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		title    string
		wantType string
		wantConf float64
		evidence string
	}{
		{"Voting Rights Act", "law", 0.90, "title_match:\\bAct\\b"},
		{"First Amendment", "law", 0.90, "title_match:\\bAmendment\\b"},
		{"2020 United States presidential election", "event", 0.85, "title_match:\\bElection\\b"},
		{"January 6 Capitol attack of 2021", "event", 0.85, "title_match:\\bAttack\\b"},
		{"Federal Bureau of Investigation", "institution", 0.85, "title_match:\\bBureau\\b"},
		{"United States Senate", "institution", 0.85, "title_match:\\bSenate\\b"},
		{"Abraham Lincoln", "biography", 0.70, "default_name_like_title"},
		{"Ruth Bader Ginsburg", "biography", 0.70, "default_name_like_title"},
		// 5 tokens, not name-shaped, nothing else matches
		{"Federalism in the United States", "institution", 0.55, "fallback_generic"},
		// parenthetical disqualifies name shape
		{"John Smith (explorer)", "institution", 0.55, "fallback_generic"},
	}
	for _, tc := range cases {
		got := Classify(tc.title)
		assert.Equal(t, tc.wantType, got.Type, "title %q", tc.title)
		assert.Equal(t, tc.wantConf, got.Confidence, "title %q", tc.title)
		assert.Equal(t, tc.evidence, got.Evidence, "title %q", tc.title)
	}
}

func TestLawBeatsEvent(t *testing.T) {
	// contains both a bare year (event signal) and Act (law signal)
	got := Classify("Civil Rights Act of 1964")
	assert.Equal(t, "law", got.Type)
	assert.Equal(t, 0.90, got.Confidence)
}

func TestBareYearIsAnEvent(t *testing.T) {
	got := Classify("Watergate 1972")
	assert.Equal(t, "event", got.Type)
	assert.Equal(t, "title_match:\\b\\d{4}\\b", got.Evidence)
}

func TestEventBeatsNameShape(t *testing.T) {
	// two tokens would be name-shaped, but War fires first
	got := Classify("Vietnam War")
	assert.Equal(t, "event", got.Type)
}

func TestSingleTokenFallsBack(t *testing.T) {
	got := Classify("Gerrymandering")
	assert.Equal(t, "institution", got.Type)
	assert.Equal(t, "fallback_generic", got.Evidence)
}
