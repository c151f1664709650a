
package parser

import "github.com/kcarka/pairpedia/internal/models"

// maxSectionDepth is the deepest heading nesting either source format
// produces: h2 > h3 > h4.
const maxSectionDepth = 3

// sectionStack is the explicit fixed-depth stack behind the parsers'
// sibling walk. A heading at level L flushes every open section at L or
// deeper before opening a new one, so the bounded-nesting invariant lives
// here instead of being implicit in the markup.
type sectionStack struct {
	done  []models.Section
	open  [maxSectionDepth]*models.Section
	depth int
}

func newSectionStack() *sectionStack {
	return &sectionStack{done: []models.Section{}}
}

// push opens a section at level (1-based). A heading more than one level
// below the deepest open section has no parent to attach to and is ignored.
func (s *sectionStack) push(level int, title string) {
	if level < 1 || level > maxSectionDepth || level > s.depth+1 {
		return
	}
	s.closeTo(level)
	s.open[level-1] = &models.Section{
		Title:       title,
		Spans:       []string{},
		Subsections: []models.Section{},
	}
	s.depth = level
}

// closeTo flushes every open section at level or deeper into its parent,
// deepest first.
func (s *sectionStack) closeTo(level int) {
	for s.depth >= level {
		sec := s.open[s.depth-1]
		s.open[s.depth-1] = nil
		s.depth--
		if s.depth == 0 {
			s.done = append(s.done, *sec)
		} else {
			parent := s.open[s.depth-1]
			parent.Subsections = append(parent.Subsections, *sec)
		}
	}
}

// appendSpan attaches text to the deepest open section. With nothing open
// the span has no home and is dropped; both source formats drop pre-heading
// text at document scope.
func (s *sectionStack) appendSpan(text string) {
	if s.depth == 0 {
		return
	}
	s.open[s.depth-1].Spans = append(s.open[s.depth-1].Spans, text)
}

// finish flushes everything still open and returns the completed sections.
func (s *sectionStack) finish() []models.Section {
	s.closeTo(1)
	return s.done
}
