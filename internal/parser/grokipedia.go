
package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/kcarka/pairpedia/internal/models"
)

// ParseGrokipedia reconstructs a Grokipedia article. Bare h2 elements open
// top-level sections, sibling h3 elements open subsections one level down,
// and leaf content is sibling span.mb-4 elements. References live in
// div#references as an ordered list.
func ParseGrokipedia(markup string) models.DocumentTree {
	tree := models.DocumentTree{Sections: []models.Section{}, References: []models.Reference{}}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return tree
	}

	stack := newSectionStack()
	for _, h2 := range doc.Find("h2").Nodes {
		stack.push(1, nodeText(h2))

		for sib := h2.NextSibling; sib != nil; sib = sib.NextSibling {
			if sib.Type != html.ElementNode {
				continue
			}
			if isElement(sib, "h2") {
				break
			}
			switch {
			case isElement(sib, "h3"):
				stack.push(2, nodeText(sib))
			case isElement(sib, "span") && hasClass(sib, "mb-4"):
				if text := Clean(nodeText(sib)); text != "" {
					stack.appendSpan(text)
				}
			}
		}
	}
	tree.Sections = stack.finish()
	tree.References = grokipediaReferences(doc)
	return tree
}

// grokipediaReferences reads div#references > ol, one reference per direct
// li child. A missing container or list yields an empty slice.
func grokipediaReferences(doc *goquery.Document) []models.Reference {
	refs := []models.Reference{}
	list := doc.Find("div#references ol").First()
	if list.Length() == 0 {
		return refs
	}
	list.ChildrenFiltered("li").Each(func(i int, s *goquery.Selection) {
		href := s.Find("a[href]").First().AttrOr("href", "")
		refs = append(refs, models.Reference{
			URL:  href,
			Text: nodeText(s.Nodes[0]),
		})
	})
	return refs
}
