
package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/kcarka/pairpedia/internal/models"
)

// ParseWikipedia reconstructs a Wikipedia article. Top-level sections are
// div.mw-heading2 wrappers carrying an h2; h3 and h4 wrappers nest one and
// two levels below; leaf content is sibling <p> elements. References are
// the inline span.reference-text elements scattered through the content
// container.
func ParseWikipedia(markup string) models.DocumentTree {
	tree := models.DocumentTree{Sections: []models.Section{}, References: []models.Reference{}}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return tree
	}

	root := doc.Find("div.mw-content-container").First()
	if root.Length() == 0 {
		// no content container, fall back to the whole document
		root = doc.Selection
	}

	wrappers := root.Find("div.mw-heading2").Nodes
	wrapperSet := make(map[*html.Node]struct{}, len(wrappers))
	for _, w := range wrappers {
		wrapperSet[w] = struct{}{}
	}

	stack := newSectionStack()
	for _, wrapper := range wrappers {
		h2 := childElement(wrapper, "h2")
		if h2 == nil {
			// wrapper without a heading opens no section; its window is skipped
			continue
		}
		stack.push(1, nodeText(h2))

		// the section's window runs to the next h2 wrapper or end of siblings
		for sib := wrapper.NextSibling; sib != nil; sib = sib.NextSibling {
			if _, stop := wrapperSet[sib]; stop {
				break
			}
			if sib.Type != html.ElementNode {
				continue
			}
			switch {
			case isElement(sib, "div") && hasClass(sib, "mw-heading3"):
				if h3 := childElement(sib, "h3"); h3 != nil {
					stack.push(2, nodeText(h3))
				}
			case isElement(sib, "div") && hasClass(sib, "mw-heading4"):
				if h4 := childElement(sib, "h4"); h4 != nil {
					stack.push(3, nodeText(h4))
				}
			case isElement(sib, "p"):
				if text := Clean(nodeText(sib)); text != "" {
					stack.appendSpan(text)
				}
			}
		}
	}
	tree.Sections = stack.finish()
	tree.References = wikipediaReferences(doc)
	return tree
}

// wikipediaReferences walks the inline reference spans. The URL is the
// first external link in each span, absent when the citation has none.
func wikipediaReferences(doc *goquery.Document) []models.Reference {
	refs := []models.Reference{}
	container := doc.Find("div.mw-content-container").First()
	if container.Length() == 0 {
		return refs
	}
	container.Find("span.reference-text").Each(func(i int, s *goquery.Selection) {
		href := s.Find("a.external.text[rel~='nofollow']").First().AttrOr("href", "")
		refs = append(refs, models.Reference{
			URL:  href,
			Text: nodeText(s.Nodes[0]),
		})
	})
	return refs
}
