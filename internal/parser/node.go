
package parser

import (
	"strings"

	"golang.org/x/net/html"
)

// nodeText extracts visible text under n, trimmed fragments joined by
// single spaces, the way the rest of the pipeline expects heading and
// reference text.
func nodeText(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		for ; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				if t := strings.TrimSpace(c.Data); t != "" {
					parts = append(parts, t)
				}
			case html.ElementNode:
				walk(c.FirstChild)
			}
		}
	}
	walk(n.FirstChild)
	return strings.Join(parts, " ")
}

func isElement(n *html.Node, tag string) bool {
	return n != nil && n.Type == html.ElementNode && n.Data == tag
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

// childElement returns the first direct child element with the given tag.
func childElement(n *html.Node, tag string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isElement(c, tag) {
			return c
		}
	}
	return nil
}
