package source

import (
	"strings"

	"golang.org/x/net/html"
)

// Minimal traversal helpers over x/net/html. The listing sites are plain
// server-rendered pages; class and tag matching covers everything the
// parsers need.

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func isElement(n *html.Node, tag string) bool {
	return n.Type == html.ElementNode && n.Data == tag
}

// walk visits n and its subtree in document order until visit returns false.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if !visit(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}

// findAll collects every node in n's subtree matching the predicate.
func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	walk(n, func(c *html.Node) bool {
		if match(c) {
			found = append(found, c)
		}
		return true
	})
	return found
}

// findFirst returns the first node in document order matching the predicate.
func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	var found *html.Node
	walk(n, func(c *html.Node) bool {
		if match(c) {
			found = c
			return false
		}
		return true
	})
	return found
}

func findByClass(n *html.Node, tag, class string) *html.Node {
	return findFirst(n, func(c *html.Node) bool {
		return (tag == "" || isElement(c, tag)) && c.Type == html.ElementNode && hasClass(c, class)
	})
}

func findAllByClass(n *html.Node, tag, class string) []*html.Node {
	return findAll(n, func(c *html.Node) bool {
		return (tag == "" || isElement(c, tag)) && c.Type == html.ElementNode && hasClass(c, class)
	})
}

// text flattens all text nodes under n.
func text(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

// nextSiblingElement skips whitespace text nodes between elements.
func nextSiblingElement(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}
