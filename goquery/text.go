package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// elementText joins every descendant text node of the selection with a
// single space. Unlike Selection.Text, adjacent nodes never run together.
func elementText(sel *goquery.Selection) string {
	var parts []string
	for _, n := range sel.Nodes {
		parts = appendText(parts, n)
	}
	return strings.Join(parts, " ")
}

func appendText(parts []string, n *html.Node) []string {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			parts = append(parts, c.Data)
			continue
		}
		parts = appendText(parts, c)
	}
	return parts
}
