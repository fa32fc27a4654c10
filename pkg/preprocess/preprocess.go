// Package preprocess reduces raw HTML into three size-bounded views, each
// shaped for a different downstream consumer: a structure-only document for
// vision-based brand analysis, a clean text document with prominence markers
// for text extraction, and an image-focused fragment for image extraction.
package preprocess

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Default byte ceilings per view.
const (
	DefaultVisionBytes = 10 * 1024
	DefaultTextBytes   = 15 * 1024
	DefaultImageBytes  = 10 * 1024
)

func parse(rawHTML string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
}

// truncate cuts s at limit without splitting a UTF-8 sequence.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := s[:limit]
	// Back off partial rune bytes at the boundary.
	for len(cut) > 0 && cut[len(cut)-1]&0xC0 == 0x80 {
		cut = cut[:len(cut)-1]
	}
	return cut
}

// removeNodes drops every match of selector from the document.
func removeNodes(doc *goquery.Document, selector string) {
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})
}

// filterAttrs removes all attributes not in keep from n and its subtree.
func filterAttrs(n *html.Node, keep map[string]bool) {
	if n.Type == html.ElementNode {
		filtered := n.Attr[:0]
		for _, a := range n.Attr {
			if keep[a.Key] {
				filtered = append(filtered, a)
			}
		}
		n.Attr = filtered
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		filterAttrs(c, keep)
	}
}

// dropTextNodes removes every text node under n.
func dropTextNodes(n *html.Node) {
	var next *html.Node
	for c := n.FirstChild; c != nil; c = next {
		next = c.NextSibling
		if c.Type == html.TextNode {
			n.RemoveChild(c)
			continue
		}
		dropTextNodes(c)
	}
}

// outerHTML renders a selection, swallowing render errors into "".
func outerHTML(s *goquery.Selection) string {
	out, err := goquery.OuterHtml(s)
	if err != nil {
		return ""
	}
	return out
}

// collapseWhitespace squeezes runs of whitespace into single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// spacedText extracts the text of s with a space at every element boundary.
// goquery's Text() concatenates child nodes directly, which glues adjacent
// headings and paragraphs together.
func spacedText(s *goquery.Selection) string {
	var parts []string
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		text := c.Text()
		if goquery.NodeName(c) != "#text" {
			text = spacedText(c)
		}
		if text = strings.TrimSpace(text); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, " ")
}
