package preprocess

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ProminentMarker flags text the page presents as visually important, so a
// text-only model knows what a sighted visitor would notice first.
const ProminentMarker = "[PROMINENT]"

var mainContentSelectors = []string{
	"main",
	`[role="main"]`,
	"article",
	"#content",
	".content",
	"body",
}

var heroIshContainers = `[class*="hero"], [class*="banner"], [class*="jumbotron"]`

// ForText converts html into a clean text document for LLM consumption:
// title and meta description up top, then a markdown-style walk of the main
// content with headings, bullet lists, and resolved links. The first heading
// and hero-area text carry an explicit prominence marker. The result never
// exceeds limit bytes; pass 0 for the default.
func ForText(rawHTML, baseURL string, limit int) string {
	if limit <= 0 {
		limit = DefaultTextBytes
	}

	doc, err := parse(rawHTML)
	if err != nil {
		return truncate(collapseWhitespace(rawHTML), limit)
	}

	removeNodes(doc, "script, noscript, style, iframe, svg, template, form")

	var b strings.Builder
	if title := collapseWhitespace(doc.Find("title").First().Text()); title != "" {
		fmt.Fprintf(&b, "TITLE: %s\n", title)
	}
	if desc := strings.TrimSpace(doc.Find(`meta[name="description"]`).AttrOr("content", "")); desc != "" {
		fmt.Fprintf(&b, "DESCRIPTION: %s\n", collapseWhitespace(desc))
	}
	b.WriteString("\n")

	var base *url.URL
	if baseURL != "" {
		base, _ = url.Parse(baseURL)
	}

	w := &textWalker{b: &b, base: base, limit: limit}

	// Hero text first, marked prominent. Child elements are joined with
	// spaces so headline and tagline do not run together.
	doc.Find(heroIshContainers).First().Each(func(_ int, s *goquery.Selection) {
		if text := collapseWhitespace(spacedText(s)); text != "" {
			fmt.Fprintf(&b, "%s %s\n\n", ProminentMarker, truncate(text, 400))
			w.heroSeen = true
		}
	})

	var content *goquery.Selection
	for _, sel := range mainContentSelectors {
		if found := doc.Find(sel).First(); found.Length() > 0 {
			content = found
			break
		}
	}
	if content != nil {
		w.walk(content)
	}

	return truncate(strings.TrimSpace(b.String()), limit)
}

type textWalker struct {
	b            *strings.Builder
	base         *url.URL
	limit        int
	headingsSeen int
	heroSeen     bool
}

func (w *textWalker) full() bool {
	return w.b.Len() >= w.limit
}

func (w *textWalker) walk(s *goquery.Selection) {
	s.Children().Each(func(_ int, child *goquery.Selection) {
		if w.full() {
			return
		}
		switch goquery.NodeName(child) {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			w.writeHeading(child)
		case "ul", "ol":
			child.Find("li").Each(func(_ int, li *goquery.Selection) {
				if w.full() {
					return
				}
				if text := collapseWhitespace(li.Text()); text != "" {
					fmt.Fprintf(w.b, "- %s\n", text)
				}
			})
			w.b.WriteString("\n")
		case "a":
			w.writeLink(child)
		case "p", "blockquote", "span", "figcaption":
			if text := collapseWhitespace(child.Text()); text != "" {
				fmt.Fprintf(w.b, "%s\n\n", text)
			}
		case "img", "picture", "br", "hr", "button", "input", "select", "label":
			// no text value
		default:
			w.walk(child)
		}
	})
}

func (w *textWalker) writeHeading(s *goquery.Selection) {
	text := collapseWhitespace(s.Text())
	if text == "" {
		return
	}
	level := 1
	switch goquery.NodeName(s) {
	case "h2":
		level = 2
	case "h3":
		level = 3
	case "h4", "h5", "h6":
		level = 4
	}
	prefix := strings.Repeat("#", level)
	// The first heading on the page is what a visitor reads first.
	if w.headingsSeen == 0 && !w.heroSeen {
		fmt.Fprintf(w.b, "%s %s %s\n\n", prefix, ProminentMarker, text)
	} else {
		fmt.Fprintf(w.b, "%s %s\n\n", prefix, text)
	}
	w.headingsSeen++
}

func (w *textWalker) writeLink(s *goquery.Selection) {
	text := collapseWhitespace(s.Text())
	href := s.AttrOr("href", "")
	if text == "" {
		return
	}
	if href != "" && w.base != nil {
		if ref, err := url.Parse(href); err == nil {
			href = w.base.ResolveReference(ref).String()
		}
	}
	if href == "" {
		fmt.Fprintf(w.b, "%s\n", text)
		return
	}
	fmt.Fprintf(w.b, "[%s](%s)\n", text, href)
}
