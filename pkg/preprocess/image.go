package preprocess

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Containers likely to hold hero/banner imagery, covering common
// site-builder conventions (generic, Squarespace, Wix, WordPress).
var imageContainerSelectors = []string{
	`[class*="hero"]`,
	`[class*="banner"]`,
	`[class*="slider"]`,
	`[class*="carousel"]`,
	`[class*="gallery"]`,
	".sqs-block-image",
	".sqs-gallery",
	`[data-testid*="hero"]`,
	`[data-hook*="hero"]`,
	".wp-block-cover",
	".wp-block-gallery",
	".wp-block-media-text",
}

const imageTextPlaceholder = "[text]"

// ForImages builds an HTML fragment containing only the parts of the page
// plausibly carrying hero or gallery imagery: matching containers, standalone
// img/picture elements, and any style blocks declaring background images.
// Long text runs are replaced with a placeholder. The result never exceeds
// limit bytes; pass 0 for the default.
func ForImages(rawHTML string, limit int) string {
	if limit <= 0 {
		limit = DefaultImageBytes
	}

	doc, err := parse(rawHTML)
	if err != nil {
		return ""
	}

	removeNodes(doc, "script, noscript, iframe, svg, template")

	var b strings.Builder
	seen := make(map[string]bool)

	appendFragment := func(s *goquery.Selection) {
		if b.Len() >= limit {
			return
		}
		clampText(s)
		fragment := outerHTML(s)
		if fragment == "" || seen[fragment] {
			return
		}
		seen[fragment] = true
		if b.Len()+len(fragment) > limit {
			fragment = truncate(fragment, limit-b.Len())
		}
		b.WriteString(fragment)
		b.WriteString("\n")
	}

	for _, sel := range imageContainerSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			appendFragment(s)
		})
		if b.Len() >= limit {
			break
		}
	}

	// Standalone imagery outside any recognized container.
	doc.Find("picture, img").Each(func(_ int, s *goquery.Selection) {
		if b.Len() >= limit {
			return
		}
		if s.ParentsFiltered(strings.Join(imageContainerSelectors, ", ")).Length() > 0 {
			return // already captured with its container
		}
		appendFragment(s)
	})

	// Style blocks that set background images or image CSS variables matter
	// for hero detection even without an <img>.
	doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		if b.Len() >= limit {
			return
		}
		css := s.Text()
		if !strings.Contains(css, "background") && !strings.Contains(css, "--") {
			return
		}
		if !strings.Contains(css, "url(") {
			return
		}
		fragment := "<style>" + css + "</style>\n"
		if b.Len()+len(fragment) > limit {
			fragment = truncate(fragment, limit-b.Len())
		}
		b.WriteString(fragment)
	})

	return truncate(b.String(), limit)
}

// clampText replaces text runs longer than a short label with a placeholder,
// keeping the fragment about images rather than copy.
func clampText(s *goquery.Selection) {
	s.Find("p, span, h1, h2, h3, h4, li, blockquote").Each(func(_ int, t *goquery.Selection) {
		if len(strings.TrimSpace(t.Text())) > 80 {
			t.SetText(imageTextPlaceholder)
		}
	})
}
