package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// logoSelectors is ordered from most to least specific; the first
// structurally valid candidate wins.
var logoSelectors = []string{
	`img[class*="logo"]`,
	`img[id*="logo"]`,
	`img[alt*="logo" i]`,
	`[class*="logo"] img`,
	`header img`,
	`a[href="/"] img`,
	`.navbar-brand img`,
	`h1 img`,
}

// Resolved URLs containing these substrings are placeholders, not logos.
var logoURLBlocklist = []string{"placeholder", "loading", "spinner", "blank", "transparent"}

// extractLogo returns the best logo candidate as an absolute URL, or "" when
// no raster/external-SVG logo exists. Inline <svg> logos are detected but not
// extractable as a URL.
func extractLogo(doc *goquery.Document, base *url.URL) string {
	for _, sel := range logoSelectors {
		logo := ""
		doc.Find(sel).EachWithBreak(func(_ int, img *goquery.Selection) bool {
			src := img.AttrOr("src", "")
			if src == "" {
				src = img.AttrOr("data-src", "")
			}
			if candidate := validLogoURL(src, base); candidate != "" {
				logo = candidate
				return false
			}
			return true
		})
		if logo != "" {
			return logo
		}
	}
	return ""
}

func validLogoURL(src string, base *url.URL) string {
	src = strings.TrimSpace(src)
	if src == "" || strings.HasPrefix(src, "data:") {
		return ""
	}
	abs := absoluteURL(src, base)
	if abs == "" {
		return ""
	}
	lower := strings.ToLower(abs)
	for _, bad := range logoURLBlocklist {
		if strings.Contains(lower, bad) {
			return ""
		}
	}
	return abs
}
