package preprocess

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// visionAttrWhitelist is the only attribute set the vision model needs:
// identity (class/id), styling hooks, and asset references.
var visionAttrWhitelist = map[string]bool{
	"class": true,
	"id":    true,
	"style": true,
	"src":   true,
	"alt":   true,
	"href":  true,
	"rel":   true,
	"type":  true,
}

// Landmark fallback order when the stripped document still exceeds the
// budget. Header, nav, and footer are kept ahead of the generic body
// landmarks because logo detection depends on them.
var visionLandmarks = []string{
	"header",
	"nav",
	"footer",
	`[class*="hero"]`,
	"main",
}

// ForVision strips html down to its structural skeleton: no scripts, no
// media payloads, no text nodes, and only whitelisted attributes. The result
// never exceeds limit bytes; pass 0 for the default.
func ForVision(rawHTML string, limit int) string {
	if limit <= 0 {
		limit = DefaultVisionBytes
	}

	doc, err := parse(rawHTML)
	if err != nil {
		return truncate(rawHTML, limit)
	}

	removeNodes(doc, "script, noscript, iframe, video, audio, canvas, object, embed, svg path, template")

	for _, n := range doc.Selection.Nodes {
		filterAttrs(n, visionAttrWhitelist)
		dropTextNodes(n)
	}

	body := doc.Find("body")
	out := outerHTML(body)
	if out == "" {
		out = rawHTML
	}
	if len(out) <= limit {
		return out
	}

	// Too big: keep only landmark regions in priority order.
	var b strings.Builder
	for _, sel := range visionLandmarks {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if b.Len() >= limit {
				return
			}
			fragment := outerHTML(s)
			if fragment == "" {
				return
			}
			if b.Len()+len(fragment) > limit {
				fragment = truncate(fragment, limit-b.Len())
			}
			b.WriteString(fragment)
		})
		if b.Len() >= limit {
			break
		}
	}
	if b.Len() > 0 {
		return truncate(b.String(), limit)
	}
	return truncate(out, limit)
}
