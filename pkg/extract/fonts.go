package extract

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/launchkit/siteprofiler/models"
)

var (
	fontFamilyRe = regexp.MustCompile(`font-family\s*:\s*([^;}"']+)`)
	// Google Fonts URLs carry family names in the query string.
	googleFontsFamilyRe = regexp.MustCompile(`family=([^&:@]+)`)
)

// Generic CSS keywords and stacks that are not brand fonts.
var genericFonts = map[string]bool{
	"serif": true, "sans-serif": true, "monospace": true, "cursive": true,
	"fantasy": true, "system-ui": true, "inherit": true, "initial": true,
	"unset": true, "-apple-system": true, "blinkmacsystemfont": true,
}

// extractFonts collects font families from font service links, style blocks,
// and inline styles, frequency-ranked and capped.
func extractFonts(doc *goquery.Document) []string {
	counts := make(map[string]int)
	order := make(map[string]int)
	next := 0
	vote := func(name string, weight int) {
		name = canonicalFontName(name)
		if name == "" {
			return
		}
		if _, ok := order[name]; !ok {
			order[name] = next
			next++
		}
		counts[name] += weight
	}

	// Font service links name the families directly; weight them heavily.
	doc.Find(`link[href*="fonts.googleapis.com"], link[href*="fonts.bunny.net"]`).Each(func(_ int, l *goquery.Selection) {
		href, _ := l.Attr("href")
		for _, m := range googleFontsFamilyRe.FindAllStringSubmatch(href, 10) {
			name, err := url.QueryUnescape(m[1])
			if err != nil {
				name = m[1]
			}
			vote(strings.ReplaceAll(name, "+", " "), 5)
		}
	})

	blocks := 0
	doc.Find("style").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if blocks >= maxScannedStyleBlocks {
			return false
		}
		blocks++
		for _, m := range fontFamilyRe.FindAllStringSubmatch(s.Text(), maxRegexMatches) {
			vote(firstFontInStack(m[1]), 2)
		}
		return true
	})

	scanned := 0
	doc.Find("[style]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if scanned >= maxScannedElements {
			return false
		}
		scanned++
		style, _ := s.Attr("style")
		for _, m := range fontFamilyRe.FindAllStringSubmatch(style, 5) {
			vote(firstFontInStack(m[1]), 1)
		}
		return true
	})

	type kv struct {
		name  string
		count int
	}
	ranked := make([]kv, 0, len(counts))
	for n, c := range counts {
		ranked = append(ranked, kv{n, c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return order[ranked[i].name] < order[ranked[j].name]
	})

	out := []string{}
	for _, r := range ranked {
		if len(out) >= models.MaxFonts {
			break
		}
		out = append(out, r.name)
	}
	return out
}

// firstFontInStack returns the first family of a comma-separated stack.
func firstFontInStack(stack string) string {
	first := strings.SplitN(stack, ",", 2)[0]
	return strings.Trim(strings.TrimSpace(first), `"'`)
}

func canonicalFontName(name string) string {
	name = strings.Trim(strings.TrimSpace(name), `"'`)
	if name == "" || genericFonts[strings.ToLower(name)] {
		return ""
	}
	if len(name) > 50 {
		return ""
	}
	return name
}

// extractTypography derives per-role font treatments from heading and body
// inline/declared styles. Only roles with at least one observed property are
// emitted.
func extractTypography(doc *goquery.Document) *models.Typography {
	heading := typographyFor(doc, "h1, h2")
	body := typographyFor(doc, "p, body")
	accent := typographyFor(doc, `a, button, [class*="btn"]`)

	if heading == nil && body == nil && accent == nil {
		return nil
	}
	return &models.Typography{Heading: heading, Body: body, Accent: accent}
}

var (
	fontWeightRe = regexp.MustCompile(`font-weight\s*:\s*([^;}]+)`)
	fontSizeRe   = regexp.MustCompile(`font-size\s*:\s*([^;}]+)`)
	cssColorRe   = regexp.MustCompile(`(?:^|;)\s*color\s*:\s*([^;}]+)`)
)

func typographyFor(doc *goquery.Document, selector string) *models.TypographyRole {
	role := &models.TypographyRole{}
	found := false

	doc.Find(selector).EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= 50 || found && role.FontFamily != "" && role.Color != "" {
			return false
		}
		style, ok := s.Attr("style")
		if !ok {
			return true
		}
		if role.FontFamily == "" {
			if m := fontFamilyRe.FindStringSubmatch(style); m != nil {
				role.FontFamily = canonicalFontName(firstFontInStack(m[1]))
				found = found || role.FontFamily != ""
			}
		}
		if role.FontWeight == "" {
			if m := fontWeightRe.FindStringSubmatch(style); m != nil {
				role.FontWeight = cleanText(m[1])
				found = true
			}
		}
		if role.FontSize == "" {
			if m := fontSizeRe.FindStringSubmatch(style); m != nil {
				role.FontSize = cleanText(m[1])
				found = true
			}
		}
		if role.Color == "" {
			if m := cssColorRe.FindStringSubmatch(style); m != nil {
				if hex, ok := normalizeColor(cleanText(m[1])); ok {
					role.Color = hex
					found = true
				}
			}
		}
		return true
	})

	if !found {
		return nil
	}
	return role
}
