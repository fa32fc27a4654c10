package extract

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/launchkit/siteprofiler/models"
)

// Color source weights. These encode how strongly each source signals "this
// is a brand color", not how often it appears.
const (
	weightThemeColorMeta = 10.0
	weightBrandCSSVar    = 5.0
	weightInlineStyle    = 1.0
	weightStyleBlock     = 0.5
	headerBoost          = 2.0 // multiplier for inline styles in header/nav/hero
)

// Colors closer than this RGB Euclidean distance collapse into one cluster.
const colorClusterDistance = 30.0

// Channel spread at or below this is near-grayscale and excluded as
// non-brand.
const grayscaleSpread = 15

var (
	colorTokenRe = regexp.MustCompile(`#[0-9a-fA-F]{3,8}\b|rgba?\([^)]+\)|hsla?\([^)]+\)`)
	brandVarRe   = regexp.MustCompile(`--[a-zA-Z0-9-]*(?:primary|accent|brand|secondary|theme)[a-zA-Z0-9-]*\s*:\s*([^;}]+)`)
)

type colorVote struct {
	hex    string
	weight float64
	order  int // first-seen order, breaks weight ties deterministically
}

type colorTally struct {
	votes map[string]*colorVote
	next  int
}

func newColorTally() *colorTally {
	return &colorTally{votes: make(map[string]*colorVote)}
}

func (t *colorTally) add(raw string, weight float64) {
	hex, ok := normalizeColor(raw)
	if !ok || !isBrandable(hex) {
		return
	}
	if v, exists := t.votes[hex]; exists {
		v.weight += weight
		return
	}
	t.votes[hex] = &colorVote{hex: hex, weight: weight, order: t.next}
	t.next++
}

// extractBrandColors harvests color votes from the theme-color meta tag,
// brand-named CSS custom properties, inline styles (boosted inside
// header/nav/hero containers), and style blocks, then clusters
// near-duplicates and returns the top representatives.
func extractBrandColors(doc *goquery.Document) []string {
	tally := newColorTally()

	// Highest-confidence single signal.
	if theme := doc.Find(`meta[name="theme-color"]`).AttrOr("content", ""); theme != "" {
		tally.add(theme, weightThemeColorMeta)
	}

	// Brand-named CSS custom properties inside style blocks.
	styleBlocks := 0
	doc.Find("style").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if styleBlocks >= maxScannedStyleBlocks {
			return false
		}
		styleBlocks++
		css := s.Text()
		for _, m := range brandVarRe.FindAllStringSubmatch(css, maxRegexMatches) {
			tally.add(strings.TrimSpace(m[1]), weightBrandCSSVar)
		}
		// Generic declarations in the same block count weakly.
		for _, tok := range colorTokenRe.FindAllString(css, maxRegexMatches) {
			tally.add(tok, weightStyleBlock)
		}
		return true
	})

	// Inline style attributes, boosted in brand-bearing regions.
	scanned := 0
	doc.Find("[style]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if scanned >= maxScannedElements {
			return false
		}
		scanned++
		style, _ := s.Attr("style")
		weight := weightInlineStyle
		if s.ParentsFiltered(`header, nav, [class*="hero"], [class*="banner"]`).Length() > 0 ||
			s.Is(`header, nav, [class*="hero"], [class*="banner"]`) {
			weight *= headerBoost
		}
		for _, tok := range colorTokenRe.FindAllString(style, 20) {
			tally.add(tok, weight)
		}
		return true
	})

	return rankAndClusterColors(tally)
}

func rankAndClusterColors(t *colorTally) []string {
	ranked := make([]*colorVote, 0, len(t.votes))
	for _, v := range t.votes {
		ranked = append(ranked, v)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].weight != ranked[j].weight {
			return ranked[i].weight > ranked[j].weight
		}
		return ranked[i].order < ranked[j].order
	})

	out := []string{}
	for _, v := range ranked {
		if len(out) >= models.MaxBrandColors {
			break
		}
		clustered := false
		for _, kept := range out {
			if colorDistance(v.hex, kept) < colorClusterDistance {
				clustered = true
				break
			}
		}
		if !clustered {
			out = append(out, v.hex)
		}
	}
	return out
}

// normalizeColor converts any supported color syntax to lowercase #rrggbb.
func normalizeColor(raw string) (string, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(raw, "#"):
		return normalizeHex(raw)
	case strings.HasPrefix(raw, "rgb"):
		return normalizeRGBFunc(raw)
	case strings.HasPrefix(raw, "hsl"):
		return normalizeHSLFunc(raw)
	}
	return "", false
}

func normalizeHex(raw string) (string, bool) {
	h := strings.TrimPrefix(raw, "#")
	switch len(h) {
	case 3:
		h = fmt.Sprintf("%c%c%c%c%c%c", h[0], h[0], h[1], h[1], h[2], h[2])
	case 4: // #rgba, drop alpha
		h = fmt.Sprintf("%c%c%c%c%c%c", h[0], h[0], h[1], h[1], h[2], h[2])
	case 6:
	case 8: // #rrggbbaa, drop alpha
		h = h[:6]
	default:
		return "", false
	}
	if _, err := strconv.ParseUint(h, 16, 32); err != nil {
		return "", false
	}
	return "#" + h, true
}

func normalizeRGBFunc(raw string) (string, bool) {
	open := strings.IndexByte(raw, '(')
	end := strings.IndexByte(raw, ')')
	if open < 0 || end <= open {
		return "", false
	}
	parts := splitCSSArgs(raw[open+1 : end])
	if len(parts) < 3 {
		return "", false
	}
	var ch [3]int
	for i := 0; i < 3; i++ {
		p := parts[i]
		if strings.HasSuffix(p, "%") {
			pct, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
			if err != nil {
				return "", false
			}
			ch[i] = int(math.Round(pct / 100 * 255))
		} else {
			v, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return "", false
			}
			ch[i] = int(math.Round(v))
		}
		if ch[i] < 0 || ch[i] > 255 {
			return "", false
		}
	}
	return fmt.Sprintf("#%02x%02x%02x", ch[0], ch[1], ch[2]), true
}

func normalizeHSLFunc(raw string) (string, bool) {
	open := strings.IndexByte(raw, '(')
	end := strings.IndexByte(raw, ')')
	if open < 0 || end <= open {
		return "", false
	}
	parts := splitCSSArgs(raw[open+1 : end])
	if len(parts) < 3 {
		return "", false
	}
	h, err1 := strconv.ParseFloat(strings.TrimSuffix(parts[0], "deg"), 64)
	s, err2 := strconv.ParseFloat(strings.TrimSuffix(parts[1], "%"), 64)
	l, err3 := strconv.ParseFloat(strings.TrimSuffix(parts[2], "%"), 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return "", false
	}
	r, g, b := hslToRGB(h, s/100, l/100)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b), true
}

func splitCSSArgs(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	out := fields[:0]
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func hslToRGB(h, s, l float64) (int, int, int) {
	h = math.Mod(math.Mod(h, 360)+360, 360)
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return int(math.Round((r + m) * 255)),
		int(math.Round((g + m) * 255)),
		int(math.Round((b + m) * 255))
}

// isBrandable excludes pure white/black and near-grayscale colors.
func isBrandable(hex string) bool {
	r, g, b := hexChannels(hex)
	if (r == 255 && g == 255 && b == 255) || (r == 0 && g == 0 && b == 0) {
		return false
	}
	hi := max3(r, g, b)
	lo := min3(r, g, b)
	return hi-lo > grayscaleSpread
}

func hexChannels(hex string) (int, int, int) {
	v, _ := strconv.ParseUint(strings.TrimPrefix(hex, "#"), 16, 32)
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}

func colorDistance(a, b string) float64 {
	r1, g1, b1 := hexChannels(a)
	r2, g2, b2 := hexChannels(b)
	dr, dg, db := float64(r1-r2), float64(g1-g2), float64(b1-b2)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

func max3(a, b, c int) int {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
