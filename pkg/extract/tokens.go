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

// Token source weights: explicit design-system declarations outrank
// incidental inline values.
const (
	tokenWeightCSSVar   = 4.0
	tokenWeightStyleTag = 2.0
	tokenWeightInline   = 1.0
	tokenWeightUtility  = 1.5
)

var (
	spacingDeclRe = regexp.MustCompile(`(?:padding|margin|gap)(?:-[a-z]+)?\s*:\s*([0-9.]+)(px|rem|em)`)
	radiusDeclRe  = regexp.MustCompile(`border-radius\s*:\s*([0-9.]+)(px|rem|em|%)`)
	shadowDeclRe  = regexp.MustCompile(`box-shadow\s*:\s*([^;}]+)`)

	spacingVarRe = regexp.MustCompile(`--[a-zA-Z0-9-]*(?:space|spacing|gap)[a-zA-Z0-9-]*\s*:\s*([0-9.]+)(px|rem|em)`)
	radiusVarRe  = regexp.MustCompile(`--[a-zA-Z0-9-]*radius[a-zA-Z0-9-]*\s*:\s*([0-9.]+)(px|rem|em|%)`)
	shadowVarRe  = regexp.MustCompile(`--[a-zA-Z0-9-]*shadow[a-zA-Z0-9-]*\s*:\s*([^;}]+)`)
)

// tailwindSpacing maps utility-class spacing suffixes to pixel values
// (Tailwind's default 4px scale).
var tailwindSpacing = map[string]string{
	"1": "4px", "2": "8px", "3": "12px", "4": "16px", "5": "20px",
	"6": "24px", "8": "32px", "10": "40px", "12": "48px", "16": "64px",
	"20": "80px", "24": "96px",
}

// tailwindRadius maps rounded-* suffixes to their radius values.
var tailwindRadius = map[string]string{
	"sm": "2px", "": "4px", "md": "6px", "lg": "8px",
	"xl": "12px", "2xl": "16px", "3xl": "24px", "full": "9999px",
}

var (
	tailwindSpacingClassRe = regexp.MustCompile(`\b(?:[pm][txybrl]?|gap)-(\d+)\b`)
	tailwindRadiusClassRe  = regexp.MustCompile(`\brounded(?:-(sm|md|lg|xl|2xl|3xl|full))?\b`)
	tailwindShadowClassRe  = regexp.MustCompile(`\bshadow(?:-(sm|md|lg|xl|2xl))?\b`)
)

// tailwindShadow maps shadow-* utility suffixes to canonical CSS shadows.
var tailwindShadow = map[string]string{
	"sm":  "0 1px 2px 0 rgba(0,0,0,0.05)",
	"":    "0 1px 3px 0 rgba(0,0,0,0.1)",
	"md":  "0 4px 6px -1px rgba(0,0,0,0.1)",
	"lg":  "0 10px 15px -3px rgba(0,0,0,0.1)",
	"xl":  "0 20px 25px -5px rgba(0,0,0,0.1)",
	"2xl": "0 25px 50px -12px rgba(0,0,0,0.25)",
}

// tokenTally accumulates weighted votes per canonical value, preserving
// first-seen order for deterministic tie-breaks.
type tokenTally struct {
	weights map[string]float64
	order   []string
}

func newTokenTally() *tokenTally {
	return &tokenTally{weights: make(map[string]float64)}
}

func (t *tokenTally) add(value string, weight float64) {
	if value == "" {
		return
	}
	if _, ok := t.weights[value]; !ok {
		t.order = append(t.order, value)
	}
	t.weights[value] += weight
}

func (t *tokenTally) ranked() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	sort.SliceStable(out, func(i, j int) bool {
		return t.weights[out[i]] > t.weights[out[j]]
	})
	return out
}

// extractDesignTokens mines spacing, border-radius, and shadow values from
// CSS custom properties, style tags, inline styles, and Tailwind utility
// classes. Values are canonicalized before voting so near-duplicates
// collapse; frequency affects ranking, not presence.
func extractDesignTokens(doc *goquery.Document) *models.DesignTokens {
	spacing := newTokenTally()
	radius := newTokenTally()
	shadows := newTokenTally()

	blocks := 0
	doc.Find("style").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if blocks >= maxScannedStyleBlocks {
			return false
		}
		blocks++
		css := s.Text()

		for _, m := range spacingVarRe.FindAllStringSubmatch(css, maxRegexMatches) {
			spacing.add(canonicalLength(m[1], m[2]), tokenWeightCSSVar)
		}
		for _, m := range radiusVarRe.FindAllStringSubmatch(css, maxRegexMatches) {
			radius.add(canonicalLength(m[1], m[2]), tokenWeightCSSVar)
		}
		for _, m := range shadowVarRe.FindAllStringSubmatch(css, maxRegexMatches) {
			shadows.add(canonicalShadow(m[1]), tokenWeightCSSVar)
		}

		for _, m := range spacingDeclRe.FindAllStringSubmatch(css, maxRegexMatches) {
			spacing.add(canonicalLength(m[1], m[2]), tokenWeightStyleTag)
		}
		for _, m := range radiusDeclRe.FindAllStringSubmatch(css, maxRegexMatches) {
			radius.add(canonicalLength(m[1], m[2]), tokenWeightStyleTag)
		}
		for _, m := range shadowDeclRe.FindAllStringSubmatch(css, maxRegexMatches) {
			shadows.add(canonicalShadow(m[1]), tokenWeightStyleTag)
		}
		return true
	})

	// Inline styles on semantically important elements only.
	doc.Find(`header [style], main [style], section[style], [class*="hero"] [style], button[style], [class*="card"][style]`).
		EachWithBreak(func(i int, s *goquery.Selection) bool {
			if i >= maxScannedElements {
				return false
			}
			style, _ := s.Attr("style")
			for _, m := range spacingDeclRe.FindAllStringSubmatch(style, 10) {
				spacing.add(canonicalLength(m[1], m[2]), tokenWeightInline)
			}
			for _, m := range radiusDeclRe.FindAllStringSubmatch(style, 10) {
				radius.add(canonicalLength(m[1], m[2]), tokenWeightInline)
			}
			for _, m := range shadowDeclRe.FindAllStringSubmatch(style, 10) {
				shadows.add(canonicalShadow(m[1]), tokenWeightInline)
			}
			return true
		})

	// Utility classes resolve through fixed lookup tables.
	scanned := 0
	doc.Find("[class]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if scanned >= maxScannedElements {
			return false
		}
		scanned++
		class, _ := s.Attr("class")
		for _, m := range tailwindSpacingClassRe.FindAllStringSubmatch(class, 10) {
			if v, ok := tailwindSpacing[m[1]]; ok {
				spacing.add(v, tokenWeightUtility)
			}
		}
		for _, m := range tailwindRadiusClassRe.FindAllStringSubmatch(class, 5) {
			if v, ok := tailwindRadius[m[1]]; ok {
				radius.add(v, tokenWeightUtility)
			}
		}
		for _, m := range tailwindShadowClassRe.FindAllStringSubmatch(class, 5) {
			if v, ok := tailwindShadow[m[1]]; ok {
				shadows.add(v, tokenWeightUtility)
			}
		}
		return true
	})

	spacingValues := clusterLengths(spacing.ranked(), models.MaxSpacingValues)
	radiusValues := clusterLengths(radius.ranked(), models.MaxRadiusValues)
	shadowValues := shadows.ranked()
	if len(shadowValues) > models.MaxShadowValues {
		shadowValues = shadowValues[:models.MaxShadowValues]
	}

	if len(spacingValues) == 0 && len(radiusValues) == 0 && len(shadowValues) == 0 {
		return nil
	}

	tokens := &models.DesignTokens{}
	if len(spacingValues) > 0 {
		tokens.Spacing = &models.SpacingTokens{Values: spacingValues, Unit: "px"}
	}
	if len(radiusValues) > 0 {
		tokens.BorderRadius = &models.RadiusTokens{Values: radiusValues}
	}
	if len(shadowValues) > 0 {
		tokens.Shadows = shadowValues
	}
	return tokens
}

// canonicalLength converts rem/em to px (16px base) and renders a canonical
// "<n>px" form so equal lengths in different units collapse.
func canonicalLength(num, unit string) string {
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return ""
	}
	switch unit {
	case "rem", "em":
		v *= 16
	case "%":
		// Percentage radii (e.g. 50% circles) stay as-is.
		return fmt.Sprintf("%g%%", v)
	}
	if v < 0 || v > 512 {
		return ""
	}
	return fmt.Sprintf("%gpx", math.Round(v*10)/10)
}

// canonicalShadow collapses whitespace so duplicate shadows dedupe cleanly.
func canonicalShadow(s string) string {
	s = cleanText(s)
	if s == "" || s == "none" || len(s) > 120 {
		return ""
	}
	return strings.ToLower(s)
}

// clusterLengths drops values numerically close to an already-kept value
// (within 2px), keeping the higher-ranked representative, then caps.
func clusterLengths(ranked []string, max int) []string {
	out := []string{}
	for _, v := range ranked {
		if len(out) >= max {
			break
		}
		pv, ok := lengthPx(v)
		clustered := false
		if ok {
			for _, kept := range out {
				kv, kok := lengthPx(kept)
				if kok && math.Abs(pv-kv) <= 2 {
					clustered = true
					break
				}
			}
		}
		if !clustered {
			out = append(out, v)
		}
	}
	return out
}

func lengthPx(v string) (float64, bool) {
	if !strings.HasSuffix(v, "px") {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
	return f, err == nil
}
