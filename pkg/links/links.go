// Package links extracts navigation links from a fetched page, normalizes
// and dedupes them, classifies each by inferred page type, and ranks
// candidates for scraping.
package links

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/launchkit/siteprofiler/models"
)

// Link is one internal navigation link found on a page.
type Link struct {
	URL      string          `json:"url"`
	Text     string          `json:"text"`
	PageType models.PageType `json:"page_type"`
}

// navContainers are the only places we look for links. Body-text links are
// deliberately excluded to avoid noise.
const navContainers = `nav, header, [role="navigation"], .nav, .navbar, .navigation, .menu, .main-menu, .site-nav, footer nav`

// typePattern pairs a compiled pattern with the page type it implies.
// Patterns are tested against href + anchor text, lowercased; first match
// wins.
type typePattern struct {
	re       *regexp.Regexp
	pageType models.PageType
}

var typePatterns = []typePattern{
	{regexp.MustCompile(`about|our[-_ ]story|who[-_ ]we[-_ ]are|company`), models.PageTypeAbout},
	{regexp.MustCompile(`contact|get[-_ ]in[-_ ]touch|reach[-_ ]us|location`), models.PageTypeContact},
	// Privacy and terms come before services: "terms-of-service" must not
	// classify as a services page.
	{regexp.MustCompile(`privacy`), models.PageTypePrivacy},
	{regexp.MustCompile(`terms|conditions|legal`), models.PageTypeTerms},
	{regexp.MustCompile(`service|what[-_ ]we[-_ ]do|offering|solution|treatment|menu`), models.PageTypeServices},
	{regexp.MustCompile(`team|staff|people|doctors|our[-_ ]experts`), models.PageTypeTeam},
	{regexp.MustCompile(`product|shop|store|catalog|collection`), models.PageTypeProducts},
	{regexp.MustCompile(`faq|frequently[-_ ]asked|questions|help`), models.PageTypeFAQ},
	{regexp.MustCompile(`blog|news|articles|insights|resources`), models.PageTypeBlog},
}

// pageTypePriority is the fixed scraping-priority order. Lower is fetched
// first.
var pageTypePriority = map[models.PageType]int{
	models.PageTypeAbout:    0,
	models.PageTypeContact:  1,
	models.PageTypeServices: 2,
	models.PageTypeTeam:     3,
	models.PageTypeProducts: 4,
	models.PageTypeFAQ:      5,
	models.PageTypeBlog:     6,
	models.PageTypePrivacy:  7,
	models.PageTypeTerms:    8,
	models.PageTypeOther:    9,
}

// ExtractNavigationLinks scans the navigation areas of html for internal
// links, normalizes them against baseURL, classifies each by page type, and
// dedupes by normalized URL (first occurrence wins).
func ExtractNavigationLinks(html, baseURL string) ([]Link, error) {
	base, err := url.Parse(baseURL)
	if err != nil || !base.IsAbs() {
		return nil, fmt.Errorf("invalid base URL %q", baseURL)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	homepage, err := NormalizeURL(baseURL, baseURL)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var out []Link
	doc.Find(navContainers).Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		text := strings.TrimSpace(a.Text())

		normalized, err := NormalizeURL(href, baseURL)
		if err != nil {
			return
		}
		target, _ := url.Parse(normalized)
		if target.Hostname() != base.Hostname() {
			return // external link
		}
		if normalized == homepage {
			return // the homepage itself is already fetched
		}
		if seen[normalized] {
			return
		}
		seen[normalized] = true

		out = append(out, Link{
			URL:      normalized,
			Text:     text,
			PageType: ClassifyPageType(href, text),
		})
	})
	return out, nil
}

// NormalizeURL resolves raw against base and strips fragment, query string,
// and trailing slash. The result is idempotent: normalizing a normalized URL
// returns it unchanged. Non-HTTP(S) results are rejected.
func NormalizeURL(raw, base string) (string, error) {
	baseParsed, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	ref, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	resolved := baseParsed.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", resolved.Scheme)
	}
	if resolved.Host == "" {
		return "", fmt.Errorf("URL %q has no host", raw)
	}
	resolved.Fragment = ""
	resolved.RawQuery = ""
	resolved.Path = strings.TrimSuffix(resolved.Path, "/")
	return resolved.String(), nil
}

// ClassifyPageType infers the page type from a link's href and anchor text.
// The first matching pattern wins; unmatched links are "other".
func ClassifyPageType(href, text string) models.PageType {
	subject := strings.ToLower(href + " " + text)
	for _, tp := range typePatterns {
		if tp.re.MatchString(subject) {
			return tp.pageType
		}
	}
	return models.PageTypeOther
}

// PrioritizeForScraping sorts links by the fixed page-type priority order
// (stable, so input order breaks ties) and truncates to maxPages.
func PrioritizeForScraping(ls []Link, maxPages int) []Link {
	sorted := make([]Link, len(ls))
	copy(sorted, ls)
	sort.SliceStable(sorted, func(i, j int) bool {
		return pageTypePriority[sorted[i].PageType] < pageTypePriority[sorted[j].PageType]
	})
	if maxPages >= 0 && len(sorted) > maxPages {
		sorted = sorted[:maxPages]
	}
	return sorted
}
