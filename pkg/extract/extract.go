// Package extract implements the algorithmic (non-LLM) business-information
// extractor: a library of independent heuristics run against one parsed view
// of a page. Every sub-extractor follows the same shape (structured data
// first, CSS-selector heuristics next, free-text regex last) and returns an
// empty value instead of failing when nothing is found.
package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/launchkit/siteprofiler/models"
)

// Scan bounds applied to whole-document passes. These exist to bound
// worst-case cost on pathological pages, not to change results on normal
// ones.
const (
	maxScannedElements    = 5000
	maxScannedStyleBlocks = 30
	maxRegexMatches       = 200
)

// Extractor runs the full heuristic pipeline. It performs no I/O and is safe
// for concurrent use; all per-run accumulators are local to each call.
type Extractor struct{}

// New returns an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract parses rawHTML and runs every sub-extractor against it. It never
// returns nil and never panics on malformed input: on an unparseable page it
// returns the empty-but-fully-shaped record.
func (e *Extractor) Extract(rawHTML, baseURL string) *models.ExtractedBusinessInfo {
	info := models.NewExtractedBusinessInfo()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return info
	}
	base, _ := url.Parse(baseURL)

	body := doc.Find("body").Text()

	info.Emails = extractEmails(doc, body)
	info.Phones = extractPhones(doc, body)
	info.Addresses = extractAddresses(doc, body)
	info.Coordinates = extractCoordinates(doc)
	info.Hours, info.BusinessHours = extractHours(doc, body)

	info.SocialLinks = extractSocialLinks(doc, base)

	info.LogoURL = extractLogo(doc, base)
	info.BrandColors = extractBrandColors(doc)
	info.Fonts = extractFonts(doc)
	info.Typography = extractTypography(doc)
	info.DesignTokens = extractDesignTokens(doc)

	info.HeroSection = extractHero(doc, base)
	info.HeroImages = extractHeroImages(doc, base)
	info.Galleries = extractGalleries(doc, base)

	info.SiteTitle, info.SiteDescription, info.Favicon = extractSiteMeta(doc, base)
	info.BusinessDescription = extractDescription(doc)
	info.Tagline = extractTagline(doc, info.HeroSection)
	info.KeyFeatures = extractKeyFeatures(doc)

	info.Services = extractServices(doc)
	info.Testimonials = extractTestimonials(doc)
	info.FAQ = extractFAQ(doc)
	info.ProductCategories = extractCategories(doc, base)
	info.FooterContent = extractFooter(doc)

	info.PageContent = extractPageContent(doc, rawHTML, baseURL)

	return info
}

// absoluteURL resolves raw against base. Returns "" for unresolvable or
// non-HTTP results.
func absoluteURL(raw string, base *url.URL) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}
	if ref.Scheme != "http" && ref.Scheme != "https" {
		return ""
	}
	return ref.String()
}

// cleanText trims and collapses internal whitespace.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// firstText returns the cleaned text of the first match of any selector in
// order.
func firstText(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if t := cleanText(doc.Find(sel).First().Text()); t != "" {
			return t
		}
	}
	return ""
}

// itempropText reads a schema.org microdata property's text or content
// attribute from within scope.
func itempropText(scope *goquery.Selection, prop string) string {
	s := scope.Find(`[itemprop="` + prop + `"]`).First()
	if s.Length() == 0 {
		return ""
	}
	if content, ok := s.Attr("content"); ok && strings.TrimSpace(content) != "" {
		return cleanText(content)
	}
	return cleanText(s.Text())
}

// dedupeCapped appends item to list if its key is unseen, up to cap.
func dedupeCapped(list []string, seen map[string]bool, item string, max int) []string {
	key := strings.ToLower(item)
	if item == "" || seen[key] || len(list) >= max {
		return list
	}
	seen[key] = true
	return append(list, item)
}
