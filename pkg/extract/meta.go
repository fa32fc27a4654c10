package extract

import (
	"net/url"
	"strings"
	"sync"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/pemistahl/lingua-go"

	"github.com/launchkit/siteprofiler/models"
)

// extractSiteMeta reads the page title, meta description, and favicon URL.
// og: tags win over plain meta tags where both exist.
func extractSiteMeta(doc *goquery.Document, base *url.URL) (title, description, favicon string) {
	if og, ok := doc.Find(`meta[property="og:site_name"]`).Attr("content"); ok && cleanText(og) != "" {
		title = cleanText(og)
	} else {
		title = cleanText(doc.Find("title").First().Text())
	}

	if og, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok && cleanText(og) != "" {
		description = cleanText(og)
	} else if md, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		description = cleanText(md)
	}

	for _, sel := range []string{
		`link[rel="icon"]`,
		`link[rel="shortcut icon"]`,
		`link[rel="apple-touch-icon"]`,
	} {
		if href, ok := doc.Find(sel).First().Attr("href"); ok {
			if u := absoluteURL(href, base); u != "" {
				favicon = u
				break
			}
		}
	}
	if favicon == "" && base != nil {
		favicon = base.Scheme + "://" + base.Host + "/favicon.ico"
	}
	return title, description, favicon
}

// extractDescription prefers an about/intro section's first paragraph over
// the meta description, which is often SEO boilerplate.
func extractDescription(doc *goquery.Document) string {
	for _, sel := range []string{
		`[class*="about"] p`,
		`[class*="intro"] p`,
		`[id*="about"] p`,
		`main p`,
	} {
		found := ""
		doc.Find(sel).EachWithBreak(func(_ int, p *goquery.Selection) bool {
			t := cleanText(p.Text())
			if len(t) >= 80 && len(t) <= 600 {
				found = t
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}
	if md, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		return cleanText(md)
	}
	return ""
}

// extractTagline looks for a short slogan near the top of the page. The hero
// subheadline is the best candidate when a hero exists.
func extractTagline(doc *goquery.Document, hero *models.HeroSection) string {
	if hero != nil && hero.Subheadline != "" && len(hero.Subheadline) <= 120 {
		return hero.Subheadline
	}
	for _, sel := range []string{
		`[class*="tagline"]`,
		`[class*="slogan"]`,
		`header p`,
		`h1 + p`,
	} {
		t := cleanText(doc.Find(sel).First().Text())
		if t != "" && len(t) <= 120 {
			return t
		}
	}
	return ""
}

// extractKeyFeatures collects short benefit statements from feature grids and
// lists near headings that advertise them.
func extractKeyFeatures(doc *goquery.Document) []string {
	out := []string{}
	seen := make(map[string]bool)

	doc.Find(`[class*="feature"], [class*="benefit"], [class*="why-us"], [class*="usp"]`).Each(func(i int, s *goquery.Selection) {
		if i >= 40 || len(out) >= models.MaxKeyFeatures {
			return
		}
		t := cleanText(s.Find("h3, h4, [class*='title'], strong").First().Text())
		if t == "" {
			t = cleanText(s.Text())
		}
		if len(t) >= 3 && len(t) <= 100 {
			out = dedupeCapped(out, seen, t, models.MaxKeyFeatures)
		}
	})

	if len(out) == 0 {
		doc.Find("h2, h3").Each(func(_ int, h *goquery.Selection) {
			low := strings.ToLower(h.Text())
			if !strings.Contains(low, "why") && !strings.Contains(low, "feature") && !strings.Contains(low, "benefit") {
				return
			}
			h.NextAllFiltered("ul, ol").First().Find("li").Each(func(i int, li *goquery.Selection) {
				t := cleanText(li.Text())
				if len(t) >= 3 && len(t) <= 100 {
					out = dedupeCapped(out, seen, t, models.MaxKeyFeatures)
				}
			})
		})
	}

	return out
}

var (
	langDetectorOnce sync.Once
	langDetector     lingua.LanguageDetector
)

// detectorLanguages bounds the detector to languages a small-business site
// plausibly uses; a full 75-language model is slow to build and no more
// accurate for this set.
var detectorLanguages = []lingua.Language{
	lingua.English, lingua.Spanish, lingua.French, lingua.German,
	lingua.Italian, lingua.Portuguese, lingua.Dutch, lingua.Japanese,
	lingua.Chinese, lingua.Korean,
}

func detectLanguage(text string) string {
	if len(text) < 40 {
		return ""
	}
	langDetectorOnce.Do(func() {
		langDetector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(detectorLanguages...).
			Build()
	})
	if len(text) > 2000 {
		text = text[:2000]
	}
	lang, ok := langDetector.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}

// extractPageContent converts the page's main content to markdown, pulling
// footer and sidebar text separately so callers can weight them differently.
func extractPageContent(doc *goquery.Document, rawHTML, baseURL string) *models.PageContent {
	pc := &models.PageContent{}

	mainHTML := ""
	if u, err := url.Parse(baseURL); err == nil {
		parser := readability.NewParser()
		if article, err := parser.Parse(strings.NewReader(rawHTML), u); err == nil {
			mainHTML = article.Content
		}
	}
	if mainHTML == "" {
		for _, sel := range []string{"main", "article", "body"} {
			if h, err := doc.Find(sel).First().Html(); err == nil && strings.TrimSpace(h) != "" {
				mainHTML = h
				break
			}
		}
	}

	if md, err := htmltomarkdown.ConvertString(mainHTML); err == nil {
		pc.MainText = strings.TrimSpace(md)
	}
	if pc.MainText == "" {
		pc.MainText = cleanText(doc.Find("body").Text())
	}
	if len(pc.MainText) > 20000 {
		pc.MainText = pc.MainText[:20000]
	}

	pc.FooterText = cleanText(doc.Find("footer").First().Text())
	if len(pc.FooterText) > 2000 {
		pc.FooterText = pc.FooterText[:2000]
	}
	pc.SidebarText = cleanText(doc.Find(`aside, [class*="sidebar"]`).First().Text())
	if len(pc.SidebarText) > 2000 {
		pc.SidebarText = pc.SidebarText[:2000]
	}

	pc.Language = detectLanguage(pc.MainText)
	return pc
}
