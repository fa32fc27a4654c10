package extract

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/launchkit/siteprofiler/models"
)

var heroContainerSelectors = []string{
	`[class*="hero"]`,
	`[class*="jumbotron"]`,
	`[class*="banner"]`,
	`[class*="masthead"]`,
	`[data-testid*="hero"]`,
	"header + section",
	"main > section:first-child",
}

var ctaSelectors = []string{
	`a[class*="btn-primary"]`,
	`a[class*="button"]`,
	`a[class*="btn"]`,
	`a[class*="cta"]`,
	"button",
	"a",
}

var backgroundImageRe = regexp.MustCompile(`background(?:-image)?\s*:[^;]*url\(['"]?([^'")]+)['"]?\)`)

// extractHero finds the first structurally plausible hero container and
// reads its headline, subheadline, CTA, and background image. A hero without
// a headline is not a hero, so it returns nil in that case.
func extractHero(doc *goquery.Document, base *url.URL) *models.HeroSection {
	container := findHeroContainer(doc)
	if container == nil {
		return nil
	}

	headline := cleanText(container.Find("h1").First().Text())
	if headline == "" {
		headline = cleanText(container.Find("h2").First().Text())
	}
	if headline == "" {
		return nil
	}

	hero := &models.HeroSection{Headline: headline}

	// Subheadline: the sibling h2 or tagline-class text after the headline.
	sub := cleanText(container.Find(`h1 ~ h2, h1 ~ p, [class*="subheadline"], [class*="tagline"], [class*="subtitle"]`).First().Text())
	if sub == "" {
		sub = cleanText(container.Find("p").First().Text())
	}
	if sub != headline {
		hero.Subheadline = sub
	}

	for _, sel := range ctaSelectors {
		cta := container.Find(sel).First()
		if cta.Length() == 0 {
			continue
		}
		text := cleanText(cta.Text())
		if text == "" || len(text) > 60 {
			continue
		}
		hero.CTAText = text
		if href, ok := cta.Attr("href"); ok {
			hero.CTALink = absoluteURL(href, base)
		}
		break
	}

	if style, ok := container.Attr("style"); ok {
		if m := backgroundImageRe.FindStringSubmatch(style); m != nil {
			hero.BackgroundImage = absoluteURL(m[1], base)
		}
	}
	if hero.BackgroundImage == "" {
		if src, ok := container.Find("img").First().Attr("src"); ok {
			hero.BackgroundImage = absoluteURL(src, base)
		}
	}

	return hero
}

func findHeroContainer(doc *goquery.Document) *goquery.Selection {
	for _, sel := range heroContainerSelectors {
		if c := doc.Find(sel).First(); c.Length() > 0 {
			return c
		}
	}
	// Last resort: the parent of the page's first h1.
	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		if p := h1.Parent(); p.Length() > 0 {
			return p
		}
	}
	return nil
}

// extractHeroImages returns ranked hero/banner image candidates with a crude
// confidence score: container specificity plus position on the page.
func extractHeroImages(doc *goquery.Document, base *url.URL) []models.HeroImage {
	out := []models.HeroImage{}
	seen := make(map[string]bool)

	type candidate struct {
		img        models.HeroImage
		confidence float64
	}
	var candidates []candidate

	add := func(u, alt string, conf float64) {
		if u == "" || seen[u] || strings.HasPrefix(u, "data:") {
			return
		}
		seen[u] = true
		candidates = append(candidates, candidate{
			img:        models.HeroImage{URL: u, Alt: alt, Confidence: conf},
			confidence: conf,
		})
	}

	doc.Find(`[class*="hero"] img, [class*="banner"] img, [class*="masthead"] img`).Each(func(i int, img *goquery.Selection) {
		if i >= 20 {
			return
		}
		add(absoluteURL(img.AttrOr("src", ""), base), img.AttrOr("alt", ""), 0.9)
	})

	doc.Find(`[class*="hero"], [class*="banner"]`).Each(func(i int, c *goquery.Selection) {
		if i >= 10 {
			return
		}
		if style, ok := c.Attr("style"); ok {
			if m := backgroundImageRe.FindStringSubmatch(style); m != nil {
				add(absoluteURL(m[1], base), "", 0.8)
			}
		}
	})

	// Large images near the top of the page are weaker candidates.
	doc.Find("body img").EachWithBreak(func(i int, img *goquery.Selection) bool {
		if i >= 5 {
			return false
		}
		add(absoluteURL(img.AttrOr("src", ""), base), img.AttrOr("alt", ""), 0.4)
		return true
	})

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].confidence > candidates[j].confidence
	})
	for _, c := range candidates {
		if len(out) >= models.MaxHeroImages {
			break
		}
		out = append(out, c.img)
	}
	return out
}
