package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/launchkit/siteprofiler/models"
)

var priceRe = regexp.MustCompile(`[$€£]\s?\d[\d,.]*|from\s+[$€£]\s?\d[\d,.]*|\d[\d,.]*\s?(?:USD|EUR|GBP)`)

// extractServices follows a four-tier fallthrough: schema.org Service/Offer
// markup, service-card selectors, pricing tables, then bullet lists under a
// services heading.
func extractServices(doc *goquery.Document) []models.Service {
	out := []models.Service{}
	seen := make(map[string]bool)

	add := func(name, desc, price string) {
		name = cleanText(name)
		if name == "" || len(name) > 120 || len(out) >= models.MaxServices {
			return
		}
		key := strings.ToLower(name)
		if seen[key] {
			return
		}
		seen[key] = true
		if len(desc) > 300 {
			desc = desc[:300]
		}
		out = append(out, models.Service{Name: name, Description: cleanText(desc), Price: cleanText(price)})
	}

	// Tier 1: microdata.
	doc.Find(`[itemtype*="schema.org/Service"], [itemtype*="schema.org/Offer"]`).Each(func(_ int, s *goquery.Selection) {
		add(itempropText(s, "name"), itempropText(s, "description"), itempropText(s, "price"))
	})

	// Tier 2: service-card heuristics.
	if len(out) == 0 {
		doc.Find(`[class*="service"], [class*="offering"], [class*="treatment"]`).Each(func(i int, s *goquery.Selection) {
			if i >= 60 {
				return
			}
			name := cleanText(s.Find("h2, h3, h4, [class*='title']").First().Text())
			if name == "" {
				return
			}
			desc := cleanText(s.Find("p").First().Text())
			price := priceRe.FindString(s.Text())
			add(name, desc, price)
		})
	}

	// Tier 3: pricing tables.
	if len(out) == 0 {
		doc.Find(`table[class*="pric"], [class*="pricing"] table, table`).Each(func(ti int, table *goquery.Selection) {
			if ti >= 5 || len(out) > 0 && ti > 0 {
				return
			}
			if !priceRe.MatchString(table.Text()) {
				return
			}
			table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
				cells := tr.Find("td")
				if cells.Length() < 2 {
					return
				}
				name := cleanText(cells.First().Text())
				price := priceRe.FindString(tr.Text())
				if name != "" && price != "" {
					add(name, "", price)
				}
			})
		})
	}

	// Tier 4: bullet lists under a services-like heading.
	if len(out) == 0 {
		doc.Find("h2, h3").Each(func(_ int, h *goquery.Selection) {
			if len(out) > 0 {
				return
			}
			if !strings.Contains(strings.ToLower(h.Text()), "service") {
				return
			}
			h.NextAllFiltered("ul, ol").First().Find("li").Each(func(i int, li *goquery.Selection) {
				if i >= models.MaxServices {
					return
				}
				add(li.Text(), "", priceRe.FindString(li.Text()))
			})
		})
	}

	return out
}

var ratingRe = regexp.MustCompile(`([1-5])(?:\.\d)?\s*(?:/\s*5|stars?|★)`)

// extractTestimonials reads customer quotes from review microdata, then
// testimonial-class containers, then blockquotes.
func extractTestimonials(doc *goquery.Document) []models.Testimonial {
	out := []models.Testimonial{}
	seen := make(map[string]bool)

	add := func(text, author string, rating int) {
		text = cleanText(text)
		if len(text) < 20 || len(text) > 600 || len(out) >= models.MaxTestimonials {
			return
		}
		key := strings.ToLower(text)
		if len(key) > 60 {
			key = key[:60] // dedupe by content prefix
		}
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, models.Testimonial{Text: text, Author: cleanText(author), Rating: rating})
	}

	doc.Find(`[itemtype*="schema.org/Review"]`).Each(func(_ int, s *goquery.Selection) {
		rating := 0
		if rv := itempropText(s, "ratingValue"); rv != "" && len(rv) > 0 && rv[0] >= '1' && rv[0] <= '5' {
			rating = int(rv[0] - '0')
		}
		add(itempropText(s, "reviewBody"), itempropText(s, "author"), rating)
	})

	if len(out) == 0 {
		doc.Find(`[class*="testimonial"], [class*="review"]`).Each(func(i int, s *goquery.Selection) {
			if i >= 60 {
				return
			}
			text := cleanText(s.Find(`p, blockquote, [class*="quote"], [class*="text"]`).First().Text())
			if text == "" {
				text = cleanText(s.Text())
			}
			author := cleanText(s.Find(`cite, [class*="author"], [class*="name"], footer`).First().Text())
			rating := 0
			if m := ratingRe.FindStringSubmatch(s.Text()); m != nil {
				rating = int(m[1][0] - '0')
			}
			add(text, author, rating)
		})
	}

	if len(out) == 0 {
		doc.Find("blockquote").Each(func(i int, q *goquery.Selection) {
			if i >= 30 {
				return
			}
			add(q.Text(), cleanText(q.Find("cite").Text()), 0)
		})
	}

	return out
}

// extractFAQ reads question/answer pairs from FAQ microdata, details/summary
// elements, and accordion-class containers.
func extractFAQ(doc *goquery.Document) []models.FAQItem {
	out := []models.FAQItem{}
	seen := make(map[string]bool)

	add := func(q, a string) {
		q = cleanText(q)
		if q == "" || len(q) > 200 || len(out) >= models.MaxFAQItems {
			return
		}
		key := strings.ToLower(q)
		if seen[key] {
			return
		}
		seen[key] = true
		a = cleanText(a)
		if len(a) > 500 {
			a = a[:500]
		}
		out = append(out, models.FAQItem{Question: q, Answer: a})
	}

	doc.Find(`[itemtype*="schema.org/Question"]`).Each(func(_ int, s *goquery.Selection) {
		add(itempropText(s, "name"), itempropText(s, "text"))
	})

	if len(out) == 0 {
		doc.Find("details").Each(func(i int, d *goquery.Selection) {
			if i >= models.MaxFAQItems {
				return
			}
			q := d.Find("summary").First().Text()
			a := d.Clone()
			a.Find("summary").Remove()
			add(q, a.Text())
		})
	}

	if len(out) == 0 {
		doc.Find(`[class*="faq"], [class*="accordion"]`).Each(func(_ int, c *goquery.Selection) {
			c.Find("h3, h4, dt, [class*='question']").Each(func(i int, q *goquery.Selection) {
				if i >= models.MaxFAQItems {
					return
				}
				question := cleanText(q.Text())
				if !strings.HasSuffix(question, "?") && len(question) < 10 {
					return
				}
				add(question, q.Next().Text())
			})
		})
	}

	return out
}

// extractCategories reads product/service category names from breadcrumb or
// category-nav markup.
func extractCategories(doc *goquery.Document, base *url.URL) []models.Category {
	out := []models.Category{}
	seen := make(map[string]bool)

	doc.Find(`[class*="categor"] a, nav[class*="shop"] a, [class*="collection"] a`).Each(func(i int, a *goquery.Selection) {
		if i >= 100 || len(out) >= models.MaxCategories {
			return
		}
		name := cleanText(a.Text())
		if name == "" || len(name) > 60 {
			return
		}
		key := strings.ToLower(name)
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, models.Category{
			Name: name,
			URL:  absoluteURL(a.AttrOr("href", ""), base),
		})
	})

	return out
}

var copyrightRe = regexp.MustCompile(`(?:©|\(c\)|copyright)\s*.{0,80}`)

// extractFooter captures the copyright line, footer link texts, and a
// bounded run of footer text.
func extractFooter(doc *goquery.Document) *models.FooterContent {
	footer := doc.Find("footer").First()
	if footer.Length() == 0 {
		footer = doc.Find(`[class*="footer"]`).First()
	}
	if footer.Length() == 0 {
		return nil
	}

	fc := &models.FooterContent{}
	text := cleanText(footer.Text())
	if m := copyrightRe.FindString(text); m != "" {
		fc.Copyright = cleanText(m)
	}

	seen := make(map[string]bool)
	footer.Find("a").Each(func(i int, a *goquery.Selection) {
		if i >= 50 || len(fc.Links) >= 20 {
			return
		}
		t := cleanText(a.Text())
		if t == "" || len(t) > 60 || seen[strings.ToLower(t)] {
			return
		}
		seen[strings.ToLower(t)] = true
		fc.Links = append(fc.Links, t)
	})

	if len(text) > 500 {
		text = text[:500]
	}
	fc.Text = text

	if fc.Copyright == "" && len(fc.Links) == 0 && fc.Text == "" {
		return nil
	}
	return fc
}
