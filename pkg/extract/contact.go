package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/launchkit/siteprofiler/models"
)

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	// Matched emails ending in image/asset extensions are almost always
	// srcset fragments or build artifacts, not addresses.
	emailExtBlocklist = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg", ".css", ".js", ".woff", ".woff2"}

	phoneRe = regexp.MustCompile(`\+?\d{0,3}[\s.(-]{0,2}\d{3}[\s.)-]{0,2}\d{3}[\s.-]?\d{4}`)

	// Street-address shapes: "123 Main Street", "42 Oak Ave, Springfield".
	addressRe = regexp.MustCompile(`\d{1,5}\s+[A-Z][A-Za-z0-9.\s]{2,40}\s(?:Street|St\.?|Avenue|Ave\.?|Boulevard|Blvd\.?|Road|Rd\.?|Drive|Dr\.?|Lane|Ln\.?|Way|Court|Ct\.?|Place|Pl\.?|Suite|Ste\.?)\b[^<\n]{0,60}`)
)

func extractEmails(doc *goquery.Document, body string) []string {
	out := []string{}
	seen := make(map[string]bool)

	// mailto links are the highest-confidence source.
	doc.Find(`a[href^="mailto:"]`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		addr := strings.TrimPrefix(href, "mailto:")
		if i := strings.IndexAny(addr, "?"); i >= 0 {
			addr = addr[:i]
		}
		if isPlausibleEmail(addr) {
			out = dedupeCapped(out, seen, strings.ToLower(addr), models.MaxEmails)
		}
	})

	// Free-text pass over the body as last resort.
	matches := emailRe.FindAllString(body, maxRegexMatches)
	for _, m := range matches {
		if isPlausibleEmail(m) {
			out = dedupeCapped(out, seen, strings.ToLower(m), models.MaxEmails)
		}
	}
	return out
}

func isPlausibleEmail(addr string) bool {
	addr = strings.ToLower(strings.TrimSpace(addr))
	if addr == "" || !emailRe.MatchString(addr) {
		return false
	}
	for _, ext := range emailExtBlocklist {
		if strings.HasSuffix(addr, ext) {
			return false
		}
	}
	return true
}

func extractPhones(doc *goquery.Document, body string) []string {
	out := []string{}
	seen := make(map[string]bool)

	doc.Find(`a[href^="tel:"]`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		num := cleanText(strings.TrimPrefix(href, "tel:"))
		if digitCount(num) >= 7 {
			out = dedupeCapped(out, seen, num, models.MaxPhones)
		}
	})

	if prop := itempropText(doc.Selection, "telephone"); prop != "" && digitCount(prop) >= 7 {
		out = dedupeCapped(out, seen, prop, models.MaxPhones)
	}

	for _, m := range phoneRe.FindAllString(body, maxRegexMatches) {
		m = cleanText(m)
		if digitCount(m) >= 10 {
			out = dedupeCapped(out, seen, m, models.MaxPhones)
		}
	}
	return out
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

func extractAddresses(doc *goquery.Document, body string) []string {
	out := []string{}
	seen := make(map[string]bool)

	// schema.org PostalAddress first.
	doc.Find(`[itemtype*="PostalAddress"], [itemprop="address"]`).Each(func(_ int, s *goquery.Selection) {
		parts := []string{
			itempropText(s, "streetAddress"),
			itempropText(s, "addressLocality"),
			itempropText(s, "addressRegion"),
			itempropText(s, "postalCode"),
		}
		var kept []string
		for _, p := range parts {
			if p != "" {
				kept = append(kept, p)
			}
		}
		addr := strings.Join(kept, ", ")
		if addr == "" {
			addr = cleanText(s.Text())
		}
		if len(addr) >= 10 && len(addr) <= 200 {
			out = dedupeCapped(out, seen, addr, models.MaxAddresses)
		}
	})

	// <address> elements and address-ish classes next.
	doc.Find(`address, [class*="address"]`).Each(func(_ int, s *goquery.Selection) {
		addr := cleanText(s.Text())
		if len(addr) >= 10 && len(addr) <= 200 {
			out = dedupeCapped(out, seen, addr, models.MaxAddresses)
		}
	})

	// Street-shaped text anywhere in the body as the last resort.
	for _, m := range addressRe.FindAllString(body, maxRegexMatches) {
		out = dedupeCapped(out, seen, cleanText(m), models.MaxAddresses)
	}
	return out
}

func extractCoordinates(doc *goquery.Document) *models.Coordinates {
	latText := itempropText(doc.Selection, "latitude")
	lngText := itempropText(doc.Selection, "longitude")
	if latText == "" || lngText == "" {
		// geo meta tags are the only other source worth trusting.
		latText = doc.Find(`meta[name="geo.position"]`).AttrOr("content", "")
		if latText != "" {
			parts := strings.SplitN(latText, ";", 2)
			if len(parts) == 2 {
				latText, lngText = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
			} else {
				latText = ""
			}
		}
	}
	if latText == "" || lngText == "" {
		return nil
	}
	lat, err1 := strconv.ParseFloat(latText, 64)
	lng, err2 := strconv.ParseFloat(lngText, 64)
	if err1 != nil || err2 != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil
	}
	return &models.Coordinates{Lat: lat, Lng: lng}
}
