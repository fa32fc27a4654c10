package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/launchkit/siteprofiler/models"
)

var dayNames = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

var (
	dayRe = regexp.MustCompile(`(?i)\b(mon(?:day)?|tue(?:s(?:day)?)?|wed(?:nesday)?|thu(?:r(?:s(?:day)?)?)?|fri(?:day)?|sat(?:urday)?|sun(?:day)?)\b`)

	// "9:00 AM - 5:00 PM", "09.00-17.00", "9am–5pm"
	timeRangeRe = regexp.MustCompile(`(?i)(\d{1,2}[:.]?\d{0,2}\s*(?:am|pm)?)\s*[-–—to]+\s*(\d{1,2}[:.]?\d{0,2}\s*(?:am|pm)?)`)

	closedRe = regexp.MustCompile(`(?i)\bclosed\b`)
)

// extractHours is a three-tier fallback: schema.org openingHours markup,
// then likely "hours" containers (including table and list rows), then
// whole-body day/time-range regexes.
func extractHours(doc *goquery.Document, body string) (map[string]models.DayHours, []models.HoursEntry) {
	entries := []models.HoursEntry{}
	seen := make(map[string]bool)

	add := func(day, hours string) {
		day = canonicalDay(day)
		hours = cleanText(hours)
		if day == "" || hours == "" || len(entries) >= models.MaxBusinessHours {
			return
		}
		key := day + "|" + strings.ToLower(hours)
		if seen[key] {
			return
		}
		seen[key] = true
		entries = append(entries, models.HoursEntry{Day: day, Hours: hours})
	}

	// Tier 1: microdata.
	doc.Find(`[itemprop="openingHours"]`).Each(func(_ int, s *goquery.Selection) {
		spec := s.AttrOr("content", "")
		if spec == "" {
			spec = cleanText(s.Text())
		}
		if d := dayRe.FindString(spec); d != "" {
			if r := timeRangeRe.FindString(spec); r != "" {
				add(d, r)
			} else if closedRe.MatchString(spec) {
				add(d, "closed")
			}
		}
	})

	// Tier 2: likely hours containers, row by row.
	if len(entries) == 0 {
		doc.Find(`[class*="hours"], [class*="opening"], [id*="hours"]`).Each(func(_ int, c *goquery.Selection) {
			c.Find("tr, li, p, div").Each(func(_ int, row *goquery.Selection) {
				if row.Children().Is("tr, li, div, p") {
					return // only leaf rows
				}
				scanHoursLine(cleanText(row.Text()), add)
			})
		})
	}

	// Tier 3: whole-body free text.
	if len(entries) == 0 {
		for _, line := range strings.Split(body, "\n") {
			scanHoursLine(cleanText(line), add)
			if len(entries) >= models.MaxBusinessHours {
				break
			}
		}
	}

	if len(entries) == 0 {
		return nil, entries
	}

	hours := make(map[string]models.DayHours, len(entries))
	for _, en := range entries {
		if strings.EqualFold(en.Hours, "closed") {
			hours[en.Day] = models.DayHours{Closed: true}
			continue
		}
		if m := timeRangeRe.FindStringSubmatch(en.Hours); m != nil {
			hours[en.Day] = models.DayHours{Open: cleanText(m[1]), Close: cleanText(m[2])}
		}
	}
	return hours, entries
}

func scanHoursLine(line string, add func(day, hours string)) {
	if line == "" || len(line) > 200 {
		return
	}
	day := dayRe.FindString(line)
	if day == "" {
		return
	}
	if r := timeRangeRe.FindString(line); r != "" {
		add(day, r)
		return
	}
	if closedRe.MatchString(line) {
		add(day, "closed")
	}
}

// canonicalDay expands abbreviated day names to their full lowercase form.
func canonicalDay(d string) string {
	d = strings.ToLower(strings.TrimSpace(d))
	if len(d) < 3 {
		return ""
	}
	for _, full := range dayNames {
		if strings.HasPrefix(full, d[:3]) {
			return full
		}
	}
	return ""
}
