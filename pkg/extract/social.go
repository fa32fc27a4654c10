package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/launchkit/siteprofiler/models"
)

// platformHosts maps hostname substrings to platforms. Order matters only
// for hosts sharing a substring, which these do not.
var platformHosts = []struct {
	host     string
	platform models.SocialPlatform
}{
	{"facebook.com", models.PlatformFacebook},
	{"fb.com", models.PlatformFacebook},
	{"instagram.com", models.PlatformInstagram},
	{"twitter.com", models.PlatformTwitter},
	{"x.com", models.PlatformTwitter},
	{"linkedin.com", models.PlatformLinkedIn},
	{"youtube.com", models.PlatformYouTube},
	{"youtu.be", models.PlatformYouTube},
	{"tiktok.com", models.PlatformTikTok},
	{"pinterest.com", models.PlatformPinterest},
	{"yelp.com", models.PlatformYelp},
}

// extractSocialLinks collects profile links on known platforms, deduped by
// platform with the first occurrence winning.
func extractSocialLinks(doc *goquery.Document, base *url.URL) []models.SocialLink {
	out := []models.SocialLink{}
	seen := make(map[models.SocialPlatform]bool)

	doc.Find("a[href]").EachWithBreak(func(i int, a *goquery.Selection) bool {
		if i >= maxScannedElements || len(out) >= models.MaxSocialLinks {
			return false
		}
		href, _ := a.Attr("href")
		abs := absoluteURL(href, base)
		if abs == "" {
			return true
		}
		u, err := url.Parse(abs)
		if err != nil {
			return true
		}
		host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
		for _, ph := range platformHosts {
			if host != ph.host && !strings.HasSuffix(host, "."+ph.host) {
				continue
			}
			// Bare platform homepages are share widgets, not profiles.
			if u.Path == "" || u.Path == "/" {
				break
			}
			if seen[ph.platform] {
				break
			}
			seen[ph.platform] = true
			out = append(out, models.SocialLink{Platform: ph.platform, URL: abs})
			break
		}
		return true
	})
	return out
}
