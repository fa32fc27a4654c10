package profile

import (
	"strings"

	"github.com/launchkit/siteprofiler/models"
	"github.com/launchkit/siteprofiler/pkg/keywords"
)

// PageProfile pairs a discovered page with its extraction result.
type PageProfile struct {
	Page models.DiscoveredPage
	Info *models.ExtractedBusinessInfo
}

// MergeProfiles folds per-page extractions into one site profile. The
// homepage extraction is the base and wins every conflict; secondary pages
// only supplement empty fields and top up list fields under the same caps
// the extractors enforce. Pages are processed in their given order, which
// discovery emits by page-type priority.
func MergeProfiles(pages []PageProfile) *models.ExtractedBusinessInfo {
	merged := models.NewExtractedBusinessInfo()
	if len(pages) == 0 {
		return merged
	}

	base := pages[0].Info
	if base != nil {
		copyInfo(merged, base)
	}

	for _, p := range pages[1:] {
		if p.Info == nil {
			continue
		}
		supplement(merged, p.Info)
	}

	supplementKeywords(merged)
	return merged
}

// copyInfo copies src onto dst, keeping dst's slices non-nil.
func copyInfo(dst, src *models.ExtractedBusinessInfo) {
	*dst = *src
	if dst.Emails == nil {
		dst.Emails = []string{}
	}
	if dst.Phones == nil {
		dst.Phones = []string{}
	}
	if dst.Addresses == nil {
		dst.Addresses = []string{}
	}
	if dst.SocialLinks == nil {
		dst.SocialLinks = []models.SocialLink{}
	}
	if dst.BrandColors == nil {
		dst.BrandColors = []string{}
	}
	if dst.Fonts == nil {
		dst.Fonts = []string{}
	}
	if dst.KeyFeatures == nil {
		dst.KeyFeatures = []string{}
	}
	if dst.HeroImages == nil {
		dst.HeroImages = []models.HeroImage{}
	}
	if dst.Galleries == nil {
		dst.Galleries = []models.Gallery{}
	}
	if dst.BusinessHours == nil {
		dst.BusinessHours = []models.HoursEntry{}
	}
	if dst.Services == nil {
		dst.Services = []models.Service{}
	}
	if dst.Testimonials == nil {
		dst.Testimonials = []models.Testimonial{}
	}
	if dst.FAQ == nil {
		dst.FAQ = []models.FAQItem{}
	}
	if dst.ProductCategories == nil {
		dst.ProductCategories = []models.Category{}
	}
}

// supplement fills merged's gaps from a secondary page's extraction without
// ever overwriting an existing value.
func supplement(merged, page *models.ExtractedBusinessInfo) {
	merged.Emails = topUp(merged.Emails, page.Emails, models.MaxEmails, strings.ToLower)
	merged.Phones = topUp(merged.Phones, page.Phones, models.MaxPhones, digitsOnly)
	merged.Addresses = topUp(merged.Addresses, page.Addresses, models.MaxAddresses, strings.ToLower)
	merged.KeyFeatures = topUp(merged.KeyFeatures, page.KeyFeatures, models.MaxKeyFeatures, strings.ToLower)
	merged.Fonts = topUp(merged.Fonts, page.Fonts, models.MaxFonts, strings.ToLower)
	merged.BrandColors = topUp(merged.BrandColors, page.BrandColors, models.MaxBrandColors, strings.ToLower)

	seenPlatforms := make(map[models.SocialPlatform]bool)
	for _, l := range merged.SocialLinks {
		seenPlatforms[l.Platform] = true
	}
	for _, l := range page.SocialLinks {
		if seenPlatforms[l.Platform] || len(merged.SocialLinks) >= models.MaxSocialLinks {
			continue
		}
		seenPlatforms[l.Platform] = true
		merged.SocialLinks = append(merged.SocialLinks, l)
	}

	if merged.Hours == nil {
		merged.Hours = page.Hours
	} else {
		for day, h := range page.Hours {
			if _, ok := merged.Hours[day]; !ok && len(merged.Hours) < models.MaxBusinessHours {
				merged.Hours[day] = h
			}
		}
	}
	seenHours := make(map[string]bool)
	for _, e := range merged.BusinessHours {
		seenHours[e.Day+"|"+strings.ToLower(e.Hours)] = true
	}
	for _, e := range page.BusinessHours {
		key := e.Day + "|" + strings.ToLower(e.Hours)
		if seenHours[key] || len(merged.BusinessHours) >= models.MaxBusinessHours {
			continue
		}
		seenHours[key] = true
		merged.BusinessHours = append(merged.BusinessHours, e)
	}

	if merged.Coordinates == nil {
		merged.Coordinates = page.Coordinates
	}
	if merged.LogoURL == "" {
		merged.LogoURL = page.LogoURL
	}
	if merged.Typography == nil {
		merged.Typography = page.Typography
	}
	if merged.DesignTokens == nil {
		merged.DesignTokens = page.DesignTokens
	}
	if merged.BusinessDescription == "" {
		merged.BusinessDescription = page.BusinessDescription
	}
	if merged.Tagline == "" {
		merged.Tagline = page.Tagline
	}
	if merged.SiteTitle == "" {
		merged.SiteTitle = page.SiteTitle
	}
	if merged.SiteDescription == "" {
		merged.SiteDescription = page.SiteDescription
	}
	if merged.Favicon == "" {
		merged.Favicon = page.Favicon
	}
	if merged.HeroSection == nil {
		merged.HeroSection = page.HeroSection
	}
	if merged.FooterContent == nil {
		merged.FooterContent = page.FooterContent
	}

	seenServices := make(map[string]bool)
	for _, s := range merged.Services {
		seenServices[strings.ToLower(s.Name)] = true
	}
	for _, s := range page.Services {
		key := strings.ToLower(s.Name)
		if seenServices[key] || len(merged.Services) >= models.MaxServices {
			continue
		}
		seenServices[key] = true
		merged.Services = append(merged.Services, s)
	}

	seenQuotes := make(map[string]bool)
	for _, q := range merged.Testimonials {
		seenQuotes[quoteKey(q.Text)] = true
	}
	for _, q := range page.Testimonials {
		key := quoteKey(q.Text)
		if seenQuotes[key] || len(merged.Testimonials) >= models.MaxTestimonials {
			continue
		}
		seenQuotes[key] = true
		merged.Testimonials = append(merged.Testimonials, q)
	}

	seenQuestions := make(map[string]bool)
	for _, f := range merged.FAQ {
		seenQuestions[strings.ToLower(f.Question)] = true
	}
	for _, f := range page.FAQ {
		key := strings.ToLower(f.Question)
		if seenQuestions[key] || len(merged.FAQ) >= models.MaxFAQItems {
			continue
		}
		seenQuestions[key] = true
		merged.FAQ = append(merged.FAQ, f)
	}

	seenCategories := make(map[string]bool)
	for _, c := range merged.ProductCategories {
		seenCategories[strings.ToLower(c.Name)] = true
	}
	for _, c := range page.ProductCategories {
		key := strings.ToLower(c.Name)
		if seenCategories[key] || len(merged.ProductCategories) >= models.MaxCategories {
			continue
		}
		seenCategories[key] = true
		merged.ProductCategories = append(merged.ProductCategories, c)
	}
}

// supplementKeywords derives keyFeatures from page text when nothing else
// produced any.
func supplementKeywords(merged *models.ExtractedBusinessInfo) {
	if len(merged.KeyFeatures) > 0 || merged.PageContent == nil || merged.PageContent.MainText == "" {
		return
	}
	merged.KeyFeatures = keywords.FromText(merged.PageContent.MainText, 10)
}

// topUp appends unseen items from extra, deduplicated under keyFn, until
// list reaches max.
func topUp(list, extra []string, max int, keyFn func(string) string) []string {
	seen := make(map[string]bool, len(list))
	for _, v := range list {
		seen[keyFn(v)] = true
	}
	for _, v := range extra {
		key := keyFn(v)
		if v == "" || seen[key] || len(list) >= max {
			continue
		}
		seen[key] = true
		list = append(list, v)
	}
	return list
}

// digitsOnly keys phone numbers so formatting differences dedupe.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// quoteKey dedupes testimonials by a lowercased content prefix.
func quoteKey(text string) string {
	t := strings.ToLower(text)
	if len(t) > 60 {
		t = t[:60]
	}
	return t
}
