package llmextract

import (
	"sort"

	"github.com/launchkit/siteprofiler/models"
)

// Phase response shapes. Each mirrors the JSON contract embedded in the
// matching prompt; conversion to models applies the same caps the
// algorithmic extractor enforces, since model output is untrusted.

type brandingResponse struct {
	LogoURL      string               `json:"logoUrl"`
	BrandColors  []string             `json:"brandColors"`
	Fonts        []string             `json:"fonts"`
	Typography   *models.Typography   `json:"typography"`
	DesignTokens *models.DesignTokens `json:"designTokens"`
}

type contactResponse struct {
	Emails      []string                   `json:"emails"`
	Phones      []string                   `json:"phones"`
	Addresses   []string                   `json:"addresses"`
	Hours       map[string]models.DayHours `json:"hours"`
	SocialLinks []models.SocialLink        `json:"socialLinks"`
	Coordinates *models.Coordinates        `json:"coordinates"`
}

type contentResponse struct {
	SiteTitle           string              `json:"siteTitle"`
	SiteDescription     string              `json:"siteDescription"`
	BusinessDescription string              `json:"businessDescription"`
	Tagline             string              `json:"tagline"`
	KeyFeatures         []string            `json:"keyFeatures"`
	HeroSection         *models.HeroSection `json:"heroSection"`
}

type structuredResponse struct {
	Services          []models.Service      `json:"services"`
	Testimonials      []models.Testimonial  `json:"testimonials"`
	FAQ               []models.FAQItem      `json:"faq"`
	ProductCategories []models.Category     `json:"productCategories"`
	BusinessHours     []models.HoursEntry   `json:"businessHours"`
	FooterContent     *models.FooterContent `json:"footerContent"`
}

type imagesResponse struct {
	HeroImages []models.HeroImage `json:"heroImages"`
	Galleries  []models.Gallery   `json:"galleries"`
}

func capStrings(in []string, max int) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, s := range in {
		if s == "" || seen[s] || len(out) >= max {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func (r *brandingResponse) apply(info *models.ExtractedBusinessInfo) {
	info.LogoURL = r.LogoURL
	info.BrandColors = capStrings(r.BrandColors, models.MaxBrandColors)
	info.Fonts = capStrings(r.Fonts, models.MaxFonts)
	info.Typography = r.Typography
	info.DesignTokens = r.DesignTokens
}

func (r *contactResponse) apply(info *models.ExtractedBusinessInfo) {
	info.Emails = capStrings(r.Emails, models.MaxEmails)
	info.Phones = capStrings(r.Phones, models.MaxPhones)
	info.Addresses = capStrings(r.Addresses, models.MaxAddresses)
	info.Hours = r.Hours
	info.Coordinates = r.Coordinates

	links := []models.SocialLink{}
	seen := make(map[models.SocialPlatform]bool)
	for _, l := range r.SocialLinks {
		if l.URL == "" || seen[l.Platform] || len(links) >= models.MaxSocialLinks {
			continue
		}
		seen[l.Platform] = true
		links = append(links, l)
	}
	info.SocialLinks = links
}

func (r *contentResponse) apply(info *models.ExtractedBusinessInfo) {
	info.SiteTitle = r.SiteTitle
	info.SiteDescription = r.SiteDescription
	info.BusinessDescription = r.BusinessDescription
	info.Tagline = r.Tagline
	info.KeyFeatures = capStrings(r.KeyFeatures, models.MaxKeyFeatures)
	if r.HeroSection != nil && r.HeroSection.Headline != "" {
		info.HeroSection = r.HeroSection
	}
}

func (r *structuredResponse) apply(info *models.ExtractedBusinessInfo) {
	if len(r.Services) > models.MaxServices {
		r.Services = r.Services[:models.MaxServices]
	}
	if len(r.Testimonials) > models.MaxTestimonials {
		r.Testimonials = r.Testimonials[:models.MaxTestimonials]
	}
	if len(r.FAQ) > models.MaxFAQItems {
		r.FAQ = r.FAQ[:models.MaxFAQItems]
	}
	if len(r.ProductCategories) > models.MaxCategories {
		r.ProductCategories = r.ProductCategories[:models.MaxCategories]
	}
	if len(r.BusinessHours) > models.MaxBusinessHours {
		r.BusinessHours = r.BusinessHours[:models.MaxBusinessHours]
	}
	info.Services = emptyIfNil(r.Services)
	info.Testimonials = emptyIfNil(r.Testimonials)
	info.FAQ = emptyIfNil(r.FAQ)
	info.ProductCategories = emptyIfNil(r.ProductCategories)
	info.BusinessHours = emptyIfNil(r.BusinessHours)
	info.FooterContent = r.FooterContent
}

// apply layers image candidates onto the merged record: hero images ranked
// by confidence, and the best candidate backfilling a hero section that has
// no background image of its own.
func (r *imagesResponse) apply(info *models.ExtractedBusinessInfo) {
	imgs := append([]models.HeroImage{}, r.HeroImages...)
	sort.SliceStable(imgs, func(i, j int) bool {
		return imgs[i].Confidence > imgs[j].Confidence
	})
	if len(imgs) > models.MaxHeroImages {
		imgs = imgs[:models.MaxHeroImages]
	}
	info.HeroImages = imgs

	if info.HeroSection != nil && info.HeroSection.BackgroundImage == "" && len(imgs) > 0 {
		info.HeroSection.BackgroundImage = imgs[0].URL
	}

	galleries := []models.Gallery{}
	for _, g := range r.Galleries {
		if len(g.Images) == 0 || len(galleries) >= models.MaxGalleries {
			continue
		}
		if len(g.Images) > models.MaxGalleryImages {
			g.Images = g.Images[:models.MaxGalleryImages]
		}
		galleries = append(galleries, g)
	}
	info.Galleries = galleries
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
