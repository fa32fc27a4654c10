// Package models defines the value objects shared across the extraction
// pipeline: the business profile record, discovered pages, and run metadata.
package models

// List caps applied to every collection field on ExtractedBusinessInfo.
// Adversarial pages can declare thousands of candidates; capping keeps
// payloads bounded no matter what the extractors find.
const (
	MaxEmails        = 5
	MaxPhones        = 3
	MaxAddresses     = 3
	MaxSocialLinks   = 10
	MaxBrandColors   = 5
	MaxFonts         = 5
	MaxKeyFeatures   = 15
	MaxHeroImages    = 5
	MaxGalleries     = 10
	MaxGalleryImages = 20
	MaxBusinessHours = 10
	MaxServices      = 30
	MaxTestimonials  = 30
	MaxFAQItems      = 20
	MaxCategories    = 15
	MaxSpacingValues = 8
	MaxRadiusValues  = 6
	MaxShadowValues  = 5
)

// SocialPlatform identifies a social network. The set is closed; links on
// unknown platforms are dropped rather than stored with a free-form name.
type SocialPlatform string

const (
	PlatformFacebook  SocialPlatform = "facebook"
	PlatformInstagram SocialPlatform = "instagram"
	PlatformTwitter   SocialPlatform = "twitter"
	PlatformLinkedIn  SocialPlatform = "linkedin"
	PlatformYouTube   SocialPlatform = "youtube"
	PlatformTikTok    SocialPlatform = "tiktok"
	PlatformPinterest SocialPlatform = "pinterest"
	PlatformYelp      SocialPlatform = "yelp"
)

// SocialLink is one profile URL on a known platform.
type SocialLink struct {
	Platform SocialPlatform `json:"platform"`
	URL      string         `json:"url"`
}

// DayHours describes opening hours for a single day.
type DayHours struct {
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
	Closed bool   `json:"closed,omitempty"`
}

// Coordinates is a geographic point, usually from schema.org markup.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// TypographyRole describes the font treatment of one text role on the page.
type TypographyRole struct {
	FontFamily string `json:"fontFamily,omitempty"`
	FontWeight string `json:"fontWeight,omitempty"`
	Color      string `json:"color,omitempty"`
	FontSize   string `json:"fontSize,omitempty"`
}

// Typography groups the per-role font treatments.
type Typography struct {
	Heading *TypographyRole `json:"heading,omitempty"`
	Body    *TypographyRole `json:"body,omitempty"`
	Accent  *TypographyRole `json:"accent,omitempty"`
}

// SpacingTokens holds canonical spacing values mined from the page CSS.
type SpacingTokens struct {
	Values []string `json:"values"`
	Unit   string   `json:"unit,omitempty"`
}

// RadiusTokens holds canonical border-radius values.
type RadiusTokens struct {
	Values []string `json:"values"`
}

// DesignTokens is the set of reusable style values inferred from a page.
type DesignTokens struct {
	Spacing      *SpacingTokens `json:"spacing,omitempty"`
	BorderRadius *RadiusTokens  `json:"borderRadius,omitempty"`
	Shadows      []string       `json:"shadows,omitempty"`
}

// HeroSection is the prominent top-of-page block. A hero without a headline
// is not considered a hero and is never emitted.
type HeroSection struct {
	Headline        string `json:"headline"`
	Subheadline     string `json:"subheadline,omitempty"`
	CTAText         string `json:"ctaText,omitempty"`
	CTALink         string `json:"ctaLink,omitempty"`
	BackgroundImage string `json:"backgroundImage,omitempty"`
}

// HeroImage is one ranked hero/banner image candidate.
type HeroImage struct {
	URL        string  `json:"url"`
	Alt        string  `json:"alt,omitempty"`
	Confidence float64 `json:"confidence"`
}

// GalleryType classifies the layout of an image gallery.
type GalleryType string

const (
	GalleryGrid     GalleryType = "grid"
	GalleryCarousel GalleryType = "carousel"
	GalleryMasonry  GalleryType = "masonry"
	GalleryUnknown  GalleryType = "unknown"
)

// GalleryImage is a single image inside a gallery.
type GalleryImage struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// Gallery is a detected image gallery with its inferred layout.
type Gallery struct {
	Type    GalleryType    `json:"type"`
	Images  []GalleryImage `json:"images"`
	Columns int            `json:"columns,omitempty"`
	Title   string         `json:"title,omitempty"`
}

// HoursEntry is a raw (day, hours) pair found in structured content.
type HoursEntry struct {
	Day   string `json:"day"`
	Hours string `json:"hours"`
}

// Service is one offered service, optionally priced.
type Service struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price,omitempty"`
}

// Testimonial is one customer quote.
type Testimonial struct {
	Text   string `json:"text"`
	Author string `json:"author,omitempty"`
	Rating int    `json:"rating,omitempty"`
}

// FAQItem is one question/answer pair.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer,omitempty"`
}

// Category is one product/service category.
type Category struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// FooterContent captures the text-bearing parts of the page footer.
type FooterContent struct {
	Copyright string   `json:"copyright,omitempty"`
	Links     []string `json:"links,omitempty"`
	Text      string   `json:"text,omitempty"`
}

// PageContent retains raw-ish page text for downstream context.
type PageContent struct {
	MainText    string `json:"mainText,omitempty"`
	FooterText  string `json:"footerText,omitempty"`
	SidebarText string `json:"sidebarText,omitempty"`
	Language    string `json:"language,omitempty"`
}

// ExtractedBusinessInfo is the central output of both the algorithmic and
// the LLM extraction paths. Every field is optional; absence means "not
// found", never an error. List fields are always non-nil so consumers can
// range over them without nil checks.
type ExtractedBusinessInfo struct {
	// Contact
	Emails      []string            `json:"emails"`
	Phones      []string            `json:"phones"`
	Addresses   []string            `json:"addresses"`
	Hours       map[string]DayHours `json:"hours,omitempty"`
	Coordinates *Coordinates        `json:"coordinates,omitempty"`

	// Social
	SocialLinks []SocialLink `json:"socialLinks"`

	// Branding
	LogoURL      string        `json:"logoUrl,omitempty"`
	BrandColors  []string      `json:"brandColors"`
	Fonts        []string      `json:"fonts"`
	Typography   *Typography   `json:"typography,omitempty"`
	DesignTokens *DesignTokens `json:"designTokens,omitempty"`

	// Content
	BusinessDescription string       `json:"businessDescription,omitempty"`
	Tagline             string       `json:"tagline,omitempty"`
	KeyFeatures         []string     `json:"keyFeatures"`
	HeroSection         *HeroSection `json:"heroSection,omitempty"`
	HeroImages          []HeroImage  `json:"heroImages"`
	Galleries           []Gallery    `json:"galleries"`

	// Metadata
	SiteTitle       string `json:"siteTitle,omitempty"`
	SiteDescription string `json:"siteDescription,omitempty"`
	Favicon         string `json:"favicon,omitempty"`

	// Structured content
	BusinessHours     []HoursEntry   `json:"businessHours"`
	Services          []Service      `json:"services"`
	Testimonials      []Testimonial  `json:"testimonials"`
	FAQ               []FAQItem      `json:"faq"`
	ProductCategories []Category     `json:"productCategories"`
	FooterContent     *FooterContent `json:"footerContent,omitempty"`

	PageContent *PageContent `json:"pageContent,omitempty"`
}

// NewExtractedBusinessInfo returns a record with every list field initialized
// to an empty slice.
func NewExtractedBusinessInfo() *ExtractedBusinessInfo {
	return &ExtractedBusinessInfo{
		Emails:            []string{},
		Phones:            []string{},
		Addresses:         []string{},
		SocialLinks:       []SocialLink{},
		BrandColors:       []string{},
		Fonts:             []string{},
		KeyFeatures:       []string{},
		HeroImages:        []HeroImage{},
		Galleries:         []Gallery{},
		BusinessHours:     []HoursEntry{},
		Services:          []Service{},
		Testimonials:      []Testimonial{},
		FAQ:               []FAQItem{},
		ProductCategories: []Category{},
	}
}

// HasContact reports whether any contact-group field is populated.
func (b *ExtractedBusinessInfo) HasContact() bool {
	return len(b.Emails) > 0 || len(b.Phones) > 0 || len(b.Addresses) > 0
}

// HasBranding reports whether any branding-group field is populated.
func (b *ExtractedBusinessInfo) HasBranding() bool {
	return b.LogoURL != "" || len(b.BrandColors) > 0 || len(b.Fonts) > 0
}

// HasContent reports whether any content/metadata-group field is populated.
func (b *ExtractedBusinessInfo) HasContent() bool {
	return b.BusinessDescription != "" || b.SiteTitle != "" || b.Tagline != "" ||
		b.HeroSection != nil || len(b.KeyFeatures) > 0
}
