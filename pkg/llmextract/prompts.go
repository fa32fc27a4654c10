package llmextract

import "fmt"

// Prompt builders for each extraction phase. Every user prompt ends with the
// exact JSON contract the matching response struct unmarshals, and every
// system prompt forbids prose so the decoder sees JSON first.

const jsonOnlyRule = "Respond with a single JSON object matching the schema exactly. " +
	"No markdown fences, no commentary. Use empty strings, empty arrays, or null " +
	"for anything not present on the page. Never invent data."

const brandingSystemPrompt = "You are a brand-identity analyst. You receive a " +
	"stripped-down HTML rendering of a business website's visually dominant " +
	"regions and identify the brand's visual identity: logo, colors, fonts, " +
	"typography, and design tokens. " + jsonOnlyRule

const brandingSchema = `{
  "logoUrl": "absolute URL of the main logo image, or \"\"",
  "brandColors": ["#rrggbb hex colors, most prominent first, max 5, exclude white/black/gray"],
  "fonts": ["font family names actually used, max 5"],
  "typography": {
    "heading": {"fontFamily": "", "fontWeight": "", "color": "", "fontSize": ""},
    "body": {"fontFamily": "", "fontWeight": "", "color": "", "fontSize": ""},
    "accent": {"fontFamily": "", "fontWeight": "", "color": "", "fontSize": ""}
  },
  "designTokens": {
    "spacing": {"values": ["16px"], "unit": "px"},
    "borderRadius": {"values": ["8px"]},
    "shadows": ["0 2px 4px rgba(0,0,0,0.1)"]
  }
}`

func brandingPrompts(visionHTML string) (system, user string) {
	user = fmt.Sprintf(
		"Analyze this website's brand identity from its structural HTML.\n\nHTML:\n%s\n\nJSON schema:\n%s",
		visionHTML, brandingSchema)
	return brandingSystemPrompt, user
}

const contactSystemPrompt = "You are a data-entry specialist extracting contact " +
	"details from website text. Extract only information literally present. " +
	jsonOnlyRule

const contactSchema = `{
  "emails": ["addresses found on the page, lowercase, max 5"],
  "phones": ["phone numbers as written, max 3"],
  "addresses": ["full street addresses, max 3"],
  "hours": {"monday": {"open": "9:00 AM", "close": "5:00 PM"}, "sunday": {"closed": true}},
  "socialLinks": [{"platform": "facebook|instagram|twitter|linkedin|youtube|tiktok|pinterest|yelp", "url": ""}],
  "coordinates": {"lat": 0, "lng": 0}
}`

func contactPrompts(pageText string) (system, user string) {
	user = fmt.Sprintf(
		"Extract every piece of contact information from this page text.\n\nPage text:\n%s\n\nJSON schema:\n%s",
		pageText, contactSchema)
	return contactSystemPrompt, user
}

const contentSystemPrompt = "You are a marketing analyst summarizing what a " +
	"business does from its website text. Lines marked [PROMINENT] were " +
	"visually emphasized on the page. " + jsonOnlyRule

const contentSchema = `{
  "siteTitle": "the site or business name",
  "siteDescription": "the page's own meta description if present",
  "businessDescription": "2-3 sentences describing what the business does, grounded in the text",
  "tagline": "the business's slogan if one appears, max ~12 words",
  "keyFeatures": ["distinct offerings or selling points, max 15"],
  "heroSection": {"headline": "", "subheadline": "", "ctaText": "", "ctaLink": ""}
}`

func contentPrompts(pageText string) (system, user string) {
	user = fmt.Sprintf(
		"Describe this business from its page text.\n\nPage text:\n%s\n\nJSON schema:\n%s",
		pageText, contentSchema)
	return contentSystemPrompt, user
}

const structuredSystemPrompt = "You are extracting structured business content " +
	"(services, testimonials, FAQs, categories, hours, footer) from website " +
	"text. Extract only items literally present. " + jsonOnlyRule

const structuredSchema = `{
  "services": [{"name": "", "description": "", "price": ""}],
  "testimonials": [{"text": "", "author": "", "rating": 0}],
  "faq": [{"question": "", "answer": ""}],
  "productCategories": [{"name": "", "url": ""}],
  "businessHours": [{"day": "monday", "hours": "9:00 AM - 5:00 PM"}],
  "footerContent": {"copyright": "", "links": [""], "text": ""}
}`

func structuredPrompts(pageText string) (system, user string) {
	user = fmt.Sprintf(
		"Extract the structured content from this page text.\n\nPage text:\n%s\n\nJSON schema:\n%s",
		pageText, structuredSchema)
	return structuredSystemPrompt, user
}

const imagesSystemPrompt = "You are classifying the imagery of a business " +
	"website from an HTML excerpt of its image-bearing regions. Rate hero " +
	"candidates by how likely each is THE primary hero image (1.0 = certain). " +
	jsonOnlyRule

const imagesSchema = `{
  "heroImages": [{"url": "absolute URL", "alt": "", "confidence": 0.0}],
  "galleries": [{"type": "grid|carousel|masonry|unknown", "title": "", "columns": 0, "images": [{"url": "", "alt": ""}]}]
}`

func imagesPrompts(imageHTML string) (system, user string) {
	user = fmt.Sprintf(
		"Identify hero images and galleries in this HTML.\n\nHTML:\n%s\n\nJSON schema:\n%s",
		imageHTML, imagesSchema)
	return imagesSystemPrompt, user
}
