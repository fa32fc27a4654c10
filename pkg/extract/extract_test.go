package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func doc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return d
}

func TestExtractNeverNil(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{"empty input", ""},
		{"garbage", "<<<>>>not html at all &&&"},
		{"truncated tag", "<html><body><div class="},
		{"plain text", "hello world"},
	}

	e := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := e.Extract(tt.html, "https://example.com")
			if info == nil {
				t.Fatal("Extract returned nil")
			}
			if info.Emails == nil || info.Phones == nil || info.SocialLinks == nil {
				t.Error("contact slices not initialized")
			}
			if info.BrandColors == nil || info.Fonts == nil {
				t.Error("branding slices not initialized")
			}
			if info.Services == nil || info.KeyFeatures == nil || info.Galleries == nil {
				t.Error("content slices not initialized")
			}
		})
	}
}

func TestExtractPageContent(t *testing.T) {
	html := `<html><head><title>Millstone Bakery</title></head><body>
		<main>
			<h1>Millstone Bakery</h1>
			<p>We mill our own flour and bake naturally leavened sourdough every
			morning. Our loaves rest for a full day before they reach the shelf,
			which gives the crumb its open texture and the crust its deep color.</p>
			<p>Alongside bread we bake croissants, seeded rye, and a rotating
			selection of seasonal pastries.</p>
		</main>
		<footer><p>Copyright 2026 Millstone Bakery</p></footer>
	</body></html>`

	info := New().Extract(html, "https://millstone.example.com")
	if info.PageContent == nil {
		t.Fatal("PageContent is nil")
	}
	if !strings.Contains(info.PageContent.MainText, "sourdough") {
		t.Errorf("MainText missing body copy:\n%s", info.PageContent.MainText)
	}
	if !strings.Contains(info.PageContent.FooterText, "Millstone") {
		t.Errorf("FooterText = %q, want copyright line", info.PageContent.FooterText)
	}
}

func TestExtractEmails(t *testing.T) {
	html := `<html><body>
		<a href="mailto:Hello@Example.com">email us</a>
		<p>Support: support@example.com or image@2x.png</p>
		<p>duplicate hello@example.com</p>
	</body></html>`
	d := doc(t, html)
	got := extractEmails(d, d.Find("body").Text())

	want := []string{"hello@example.com", "support@example.com"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("email %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExtractPhones(t *testing.T) {
	html := `<html><body>
		<a href="tel:+1-555-123-4567">call</a>
		<p>Office: (555) 987-6543</p>
		<p>Room 12 opens at 9</p>
	</body></html>`
	d := doc(t, html)
	got := extractPhones(d, d.Find("body").Text())

	if len(got) != 2 {
		t.Fatalf("got %d phones %v, want 2", len(got), got)
	}
	if got[0] != "+1-555-123-4567" {
		t.Errorf("tel link phone: got %q", got[0])
	}
}

func TestExtractSocialLinks(t *testing.T) {
	html := `<html><body>
		<a href="https://www.facebook.com/acmeco">fb</a>
		<a href="https://instagram.com/acmeco">ig</a>
		<a href="https://facebook.com/other">fb again</a>
		<a href="https://twitter.com/">bare homepage</a>
		<a href="https://example.com/facebook">not social</a>
	</body></html>`
	d := doc(t, html)
	got := extractSocialLinks(d, nil)

	if len(got) != 2 {
		t.Fatalf("got %d links %v, want 2", len(got), got)
	}
	if got[0].Platform != "facebook" || !strings.Contains(got[0].URL, "acmeco") {
		t.Errorf("first platform: got %+v", got[0])
	}
	if got[1].Platform != "instagram" {
		t.Errorf("second platform: got %+v", got[1])
	}
}

func TestExtractLogo(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			"logo class img",
			`<header><img class="site-logo" src="/img/logo.svg"></header>`,
			"https://example.com/img/logo.svg",
		},
		{
			"data URI rejected",
			`<img class="logo" src="data:image/png;base64,AAAA">`,
			"",
		},
		{
			"placeholder rejected",
			`<img class="logo" src="/img/placeholder.png">`,
			"",
		},
		{
			"no logo",
			`<body><p>plain page</p></body>`,
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			info := e.Extract("<html><body>"+tt.html+"</body></html>", "https://example.com")
			if info.LogoURL != tt.want {
				t.Errorf("got %q, want %q", info.LogoURL, tt.want)
			}
		})
	}
}

func TestExtractHours(t *testing.T) {
	html := `<html><body><div class="opening-hours">
		<div>Monday 9:00 AM - 5:00 PM</div>
		<div>Saturday Closed</div>
	</div></body></html>`
	d := doc(t, html)
	hours, entries := extractHours(d, d.Find("body").Text())

	if mon, ok := hours["monday"]; !ok || mon.Open != "9:00 AM" || mon.Close != "5:00 PM" {
		t.Errorf("monday: got %+v", hours)
	}
	if sat, ok := hours["saturday"]; !ok || !sat.Closed {
		t.Errorf("saturday should be closed: got %+v", hours)
	}
	if len(entries) != 2 {
		t.Errorf("entries: got %d, want 2", len(entries))
	}
}

func TestExtractServices(t *testing.T) {
	html := `<html><body>
		<div class="service-card"><h3>Haircut</h3><p>Classic cut.</p><span>$25</span></div>
		<div class="service-card"><h3>Coloring</h3><p>Full color.</p></div>
		<div class="service-card"><h3>Haircut</h3><p>dup</p></div>
	</body></html>`
	got := extractServices(doc(t, html))

	if len(got) != 2 {
		t.Fatalf("got %d services %v, want 2", len(got), got)
	}
	if got[0].Name != "Haircut" || got[0].Price != "$25" {
		t.Errorf("first service: got %+v", got[0])
	}
}

func TestExtractFAQ(t *testing.T) {
	html := `<html><body>
		<details><summary>Do you take walk-ins?</summary><p>Yes, before noon.</p></details>
		<details><summary>Where do I park?</summary><p>Behind the shop.</p></details>
	</body></html>`
	got := extractFAQ(doc(t, html))

	if len(got) != 2 {
		t.Fatalf("got %d items, want 2", len(got))
	}
	if got[0].Question != "Do you take walk-ins?" || !strings.Contains(got[0].Answer, "noon") {
		t.Errorf("first item: got %+v", got[0])
	}
}

func TestExtractTestimonials(t *testing.T) {
	html := `<html><body>
		<div class="testimonial">
			<p class="quote">Best service I have ever had, truly wonderful people.</p>
			<cite>Jamie R.</cite>
		</div>
	</body></html>`
	got := extractTestimonials(doc(t, html))

	if len(got) != 1 {
		t.Fatalf("got %d testimonials, want 1", len(got))
	}
	if got[0].Author != "Jamie R." {
		t.Errorf("author: got %q", got[0].Author)
	}
}

func TestExtractSiteMeta(t *testing.T) {
	html := `<html><head>
		<title>Acme Plumbing</title>
		<meta name="description" content="Plumbers in Springfield.">
		<link rel="icon" href="/favicon.png">
	</head><body></body></html>`
	e := New()
	info := e.Extract(html, "https://acme.example")

	if info.SiteTitle != "Acme Plumbing" {
		t.Errorf("title: got %q", info.SiteTitle)
	}
	if info.SiteDescription != "Plumbers in Springfield." {
		t.Errorf("description: got %q", info.SiteDescription)
	}
	if info.Favicon != "https://acme.example/favicon.png" {
		t.Errorf("favicon: got %q", info.Favicon)
	}
}
