package extract

import (
	"net/url"
	"testing"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return u
}

func TestExtractHero(t *testing.T) {
	html := `<html><body>
		<section class="hero" style="background-image: url('/img/bg.jpg')">
			<h1>Fresh Bread Daily</h1>
			<p>Baked every morning since 1982.</p>
			<a class="btn-primary" href="/order">Order Now</a>
		</section>
	</body></html>`
	base := mustParse(t, "https://bakery.example")
	hero := extractHero(doc(t, html), base)

	if hero == nil {
		t.Fatal("got nil hero")
	}
	if hero.Headline != "Fresh Bread Daily" {
		t.Errorf("headline: got %q", hero.Headline)
	}
	if hero.Subheadline != "Baked every morning since 1982." {
		t.Errorf("subheadline: got %q", hero.Subheadline)
	}
	if hero.CTAText != "Order Now" || hero.CTALink != "https://bakery.example/order" {
		t.Errorf("cta: got %q %q", hero.CTAText, hero.CTALink)
	}
	if hero.BackgroundImage != "https://bakery.example/img/bg.jpg" {
		t.Errorf("background: got %q", hero.BackgroundImage)
	}
}

func TestExtractHeroRequiresHeadline(t *testing.T) {
	html := `<html><body><div class="hero"><p>no heading here</p></div></body></html>`
	if hero := extractHero(doc(t, html), nil); hero != nil {
		t.Errorf("got %+v, want nil without a headline", hero)
	}
}

func TestExtractHeroFallsBackToFirstH1Parent(t *testing.T) {
	html := `<html><body><div><h1>Plain Site</h1><p>A tagline.</p></div></body></html>`
	hero := extractHero(doc(t, html), nil)

	if hero == nil || hero.Headline != "Plain Site" {
		t.Fatalf("got %+v", hero)
	}
}

func TestExtractHeroImagesRanking(t *testing.T) {
	html := `<html><body>
		<img src="/top.jpg" alt="top of page">
		<div class="hero"><img src="/hero.jpg" alt="storefront"></div>
		<div class="banner" style="background: url(/banner-bg.jpg)"></div>
	</body></html>`
	base := mustParse(t, "https://example.com")
	got := extractHeroImages(doc(t, html), base)

	if len(got) != 3 {
		t.Fatalf("got %d images %v, want 3", len(got), got)
	}
	if got[0].URL != "https://example.com/hero.jpg" || got[0].Confidence != 0.9 {
		t.Errorf("first: got %+v", got[0])
	}
	if got[1].URL != "https://example.com/banner-bg.jpg" || got[1].Confidence != 0.8 {
		t.Errorf("second: got %+v", got[1])
	}
	if got[2].URL != "https://example.com/top.jpg" || got[2].Confidence != 0.4 {
		t.Errorf("third: got %+v", got[2])
	}
}

func TestExtractGalleries(t *testing.T) {
	html := `<html><body>
		<h2>Our Work</h2>
		<div class="gallery grid-cols-3">
			<img src="/g1.jpg" alt="one">
			<img src="/g2.jpg" alt="two">
			<img src="/g3.jpg" alt="three">
		</div>
		<div class="carousel">
			<img src="/c1.jpg"><img src="/c2.jpg">
		</div>
	</body></html>`
	base := mustParse(t, "https://example.com")
	got := extractGalleries(doc(t, html), base)

	if len(got) != 1 {
		t.Fatalf("got %d galleries, want 1 (two-image carousel excluded)", len(got))
	}
	g := got[0]
	if len(g.Images) != 3 || g.Images[0].URL != "https://example.com/g1.jpg" {
		t.Errorf("images: got %+v", g.Images)
	}
	if g.Columns != 3 {
		t.Errorf("columns: got %d, want 3", g.Columns)
	}
	if g.Title != "Our Work" {
		t.Errorf("title: got %q", g.Title)
	}
}
