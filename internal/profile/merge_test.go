package profile

import (
	"testing"

	"github.com/launchkit/siteprofiler/models"
)

func pageProfile(pt models.PageType, info *models.ExtractedBusinessInfo) PageProfile {
	return PageProfile{
		Page: models.DiscoveredPage{URL: "https://example.com/" + string(pt), PageType: pt},
		Info: info,
	}
}

func TestMergeProfilesHomepageWins(t *testing.T) {
	home := models.NewExtractedBusinessInfo()
	home.SiteTitle = "Acme Bakery"
	home.Tagline = "Fresh bread daily"
	home.LogoURL = "https://example.com/logo.png"

	about := models.NewExtractedBusinessInfo()
	about.SiteTitle = "About Us | Acme Bakery"
	about.Tagline = "A different tagline"
	about.BusinessDescription = "Family-run bakery since 1982."

	merged := MergeProfiles([]PageProfile{
		pageProfile(models.PageTypeHome, home),
		pageProfile(models.PageTypeAbout, about),
	})

	if merged.SiteTitle != "Acme Bakery" || merged.Tagline != "Fresh bread daily" {
		t.Errorf("homepage fields overwritten: %+v", merged)
	}
	if merged.BusinessDescription != "Family-run bakery since 1982." {
		t.Errorf("secondary supplement missing: %q", merged.BusinessDescription)
	}
	if merged.LogoURL != "https://example.com/logo.png" {
		t.Errorf("logo: got %q", merged.LogoURL)
	}
}

func TestMergeProfilesTopsUpListsUnderCaps(t *testing.T) {
	home := models.NewExtractedBusinessInfo()
	home.Emails = []string{"hello@acme.example"}
	home.Phones = []string{"(555) 010-0000"}

	contact := models.NewExtractedBusinessInfo()
	contact.Emails = []string{"hello@acme.example", "orders@acme.example"}
	// Same number, different formatting: must not duplicate.
	contact.Phones = []string{"555-010-0000", "555-010-9999"}

	merged := MergeProfiles([]PageProfile{
		pageProfile(models.PageTypeHome, home),
		pageProfile(models.PageTypeContact, contact),
	})

	if len(merged.Emails) != 2 {
		t.Errorf("emails: got %v", merged.Emails)
	}
	if len(merged.Phones) != 2 || merged.Phones[0] != "(555) 010-0000" {
		t.Errorf("phones: got %v", merged.Phones)
	}
}

func TestMergeProfilesServiceDedupe(t *testing.T) {
	home := models.NewExtractedBusinessInfo()
	home.Services = []models.Service{{Name: "Haircut", Price: "$25"}}

	services := models.NewExtractedBusinessInfo()
	services.Services = []models.Service{
		{Name: "haircut", Price: "$30"}, // case-insensitive duplicate
		{Name: "Coloring"},
	}

	merged := MergeProfiles([]PageProfile{
		pageProfile(models.PageTypeHome, home),
		pageProfile(models.PageTypeServices, services),
	})

	if len(merged.Services) != 2 {
		t.Fatalf("services: got %+v", merged.Services)
	}
	if merged.Services[0].Price != "$25" {
		t.Errorf("homepage service overwritten: %+v", merged.Services[0])
	}
}

func TestMergeProfilesKeywordFallback(t *testing.T) {
	home := models.NewExtractedBusinessInfo()
	home.PageContent = &models.PageContent{
		MainText: "Artisan bread and pastry. Artisan croissants baked daily. Bread subscriptions available.",
	}

	merged := MergeProfiles([]PageProfile{pageProfile(models.PageTypeHome, home)})

	if len(merged.KeyFeatures) == 0 {
		t.Fatal("keyword fallback did not run")
	}
	if merged.KeyFeatures[0] != "artisan" && merged.KeyFeatures[0] != "bread" {
		t.Errorf("unexpected top keyword: %v", merged.KeyFeatures)
	}
}

func TestMergeProfilesEmpty(t *testing.T) {
	merged := MergeProfiles(nil)
	if merged == nil || merged.Emails == nil {
		t.Fatal("empty merge must return a fully shaped record")
	}
}
