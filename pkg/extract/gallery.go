package extract

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/launchkit/siteprofiler/models"
)

// Gallery container selectors across common builder conventions, mapped to
// the layout each implies. Checked in order; a container matching an earlier
// selector is not reclassified by a later one.
var gallerySelectors = []struct {
	selector string
	kind     models.GalleryType
}{
	{`[class*="carousel"]`, models.GalleryCarousel},
	{`[class*="slider"]`, models.GalleryCarousel},
	{`[class*="masonry"]`, models.GalleryMasonry},
	{`[class*="grid"] img`, models.GalleryGrid}, // resolved to the parent below
	{`[class*="gallery"]`, models.GalleryUnknown},
	{".wp-block-gallery", models.GalleryGrid},
	{".sqs-gallery", models.GalleryUnknown},
}

var gridColsRe = regexp.MustCompile(`grid-cols-(\d+)|columns-(\d+)`)

// extractGalleries finds image galleries and classifies their layout. A
// container needs at least three images to count as a gallery.
func extractGalleries(doc *goquery.Document, base *url.URL) []models.Gallery {
	out := []models.Gallery{}
	visited := make(map[*html.Node]bool)
	seenFirstImage := make(map[string]bool)

	for _, gs := range gallerySelectors {
		if len(out) >= models.MaxGalleries {
			break
		}
		doc.Find(gs.selector).Each(func(i int, s *goquery.Selection) {
			if i >= 20 || len(out) >= models.MaxGalleries {
				return
			}
			container := s
			if goquery.NodeName(s) == "img" {
				container = s.Parent()
			}
			if len(container.Nodes) == 0 || visited[container.Nodes[0]] {
				return
			}
			visited[container.Nodes[0]] = true

			g := buildGallery(container, gs.kind, base)
			if g == nil {
				return
			}
			// Containers matched twice through different selectors share
			// their first image.
			if seenFirstImage[g.Images[0].URL] {
				return
			}
			seenFirstImage[g.Images[0].URL] = true
			out = append(out, *g)
		})
	}
	return out
}

func buildGallery(container *goquery.Selection, kind models.GalleryType, base *url.URL) *models.Gallery {
	images := []models.GalleryImage{}
	seen := make(map[string]bool)

	container.Find("img").Each(func(i int, img *goquery.Selection) {
		if len(images) >= models.MaxGalleryImages {
			return
		}
		src := absoluteURL(img.AttrOr("src", ""), base)
		if src == "" || strings.HasPrefix(img.AttrOr("src", ""), "data:") || seen[src] {
			return
		}
		seen[src] = true
		images = append(images, models.GalleryImage{URL: src, Alt: img.AttrOr("alt", "")})
	})

	if len(images) < 3 {
		return nil
	}

	g := &models.Gallery{Type: kind, Images: images}

	class := container.AttrOr("class", "")
	if m := gridColsRe.FindStringSubmatch(class); m != nil {
		colStr := m[1]
		if colStr == "" {
			colStr = m[2]
		}
		if cols, err := strconv.Atoi(colStr); err == nil && cols > 0 && cols <= 12 {
			g.Columns = cols
			if g.Type == models.GalleryUnknown {
				g.Type = models.GalleryGrid
			}
		}
	}

	// A heading immediately before or inside the container names it.
	if title := cleanText(container.Find("h2, h3").First().Text()); title != "" && len(title) <= 80 {
		g.Title = title
	} else if prev := container.Prev(); prev.Is("h2, h3") {
		g.Title = cleanText(prev.Text())
	}

	return g
}
