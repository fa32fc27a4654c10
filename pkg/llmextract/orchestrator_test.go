package llmextract

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/launchkit/siteprofiler/models"
	"github.com/launchkit/siteprofiler/pkg/extract"
	"github.com/launchkit/siteprofiler/pkg/llm"
)

const testHTML = `<html><head><title>Acme Bakery</title>
<meta name="theme-color" content="#aa3311"></head><body>
<a href="mailto:hi@acme.example">email</a>
<h1>Fresh Bread</h1>
</body></html>`

// scriptedText routes each phase-2 call to a canned response based on the
// prompt's leading instruction.
type scriptedText struct {
	calls     int32
	byPhase   map[string]string
	phaseErrs map[string]error
}

func (s *scriptedText) Complete(_ context.Context, req llm.Request) (string, error) {
	atomic.AddInt32(&s.calls, 1)
	for marker, err := range s.phaseErrs {
		if strings.HasPrefix(req.UserPrompt, marker) {
			return "", err
		}
	}
	for marker, resp := range s.byPhase {
		if strings.HasPrefix(req.UserPrompt, marker) {
			return resp, nil
		}
	}
	return "", errors.New("no scripted response")
}

type scriptedVision struct {
	calls int32
	resp  string
	err   error
}

func (s *scriptedVision) CompleteWithVision(_ context.Context, _ llm.Request) (string, error) {
	atomic.AddInt32(&s.calls, 1)
	return s.resp, s.err
}

// Prompt markers matching the user-prompt openers in prompts.go.
const (
	contactMarker    = "Extract every piece of contact information"
	contentMarker    = "Describe this business"
	structuredMarker = "Extract the structured content"
	imagesMarker     = "Identify hero images"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestOrchestrator(text llm.TextClient, vision llm.VisionClient, fallback bool) *Orchestrator {
	cfg := models.DefaultConfig()
	cfg.EnableFallback = &fallback
	return New(text, vision, cfg, testLogger())
}

func TestExtractAllPhasesFailUsesFallback(t *testing.T) {
	text := &scriptedText{phaseErrs: map[string]error{
		contactMarker:    errors.New("down"),
		contentMarker:    errors.New("down"),
		structuredMarker: errors.New("down"),
		imagesMarker:     errors.New("down"),
	}}
	vision := &scriptedVision{err: errors.New("down")}
	o := newTestOrchestrator(text, vision, true)

	info, meta, err := o.Extract(context.Background(), testHTML, "https://acme.example", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !meta.UsedFallback || !meta.Success {
		t.Errorf("metadata: got %+v", meta)
	}
	if len(meta.Errors) != 5 {
		t.Errorf("errors: got %d (%v), want 5", len(meta.Errors), meta.Errors)
	}

	want := extract.New().Extract(testHTML, "https://acme.example")
	if !reflect.DeepEqual(info, want) {
		t.Error("fallback result differs from algorithmic extraction")
	}
	// All four text phases must have been attempted despite failing.
	if atomic.LoadInt32(&text.calls) != 4 {
		t.Errorf("text calls: got %d, want 4", text.calls)
	}
}

func TestExtractAllPhasesFailFallbackDisabled(t *testing.T) {
	text := &scriptedText{phaseErrs: map[string]error{
		contactMarker:    errors.New("down"),
		contentMarker:    errors.New("down"),
		structuredMarker: errors.New("down"),
		imagesMarker:     errors.New("down"),
	}}
	vision := &scriptedVision{err: errors.New("down")}
	o := newTestOrchestrator(text, vision, false)

	_, meta, err := o.Extract(context.Background(), testHTML, "https://acme.example", "")
	if err == nil {
		t.Fatal("want error when every phase fails and fallback is disabled")
	}
	if meta.Success || meta.UsedFallback {
		t.Errorf("metadata: got %+v", meta)
	}
}

func TestExtractMinimumDataGate(t *testing.T) {
	tests := []struct {
		name         string
		byPhase      map[string]string
		visionResp   string
		visionErr    error
		wantFallback bool
	}{
		{
			name: "one category triggers fallback",
			byPhase: map[string]string{
				contentMarker: `{"siteTitle":"Acme Bakery"}`,
			},
			visionErr:    errors.New("down"),
			wantFallback: true,
		},
		{
			name: "two categories pass the gate",
			byPhase: map[string]string{
				contentMarker: `{"siteTitle":"Acme Bakery"}`,
			},
			visionResp:   `{"brandColors":["#aa3311"]}`,
			wantFallback: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := map[string]error{}
			for _, m := range []string{contactMarker, contentMarker, structuredMarker, imagesMarker} {
				if _, ok := tt.byPhase[m]; !ok {
					errs[m] = errors.New("down")
				}
			}
			text := &scriptedText{byPhase: tt.byPhase, phaseErrs: errs}
			vision := &scriptedVision{resp: tt.visionResp, err: tt.visionErr}
			o := newTestOrchestrator(text, vision, true)

			info, meta, err := o.Extract(context.Background(), testHTML, "https://acme.example", "")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if meta.UsedFallback != tt.wantFallback {
				t.Fatalf("usedFallback: got %v, want %v (%+v)", meta.UsedFallback, tt.wantFallback, meta)
			}
			if !tt.wantFallback {
				if info.SiteTitle != "Acme Bakery" || len(info.BrandColors) != 1 {
					t.Errorf("merged result: got %+v", info)
				}
			}
		})
	}
}

func TestExtractMergePrecedence(t *testing.T) {
	text := &scriptedText{byPhase: map[string]string{
		contactMarker: `{"emails":["hello@acme.example"],"phones":["555-0100"]}`,
		contentMarker: `{"siteTitle":"Acme Bakery","tagline":"Bread daily",
			"heroSection":{"headline":"Fresh Bread"}}`,
		structuredMarker: `{"services":[{"name":"Custom cakes"}]}`,
		imagesMarker: `{"heroImages":[
			{"url":"https://acme.example/b.jpg","confidence":0.5},
			{"url":"https://acme.example/a.jpg","confidence":0.9}]}`,
	}}
	vision := &scriptedVision{resp: `{"logoUrl":"https://acme.example/logo.png","brandColors":["#aa3311"]}`}
	o := newTestOrchestrator(text, vision, true)

	info, meta, err := o.Extract(context.Background(), testHTML, "https://acme.example", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.UsedFallback {
		t.Fatalf("unexpected fallback: %+v", meta)
	}
	if !meta.Phase1Complete || !meta.Phase2AComplete || !meta.Phase2BComplete ||
		!meta.Phase2CComplete || !meta.Phase2DComplete {
		t.Errorf("phase flags: got %+v", meta)
	}

	if info.Emails[0] != "hello@acme.example" || info.Phones[0] != "555-0100" {
		t.Errorf("contact: got %+v", info)
	}
	if info.LogoURL != "https://acme.example/logo.png" || info.BrandColors[0] != "#aa3311" {
		t.Errorf("branding: got %+v", info)
	}
	if info.SiteTitle != "Acme Bakery" || info.Tagline != "Bread daily" {
		t.Errorf("content: got %+v", info)
	}
	if len(info.Services) != 1 || info.Services[0].Name != "Custom cakes" {
		t.Errorf("structured: got %+v", info.Services)
	}

	// Hero images are confidence-ranked and the best one backfills the hero
	// background the content phase left empty.
	if info.HeroImages[0].URL != "https://acme.example/a.jpg" {
		t.Errorf("hero images not ranked: %+v", info.HeroImages)
	}
	if info.HeroSection == nil || info.HeroSection.BackgroundImage != "https://acme.example/a.jpg" {
		t.Errorf("hero background: got %+v", info.HeroSection)
	}
}

func TestExtractGateFailureFallbackDisabled(t *testing.T) {
	text := &scriptedText{
		byPhase: map[string]string{contentMarker: `{"siteTitle":"Acme Bakery"}`},
		phaseErrs: map[string]error{
			contactMarker:    errors.New("down"),
			structuredMarker: errors.New("down"),
			imagesMarker:     errors.New("down"),
		},
	}
	vision := &scriptedVision{err: errors.New("down")}
	o := newTestOrchestrator(text, vision, false)

	info, meta, err := o.Extract(context.Background(), testHTML, "https://acme.example", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Success || meta.UsedFallback {
		t.Errorf("metadata: got %+v", meta)
	}
	if info.SiteTitle != "Acme Bakery" {
		t.Errorf("thin merged result should still be returned: %+v", info)
	}
	if len(meta.Warnings) == 0 {
		t.Error("want a gate warning")
	}
}
