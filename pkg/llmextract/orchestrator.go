// Package llmextract coordinates the two-phase hybrid LLM extraction: one
// vision-capable branding call, then four concurrent text extraction calls,
// merged into the same business-info shape the algorithmic extractor
// produces. Thin or fully failed LLM output is replaced wholesale by the
// algorithmic extractor when fallback is enabled.
package llmextract

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/launchkit/siteprofiler/models"
	"github.com/launchkit/siteprofiler/pkg/extract"
	"github.com/launchkit/siteprofiler/pkg/llm"
	"github.com/launchkit/siteprofiler/pkg/preprocess"
)

// phaseApplier is the common shape of a decoded phase response: each knows
// how to write its field group onto the merged record.
type phaseApplier interface {
	apply(*models.ExtractedBusinessInfo)
}

// Orchestrator runs hybrid extractions. Safe for concurrent use; all per-run
// state lives on the stack of Extract.
type Orchestrator struct {
	text     llm.TextClient
	vision   llm.VisionClient
	cfg      *models.Config
	logger   *slog.Logger
	fallback *extract.Extractor
}

// New returns an Orchestrator using text and vision for model calls and the
// algorithmic extractor as its fallback path.
func New(text llm.TextClient, vision llm.VisionClient, cfg *models.Config, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		text:     text,
		vision:   vision,
		cfg:      cfg,
		logger:   logger,
		fallback: extract.New(),
	}
}

// Extract runs the full hybrid pipeline against rawHTML. screenshot, when
// non-empty, is a base64 data URL handed to the vision phase. The returned
// metadata records per-phase outcomes; it is never nil.
//
// Phase 1 failure is non-fatal. Each phase-2 call fails independently; one
// failure never cancels the others. The merged result must populate at least
// MinDataCategories of the contact/branding/content groups or the whole LLM
// output is discarded in favor of the algorithmic extractor.
func (o *Orchestrator) Extract(ctx context.Context, rawHTML, baseURL, screenshot string) (*models.ExtractedBusinessInfo, *models.ExtractionMetadata, error) {
	meta := models.NewExtractionMetadata()
	defer meta.Finish()

	visionHTML := preprocess.ForVision(rawHTML, o.cfg.VisionHTMLBytes)
	pageText := preprocess.ForText(rawHTML, baseURL, o.cfg.TextBytes)
	imageHTML := preprocess.ForImages(rawHTML, o.cfg.ImageHTMLBytes)

	// Phase 1: vision-based branding. Failure degrades, never aborts.
	branding, err := o.runBranding(ctx, visionHTML, screenshot)
	if err != nil {
		meta.AddError(fmt.Sprintf("phase 1 branding: %v", err))
		o.logger.Warn("branding phase failed", "url", baseURL, "error", err)
	} else {
		meta.Phase1Complete = true
	}

	// Phase 2: four independent text extractions, launched together after
	// phase 1 settles. Results land in index-stable slots; completion order
	// carries no meaning.
	phases := []struct {
		name string
		run  func(context.Context) (phaseApplier, error)
	}{
		{"contact", func(ctx context.Context) (phaseApplier, error) {
			system, user := contactPrompts(pageText)
			return runPhase[contactResponse](ctx, o, system, user)
		}},
		{"content", func(ctx context.Context) (phaseApplier, error) {
			system, user := contentPrompts(pageText)
			return runPhase[contentResponse](ctx, o, system, user)
		}},
		{"structured", func(ctx context.Context) (phaseApplier, error) {
			system, user := structuredPrompts(pageText)
			return runPhase[structuredResponse](ctx, o, system, user)
		}},
		{"images", func(ctx context.Context) (phaseApplier, error) {
			system, user := imagesPrompts(imageHTML)
			return runPhase[imagesResponse](ctx, o, system, user)
		}},
	}

	results := make([]phaseApplier, len(phases))
	errs := make([]error, len(phases))
	var wg sync.WaitGroup
	for i := range phases {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = phases[i].run(ctx)
		}(i)
	}
	wg.Wait()

	completed := []*bool{
		&meta.Phase2AComplete, &meta.Phase2BComplete,
		&meta.Phase2CComplete, &meta.Phase2DComplete,
	}
	for i := range phases {
		if errs[i] != nil {
			meta.AddError(fmt.Sprintf("phase 2 %s: %v", phases[i].name, errs[i]))
			o.logger.Warn("text phase failed", "phase", phases[i].name, "url", baseURL, "error", errs[i])
			continue
		}
		*completed[i] = true
	}

	if branding == nil && allFailed(errs) {
		if !o.cfg.FallbackEnabled() {
			return nil, meta, fmt.Errorf("extracting %s: every model phase failed", baseURL)
		}
		return o.runFallback(rawHTML, baseURL, meta, "all phases failed"), meta, nil
	}

	// Merge with fixed per-group precedence: branding from phase 1, contact
	// from 2A, content from 2B, structured from 2C; 2D layers images last so
	// it can backfill the hero background.
	info := models.NewExtractedBusinessInfo()
	if branding != nil {
		branding.apply(info)
	}
	for i := range phases {
		if results[i] != nil {
			results[i].apply(info)
		}
	}

	if categories(info) < o.cfg.MinDataCategories {
		if o.cfg.FallbackEnabled() {
			return o.runFallback(rawHTML, baseURL, meta, "minimum-data gate failed"), meta, nil
		}
		meta.AddWarning("minimum-data gate failed, fallback disabled")
		return info, meta, nil
	}

	meta.Success = true
	return info, meta, nil
}

// runBranding issues the phase-1 vision call and decodes its response.
func (o *Orchestrator) runBranding(ctx context.Context, visionHTML, screenshot string) (*brandingResponse, error) {
	system, user := brandingPrompts(visionHTML)
	content, err := o.vision.CompleteWithVision(ctx, llm.Request{
		Model:        o.cfg.VisionModel,
		SystemPrompt: system,
		UserPrompt:   user,
		Image:        screenshot,
		MaxTokens:    o.cfg.LLMMaxTokens,
	})
	if err != nil {
		return nil, err
	}
	resp, err := llm.DecodeJSON[brandingResponse](content)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// runPhase issues one phase-2 text call and decodes it as R.
func runPhase[R any, PR interface {
	*R
	phaseApplier
}](ctx context.Context, o *Orchestrator, system, user string) (phaseApplier, error) {
	content, err := o.text.Complete(ctx, llm.Request{
		Model:        o.cfg.TextModel,
		SystemPrompt: system,
		UserPrompt:   user,
		MaxTokens:    o.cfg.LLMMaxTokens,
	})
	if err != nil {
		return nil, err
	}
	resp, err := llm.DecodeJSON[R](content)
	if err != nil {
		return nil, err
	}
	return PR(&resp), nil
}

// runFallback discards all LLM output and re-extracts algorithmically.
func (o *Orchestrator) runFallback(rawHTML, baseURL string, meta *models.ExtractionMetadata, reason string) *models.ExtractedBusinessInfo {
	o.logger.Info("falling back to algorithmic extraction", "url", baseURL, "reason", reason)
	meta.UsedFallback = true
	meta.Success = true
	meta.AddWarning("used algorithmic fallback: " + reason)
	return o.fallback.Extract(rawHTML, baseURL)
}

// categories counts how many of the contact/branding/content groups are
// populated on info.
func categories(info *models.ExtractedBusinessInfo) int {
	n := 0
	if info.HasContact() {
		n++
	}
	if info.HasBranding() {
		n++
	}
	if info.HasContent() {
		n++
	}
	return n
}

func allFailed(errs []error) bool {
	for _, err := range errs {
		if err == nil {
			return false
		}
	}
	return true
}
