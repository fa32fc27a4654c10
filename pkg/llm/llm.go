// Package llm defines the completion-client contracts the extraction
// orchestrator depends on, plus an OpenRouter-backed implementation of both.
package llm

import "context"

// Request is a single completion request. Image, when set, is a base64 data
// URL attached to the user message for vision-capable models.
type Request struct {
	Model        string
	SystemPrompt string
	UserPrompt   string
	Image        string
	MaxTokens    int
	Temperature  float64
}

// TextClient completes text-only prompts.
type TextClient interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// VisionClient completes prompts carrying an image.
type VisionClient interface {
	CompleteWithVision(ctx context.Context, req Request) (string, error)
}
