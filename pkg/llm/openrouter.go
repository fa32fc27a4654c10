package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"
	defaultTimeout = 120 * time.Second

	// Response bodies beyond this are malformed or abusive.
	maxResponseBytes = 4 << 20
)

// OpenRouter is a chat-completions client. It satisfies both TextClient and
// VisionClient; vision support depends on the model named in the request.
type OpenRouter struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// Option configures an OpenRouter client.
type Option func(*OpenRouter)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(u string) Option {
	return func(o *OpenRouter) { o.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *OpenRouter) { o.client = c }
}

// NewOpenRouter returns a client authenticating with apiKey.
func NewOpenRouter(apiKey string, opts ...Option) *OpenRouter {
	o := &OpenRouter{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *imageURLPart `json:"image_url,omitempty"`
}

type imageURLPart struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends a text-only chat completion and returns the first choice's
// content.
func (o *OpenRouter) Complete(ctx context.Context, req Request) (string, error) {
	return o.send(ctx, req, req.UserPrompt)
}

// CompleteWithVision sends a completion whose user message carries both the
// prompt text and the request's image.
func (o *OpenRouter) CompleteWithVision(ctx context.Context, req Request) (string, error) {
	if req.Image == "" {
		return o.send(ctx, req, req.UserPrompt)
	}
	parts := []contentPart{
		{Type: "text", Text: req.UserPrompt},
		{Type: "image_url", ImageURL: &imageURLPart{URL: req.Image}},
	}
	return o.send(ctx, req, parts)
}

func (o *OpenRouter) send(ctx context.Context, req Request, userContent any) (string, error) {
	messages := []chatMessage{}
	if req.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.SystemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: userContent})

	payload, err := json.Marshal(chatRequest{
		Model:       req.Model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("encoding completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		o.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("calling completion API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("reading completion response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion API returned %d for model %s", resp.StatusCode, req.Model)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decoding completion response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("completion API error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion response has no choices for model %s", req.Model)
	}
	return parsed.Choices[0].Message.Content, nil
}
