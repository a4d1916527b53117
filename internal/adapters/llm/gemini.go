// Package llm provides generative model adapters.
// Clean Architecture: Adapters implementing ports.LLMService.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"

	"github.com/0xcro3dile/memurbot-go/internal/domain/ports"
)

// GeminiAdapter implements ports.LLMService using the Google GenAI SDK.
type GeminiAdapter struct {
	client *genai.Client
	model  string
}

// GeminiOptions configures a GeminiAdapter.
type GeminiOptions struct {
	APIKey  string
	Model   string
	BaseURL string        // optional, overrides the public endpoint
	Timeout time.Duration // HTTP client timeout
}

// NewGeminiAdapter creates a new Gemini adapter.
func NewGeminiAdapter(ctx context.Context, opts GeminiOptions) (*GeminiAdapter, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if opts.Model == "" {
		opts.Model = "gemini-2.0-flash"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}

	cfg := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: opts.Timeout},
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &GeminiAdapter{client: client, model: opts.Model}, nil
}

// Generate sends prompt as a single user turn and returns the response text.
func (a *GeminiAdapter) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), nil)
	if err != nil {
		return "", &ports.LLMError{Kind: classifyGenAI(err), Err: fmt.Errorf("calling gemini: %w", err)}
	}
	if resp == nil {
		return "", &ports.LLMError{Kind: ports.ErrorEmpty, Err: errors.New("gemini returned no response")}
	}
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return "", &ports.LLMError{Kind: ports.ErrorModel, Err: fmt.Errorf("prompt blocked: %s", fb.BlockReason)}
	}

	text := resp.Text()
	if text == "" {
		return "", &ports.LLMError{Kind: ports.ErrorEmpty, Err: errors.New("gemini returned no text")}
	}
	return text, nil
}

// Model returns the configured model name.
func (a *GeminiAdapter) Model() string { return a.model }

// classifyGenAI maps SDK errors to ports.ErrorKind.
func classifyGenAI(err error) ports.ErrorKind {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return ports.KindForStatus(apiErr.Code)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return ports.KindForStatus(apiErrPtr.Code)
	}
	return ports.ErrorTransport
}
