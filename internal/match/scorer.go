// Package match implements the scholarship-matching orchestration: it
// gathers a student profile and a filtered scholarship set, submits one
// scoring unit per scholarship to the external AI service in a single
// batched conversation, and assembles the validated combined result.
package match

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// Scorer turns a fixed system instruction plus ordered per-scholarship
// units into one completion.  Implementations must respect the context
// deadline and must not retry on failure.
type Scorer interface {
	Score(ctx context.Context, instruction string, units []string) (string, error)
}

// GeminiScorer calls the Gemini API through the official genai client.
// Sampling parameters are fixed: temperature 1, top-p 1, no frequency or
// presence penalty, output capped at 2048 tokens.  Responses are requested
// as JSON so the orchestrator can split them per scholarship.
type GeminiScorer struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiScorer creates a scorer bound to one model.  The timeout is the
// hard deadline applied to every Score call; a zero value disables the
// extra deadline and relies on the caller's context alone.
func NewGeminiScorer(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiScorer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiScorer{client: client, model: model, timeout: timeout}, nil
}

// Score submits the instruction and the ordered units as a single
// conversation and returns the raw completion text.
func (s *GeminiScorer) Score(ctx context.Context, instruction string, units []string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	contents := make([]*genai.Content, 0, len(units))
	for _, u := range units {
		contents = append(contents, genai.NewContentFromText(u, genai.RoleUser))
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](1),
		TopP:              genai.Ptr[float32](1),
		FrequencyPenalty:  genai.Ptr[float32](0),
		PresencePenalty:   genai.Ptr[float32](0),
		MaxOutputTokens:   2048,
		ResponseMIMEType:  "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty completion")
	}
	return text, nil
}
