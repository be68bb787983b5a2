// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// ErrUnavailable marks a failed call to the completion provider.
var ErrUnavailable = errors.New("assistant unavailable")

// Completer turns a prompt into text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// GeminiCompleter calls the Gemini API through the GenAI SDK.
type GeminiCompleter struct {
	client *genai.Client
	model  string
}

var _ Completer = (*GeminiCompleter)(nil)

func NewGeminiCompleter(ctx context.Context, apiKey, model string) (*GeminiCompleter, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiCompleter{client: client, model: model}, nil
}

func (g *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.4)),
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("%w: gemini generation failed: %w", ErrUnavailable, err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", fmt.Errorf("%w: empty response from gemini", ErrUnavailable)
	}
	return text, nil
}
