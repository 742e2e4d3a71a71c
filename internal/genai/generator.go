// Package genai proxies text generation to Gemini. It fills the role the
// code executor would otherwise play: instead of running user code, the model
// generates, simulates, or refactors it, and the chunks stream straight
// through to the client.
package genai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Generator produces model output, either streamed chunk by chunk or as a
// single response. emit is called once per text chunk; returning an error
// from emit stops the stream.
type Generator interface {
	Stream(ctx context.Context, prompt, instruction string, emit func(chunk string) error) error
	Generate(ctx context.Context, prompt, instruction string) (string, error)
}

// Gemini is the production Generator backed by google.golang.org/genai.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini generator for the given model id.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai: creating client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// Stream sends the prompt with the system instruction and forwards each text
// chunk to emit. The stream ends when the model finishes, the context is
// cancelled, or emit returns an error.
func (g *Gemini) Stream(ctx context.Context, prompt, instruction string, emit func(string) error) error {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
	}

	for resp, err := range g.client.Models.GenerateContentStream(ctx, g.model, genai.Text(prompt), config) {
		if err != nil {
			return fmt.Errorf("genai: streaming: %w", err)
		}
		if text := resp.Text(); text != "" {
			if err := emit(text); err != nil {
				return err
			}
		}
	}
	return nil
}

// Generate sends the prompt with the system instruction and returns the full
// response text, trimmed of surrounding whitespace.
func (g *Gemini) Generate(ctx context.Context, prompt, instruction string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("genai: generating: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}
