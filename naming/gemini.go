// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package naming

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-3-flash-preview"

// contentGenerator is the slice of *genai.Models used here
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini generates team names and winner messages with Google's Gemini API.
type Gemini struct {
	models contentGenerator
	model  string
}

// NewGemini creates a Gemini generator.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Gemini{models: client.Models, model: model}, nil
}

var teamNamesSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"names": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	},
	Required: []string{"names"},
}

// TeamNames asks for count creative team names as structured JSON.
func (g *Gemini) TeamNames(ctx context.Context, count int) ([]string, error) {
	prompt := fmt.Sprintf(
		"Generate %d creative, professional and fun names for corporate teams. Each name should be 2 to 5 words long.",
		count,
	)

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   teamNamesSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("GenAI team names failed: %w", err)
	}
	if resp == nil {
		return nil, errors.New("empty GenAI response")
	}

	return ParseTeamNames(resp.Text(), count)
}

// WinnerMessage asks for a short congratulation for a draw winner.
func (g *Gemini) WinnerMessage(ctx context.Context, name string) (string, error) {
	prompt := fmt.Sprintf(
		"Write one short, enthusiastic and professional sentence congratulating %s, who just won the lucky draw.",
		name,
	)

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("GenAI winner message failed: %w", err)
	}
	if resp == nil {
		return "", errors.New("empty GenAI response")
	}

	return strings.TrimSpace(resp.Text()), nil
}

// Name returns the generator name.
func (g *Gemini) Name() string {
	return fmt.Sprintf("genai:%s", g.model)
}
