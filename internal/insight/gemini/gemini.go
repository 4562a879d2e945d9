// Package gemini implements the insight generator using the Gemini API.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/beydemirfurkan/seo-analyze/internal/seo"
)

const defaultModel = "gemini-2.0-flash"

// Generator elaborates findings via Google's Gemini API. Callers are
// expected to bound every call with a context timeout; the generator itself
// never retries.
type Generator struct {
	client *genai.Client
	model  string
}

// New creates a Generator.
func New(ctx context.Context, apiKey, model string) (*Generator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = defaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Generator{client: client, model: model}, nil
}

// Elaborate asks the model for a short, actionable elaboration of the
// finding. The finding message plus its category is the entire context sent
// out; no page content leaves the process.
func (g *Generator) Elaborate(ctx context.Context, f seo.Finding) (string, error) {
	prompt := fmt.Sprintf(
		"You are an SEO consultant. In at most two sentences, tell a site owner how to fix this issue: [%s/%s] %s",
		f.Category, f.Severity, f.Message,
	)
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate insight: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty insight response")
	}
	return text, nil
}
