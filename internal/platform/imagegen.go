package platform

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"pkdindustries/dachat/internal/core"
)

// GeminiImageGenerator produces images through an image-capable Gemini
// model. It returns the first inline image part of the response, or nil
// when the model produced none.
type GeminiImageGenerator struct {
	client *genai.Client
	model  string
}

var _ core.ImageGenerator = (*GeminiImageGenerator)(nil)

func NewGeminiImageGenerator(ctx context.Context, apiKey, model string) (*GeminiImageGenerator, error) {
	var cfg *genai.ClientConfig
	if apiKey != "" {
		cfg = &genai.ClientConfig{APIKey: apiKey}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiImageGenerator{client: client, model: model}, nil
}

func (g *GeminiImageGenerator) Generate(ctx context.Context, prompt string, style core.ImageStyle) ([]byte, error) {
	styled := fmt.Sprintf("%s, rendered in %s style", prompt, style)

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(styled), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate image: %w", err)
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return nil, nil
	}
	for _, part := range result.Candidates[0].Content.Parts {
		if part.InlineData != nil {
			return part.InlineData.Data, nil
		}
	}
	return nil, nil
}
