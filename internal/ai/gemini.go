package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/vkrejcir/facetrace/internal/constants"
	"github.com/vkrejcir/facetrace/internal/facematch"
	"github.com/vkrejcir/facetrace/internal/imaging"
	"github.com/vkrejcir/facetrace/internal/osint"
)

const geminiModel = "gemini-2.0-flash"

type GeminiProvider struct {
	client *genai.Client
}

func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiProvider{client: client}, nil
}

func (p *GeminiProvider) Name() string {
	return geminiModel
}

func (p *GeminiProvider) AnalyzeFace(ctx context.Context, imageData []byte) (*Narrative, error) {
	text, err := p.generateWithImage(ctx, visionPrompt(), imageData)
	if err != nil {
		return nil, err
	}
	return DecodeNarrative(KindVision, text), nil
}

func (p *GeminiProvider) EnhanceOSINT(ctx context.Context, imageData []byte, matches []facematch.MatchResult) (*Narrative, error) {
	text, err := p.generateWithImage(ctx, osintPrompt(matches), imageData)
	if err != nil {
		return nil, err
	}
	return DecodeNarrative(KindOSINT, text), nil
}

func (p *GeminiProvider) AssessThreat(ctx context.Context, vision, osintNarrative *Narrative, matches []facematch.MatchResult, hits []osint.Hit) (*Narrative, error) {
	prompt := threatPrompt(vision, osintNarrative, matches, hits)
	text, err := p.generate(ctx, []*genai.Part{{Text: prompt}})
	if err != nil {
		return nil, err
	}
	return DecodeNarrative(KindThreat, text), nil
}

func (p *GeminiProvider) generateWithImage(ctx context.Context, prompt string, imageData []byte) (string, error) {
	// Resize image to max 800px to save costs
	resized, err := imaging.ResizeMax(imageData, constants.MaxNarrativeImageSize)
	if err != nil {
		return "", fmt.Errorf("failed to resize image: %w", err)
	}

	return p.generate(ctx, []*genai.Part{
		{Text: prompt},
		{InlineData: &genai.Blob{Data: resized, MIMEType: "image/jpeg"}},
	})
}

func (p *GeminiProvider) generate(ctx context.Context, parts []*genai.Part) (string, error) {
	contents := []*genai.Content{
		{Role: "user", Parts: parts},
	}

	result, err := p.client.Models.GenerateContent(ctx, geminiModel, contents, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	content := result.Text()
	if content == "" {
		return "", fmt.Errorf("%w: empty response", ErrUnavailable)
	}
	return content, nil
}
