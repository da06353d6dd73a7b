package ai

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/vkrejcir/facetrace/internal/constants"
	"github.com/vkrejcir/facetrace/internal/facematch"
	"github.com/vkrejcir/facetrace/internal/imaging"
	"github.com/vkrejcir/facetrace/internal/osint"
)

const chatModel = openai.ChatModelGPT4_1Mini

type OpenAIProvider struct {
	client *openai.Client
}

func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIProvider{client: &client}
}

func (p *OpenAIProvider) Name() string {
	return chatModel
}

func (p *OpenAIProvider) AnalyzeFace(ctx context.Context, imageData []byte) (*Narrative, error) {
	text, err := p.completeWithImage(ctx, visionPrompt(), imageData)
	if err != nil {
		return nil, err
	}
	return DecodeNarrative(KindVision, text), nil
}

func (p *OpenAIProvider) EnhanceOSINT(ctx context.Context, imageData []byte, matches []facematch.MatchResult) (*Narrative, error) {
	text, err := p.completeWithImage(ctx, osintPrompt(matches), imageData)
	if err != nil {
		return nil, err
	}
	return DecodeNarrative(KindOSINT, text), nil
}

func (p *OpenAIProvider) AssessThreat(ctx context.Context, vision, osintNarrative *Narrative, matches []facematch.MatchResult, hits []osint.Hit) (*Narrative, error) {
	prompt := threatPrompt(vision, osintNarrative, matches, hits)

	messages := []openai.ChatCompletionMessageParamUnion{
		{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfString: openai.String(prompt),
				},
			},
		},
	}

	text, err := p.complete(ctx, messages)
	if err != nil {
		return nil, err
	}
	return DecodeNarrative(KindThreat, text), nil
}

func (p *OpenAIProvider) completeWithImage(ctx context.Context, prompt string, imageData []byte) (string, error) {
	// Resize image to max 800px to save costs
	resized, err := imaging.ResizeMax(imageData, constants.MaxNarrativeImageSize)
	if err != nil {
		return "", fmt.Errorf("failed to resize image: %w", err)
	}

	imageURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(resized)

	messages := []openai.ChatCompletionMessageParamUnion{
		{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfArrayOfContentParts: []openai.ChatCompletionContentPartUnionParam{
						openai.TextContentPart(prompt),
						openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
							URL:    imageURL,
							Detail: "low",
						}),
					},
				},
			},
		},
	}

	return p.complete(ctx, messages)
}

func (p *OpenAIProvider) complete(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:     chatModel,
		Messages:  messages,
		MaxTokens: openai.Int(1500),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: empty response", ErrUnavailable)
	}
	return resp.Choices[0].Message.Content, nil
}
