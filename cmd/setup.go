package cmd

import (
	"context"
	"fmt"

	"github.com/vkrejcir/facetrace/internal/ai"
	"github.com/vkrejcir/facetrace/internal/analyzer"
	"github.com/vkrejcir/facetrace/internal/config"
	"github.com/vkrejcir/facetrace/internal/detect"
	"github.com/vkrejcir/facetrace/internal/facematch"
	"github.com/vkrejcir/facetrace/internal/osint"
)

// buildPipeline assembles the analysis service from configuration.
func buildPipeline(ctx context.Context, cfg *config.Config) (*analyzer.Analyzer, error) {
	detector, err := detect.NewDetector(cfg.Detector.CascadePath, detect.Params{
		ScaleFactor: cfg.Detector.ScaleFactor,
		ShiftFactor: cfg.Detector.ShiftFactor,
		MinSize:     cfg.Detector.MinSize,
		MaxSize:     cfg.Detector.MaxSize,
		MinQuality:  cfg.Detector.MinQuality,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load face cascade: %w", err)
	}

	gallery := facematch.NewGallery(cfg.Gallery.Dir, analyzer.GalleryExtractor(detector))

	provider, err := buildProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return analyzer.New(detector, gallery, osint.NewClient(), provider, cfg.Uploads.Dir), nil
}

// buildProvider picks the narrative backend from configured API keys.
// Gemini wins when both are set; nil disables narratives entirely.
func buildProvider(ctx context.Context, cfg *config.Config) (ai.Provider, error) {
	switch {
	case cfg.Gemini.APIKey != "":
		provider, err := ai.NewGeminiProvider(ctx, cfg.Gemini.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gemini: %w", err)
		}
		return provider, nil
	case cfg.OpenAI.Token != "":
		return ai.NewOpenAIProvider(cfg.OpenAI.Token), nil
	default:
		return nil, nil
	}
}
