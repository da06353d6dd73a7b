package ai

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vkrejcir/facetrace/internal/facematch"
	"github.com/vkrejcir/facetrace/internal/osint"
)

//go:embed prompts.yaml
var promptsRaw []byte

type promptSet struct {
	Vision string `yaml:"vision"`
	OSINT  string `yaml:"osint"`
	Threat string `yaml:"threat"`
}

var prompts = mustLoadPrompts()

func mustLoadPrompts() promptSet {
	var p promptSet
	if err := yaml.Unmarshal(promptsRaw, &p); err != nil {
		panic(fmt.Sprintf("invalid embedded prompts: %v", err))
	}
	return p
}

func visionPrompt() string {
	return strings.TrimSpace(prompts.Vision)
}

// osintPrompt extends the base OSINT prompt with the gallery matches
// already found, so the model can reason about them.
func osintPrompt(matches []facematch.MatchResult) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(prompts.OSINT))
	if len(matches) > 0 {
		b.WriteString("\n\nKnown gallery matches for additional context:\n")
		for _, m := range matches {
			fmt.Fprintf(&b, "- %s (confidence %.2f)\n", m.Filename, m.Confidence)
		}
	}
	return b.String()
}

// threatPrompt builds the final assessment prompt from the earlier
// pipeline stages. The threat step has no image input, only text.
func threatPrompt(vision, osintNarrative *Narrative, matches []facematch.MatchResult, hits []osint.Hit) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(prompts.Threat))
	b.WriteString("\n\nCollected data:\n")

	fmt.Fprintf(&b, "\nGallery matches (%d):\n", len(matches))
	for _, m := range matches {
		fmt.Fprintf(&b, "- %s: %.2f\n", m.Filename, m.Confidence)
	}

	fmt.Fprintf(&b, "\nOSINT hits (%d):\n", len(hits))
	for _, h := range hits {
		switch {
		case h.Email != "":
			fmt.Fprintf(&b, "- %s: %s\n", h.Source, h.Email)
		case h.Username != "":
			fmt.Fprintf(&b, "- %s: %s\n", h.Source, h.Username)
		default:
			fmt.Fprintf(&b, "- %s\n", h.Source)
		}
	}

	if vision != nil {
		b.WriteString("\nVision analysis:\n")
		b.WriteString(vision.Text())
		b.WriteString("\n")
	}
	if osintNarrative != nil {
		b.WriteString("\nOSINT analysis:\n")
		b.WriteString(osintNarrative.Text())
		b.WriteString("\n")
	}

	return b.String()
}
