package threat

import (
	"github.com/vkrejcir/facetrace/internal/ai"
	"github.com/vkrejcir/facetrace/internal/constants"
	"github.com/vkrejcir/facetrace/internal/facematch"
	"github.com/vkrejcir/facetrace/internal/osint"
)

// Level classifies the overall privacy exposure of an analyzed face.
type Level = string

const (
	LevelLow      Level = "LOW"
	LevelMedium   Level = "MEDIUM"
	LevelHigh     Level = "HIGH"
	LevelCritical Level = "CRITICAL"
	LevelUnknown  Level = "UNKNOWN"
)

// Verdict is the aggregated threat rating for one analysis.
type Verdict struct {
	Level      Level `json:"threat_level"`
	Confidence int   `json:"confidence_score"`
}

// Aggregate combines the pipeline outputs into a single verdict.
//
// A model assessment wins when one is available: structured JSON
// responses carry their own threat_level and confidence_score fields,
// raw responses go through the section parser. Without an assessment
// the verdict falls back to a rule on match strength, and any OSINT
// hit escalates to HIGH.
func Aggregate(matches []facematch.MatchResult, hits []osint.Hit, assessment *ai.Narrative) Verdict {
	if assessment != nil {
		if assessment.JSON != nil {
			return fromStructured(assessment.JSON)
		}
		if assessment.Threat != nil {
			return Verdict{Level: assessment.Threat.Level, Confidence: assessment.Threat.Confidence}
		}
	}
	return fallback(matches, hits)
}

func fromStructured(obj map[string]any) Verdict {
	v := Verdict{Level: LevelLow}
	if level, ok := obj["threat_level"].(string); ok && level != "" {
		v.Level = level
	} else if level, ok := obj["overall_threat_level"].(string); ok && level != "" {
		v.Level = level
	}
	if score, ok := obj["confidence_score"].(float64); ok {
		v.Confidence = int(score)
	}
	return v
}

func fallback(matches []facematch.MatchResult, hits []osint.Hit) Verdict {
	v := Verdict{Level: LevelLow}

	best := 0.0
	for _, m := range matches {
		if m.Confidence > best {
			best = m.Confidence
		}
	}

	switch {
	case best > constants.HighMatchConfidence:
		v.Level = LevelHigh
		v.Confidence = 85
	case best > constants.MediumMatchConfidence:
		v.Level = LevelMedium
		v.Confidence = 65
	case len(matches) > 0:
		v.Confidence = 35
	}

	if len(hits) > 0 {
		v.Level = LevelHigh
		if v.Confidence < 80 {
			v.Confidence = 80
		}
	}

	return v
}
