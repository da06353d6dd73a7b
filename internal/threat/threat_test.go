package threat

import (
	"testing"

	"github.com/vkrejcir/facetrace/internal/ai"
	"github.com/vkrejcir/facetrace/internal/facematch"
	"github.com/vkrejcir/facetrace/internal/osint"
)

func matchWith(confidence float64) []facematch.MatchResult {
	return []facematch.MatchResult{{Filename: "someone.jpg", Confidence: confidence}}
}

func TestAggregateFallbackStrongMatch(t *testing.T) {
	v := Aggregate(matchWith(75), nil, nil)
	if v.Level != LevelHigh {
		t.Errorf("expected HIGH, got %s", v.Level)
	}
	if v.Confidence != 85 {
		t.Errorf("expected confidence 85, got %d", v.Confidence)
	}
}

func TestAggregateFallbackMediumMatch(t *testing.T) {
	v := Aggregate(matchWith(55), nil, nil)
	if v.Level != LevelMedium {
		t.Errorf("expected MEDIUM, got %s", v.Level)
	}
	if v.Confidence != 65 {
		t.Errorf("expected confidence 65, got %d", v.Confidence)
	}
}

func TestAggregateFallbackWeakMatch(t *testing.T) {
	v := Aggregate(matchWith(31), nil, nil)
	if v.Level != LevelLow {
		t.Errorf("expected LOW, got %s", v.Level)
	}
	if v.Confidence != 35 {
		t.Errorf("expected confidence 35, got %d", v.Confidence)
	}
}

func TestAggregateFallbackNoMatches(t *testing.T) {
	v := Aggregate(nil, nil, nil)
	if v.Level != LevelLow || v.Confidence != 0 {
		t.Errorf("expected LOW/0, got %s/%d", v.Level, v.Confidence)
	}
}

func TestAggregateOSINTEscalates(t *testing.T) {
	hits := []osint.Hit{{Source: "gravatar", Email: "a@gmail.com"}}

	v := Aggregate(nil, hits, nil)
	if v.Level != LevelHigh {
		t.Errorf("expected HIGH, got %s", v.Level)
	}
	if v.Confidence != 80 {
		t.Errorf("expected confidence 80, got %d", v.Confidence)
	}
}

func TestAggregateOSINTKeepsHigherConfidence(t *testing.T) {
	hits := []osint.Hit{{Source: "github", Username: "someone"}}

	v := Aggregate(matchWith(75), hits, nil)
	if v.Level != LevelHigh {
		t.Errorf("expected HIGH, got %s", v.Level)
	}
	if v.Confidence != 85 {
		t.Errorf("OSINT hit should not lower confidence, got %d", v.Confidence)
	}
}

func TestAggregateStructuredAssessmentWins(t *testing.T) {
	assessment := ai.DecodeNarrative(ai.KindThreat, `{"threat_level": "CRITICAL", "confidence_score": 92}`)

	v := Aggregate(matchWith(10), nil, assessment)
	if v.Level != LevelCritical {
		t.Errorf("expected CRITICAL, got %s", v.Level)
	}
	if v.Confidence != 92 {
		t.Errorf("expected confidence 92, got %d", v.Confidence)
	}
}

func TestAggregateStructuredAlternateKey(t *testing.T) {
	assessment := ai.DecodeNarrative(ai.KindThreat, `{"overall_threat_level": "MEDIUM"}`)

	v := Aggregate(nil, nil, assessment)
	if v.Level != LevelMedium {
		t.Errorf("expected MEDIUM, got %s", v.Level)
	}
	if v.Confidence != 0 {
		t.Errorf("expected confidence 0, got %d", v.Confidence)
	}
}

func TestAggregateStructuredMissingFieldsDefaultsLow(t *testing.T) {
	assessment := ai.DecodeNarrative(ai.KindThreat, `{"risk_factors": "none"}`)

	v := Aggregate(nil, nil, assessment)
	if v.Level != LevelLow || v.Confidence != 0 {
		t.Errorf("expected LOW/0, got %s/%d", v.Level, v.Confidence)
	}
}

func TestAggregateParsedAssessmentPassesThrough(t *testing.T) {
	assessment := ai.DecodeNarrative(ai.KindThreat, "OVERALL THREAT LEVEL: HIGH\nConfidence: 70%")

	v := Aggregate(nil, nil, assessment)
	if v.Level != LevelHigh {
		t.Errorf("expected HIGH, got %s", v.Level)
	}
	if v.Confidence != 70 {
		t.Errorf("expected confidence 70, got %d", v.Confidence)
	}
}

func TestAggregateParsedUnknownLevel(t *testing.T) {
	assessment := ai.DecodeNarrative(ai.KindThreat, "no ratings in this prose at all")

	v := Aggregate(matchWith(99), nil, assessment)
	if v.Level != LevelUnknown {
		t.Errorf("assessment should win over fallback, got %s", v.Level)
	}
}
