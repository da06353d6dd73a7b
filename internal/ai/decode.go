package ai

import (
	"encoding/json"
	"strings"

	"github.com/vkrejcir/facetrace/internal/narrative"
)

// Narrative holds one model response. Models are asked for JSON but do
// not always comply, so a response is either a decoded JSON object or
// raw text with a best-effort section parse.
type Narrative struct {
	Kind Kind
	Raw  string

	// JSON is set when the response contained a valid JSON object.
	JSON map[string]any

	// Sections and Threat hold the fallback parse when JSON is nil.
	Sections narrative.Sections
	Threat   *narrative.ThreatSummary
}

// DecodeNarrative interprets a model response. It extracts the outermost
// JSON object if one parses, otherwise falls back to the section parser
// for the given kind.
func DecodeNarrative(kind Kind, text string) *Narrative {
	n := &Narrative{Kind: kind, Raw: text}

	if obj := extractJSON(text); obj != nil {
		n.JSON = obj
		return n
	}

	switch kind {
	case KindVision:
		n.Sections = narrative.ParseVision(text)
	case KindOSINT:
		n.Sections = narrative.ParseOSINT(text)
	case KindThreat:
		summary := narrative.ParseThreat(text)
		n.Threat = &summary
		n.Sections = summary.Sections
	}
	return n
}

// extractJSON pulls the substring between the first '{' and the last '}'
// and returns it decoded, or nil when no valid object is present.
func extractJSON(text string) map[string]any {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(text[start:end+1]), &obj); err != nil {
		return nil
	}
	return obj
}

// Text returns the raw model response.
func (n *Narrative) Text() string {
	if n == nil {
		return ""
	}
	return n.Raw
}

// MarshalJSON renders the narrative for API responses. Structured
// responses pass through unchanged; raw responses carry the original
// text next to the parsed sections.
func (n *Narrative) MarshalJSON() ([]byte, error) {
	if n.JSON != nil {
		return json.Marshal(n.JSON)
	}

	out := make(map[string]any)
	if n.Kind == KindThreat {
		out["raw_assessment"] = n.Raw
		if n.Threat != nil {
			out["threat_level"] = n.Threat.Level
			out["confidence_score"] = n.Threat.Confidence
		}
	} else {
		out["raw_analysis"] = n.Raw
	}
	if len(n.Sections) > 0 {
		out["structured"] = n.Sections
	}
	return json.Marshal(out)
}
