// Package narrative extracts loosely structured fields from free-form text
// returned by the narrative generation service. It is a fallback for
// responses that carry no machine-readable JSON payload and must tolerate
// arbitrary, possibly malformed natural-language text.
package narrative

import (
	"regexp"
	"strconv"
	"strings"
)

// Sections maps a section tag to the text accumulated under its heading.
type Sections map[string]string

// sectionRule flips the scanner into a section when any of its keywords
// appears in the upper-cased line. Rules are checked in order; the first
// matching rule on a line wins.
type sectionRule struct {
	tag      string
	keywords []string
}

var visionRules = []sectionRule{
	{"face_detection", []string{"FACE DETECTION"}},
	{"facial_attributes", []string{"FACIAL ATTRIBUTES"}},
	{"contextual_analysis", []string{"CONTEXTUAL"}},
	{"osint_potential", []string{"OSINT"}},
	{"privacy_risk", []string{"PRIVACY"}},
}

var osintRules = []sectionRule{
	{"reverse_image_search", []string{"REVERSE IMAGE"}},
	{"social_media_indicators", []string{"SOCIAL MEDIA"}},
	{"professional_clues", []string{"PROFESSIONAL"}},
	{"geographic_clues", []string{"GEOGRAPHIC", "LOCATION"}},
	{"search_keywords", []string{"KEYWORDS"}},
	{"privacy_implications", []string{"PRIVACY"}},
}

var threatRules = []sectionRule{
	{"risk_factors", []string{"RISK FACTORS"}},
	{"vulnerabilities", []string{"VULNERABILITIES"}},
	{"recommendations", []string{"RECOMMENDATIONS", "MITIGATION"}},
	{"insights", []string{"INSIGHTS", "EDUCATIONAL"}},
}

// threatLevels is the fixed-priority scan order for the overall level token.
var threatLevels = []string{"CRITICAL", "HIGH", "MEDIUM", "LOW"}

// confidenceRe matches the first integer written as a score, e.g. "85/100"
// or "85%".
var confidenceRe = regexp.MustCompile(`(\d+)(?:/100|%)`)

// ThreatSummary is the structured form of a threat assessment narrative.
type ThreatSummary struct {
	Level      string   `json:"threat_level"`
	Confidence int      `json:"confidence_score"`
	Sections   Sections `json:"sections"`
}

// ParseVision splits a vision narrative into its known sections.
func ParseVision(text string) Sections {
	return scanSections(text, visionRules)
}

// ParseOSINT splits an OSINT narrative into its known sections.
func ParseOSINT(text string) Sections {
	return scanSections(text, osintRules)
}

// ParseThreat parses a threat assessment narrative: its sections, the overall
// threat level token and a numeric confidence score. Missing tokens default
// to level UNKNOWN and confidence 0.
func ParseThreat(text string) ThreatSummary {
	summary := ThreatSummary{
		Level:    "UNKNOWN",
		Sections: scanSections(text, threatRules),
	}

	upper := strings.ToUpper(text)
	for _, level := range threatLevels {
		if strings.Contains(upper, level) {
			summary.Level = level
			break
		}
	}

	if m := confidenceRe.FindStringSubmatch(text); m != nil {
		if score, err := strconv.Atoi(m[1]); err == nil {
			summary.Confidence = score
		}
	}

	return summary
}

// scanSections walks the text line by line, tracking a current section that
// changes whenever a recognized heading keyword appears. Non-empty lines
// between headings accumulate on the active section.
func scanSections(text string, rules []sectionRule) Sections {
	sections := make(Sections, len(rules))
	for _, rule := range rules {
		sections[rule.tag] = ""
	}

	current := ""
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		upper := strings.ToUpper(line)

		if tag, ok := matchRule(upper, rules); ok {
			current = tag
			continue
		}

		if current != "" && line != "" {
			sections[current] += line + " "
		}
	}

	return sections
}

// matchRule returns the tag of the first rule with a keyword present in the
// upper-cased line.
func matchRule(upperLine string, rules []sectionRule) (string, bool) {
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(upperLine, kw) {
				return rule.tag, true
			}
		}
	}
	return "", false
}
