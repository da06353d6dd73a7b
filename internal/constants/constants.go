// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

import "time"

// Face matching constants
const (
	// DescriptorSize is the side (in pixels) of the normalized face crop.
	// Descriptors are DescriptorSize*DescriptorSize grayscale values.
	DescriptorSize = 100

	// MatchThreshold is the minimum confidence score (0-100) for a gallery
	// entry to be reported as a potential match
	MatchThreshold = 30

	// MaxMatches is the maximum number of ranked matches returned per probe
	MaxMatches = 5
)

// Threat aggregation constants
const (
	// HighMatchConfidence is the best-match confidence above which the
	// fallback rule escalates to HIGH
	HighMatchConfidence = 70

	// MediumMatchConfidence is the best-match confidence above which the
	// fallback rule escalates to MEDIUM
	MediumMatchConfidence = 50
)

// External call constants
const (
	// OSINTTimeout bounds each profile lookup request
	OSINTTimeout = 5 * time.Second

	// NarrativeTimeout bounds each narrative generation request
	NarrativeTimeout = 30 * time.Second

	// MaxNarrativeImageSize is the maximum dimension (width or height) for
	// images sent to the narrative service
	MaxNarrativeImageSize = 800
)

// File upload constants
const (
	// MaxUploadSize is the maximum file upload size in bytes (16MB)
	MaxUploadSize = 16 << 20
)
