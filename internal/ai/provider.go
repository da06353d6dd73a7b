package ai

import (
	"context"
	"errors"

	"github.com/vkrejcir/facetrace/internal/facematch"
	"github.com/vkrejcir/facetrace/internal/osint"
)

// ErrUnavailable is returned when the provider cannot serve a request,
// for example because the upstream API rejected it.
var ErrUnavailable = errors.New("ai provider unavailable")

// Kind identifies which analysis step a narrative belongs to. The
// decoder uses it to pick the right fallback section parser.
type Kind string

const (
	KindVision Kind = "vision"
	KindOSINT  Kind = "osint"
	KindThreat Kind = "threat"
)

// Provider defines the interface for narrative analysis backends.
type Provider interface {
	Name() string
	AnalyzeFace(ctx context.Context, imageData []byte) (*Narrative, error)
	EnhanceOSINT(ctx context.Context, imageData []byte, matches []facematch.MatchResult) (*Narrative, error)
	AssessThreat(ctx context.Context, vision, osintNarrative *Narrative, matches []facematch.MatchResult, hits []osint.Hit) (*Narrative, error)
}
