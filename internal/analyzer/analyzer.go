// Package analyzer orchestrates the face analysis pipeline: locate the
// primary face, match it against the known gallery, gather profile hits
// and model narratives, and aggregate everything into a threat verdict.
package analyzer

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"sync"

	"github.com/vkrejcir/facetrace/internal/ai"
	"github.com/vkrejcir/facetrace/internal/constants"
	"github.com/vkrejcir/facetrace/internal/detect"
	"github.com/vkrejcir/facetrace/internal/facematch"
	"github.com/vkrejcir/facetrace/internal/imaging"
	"github.com/vkrejcir/facetrace/internal/osint"
	"github.com/vkrejcir/facetrace/internal/threat"
)

// Locator finds face regions in a decoded image.
type Locator interface {
	Detect(img image.Image) []detect.Region
}

// Matcher ranks a probe descriptor against the known gallery.
type Matcher interface {
	Match(probe facematch.Descriptor) ([]facematch.MatchResult, error)
	Count() int
}

// ProfileLookup probes public profile services for a name candidate.
type ProfileLookup interface {
	Lookup(ctx context.Context, candidate string) []osint.Hit
}

// Narratives groups the model responses for one analysis.
type Narratives struct {
	FaceAnalysis     *ai.Narrative `json:"face_analysis,omitempty"`
	OSINTAnalysis    *ai.Narrative `json:"osint_analysis,omitempty"`
	ThreatAssessment *ai.Narrative `json:"threat_assessment,omitempty"`
}

// Report is the full result of one analysis.
type Report struct {
	Success       bool                    `json:"success"`
	UploadedFile  string                  `json:"uploaded_file,omitempty"`
	FacesDetected int                     `json:"faces_detected"`
	Matches       []facematch.MatchResult `json:"matches"`
	OSINT         []osint.Hit             `json:"traditional_osint"`
	ThreatLevel   string                  `json:"threat_level"`
	Confidence    int                     `json:"confidence_score"`
	AIEnabled     bool                    `json:"gemini_enabled"`
	Narratives    *Narratives             `json:"gemini_analysis,omitempty"`
}

// Status reports the service state for the status endpoint.
type Status struct {
	KnownFaces int    `json:"known_faces"`
	Uploads    int    `json:"uploads"`
	AIEnabled  bool   `json:"gemini_enabled"`
	Model      string `json:"model,omitempty"`
}

type Analyzer struct {
	locator    Locator
	gallery    Matcher
	lookup     ProfileLookup
	provider   ai.Provider // nil disables narrative generation
	uploadsDir string
}

func New(locator Locator, gallery Matcher, lookup ProfileLookup, provider ai.Provider, uploadsDir string) *Analyzer {
	return &Analyzer{
		locator:    locator,
		gallery:    gallery,
		lookup:     lookup,
		provider:   provider,
		uploadsDir: uploadsDir,
	}
}

// GalleryExtractor returns an extract function for gallery images that
// uses the given locator to find the largest face.
func GalleryExtractor(locator Locator) facematch.ExtractFunc {
	return func(path string) (facematch.Descriptor, error) {
		img, err := imaging.DecodeFile(path)
		if err != nil {
			return nil, err
		}
		regions := locator.Detect(img)
		region, ok := detect.Largest(regions)
		if !ok {
			return nil, fmt.Errorf("%w: %s", facematch.ErrNoFace, path)
		}
		return facematch.ExtractDescriptor(img, region), nil
	}
}

// Analyze runs the full pipeline on raw image bytes.
func (a *Analyzer) Analyze(ctx context.Context, data []byte) (*Report, error) {
	img, regions, err := a.locate(data)
	if err != nil {
		return nil, err
	}

	region, _ := detect.Largest(regions)
	probe := facematch.ExtractDescriptor(img, region)

	matches, err := a.gallery.Match(probe)
	if err != nil {
		return nil, fmt.Errorf("gallery match failed: %w", err)
	}
	if matches == nil {
		matches = []facematch.MatchResult{}
	}

	hits, narratives := a.collect(ctx, data, matches)

	verdict := threat.Aggregate(matches, hits, assessmentOf(narratives))

	report := &Report{
		Success:       true,
		FacesDetected: len(regions),
		Matches:       matches,
		OSINT:         hits,
		ThreatLevel:   verdict.Level,
		Confidence:    verdict.Confidence,
		AIEnabled:     a.provider != nil,
		Narratives:    narratives,
	}
	return report, nil
}

// AnalyzeBasic runs only detection and gallery matching. The webcam
// endpoint uses it to keep snapshot turnaround low.
func (a *Analyzer) AnalyzeBasic(ctx context.Context, data []byte) (*Report, error) {
	img, regions, err := a.locate(data)
	if err != nil {
		return nil, err
	}

	region, _ := detect.Largest(regions)
	probe := facematch.ExtractDescriptor(img, region)

	matches, err := a.gallery.Match(probe)
	if err != nil {
		return nil, fmt.Errorf("gallery match failed: %w", err)
	}
	if matches == nil {
		matches = []facematch.MatchResult{}
	}

	verdict := threat.Aggregate(matches, nil, nil)

	return &Report{
		Success:       true,
		FacesDetected: len(regions),
		Matches:       matches,
		OSINT:         []osint.Hit{},
		ThreatLevel:   verdict.Level,
		Confidence:    verdict.Confidence,
		AIEnabled:     a.provider != nil,
	}, nil
}

// Status reports gallery and upload directory counts.
func (a *Analyzer) Status() Status {
	s := Status{
		KnownFaces: a.gallery.Count(),
		AIEnabled:  a.provider != nil,
	}
	if a.provider != nil {
		s.Model = a.provider.Name()
	}

	entries, err := os.ReadDir(a.uploadsDir)
	if err == nil {
		for _, e := range entries {
			if !e.IsDir() {
				s.Uploads++
			}
		}
	}
	return s
}

func (a *Analyzer) locate(data []byte) (image.Image, []detect.Region, error) {
	img, err := imaging.Decode(data)
	if err != nil {
		return nil, nil, err
	}

	regions := a.locator.Detect(img)
	if len(regions) == 0 {
		return nil, nil, facematch.ErrNoFace
	}
	return img, regions, nil
}

// collect runs the evidence collectors. Profile lookups and the two
// image narratives are independent and run concurrently; the threat
// assessment needs all of them and runs after.
func (a *Analyzer) collect(ctx context.Context, data []byte, matches []facematch.MatchResult) ([]osint.Hit, *Narratives) {
	var (
		wg     sync.WaitGroup
		hits   []osint.Hit
		vision *ai.Narrative
		osintN *ai.Narrative
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		hits = a.lookupTopMatch(ctx, matches)
	}()

	if a.provider != nil {
		wg.Add(2)
		go func() {
			defer wg.Done()
			vision = a.narrative(ctx, "face analysis", func(ctx context.Context) (*ai.Narrative, error) {
				return a.provider.AnalyzeFace(ctx, data)
			})
		}()
		go func() {
			defer wg.Done()
			osintN = a.narrative(ctx, "osint analysis", func(ctx context.Context) (*ai.Narrative, error) {
				return a.provider.EnhanceOSINT(ctx, data, matches)
			})
		}()
	}

	wg.Wait()

	if hits == nil {
		hits = []osint.Hit{}
	}
	if a.provider == nil {
		return hits, nil
	}

	assessment := a.narrative(ctx, "threat assessment", func(ctx context.Context) (*ai.Narrative, error) {
		return a.provider.AssessThreat(ctx, vision, osintN, matches, hits)
	})

	return hits, &Narratives{
		FaceAnalysis:     vision,
		OSINTAnalysis:    osintN,
		ThreatAssessment: assessment,
	}
}

// lookupTopMatch probes profile services for the best-ranked matched
// name. Errors never surface; collectors are best effort.
func (a *Analyzer) lookupTopMatch(ctx context.Context, matches []facematch.MatchResult) []osint.Hit {
	if len(matches) == 0 {
		return nil
	}
	candidate := osint.CandidateFromFilename(matches[0].Filename)
	if candidate == "" {
		return nil
	}
	return a.lookup.Lookup(ctx, candidate)
}

func (a *Analyzer) narrative(ctx context.Context, step string, call func(ctx context.Context) (*ai.Narrative, error)) *ai.Narrative {
	ctx, cancel := context.WithTimeout(ctx, constants.NarrativeTimeout)
	defer cancel()

	n, err := call(ctx)
	if err != nil {
		log.Printf("warning: %s failed: %v", step, err)
		return nil
	}
	return n
}

func assessmentOf(n *Narratives) *ai.Narrative {
	if n == nil {
		return nil
	}
	return n.ThreatAssessment
}
