package facematch

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/vkrejcir/facetrace/internal/constants"
)

// ErrNoFace indicates an image contained no detectable face.
var ErrNoFace = errors.New("no face detected")

// allowedExtensions lists the supported gallery and upload image formats.
var allowedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
}

// AllowedFile reports whether a filename has a supported image extension.
func AllowedFile(name string) bool {
	_, ok := allowedExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// MatchResult is one ranked gallery match for a probe face.
type MatchResult struct {
	Filename   string  `json:"filename"`
	Confidence float64 `json:"confidence"`
	Path       string  `json:"path"`
}

// Entry identifies one gallery image.
type Entry struct {
	Filename string
	Path     string
}

// ExtractFunc produces a descriptor for the most prominent face in the image
// at path. It returns ErrNoFace when the image contains no detectable face.
type ExtractFunc func(path string) (Descriptor, error)

// Gallery ranks probe descriptors against reference face images in a
// directory. Descriptors are computed lazily through the injected extractor
// and cached per path, so repeated probes do not re-run detection on
// unchanged gallery entries.
type Gallery struct {
	dir     string
	extract ExtractFunc

	mu    sync.RWMutex
	cache map[string]Descriptor
}

// NewGallery creates a gallery over the given directory.
func NewGallery(dir string, extract ExtractFunc) *Gallery {
	return &Gallery{
		dir:     dir,
		extract: extract,
		cache:   make(map[string]Descriptor),
	}
}

// Entries lists gallery images with supported extensions, in directory order.
// A missing gallery directory yields an empty gallery, not an error.
func (g *Gallery) Entries() ([]Entry, error) {
	files, err := os.ReadDir(g.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading gallery dir: %w", err)
	}

	var entries []Entry
	for _, f := range files {
		if f.IsDir() || !AllowedFile(f.Name()) {
			continue
		}
		entries = append(entries, Entry{
			Filename: f.Name(),
			Path:     filepath.Join(g.dir, f.Name()),
		})
	}
	return entries, nil
}

// Count returns the number of usable gallery images.
func (g *Gallery) Count() int {
	entries, err := g.Entries()
	if err != nil {
		return 0
	}
	return len(entries)
}

// Descriptor returns the cached descriptor for a gallery entry, computing it
// on first use. ErrNoFace is returned for entries without a detectable face.
func (g *Gallery) Descriptor(path string) (Descriptor, error) {
	g.mu.RLock()
	cached, ok := g.cache[path]
	g.mu.RUnlock()
	if ok {
		return cached, nil
	}

	desc, err := g.extract(path)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	g.cache[path] = desc
	g.mu.Unlock()
	return desc, nil
}

// Match scores the probe descriptor against every gallery entry, keeps
// matches above the confidence threshold, sorts them by confidence descending
// and returns at most the top five. Gallery entries without a detectable
// face are skipped silently.
func (g *Gallery) Match(probe Descriptor) ([]MatchResult, error) {
	entries, err := g.Entries()
	if err != nil {
		return nil, err
	}

	var matches []MatchResult
	for _, entry := range entries {
		desc, err := g.Descriptor(entry.Path)
		if err != nil {
			continue
		}

		confidence := Compare(probe, desc)
		if confidence > constants.MatchThreshold {
			matches = append(matches, MatchResult{
				Filename:   entry.Filename,
				Confidence: math.Round(confidence*100) / 100,
				Path:       entry.Path,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})

	if len(matches) > constants.MaxMatches {
		matches = matches[:constants.MaxMatches]
	}
	return matches, nil
}
