// Package detect locates face regions in images using a pixel intensity
// comparison cascade (pigo) with a fixed frontal-face model.
package detect

import (
	"fmt"
	"image"
	"os"

	pigo "github.com/esimov/pigo/core"

	"github.com/vkrejcir/facetrace/internal/imaging"
)

// clusterIoU is the overlap threshold used to merge duplicate detections.
const clusterIoU = 0.2

// Region is a face bounding box within the source image.
type Region struct {
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Q      float32 `json:"-"` // cascade quality score
}

// Area returns the region area in pixels.
func (r Region) Area() int {
	return r.Width * r.Height
}

// Params control the sliding-window scan of the cascade detector.
type Params struct {
	ScaleFactor float64 // window growth per scale step
	ShiftFactor float64 // window shift as a fraction of its size
	MinSize     int     // smallest window in pixels
	MaxSize     int     // largest window in pixels
	MinQuality  float64 // minimum quality score to keep a detection
}

// DefaultParams returns parameters tuned for typical frontal photos.
func DefaultParams() Params {
	return Params{
		ScaleFactor: 1.1,
		ShiftFactor: 0.1,
		MinSize:     20,
		MaxSize:     1000,
		MinQuality:  5.0,
	}
}

// Detector runs the frontal-face cascade over images. It is safe for
// concurrent use; the classifier is read-only after construction.
type Detector struct {
	classifier *pigo.Pigo
	params     Params
}

// NewDetector loads the binary cascade file and prepares a detector.
func NewDetector(cascadePath string, params Params) (*Detector, error) {
	data, err := os.ReadFile(cascadePath)
	if err != nil {
		return nil, fmt.Errorf("reading cascade file: %w", err)
	}

	classifier, err := pigo.NewPigo().Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("unpacking cascade: %w", err)
	}

	return &Detector{
		classifier: classifier,
		params:     params,
	}, nil
}

// Detect returns all candidate face regions in the image, in detector order.
// An image with no faces yields an empty slice, not an error.
func (d *Detector) Detect(img image.Image) []Region {
	bounds := img.Bounds()
	cols := bounds.Dx()
	rows := bounds.Dy()
	if cols == 0 || rows == 0 {
		return nil
	}

	cParams := pigo.CascadeParams{
		MinSize:     d.params.MinSize,
		MaxSize:     d.params.MaxSize,
		ShiftFactor: d.params.ShiftFactor,
		ScaleFactor: d.params.ScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: imaging.GrayPlane(img),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	dets := d.classifier.RunCascade(cParams, 0.0)
	dets = d.classifier.ClusterDetections(dets, clusterIoU)

	var regions []Region
	for _, det := range dets {
		if float64(det.Q) < d.params.MinQuality {
			continue
		}
		regions = append(regions, regionFromDetection(det, cols, rows))
	}
	return regions
}

// regionFromDetection converts a centered square detection into a corner
// bounding box clamped to the image dimensions.
func regionFromDetection(det pigo.Detection, cols, rows int) Region {
	x := det.Col - det.Scale/2
	y := det.Row - det.Scale/2
	w := det.Scale
	h := det.Scale

	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > cols {
		w = cols - x
	}
	if y+h > rows {
		h = rows - y
	}

	return Region{X: x, Y: y, Width: w, Height: h, Q: det.Q}
}

// Largest selects the region with the maximum area. Ties keep the earliest
// region in detector order. Returns false when the slice is empty.
func Largest(regions []Region) (Region, bool) {
	if len(regions) == 0 {
		return Region{}, false
	}

	best := regions[0]
	for _, r := range regions[1:] {
		if r.Area() > best.Area() {
			best = r
		}
	}
	return best, true
}

// Rect converts a region to an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}
