// Package facematch turns located face regions into fixed-size descriptors
// and ranks gallery entries by descriptor similarity.
package facematch

import (
	"image"

	"github.com/vkrejcir/facetrace/internal/constants"
	"github.com/vkrejcir/facetrace/internal/detect"
	"github.com/vkrejcir/facetrace/internal/imaging"
)

// Descriptor is a flattened grayscale representation of a normalized face
// crop. All descriptors have the same length
// (constants.DescriptorSize squared) so they can be compared directly.
type Descriptor []float64

// ExtractDescriptor crops the face region, resizes it to the standard
// descriptor dimensions and flattens it into grayscale intensities.
func ExtractDescriptor(img image.Image, region detect.Region) Descriptor {
	face := imaging.Crop(img, region.Rect())
	normalized := imaging.Resize(face, constants.DescriptorSize, constants.DescriptorSize)
	return Descriptor(imaging.GrayValues(normalized))
}
