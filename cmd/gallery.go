package cmd

import (
	"errors"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/vkrejcir/facetrace/internal/analyzer"
	"github.com/vkrejcir/facetrace/internal/config"
	"github.com/vkrejcir/facetrace/internal/detect"
	"github.com/vkrejcir/facetrace/internal/facematch"
)

var galleryCmd = &cobra.Command{
	Use:   "gallery",
	Short: "Manage the known faces gallery",
}

var galleryScanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Precompute descriptors for all gallery images",
	Long: `Walk the gallery directory, run face detection on every image and
report entries without a detectable face. Useful after adding new
reference photos to verify they will participate in matching.`,
	RunE: runGalleryScan,
}

func init() {
	rootCmd.AddCommand(galleryCmd)
	galleryCmd.AddCommand(galleryScanCmd)
}

func runGalleryScan(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	detector, err := detect.NewDetector(cfg.Detector.CascadePath, detect.Params{
		ScaleFactor: cfg.Detector.ScaleFactor,
		ShiftFactor: cfg.Detector.ShiftFactor,
		MinSize:     cfg.Detector.MinSize,
		MaxSize:     cfg.Detector.MaxSize,
		MinQuality:  cfg.Detector.MinQuality,
	})
	if err != nil {
		return fmt.Errorf("failed to load face cascade: %w", err)
	}

	gallery := facematch.NewGallery(cfg.Gallery.Dir, analyzer.GalleryExtractor(detector))

	entries, err := gallery.Entries()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Printf("No gallery images found in %s\n", cfg.Gallery.Dir)
		return nil
	}

	bar := progressbar.NewOptions(len(entries),
		progressbar.OptionSetDescription("Scanning gallery"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("images"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionFullWidth(),
	)

	var noFace []string
	var failed []string
	for _, entry := range entries {
		if _, err := gallery.Descriptor(entry.Path); err != nil {
			if errors.Is(err, facematch.ErrNoFace) {
				noFace = append(noFace, entry.Filename)
			} else {
				failed = append(failed, fmt.Sprintf("%s: %v", entry.Filename, err))
			}
		}
		bar.Add(1)
	}
	fmt.Println()

	usable := len(entries) - len(noFace) - len(failed)
	fmt.Printf("Scanned %d images, %d usable for matching\n", len(entries), usable)

	if len(noFace) > 0 {
		fmt.Printf("\nNo face detected in %d images:\n", len(noFace))
		for _, name := range noFace {
			fmt.Printf("  %s\n", name)
		}
	}
	if len(failed) > 0 {
		fmt.Printf("\nFailed to process %d images:\n", len(failed))
		for _, msg := range failed {
			fmt.Printf("  %s\n", msg)
		}
	}
	return nil
}
