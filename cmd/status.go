package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vkrejcir/facetrace/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show service configuration and gallery state",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	service, err := buildPipeline(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	s := service.Status()
	fmt.Printf("Gallery:      %s (%d known faces)\n", cfg.Gallery.Dir, s.KnownFaces)
	fmt.Printf("Uploads:      %s (%d stored)\n", cfg.Uploads.Dir, s.Uploads)
	fmt.Printf("Cascade:      %s\n", cfg.Detector.CascadePath)
	if s.AIEnabled {
		fmt.Printf("AI narrative: enabled (%s)\n", s.Model)
	} else {
		fmt.Printf("AI narrative: disabled\n")
	}
	return nil
}
