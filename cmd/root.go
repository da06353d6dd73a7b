package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "facetrace",
	Short: "Face matching and privacy exposure analysis",
	Long: `FaceTrace analyzes photos for privacy exposure: it locates faces,
matches them against a local gallery of known people, probes public
profile services and optionally asks an AI model for a narrative
threat assessment.

Built for security awareness demos. Only analyze images you are
authorized to work with.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
