package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vkrejcir/facetrace/internal/config"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <image>",
	Short: "Analyze a single image",
	Long: `Run the full analysis pipeline on one image file and print the
report as JSON. With --basic only face detection and gallery matching
run, skipping profile lookups and AI narratives.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().Bool("basic", false, "Skip profile lookups and AI narratives")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	service, err := buildPipeline(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	analyze := service.Analyze
	if mustGetBool(cmd, "basic") {
		analyze = service.AnalyzeBasic
	}
	report, err := analyze(cmd.Context(), data)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
