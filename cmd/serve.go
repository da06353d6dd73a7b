package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vkrejcir/facetrace/internal/config"
	"github.com/vkrejcir/facetrace/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the FaceTrace web server.
The server exposes the analysis pipeline over a JSON API: image upload
analysis, webcam snapshot matching, service status and health.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	serveCmd.Flags().String("host", "0.0.0.0", "Host to bind to")
}

// resolveServeHostPort resolves port and host from flags and environment variables.
func resolveServeHostPort(cmd *cobra.Command) (int, string) {
	port := mustGetInt(cmd, "port")
	host := mustGetString(cmd, "host")

	if envPort := os.Getenv("WEB_PORT"); envPort != "" {
		fmt.Sscanf(envPort, "%d", &port)
	}
	if envHost := os.Getenv("WEB_HOST"); envHost != "" {
		host = envHost
	}
	return port, host
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	service, err := buildPipeline(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	if cfg.NarrativeEnabled() {
		fmt.Println("AI narrative analysis enabled")
	} else {
		fmt.Println("No AI credentials configured, narrative analysis disabled")
	}
	fmt.Printf("Gallery: %s (%d known faces)\n", cfg.Gallery.Dir, service.Status().KnownFaces)

	port, host := resolveServeHostPort(cmd)
	server := web.NewServer(service, cfg.Uploads.Dir, host, port)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(os.Stderr, "shutdown error: %v\n", err)
		}
	}()

	return server.Start()
}
