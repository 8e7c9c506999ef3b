package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/newsletter-press/internal/api"
	"github.com/newsletter-press/internal/config"
	"github.com/newsletter-press/internal/repository"
	"github.com/newsletter-press/internal/service"
	"github.com/newsletter-press/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	exportOut   string
	exportQuery string
)

var rootCmd = &cobra.Command{
	Use:   "newsletter-press",
	Short: "Single-tenant newsletter publishing service",
	Long:  `Serves dated, language-tagged newsletter editions backed by a CSV file, optionally mirrored to a GitHub-hosted copy.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the current collection as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd.Context())
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "editions_export.csv", "Output file path")
	exportCmd.Flags().StringVar(&exportQuery, "q", "", "Filter titles and content by substring")
	rootCmd.AddCommand(serveCmd, exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServe() error {
	// Initialize logger
	log := logger.New()
	log.Info().Msg("Starting newsletter-press server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize the record store and services
	repo := repository.New(cfg, log)
	services := service.NewServices(repo, cfg, log)

	if !services.Auth.Enabled() {
		log.Warn().Msg("No admin password configured, authoring endpoints are disabled")
	}

	// Initialize router
	router := api.NewRouter(services, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("source", repo.Source()).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
	return nil
}

func runExport(ctx context.Context) error {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	repo := repository.New(cfg, log)
	services := service.NewServices(repo, cfg, log)

	f, err := os.Create(exportOut)
	if err != nil {
		return fmt.Errorf("creating %s: %w", exportOut, err)
	}
	defer f.Close()

	if err := services.Edition.ExportCSV(ctx, f, exportQuery); err != nil {
		return fmt.Errorf("exporting collection: %w", err)
	}

	log.Info().Str("file", exportOut).Str("source", repo.Source()).Msg("Collection exported")
	return nil
}
