package main

import (
	"fmt"

	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/server"
	"github.com/jonathan/cv-builder/internal/session"
	"github.com/spf13/cobra"
)

var (
	servePort  int
	serveNoPDF bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start an HTTP server that holds editing sessions and exposes endpoints for editing, previewing and exporting documents.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, then 8080)")
	serveCmd.Flags().BoolVar(&serveNoPDF, "no-pdf", false, "Disable PDF export")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	port := servePort
	if port == 0 {
		port = settings.Port
	}

	cfg := server.Config{
		Port:     port,
		Registry: registry,
		Sessions: session.Options{
			IdleTimeout: settings.SessionIdleTimeout(),
			MaxSessions: settings.MaxSessions,
			Logger:      logger,
		},
		LaTeXTemplate: settings.Template,
		Logger:        logger,
	}
	if !serveNoPDF {
		cfg.Exporter = export.NewPDFExporter(settings.ChromePath, settings.ExportTimeout(), logger)
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
