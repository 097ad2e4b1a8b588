package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobfiller/internal/server"
	"github.com/jonathan/jobfiller/internal/service"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the analyze, fill, resume, mapping and settings operations as REST endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (defaults to the configured port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	port := cfg.Port
	if servePort != 0 {
		port = servePort
	}

	return withService(cmd, func(_ context.Context, svc *service.Service) error {
		srv := server.New(server.Config{Port: port}, svc)
		return srv.Start()
	})
}
