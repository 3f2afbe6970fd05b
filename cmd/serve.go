package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/open-camara/mcp-camara/src/config"
	"github.com/open-camara/mcp-camara/src/server"
)

var (
	serveHTTPAddr        string
	serveEnvFile         string
	serveExposeEndpoints bool
	serveVerbose         bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server (stdio by default)",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHTTPAddr, "http", "", "Serve over streamable HTTP on this address instead of stdio")
	serveCmd.Flags().StringVar(&serveEnvFile, "env-file", "", "Load configuration overrides from this .env file")
	serveCmd.Flags().BoolVar(&serveExposeEndpoints, "expose-endpoints", false, "Additionally register one tool per catalog endpoint")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Verbose logging")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.FromEnv(serveEnvFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := func(string, ...interface{}) {}
	if serveVerbose {
		// MCP over stdio owns stdout, so logs go to stderr.
		logger = log.New(cmd.ErrOrStderr(), "", log.LstdFlags).Printf
	}

	srv := server.New(cfg, logger)
	if serveExposeEndpoints {
		if err := srv.ExposeEndpoints(context.Background()); err != nil {
			return fmt.Errorf("expose endpoints: %w", err)
		}
	}

	if serveHTTPAddr != "" {
		return srv.ServeHTTP(serveHTTPAddr)
	}
	return srv.ServeStdio()
}
