// Package cmd implements the mcp-camara CLI using cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-camara/mcp-camara/src/server"
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "mcp-camara",
	Short: "mcp-camara — MCP server for the Câmara dos Deputados open-data API",
	Long: "mcp-camara exposes the Câmara dos Deputados open-data API as MCP tools:\n" +
		"endpoint discovery, schema description, generic calls, and deputy lookups.",
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = server.Version
	rootCmd.AddCommand(serveCmd)
}
