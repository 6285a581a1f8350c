package cmd

import (
	"fmt"
	"log"

	mcpserver "github.com/namph-dev/dd373watch/mcp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP stdio server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	buildScraper()

	fmt.Fprintln(cmd.ErrOrStderr(), "Starting dd373watch MCP server on stdio...")

	if err := mcpserver.Serve(); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
	return nil
}
