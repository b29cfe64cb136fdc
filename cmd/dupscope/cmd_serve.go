package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dupscope/internal/analyze"
	"dupscope/internal/logging"
	mcpserver "dupscope/internal/mcp"
	"dupscope/internal/tcm"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdio",
	Long: `Starts an MCP server over stdin/stdout exposing the analyze_duplicates
and render_report tools.

The server monitors for parent process death: when the MCP host disconnects,
it self-terminates to prevent zombie processes.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	fetch := func(ctx context.Context, projectKey string, suiteID, limit int) ([]analyze.TestCase, error) {
		if projectKey == "" {
			return nil, fmt.Errorf("project key is required")
		}
		return tcm.NewFetcher(client, projectKey).FetchSuite(ctx, suiteID, limit)
	}

	srv := mcpserver.NewServer(fetch, cfg.EngineOptions(), newAugmenter(cfg))

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	mcpserver.WatchParent(ctx, cancel)

	logging.New("mcp").Info("starting dupscope MCP server over stdio (parent watchdog active)")
	return srv.Run(ctx)
}
