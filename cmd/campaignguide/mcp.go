package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/campaignguide/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

func newMCPCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the Model Context Protocol (MCP) server",
		Long: `Exposes the campaign guide to AI agents as MCP tools (process_campaign,
next_scenario, record_decision, undo_scenario, campaign_graph) and the
campaign://scenarios resource.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			transport, _ := cmd.Flags().GetString("transport")
			addr := a.cfg.HTTPAddr
			if cmd.Flags().Changed("addr") {
				addr, _ = cmd.Flags().GetString("addr")
			}

			eng, closer, err := a.newEngine()
			if err != nil {
				return err
			}
			defer closer.Close()
			srv := mcp.NewServer(eng, mcp.WithLogger(a.logger))

			switch transport {
			case "stdio":
				// Logs go to Stderr; Stdout carries JSON-RPC.
				a.logger.Info("starting MCP server (stdio)", "campaign", eng.Name)
				return srv.ServeStdio()
			case "sse":
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				if err := srv.ServeSSE(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("MCP server failed: %w", err)
				}
				a.logger.Info("MCP server stopped gracefully")
				return nil
			}
			return fmt.Errorf("unknown transport: %s (supported: stdio, sse)", transport)
		},
	}
	cmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	cmd.Flags().String("addr", "", "Address to listen on, sse only (env CAMPAIGNGUIDE_HTTP_ADDR)")
	return cmd
}
