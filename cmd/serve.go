package cmd

import (
	"context"
	"fmt"

	"github.com/mj1618/alwaysontop/internal/server"
	"github.com/mj1618/alwaysontop/internal/version"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing pin tools",
	Long: `Start a Model Context Protocol (MCP) server that lets agents list windows,
pin one on top, release it and query the pin status. The release hotkeys stay
registered while the server runs.

Supported transports:
  stdio             Standard I/O (default)
  streamable-http   Streamable HTTP transport

Examples:
  alwaysontop serve
  alwaysontop serve --transport streamable-http --port 8080
  alwaysontop serve --cache-ttl 0`,
	Annotations: attached(),
	RunE:        runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", appConfig.Serve.Transport, "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", appConfig.Serve.Port, "HTTP port for streamable-http transport")
	serveCmd.Flags().Duration("cache-ttl", appConfig.Serve.CacheTTL, "Window list cache TTL (0 to disable)")

	for key, flag := range map[string]string{
		"serve.transport": "transport",
		"serve.port":      "port",
		"serve.cache_ttl": "cache-ttl",
	} {
		if err := settings.BindPFlag(key, serveCmd.Flags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", flag, err))
		}
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	env, err := newEnv(ctx)
	if err != nil {
		return err
	}
	ctrl := env.controller()
	defer ctrl.Close()

	env.listenHotkeys(ctx, func() {
		res, err := ctrl.Unpin(context.Background())
		if err != nil {
			env.log.Warn("unpin failed", "err", err)
			return
		}
		env.log.Info(res.Message)
	})

	cfg := server.Config{
		Transport: appConfig.Serve.Transport,
		Port:      appConfig.Serve.Port,
		CacheTTL:  appConfig.Serve.CacheTTL,
		Version:   version.Version,
	}
	srv := server.New(ctx, env.provider.Directory, ctrl, cfg)
	if err := srv.Serve(cfg); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
