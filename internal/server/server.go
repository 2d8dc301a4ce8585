// Package server exposes the pin controller as Model Context Protocol tools.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/alwaysontop/internal/pin"
	"github.com/mj1618/alwaysontop/internal/platform"
	"pkt.systems/pslog"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
	CacheTTL  time.Duration
	Version   string
}

// Server wraps the MCP server with the window directory and pin controller.
type Server struct {
	dir   platform.WindowDirectory
	ctrl  *pin.Controller
	cache *WindowCache
	log   pslog.Logger
	mcp   *mcpserver.MCPServer
}

// New creates and configures an MCP server with all pin tools.
func New(ctx context.Context, dir platform.WindowDirectory, ctrl *pin.Controller, cfg Config) *Server {
	s := &Server{
		dir:   dir,
		ctrl:  ctrl,
		cache: NewWindowCache(cfg.CacheTTL),
		log:   pslog.Ctx(ctx),
	}
	s.mcp = mcpserver.NewMCPServer("alwaysontop", cfg.Version)
	s.registerTools()
	return s
}

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve(cfg Config) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		addr := fmt.Sprintf(":%d", cfg.Port)
		s.log.Info("mcp server listening", "addr", addr)
		return httpServer.Start(addr)
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("list_windows",
			mcp.WithDescription("List open top-level windows that can be pinned on top"),
			mcp.WithString("filter", mcp.Description("Only include windows whose title contains this text")),
		),
		s.handleList,
	)

	s.mcp.AddTool(
		mcp.NewTool("pin_window",
			mcp.WithDescription("Keep a window above all other windows until it is unpinned. Replaces any previously pinned window."),
			mcp.WithString("title", mcp.Required(), mcp.Description("Window title (exact, or a case-insensitive substring)")),
		),
		s.handlePin,
	)

	s.mcp.AddTool(
		mcp.NewTool("unpin_window",
			mcp.WithDescription("Release the pinned window and restore its normal stacking order"),
		),
		s.handleUnpin,
	)

	s.mcp.AddTool(
		mcp.NewTool("pin_status",
			mcp.WithDescription("Report which window is pinned and whether its keep-on-top task is still running"),
		),
		s.handleStatus,
	)
}
