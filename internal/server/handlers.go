package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/alwaysontop/internal/model"
	"github.com/mj1618/alwaysontop/internal/platform"
	"gopkg.in/yaml.v3"
)

// toText serializes v to YAML for an MCP response.
func toText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(b)
}

func stringParam(params map[string]interface{}, key, def string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

func (s *Server) handleList(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := strings.ToLower(stringParam(request.GetArguments(), "filter", ""))

	windows, err := s.cache.ListWindows(s.dir)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	windows = platform.ExcludePIDs(windows, platform.Ancestors())

	out := make([]model.Window, 0, len(windows))
	for _, w := range windows {
		if filter != "" && !strings.Contains(strings.ToLower(w.Title), filter) {
			continue
		}
		out = append(out, w)
	}
	return mcp.NewToolResultText(toText(out)), nil
}

func (s *Server) handlePin(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := stringParam(request.GetArguments(), "title", "")

	res, err := s.ctrl.Pin(ctx, title)
	s.cache.Invalidate()
	if err != nil {
		s.log.Info("pin tool failed", "title", title, "err", err)
		return mcp.NewToolResultError(toText(res)), nil
	}
	return mcp.NewToolResultText(toText(res)), nil
}

func (s *Server) handleUnpin(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := s.ctrl.Unpin(ctx)
	s.cache.Invalidate()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(toText(res)), nil
}

func (s *Server) handleStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(toText(s.ctrl.Status())), nil
}
