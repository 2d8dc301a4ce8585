package server

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/alwaysontop/internal/model"
	"github.com/mj1618/alwaysontop/internal/pin"
	"github.com/mj1618/alwaysontop/internal/platform"
	"pkt.systems/pslog"
)

type fakeDirectory struct {
	mu      sync.Mutex
	windows []model.Window
	lists   int
	topmost map[model.Handle]bool
}

func newFakeDirectory(wins ...model.Window) *fakeDirectory {
	return &fakeDirectory{windows: wins, topmost: make(map[model.Handle]bool)}
}

func (d *fakeDirectory) ListWindows() ([]model.Window, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lists++
	return append([]model.Window(nil), d.windows...), nil
}

func (d *fakeDirectory) FindByTitle(title string) ([]model.Window, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return platform.MatchTitle(d.windows, title), nil
}

func (d *fakeDirectory) IsMinimized(model.Handle) (bool, error) { return false, nil }
func (d *fakeDirectory) Restore(model.Handle) error             { return nil }

func (d *fakeDirectory) SetTopmost(h model.Handle, on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.topmost[h] = on
	return nil
}

func (d *fakeDirectory) IsWindow(h model.Handle) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, w := range d.windows {
		if w.Handle == h {
			return true
		}
	}
	return false
}

func (d *fakeDirectory) isTopmost(h model.Handle) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.topmost[h]
}

func newTestServer(t *testing.T, dir *fakeDirectory) *Server {
	t.Helper()
	logger := pslog.NewWithOptions(io.Discard, pslog.Options{Mode: pslog.ModeStructured})
	ctx := pslog.ContextWithLogger(context.Background(), logger)
	ctrl := pin.NewController(dir, pin.Options{
		Interval:    10 * time.Millisecond,
		SettleDelay: 50 * time.Millisecond,
	}, logger)
	t.Cleanup(func() { _ = ctrl.Close() })
	return New(ctx, dir, ctrl, Config{Transport: "stdio", Version: "test"})
}

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	res, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", name, err)
	}
	if res == nil || len(res.Content) == 0 {
		t.Fatalf("%s: empty result", name)
	}
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return text.Text
}

func TestHandleList_Filter(t *testing.T) {
	dir := newFakeDirectory(
		model.Window{Title: "Notepad", Handle: 1, PID: 900100},
		model.Window{Title: "Calculator", Handle: 2, PID: 900200},
	)
	s := newTestServer(t, dir)

	res := callTool(t, s.handleList, "list_windows", map[string]any{"filter": "note"})
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	text := resultText(t, res)
	if !strings.Contains(text, "Notepad") {
		t.Errorf("expected Notepad in %q", text)
	}
	if strings.Contains(text, "Calculator") {
		t.Errorf("Calculator should be filtered out: %q", text)
	}
}

func TestHandlePin_ThenStatusAndUnpin(t *testing.T) {
	dir := newFakeDirectory(model.Window{Title: "Notepad", Handle: 7, PID: 900100})
	s := newTestServer(t, dir)

	res := callTool(t, s.handlePin, "pin_window", map[string]any{"title": "Notepad"})
	if res.IsError {
		t.Fatalf("pin failed: %s", resultText(t, res))
	}
	if !strings.Contains(resultText(t, res), "pinned on top") {
		t.Errorf("unexpected pin text: %q", resultText(t, res))
	}

	deadline := time.Now().Add(time.Second)
	for !dir.isTopmost(7) {
		if time.Now().After(deadline) {
			t.Fatal("window never set topmost")
		}
		time.Sleep(5 * time.Millisecond)
	}

	status := resultText(t, callTool(t, s.handleStatus, "pin_status", nil))
	if !strings.Contains(status, "active: true") || !strings.Contains(status, "Notepad") {
		t.Errorf("unexpected status: %q", status)
	}

	res = callTool(t, s.handleUnpin, "unpin_window", nil)
	if res.IsError {
		t.Fatalf("unpin failed: %s", resultText(t, res))
	}
	if !strings.Contains(resultText(t, res), "released from top") {
		t.Errorf("unexpected unpin text: %q", resultText(t, res))
	}
	if dir.isTopmost(7) {
		t.Error("window still topmost after unpin")
	}
}

func TestHandlePin_Errors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"missing title", nil, "no window selected"},
		{"blank title", map[string]any{"title": "  "}, "no window selected"},
		{"unknown window", map[string]any{"title": "Paint"}, "window not found: Paint"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, newFakeDirectory(model.Window{Title: "Notepad", Handle: 1}))
			res := callTool(t, s.handlePin, "pin_window", tt.args)
			if !res.IsError {
				t.Fatal("expected tool error")
			}
			if text := resultText(t, res); !strings.Contains(text, tt.want) {
				t.Errorf("expected %q in %q", tt.want, text)
			}
		})
	}
}

func TestHandleUnpin_NothingPinned(t *testing.T) {
	s := newTestServer(t, newFakeDirectory())
	res := callTool(t, s.handleUnpin, "unpin_window", nil)
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	if !strings.Contains(resultText(t, res), "nothing pinned") {
		t.Errorf("unexpected text: %q", resultText(t, res))
	}
}

func TestServe_UnsupportedTransport(t *testing.T) {
	s := newTestServer(t, newFakeDirectory())
	err := s.Serve(Config{Transport: "carrier-pigeon"})
	if err == nil || !strings.Contains(err.Error(), "unsupported transport") {
		t.Fatalf("expected unsupported transport error, got %v", err)
	}
}
