package config

import (
	"strings"
	"testing"
	"time"

	"github.com/mj1618/alwaysontop/internal/update"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ReassertInterval != 500*time.Millisecond {
		t.Errorf("reassert_interval = %s", cfg.ReassertInterval)
	}
	if cfg.Update.Timeout != 5*time.Second {
		t.Errorf("update.timeout = %s", cfg.Update.Timeout)
	}
	if cfg.Update.ReleaseURL != update.DefaultReleaseURL {
		t.Errorf("update.release_url = %q", cfg.Update.ReleaseURL)
	}
	if len(cfg.Hotkeys) != 2 {
		t.Errorf("hotkeys = %v", cfg.Hotkeys)
	}
	if cfg.UI.Width != 400 || cfg.UI.Height != 280 {
		t.Errorf("ui size = %dx%d", cfg.UI.Width, cfg.UI.Height)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ALWAYSONTOP_REASSERT_INTERVAL", "250ms")
	t.Setenv("ALWAYSONTOP_UPDATE_POLICY", "exact")
	t.Setenv("ALWAYSONTOP_UPDATE_TIMEOUT", "2s")
	t.Setenv("ALWAYSONTOP_NO_ELEVATE", "true")

	cfg, err := Load(New())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ReassertInterval != 250*time.Millisecond {
		t.Errorf("reassert_interval = %s", cfg.ReassertInterval)
	}
	if cfg.Update.Policy != "exact" {
		t.Errorf("update.policy = %q", cfg.Update.Policy)
	}
	if cfg.Update.Timeout != 2*time.Second {
		t.Errorf("update.timeout = %s", cfg.Update.Timeout)
	}
	if !cfg.NoElevate {
		t.Error("no_elevate should be true")
	}
	if cfg.Checker("1.0.2").Policy != update.PolicyExact {
		t.Error("checker should carry the exact policy")
	}
}

func TestLoad_InvalidEnv(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"ALWAYSONTOP_REASSERT_INTERVAL", "0s", "reassert_interval"},
		{"ALWAYSONTOP_UPDATE_POLICY", "always", "update.policy"},
		{"ALWAYSONTOP_UPDATE_RELEASE_URL", "not a url", "update.release_url"},
		{"ALWAYSONTOP_SERVE_TRANSPORT", "sse", "serve.transport"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load(New())
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestValidate_Hotkeys(t *testing.T) {
	cfg := Default()
	cfg.Hotkeys = []string{"alt+esc", "nomod"}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "hotkeys") {
		t.Fatalf("expected hotkeys error, got %v", err)
	}
}

func TestPinOptions(t *testing.T) {
	opts := Default().PinOptions()
	if opts.Interval != 500*time.Millisecond {
		t.Errorf("interval = %s", opts.Interval)
	}
	if opts.ReleaseHint != "Alt+Esc or Alt+0" {
		t.Errorf("release hint = %q", opts.ReleaseHint)
	}
}
