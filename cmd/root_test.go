package cmd

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/mj1618/alwaysontop/internal/platform"
	"pkt.systems/pslog"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	expected := []string{"gui", "pin", "list", "check", "serve", "version"}
	commands := rootCmd.Commands()

	found := make(map[string]bool)
	for _, c := range commands {
		found[c.Name()] = true
	}

	for _, name := range expected {
		if !found[name] {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	if rootCmd.Version == "" {
		t.Error("root command version should be set")
	}
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	tests := []struct {
		name     string
		flagType string
	}{
		{"format", "string"},
		{"pretty", "bool"},
		{"interval", "duration"},
		{"hotkeys", "stringSlice"},
		{"no-elevate", "bool"},
		{"release-url", "string"},
	}

	for _, tt := range tests {
		f := flags.Lookup(tt.name)
		if f == nil {
			t.Errorf("expected flag %q not found", tt.name)
			continue
		}
		if f.Value.Type() != tt.flagType {
			t.Errorf("flag %q: expected type %q, got %q", tt.name, tt.flagType, f.Value.Type())
		}
	}
}

func TestCommandAnnotations(t *testing.T) {
	tests := []struct {
		name    string
		elevate string
		gate    bool
	}{
		{"alwaysontop", elevateRelaunch, true},
		{"gui", elevateRelaunch, true},
		{"pin", elevateRequire, true},
		{"serve", elevateRequire, true},
		{"list", "", true},
		{"check", "", false},
		{"version", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := rootCmd
			if tt.name != rootCmd.Name() {
				var err error
				c, _, err = rootCmd.Find([]string{tt.name})
				if err != nil {
					t.Fatalf("find %s: %v", tt.name, err)
				}
			}
			if got := c.Annotations[annotationElevate]; got != tt.elevate {
				t.Errorf("elevate: expected %q, got %q", tt.elevate, got)
			}
			if got := c.Annotations[annotationGate] == "true"; got != tt.gate {
				t.Errorf("gate: expected %v, got %v", tt.gate, got)
			}
		})
	}
}

type fakeElevator struct {
	elevated   bool
	relaunched [][]string
	err        error
}

func (f *fakeElevator) IsElevated() bool { return f.elevated }

func (f *fakeElevator) Relaunch(args []string) error {
	f.relaunched = append(f.relaunched, args)
	return f.err
}

func TestEnsureElevated(t *testing.T) {
	tests := []struct {
		name         string
		elevated     bool
		mode         string
		relaunchErr  error
		wantErr      error
		wantMessage  string
		wantRelaunch bool
	}{
		{name: "already elevated", elevated: true, mode: elevateRequire},
		{name: "relaunch", mode: elevateRelaunch, wantErr: errRelaunched, wantRelaunch: true},
		{name: "relaunch refused", mode: elevateRelaunch, relaunchErr: errors.New("cancelled by user"), wantMessage: "relaunch elevated", wantRelaunch: true},
		{name: "require", mode: elevateRequire, wantMessage: "run it from an elevated shell"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elevator := &fakeElevator{elevated: tt.elevated, err: tt.relaunchErr}
			e := &env{
				provider: &platform.Provider{Elevator: elevator},
				log:      pslog.NewWithOptions(io.Discard, pslog.Options{Mode: pslog.ModeStructured}),
			}

			err := ensureElevated(e, "serve", tt.mode, []string{"serve", "--port", "9000"})
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
			case tt.wantMessage != "":
				if err == nil || !strings.Contains(err.Error(), tt.wantMessage) {
					t.Fatalf("expected error containing %q, got %v", tt.wantMessage, err)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}

			if got := len(elevator.relaunched) > 0; got != tt.wantRelaunch {
				t.Fatalf("relaunched = %v, want %v", got, tt.wantRelaunch)
			}
			if tt.wantRelaunch && strings.Join(elevator.relaunched[0], " ") != "serve --port 9000" {
				t.Errorf("relaunch args = %v", elevator.relaunched[0])
			}
		})
	}
}

func TestPinCommand_RequiresTitle(t *testing.T) {
	if err := pinCmd.Args(pinCmd, nil); err == nil {
		t.Error("expected error when no title is given")
	}
	if err := pinCmd.Args(pinCmd, []string{"Notepad"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
