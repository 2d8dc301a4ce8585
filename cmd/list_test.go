package cmd

import (
	"testing"

	"github.com/mj1618/alwaysontop/internal/model"
)

func TestListCommand_Flags(t *testing.T) {
	flags := listCmd.Flags()

	tests := []struct {
		name     string
		flagType string
	}{
		{"filter", "string"},
		{"pid", "int"},
		{"all", "bool"},
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

func TestListCommand_IsRegistered(t *testing.T) {
	for _, c := range rootCmd.Commands() {
		if c.Name() == "list" {
			return
		}
	}
	t.Error("list command not registered on root")
}

func TestFilterWindows(t *testing.T) {
	windows := []model.Window{
		{Title: "Untitled - Notepad", PID: 10},
		{Title: "Calculator", PID: 20},
		{Title: "notes.txt - Notepad", PID: 30},
	}

	tests := []struct {
		name   string
		filter string
		pid    int
		want   []string
	}{
		{"no filter", "", 0, []string{"Untitled - Notepad", "Calculator", "notes.txt - Notepad"}},
		{"case insensitive", "NOTEPAD", 0, []string{"Untitled - Notepad", "notes.txt - Notepad"}},
		{"pid", "", 20, []string{"Calculator"}},
		{"filter and pid", "notepad", 30, []string{"notes.txt - Notepad"}},
		{"no match", "paint", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterWindows(windows, tt.filter, tt.pid)
			if got == nil {
				t.Fatal("expected non-nil slice")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d windows, got %d", len(tt.want), len(got))
			}
			for i, w := range got {
				if w.Title != tt.want[i] {
					t.Errorf("window %d: expected %q, got %q", i, tt.want[i], w.Title)
				}
			}
		})
	}
}
