package platform

import (
	"os"
	"reflect"
	"testing"

	"github.com/mj1618/alwaysontop/internal/model"
)

func sampleWindows() []model.Window {
	return []model.Window{
		{Title: "Untitled - Notepad", Handle: 1, PID: 10},
		{Title: "   ", Handle: 2, PID: 11},
		{Title: "", Handle: 3, PID: 12},
		{Title: "Notepad", Handle: 4, PID: 13},
		{Title: "Calculator", Handle: 5, PID: 14},
	}
}

func TestFilterTitled(t *testing.T) {
	got := Titles(FilterTitled(sampleWindows()))
	want := []string{"Untitled - Notepad", "Notepad", "Calculator"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMatchTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  []model.Handle
	}{
		{"exact wins over substring", "Notepad", []model.Handle{4}},
		{"substring fallback is case-insensitive", "notepad", []model.Handle{1, 4}},
		{"partial", "calc", []model.Handle{5}},
		{"no match", "Paint", nil},
		{"blank", "  ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []model.Handle
			for _, w := range MatchTitle(FilterTitled(sampleWindows()), tt.title) {
				got = append(got, w.Handle)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExcludePIDs(t *testing.T) {
	got := ExcludePIDs(sampleWindows(), []int{10, 13})
	for _, w := range got {
		if w.PID == 10 || w.PID == 13 {
			t.Errorf("window %v should have been excluded", w)
		}
	}
	if len(got) != 3 {
		t.Errorf("got %d windows, want 3", len(got))
	}
	if len(ExcludePIDs(sampleWindows(), nil)) != 5 {
		t.Error("nil pids should keep everything")
	}
}

func TestAncestors_StartsWithSelf(t *testing.T) {
	an := Ancestors()
	if len(an) == 0 || an[0] != os.Getpid() {
		t.Fatalf("expected current pid first, got %v", an)
	}
}
