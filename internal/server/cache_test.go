package server

import (
	"testing"
	"time"

	"github.com/mj1618/alwaysontop/internal/model"
)

func TestWindowCache_TTL(t *testing.T) {
	dir := newFakeDirectory(model.Window{Title: "Notepad", Handle: 1})
	c := NewWindowCache(time.Hour)

	for i := 0; i < 3; i++ {
		if _, err := c.ListWindows(dir); err != nil {
			t.Fatal(err)
		}
	}
	if dir.lists != 1 {
		t.Errorf("expected 1 directory call within TTL, got %d", dir.lists)
	}

	c.Invalidate()
	if _, err := c.ListWindows(dir); err != nil {
		t.Fatal(err)
	}
	if dir.lists != 2 {
		t.Errorf("expected refetch after Invalidate, got %d calls", dir.lists)
	}
}

func TestWindowCache_Disabled(t *testing.T) {
	dir := newFakeDirectory(model.Window{Title: "Notepad", Handle: 1})
	c := NewWindowCache(0)
	c.ListWindows(dir)
	c.ListWindows(dir)
	if dir.lists != 2 {
		t.Errorf("expected every call to hit the directory, got %d", dir.lists)
	}
}
