package model

import "fmt"

// Handle is an opaque OS window identifier.
type Handle uintptr

func (h Handle) String() string {
	return fmt.Sprintf("0x%X", uintptr(h))
}

// Window represents a top-level application window.
type Window struct {
	Title     string `yaml:"title"               json:"title"`
	Handle    Handle `yaml:"handle"              json:"handle"`
	PID       int    `yaml:"pid"                 json:"pid"`
	App       string `yaml:"app,omitempty"       json:"app,omitempty"`
	Minimized bool   `yaml:"minimized,omitempty" json:"minimized,omitempty"`
}
