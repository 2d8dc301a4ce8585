// Package pin keeps a single chosen window above all others.
//
// A Controller owns at most one Session. Pin starts a background task that
// re-applies "always on top" on a fixed interval; Unpin stops it and restores
// the window's normal z-order. Pinning a new window first tears down the
// previous session synchronously, so two tasks never race on different handles.
package pin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mj1618/alwaysontop/internal/logx"
	"github.com/mj1618/alwaysontop/internal/model"
	"github.com/mj1618/alwaysontop/internal/platform"
	"pkt.systems/pslog"
)

const (
	DefaultInterval    = 500 * time.Millisecond
	DefaultSettleDelay = 100 * time.Millisecond
)

var (
	// ErrNoSelection is returned when Pin is called with a blank title.
	ErrNoSelection = errors.New("no window selected")
	// ErrNotFound is returned when no window matches the requested title.
	ErrNotFound = errors.New("window not found")
)

// Options tunes a Controller.
type Options struct {
	// Interval between reassert attempts.
	Interval time.Duration
	// SettleDelay bounds the wait for a stopping task and the pause after
	// restoring a minimized window.
	SettleDelay time.Duration
	// ReleaseHint is appended to the pin message, e.g. "Alt+Esc or Alt+0".
	ReleaseHint string
}

// Result is the outcome of a pin or unpin request.
type Result struct {
	OK      bool   `yaml:"ok"               json:"ok"`
	Action  string `yaml:"action"           json:"action"`
	Window  string `yaml:"window,omitempty" json:"window,omitempty"`
	Message string `yaml:"message"          json:"message"`
	// Soft marks an expected failure, e.g. the window closed before release.
	Soft bool `yaml:"soft,omitempty" json:"soft,omitempty"`
}

// Status is a snapshot of the controller state.
type Status struct {
	Active  bool         `yaml:"active"           json:"active"`
	Window  string       `yaml:"window,omitempty" json:"window,omitempty"`
	Handle  model.Handle `yaml:"handle,omitempty" json:"handle,omitempty"`
	Running bool         `yaml:"running"          json:"running"`
	// Stopped is set once the task has ended on its own.
	Stopped StopReason `yaml:"stopped,omitempty" json:"stopped,omitempty"`
	Error   string     `yaml:"error,omitempty"   json:"error,omitempty"`
}

// Controller manages the single pin session.
type Controller struct {
	dir  platform.WindowDirectory
	opts Options
	log  pslog.Logger

	// opMu serializes Pin and Unpin; they arrive from the UI and hotkey threads.
	opMu sync.Mutex

	mu      sync.Mutex
	session *Session
}

// NewController creates a Controller over dir. A nil logger uses the
// context-free default.
func NewController(dir platform.WindowDirectory, opts Options, logger pslog.Logger) *Controller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = DefaultSettleDelay
	}
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Controller{dir: dir, opts: opts, log: logger}
}

// Pin keeps the first window matching title on top until Unpin.
func (c *Controller) Pin(ctx context.Context, title string) (Result, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	res := Result{Action: "pin", Window: title}

	if c.current() != nil {
		c.unpinLocked()
	}

	if strings.TrimSpace(title) == "" {
		res.Message = "no window selected"
		return res, ErrNoSelection
	}

	windows, err := c.dir.FindByTitle(title)
	if err != nil {
		res.Message = fmt.Sprintf("failed to look up window: %s", title)
		return res, fmt.Errorf("find window %q: %w", title, err)
	}
	if len(windows) == 0 {
		res.Message = fmt.Sprintf("window not found: %s", title)
		return res, fmt.Errorf("%w: %s", ErrNotFound, title)
	}
	win := windows[0]
	log := logx.WithWindow(c.log, win.Title, win.Handle)

	minimized, err := c.dir.IsMinimized(win.Handle)
	if err != nil {
		log.Debug("minimized query failed", "err", err)
	}
	if minimized {
		if err := c.dir.Restore(win.Handle); err != nil {
			log.Warn("restore failed", "err", err)
		} else if err := sleepCtx(ctx, c.opts.SettleDelay); err != nil {
			res.Message = "pin cancelled"
			return res, err
		}
	}

	s := newSession(win)
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
	go c.supervise(s, log)

	log.Info("window pinned", "interval", c.opts.Interval)
	res.OK = true
	res.Window = win.Title
	res.Message = fmt.Sprintf("'%s' pinned on top", win.Title)
	if c.opts.ReleaseHint != "" {
		res.Message += fmt.Sprintf(" (%s to release)", c.opts.ReleaseHint)
	}
	return res, nil
}

// Unpin stops the active session and restores normal z-order. With no
// active session it is a no-op.
func (c *Controller) Unpin(ctx context.Context) (Result, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	if c.current() == nil {
		return Result{OK: true, Action: "unpin", Message: "nothing pinned"}, nil
	}
	return c.unpinLocked(), nil
}

func (c *Controller) unpinLocked() Result {
	c.mu.Lock()
	s := c.session
	c.session = nil
	c.mu.Unlock()

	res := Result{Action: "unpin", Window: s.Title}
	log := logx.WithWindow(c.log, s.Title, s.Handle)

	s.stop()
	if !s.wait(c.opts.SettleDelay) {
		log.Warn("reassert task did not stop in time", "wait", c.opts.SettleDelay)
	}

	if !c.dir.IsWindow(s.Handle) {
		log.Info("window already closed")
		res.OK = true
		res.Soft = true
		res.Message = "released (window already closed)"
		return res
	}
	if err := c.dir.SetTopmost(s.Handle, false); err != nil {
		log.Warn("release failed", "err", err)
		res.Soft = true
		res.Message = "release failed (window closed or permission denied)"
		return res
	}
	log.Info("window released")
	res.OK = true
	res.Message = "released from top"
	return res
}

// Status reports the current session, if any.
func (c *Controller) Status() Status {
	s := c.current()
	if s == nil {
		return Status{}
	}
	st := Status{
		Active:  true,
		Window:  s.Title,
		Handle:  s.Handle,
		Running: s.running(),
	}
	if !st.Running {
		reason, err := s.stopInfo()
		st.Stopped = reason
		if err != nil {
			st.Error = err.Error()
		}
	}
	return st
}

// Watch blocks until the current session's task ends or ctx is done and
// reports why it ended. With nothing pinned it returns a zero Stop.
func (c *Controller) Watch(ctx context.Context) Stop {
	s := c.current()
	if s == nil {
		return Stop{}
	}
	select {
	case <-s.done:
	case <-ctx.Done():
		return Stop{Window: s.Title}
	}
	reason, err := s.stopInfo()
	return Stop{Window: s.Title, Reason: reason, Err: err}
}

// supervise runs the reassert task and tears the session down when the task
// fails. A session whose window vanished stays in place until the next
// Pin or Unpin.
func (c *Controller) supervise(s *Session, log pslog.Logger) {
	s.run(c.dir, c.opts.Interval, log)

	reason, err := s.stopInfo()
	if reason != StopFailed {
		return
	}
	c.mu.Lock()
	current := c.session == s
	if current {
		c.session = nil
	}
	c.mu.Unlock()
	if current {
		log.Warn("pin dropped", "err", err)
	}
}

// Done returns a channel closed when the current session's task stops, or
// nil when nothing is pinned.
func (c *Controller) Done() <-chan struct{} {
	s := c.current()
	if s == nil {
		return nil
	}
	return s.done
}

// Close releases any pinned window.
func (c *Controller) Close() error {
	_, err := c.Unpin(context.Background())
	return err
}

func (c *Controller) current() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if ctx == nil {
		ctx = context.Background()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
