package pin

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/mj1618/alwaysontop/internal/model"
	"github.com/mj1618/alwaysontop/internal/platform"
	"pkt.systems/pslog"
)

// StopReason records why a reassert task ended.
type StopReason string

const (
	StopNone       StopReason = ""
	StopReleased   StopReason = "released"
	StopWindowGone StopReason = "window-closed"
	StopFailed     StopReason = "failed"
)

// Stop describes a finished reassert task.
type Stop struct {
	Window string
	Reason StopReason
	Err    error
}

// Session is one pinned window and its reassert task.
type Session struct {
	Title  string
	Handle model.Handle

	active   atomic.Bool
	stopCh   chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	mu     sync.Mutex
	reason StopReason
	err    error
}

func newSession(w model.Window) *Session {
	s := &Session{
		Title:  w.Title,
		Handle: w.Handle,
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
	s.active.Store(true)
	return s
}

func (s *Session) stop() {
	s.active.Store(false)
	s.stopOnce.Do(func() { close(s.stopCh) })
}

// wait blocks until the task exits or d elapses.
func (s *Session) wait(d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-s.done:
		return true
	case <-t.C:
		return false
	}
}

func (s *Session) finish(reason StopReason, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reason = reason
	s.err = err
}

func (s *Session) stopInfo() (StopReason, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reason, s.err
}

func (s *Session) running() bool {
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

// run re-applies topmost every interval. It exits on stop, when the window
// is gone, or on the first OS error; there are no retries. The stop reason
// is recorded before done is closed.
func (s *Session) run(dir platform.WindowDirectory, interval time.Duration, log pslog.Logger) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if !s.active.Load() {
			s.finish(StopReleased, nil)
			return
		}
		if !dir.IsWindow(s.Handle) {
			log.Info("pinned window closed")
			s.finish(StopWindowGone, nil)
			return
		}
		if err := dir.SetTopmost(s.Handle, true); err != nil {
			log.Warn("reassert failed", "err", err)
			s.finish(StopFailed, err)
			return
		}
		if !s.active.Load() {
			// Released while SetTopmost was in flight; the releaser may
			// already have cleared topmost, so clear it again.
			if err := dir.SetTopmost(s.Handle, false); err != nil {
				log.Debug("late release failed", "err", err)
			}
			s.finish(StopReleased, nil)
			return
		}
		select {
		case <-s.stopCh:
			s.finish(StopReleased, nil)
			return
		case <-ticker.C:
		}
	}
}
