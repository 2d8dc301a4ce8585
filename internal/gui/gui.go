// Package gui is the interactive window: a window picker with pin and
// unpin buttons, a status line and the developer credit.
package gui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/mj1618/alwaysontop/internal/config"
	"github.com/mj1618/alwaysontop/internal/icon"
	"github.com/mj1618/alwaysontop/internal/model"
	"github.com/mj1618/alwaysontop/internal/pin"
	"github.com/mj1618/alwaysontop/internal/platform"
	"pkt.systems/pslog"
)

const appID = "info.wyea.alwaysontop"

// Deps are the collaborators the window drives.
type Deps struct {
	Controller *pin.Controller
	Directory  platform.WindowDirectory
	Notifier   platform.Notifier
	Config     config.Config
	Version    string
}

// App is the interactive window.
type App struct {
	deps  Deps
	log   pslog.Logger
	title string

	fyneApp fyne.App
	window  fyne.Window
	picker  *widget.SelectEntry
	status  *widget.Label
	started atomic.Bool
}

// New builds the window. Call Run to show it.
func New(ctx context.Context, deps Deps) *App {
	a := &App{
		deps:  deps,
		log:   pslog.Ctx(ctx),
		title: fmt.Sprintf("AlwaysOnTop v%s", deps.Version),
	}
	a.fyneApp = app.NewWithID(appID)
	a.fyneApp.Lifecycle().SetOnStarted(func() { a.started.Store(true) })
	a.window = a.fyneApp.NewWindow(a.title)
	if data, err := icon.PNG(); err == nil {
		res := fyne.NewStaticResource("alwaysontop.png", data)
		a.fyneApp.SetIcon(res)
		a.window.SetIcon(res)
	} else {
		a.log.Warn("render icon failed", "err", err)
	}
	a.build()
	return a
}

func (a *App) build() {
	cfg := a.deps.Config

	a.picker = widget.NewSelectEntry(nil)
	a.picker.SetPlaceHolder("Select a window")
	a.status = widget.NewLabel("")
	a.status.Importance = widget.HighImportance
	a.status.Wrapping = fyne.TextWrapWord

	refresh := widget.NewButton("Refresh", a.refresh)
	pinBtn := widget.NewButton("Pin (keep on top)", a.pin)
	pinBtn.Importance = widget.SuccessImportance
	unpinBtn := widget.NewButton("Unpin (release)", a.unpin)
	unpinBtn.Importance = widget.DangerImportance

	var credit fyne.CanvasObject = widget.NewLabel(cfg.UI.Credit)
	if u, err := url.Parse(cfg.Update.HomepageURL); err == nil && cfg.Update.HomepageURL != "" {
		credit = widget.NewHyperlink(fmt.Sprintf("%s (%s)", cfg.UI.Credit, u.Host), u)
	}

	a.window.SetContent(container.NewPadded(container.NewVBox(
		widget.NewLabel("Open windows:"),
		a.picker,
		refresh,
		pinBtn,
		unpinBtn,
		a.status,
		container.NewCenter(credit),
	)))
	a.window.Resize(fyne.NewSize(float32(cfg.UI.Width), float32(cfg.UI.Height)))
	a.window.SetFixedSize(true)
	a.window.CenterOnScreen()
	a.window.SetCloseIntercept(a.onClose)
}

// Run shows the startup credit, then the window, and blocks until it closes.
// It must be called from the main goroutine.
func (a *App) Run(ctx context.Context) {
	if a.deps.Notifier != nil {
		a.deps.Notifier.Info("AlwaysOnTop", a.deps.Config.UI.Credit)
	}

	a.refresh()
	if hint := a.deps.Config.PinOptions().ReleaseHint; hint != "" {
		a.SetStatus(fmt.Sprintf("Press %s to force release", hint))
	}

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.watchOwnWindow(watchCtx)
	go func() {
		<-watchCtx.Done()
		if ctx.Err() != nil {
			a.ui(a.fyneApp.Quit)
		}
	}()

	a.window.ShowAndRun()
}

// SetStatus updates the status line from any goroutine.
func (a *App) SetStatus(text string) {
	a.ui(func() { a.status.SetText(text) })
}

// ui runs fn on the fyne event loop once it is running, or inline before.
func (a *App) ui(fn func()) {
	if a.started.Load() {
		fyne.Do(fn)
		return
	}
	fn()
}

// Unpin releases the pinned window; used by the hotkey bridge.
func (a *App) Unpin() {
	res, err := a.deps.Controller.Unpin(context.Background())
	a.report(res, err)
}

func (a *App) refresh() {
	wins, err := a.deps.Directory.ListWindows()
	if err != nil {
		a.log.Warn("list windows failed", "err", err)
		a.SetStatus("could not list windows")
		return
	}
	wins = platform.ExcludePIDs(wins, []int{os.Getpid()})
	titles := platform.Titles(wins)
	a.ui(func() {
		a.picker.SetOptions(titles)
		if len(titles) > 0 {
			a.picker.SetText(titles[0])
		}
	})
	a.SetStatus(fmt.Sprintf("%d windows detected", len(titles)))
}

func (a *App) pin() {
	res, err := a.deps.Controller.Pin(context.Background(), a.picker.Text)
	a.report(res, err)
	if err == nil {
		go a.watchSession()
	}
}

// watchSession reports a pin that was dropped because the OS refused to
// keep the window on top. A window that simply closed is not reported.
func (a *App) watchSession() {
	stop := a.deps.Controller.Watch(context.Background())
	if stop.Reason != pin.StopFailed {
		return
	}
	a.SetStatus(fmt.Sprintf("'%s' could not be kept on top (window closed or permission denied)", stop.Window))
}

func (a *App) unpin() {
	a.Unpin()
}

func (a *App) report(res pin.Result, err error) {
	if err != nil && !errors.Is(err, pin.ErrNotFound) && !errors.Is(err, pin.ErrNoSelection) {
		a.log.Warn("pin request failed", "action", res.Action, "err", err)
	}
	a.SetStatus(res.Message)
}

func (a *App) onClose() {
	a.window.Hide()
	_ = a.deps.Controller.Close()
	if a.deps.Notifier != nil && a.deps.Config.Update.HomepageURL != "" {
		if a.deps.Notifier.Confirm("Exit", "Would you like to check the developer's latest news and send feedback?") {
			if err := a.deps.Notifier.OpenURL(a.deps.Config.Update.HomepageURL); err != nil {
				a.log.Warn("open homepage failed", "err", err)
			}
		}
	}
	a.fyneApp.Quit()
}

// watchOwnWindow raises the window briefly on show, then keeps restoring it
// whenever it is minimized.
func (a *App) watchOwnWindow(ctx context.Context) {
	interval := a.deps.Config.UI.RestoreInterval
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var self model.Handle
	raised := false
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if self == 0 || !a.deps.Directory.IsWindow(self) {
			self = a.findSelf()
			if self == 0 {
				continue
			}
		}
		if !raised {
			raised = true
			a.raiseBriefly(self, interval)
		}
		if minimized, err := a.deps.Directory.IsMinimized(self); err == nil && minimized {
			if err := a.deps.Directory.Restore(self); err != nil {
				a.log.Debug("restore own window failed", "err", err)
			}
		}
	}
}

func (a *App) findSelf() model.Handle {
	wins, err := a.deps.Directory.FindByTitle(a.title)
	if err != nil {
		return 0
	}
	pid := os.Getpid()
	for _, w := range wins {
		if w.PID == pid {
			return w.Handle
		}
	}
	return 0
}

func (a *App) raiseBriefly(h model.Handle, d time.Duration) {
	if err := a.deps.Directory.SetTopmost(h, true); err != nil {
		return
	}
	time.AfterFunc(d, func() {
		_ = a.deps.Directory.SetTopmost(h, false)
	})
}
