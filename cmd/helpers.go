package cmd

import (
	"context"

	"github.com/mj1618/alwaysontop/internal/hotkey"
	"github.com/mj1618/alwaysontop/internal/pin"
	"github.com/mj1618/alwaysontop/internal/platform"
	"pkt.systems/pslog"
)

// env bundles what a command needs to act on windows.
type env struct {
	provider *platform.Provider
	log      pslog.Logger
}

func newEnv(ctx context.Context) (*env, error) {
	provider, err := platform.NewProvider()
	if err != nil {
		return nil, err
	}
	return &env{provider: provider, log: pslog.Ctx(ctx)}, nil
}

func (e *env) controller() *pin.Controller {
	return pin.NewController(e.provider.Directory, appConfig.PinOptions(), e.log)
}

// listenHotkeys registers the release hotkeys in the background until ctx
// is done. A listener that fails to start is logged and otherwise ignored.
func (e *env) listenHotkeys(ctx context.Context, release func()) {
	if e.provider.Hotkeys == nil {
		e.log.Warn("global hotkeys not available on this platform")
		return
	}
	bindings, err := appConfig.Bindings()
	if err != nil {
		e.log.Warn("invalid hotkeys", "err", err)
		return
	}
	go func() {
		err := e.provider.Hotkeys.Listen(ctx, bindings, func(b hotkey.Binding) {
			e.log.Debug("hotkey pressed", "hotkey", b.String())
			release()
		})
		if err != nil && ctx.Err() == nil {
			e.log.Warn("hotkeys unavailable", "err", err)
		}
	}()
}
