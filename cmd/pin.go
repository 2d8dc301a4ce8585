package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/mj1618/alwaysontop/internal/output"
	"github.com/mj1618/alwaysontop/internal/pin"
	"github.com/spf13/cobra"
)

var pinCmd = &cobra.Command{
	Use:   "pin <title>",
	Short: "Keep a window on top until a release hotkey or Ctrl-C",
	Long: `Pin the first window whose title matches exactly, or failing that contains
the given text (case-insensitive). The command holds until a release hotkey is
pressed, the process is interrupted, or the window closes.

Examples:
  alwaysontop pin Notepad
  alwaysontop pin "Untitled - Paint" --interval 250ms`,
	Args:        cobra.MinimumNArgs(1),
	Annotations: attached(),
	RunE:        runPin,
}

func init() {
	rootCmd.AddCommand(pinCmd)
}

func runPin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	env, err := newEnv(ctx)
	if err != nil {
		return err
	}
	ctrl := env.controller()
	defer ctrl.Close()

	title := strings.Join(args, " ")
	res, err := ctrl.Pin(ctx, title)
	if err != nil {
		_ = output.Print(res)
		return err
	}
	if err := output.Print(res); err != nil {
		return err
	}

	released := make(chan struct{}, 1)
	holdCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	env.listenHotkeys(holdCtx, func() {
		select {
		case released <- struct{}{}:
		default:
		}
	})
	stopped := make(chan pin.Stop, 1)
	go func() { stopped <- ctrl.Watch(holdCtx) }()

	var failure error
	select {
	case <-ctx.Done():
		env.log.Debug("interrupted")
	case <-released:
	case stop := <-stopped:
		switch stop.Reason {
		case pin.StopFailed:
			failure = fmt.Errorf("keep %q on top: %w", stop.Window, stop.Err)
		case pin.StopWindowGone:
			env.log.Info("pinned window is gone", "window", stop.Window)
		}
	}

	res, err = ctrl.Unpin(context.Background())
	if err != nil {
		return err
	}
	if err := output.Print(res); err != nil {
		return err
	}
	return failure
}
