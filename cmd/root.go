package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mj1618/alwaysontop/internal/config"
	"github.com/mj1618/alwaysontop/internal/output"
	"github.com/mj1618/alwaysontop/internal/update"
	"github.com/mj1618/alwaysontop/internal/version"
	"github.com/spf13/cobra"
	"pkt.systems/pslog"
)

// Command annotations checked by the root pre-run hook.
const (
	annotationElevate = "alwaysontop/elevate"
	annotationGate    = "alwaysontop/gate"
)

// Values of annotationElevate.
const (
	// elevateRelaunch restarts the process elevated in a new window.
	elevateRelaunch = "relaunch"
	// elevateRequire fails instead: a relaunched copy would lose the
	// caller's console and stdio.
	elevateRequire = "require"
)

// errRelaunched ends the current process after an elevated copy was started.
var errRelaunched = errors.New("relaunched elevated")

var (
	settings  = config.New()
	appConfig = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "alwaysontop",
	Short: "Keep a chosen window above all other windows",
	Long: `Pick an open window and keep it on top of every other window until it is
released with a hotkey (Alt+Esc or Alt+0 by default) or the Unpin button.

Without a subcommand the interactive window picker is opened.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	Annotations:   interactive(),
	RunE:          runGUI,
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	err := rootCmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errRelaunched):
		return 0
	case errors.Is(err, update.ErrGateClosed):
		pslog.Ctx(ctx).Warn("startup stopped by version check")
		return 1
	default:
		pslog.Ctx(ctx).Error("command failed", "err", err)
		return 1
	}
}

// interactive marks the window picker: it relaunches elevated and must
// pass the version check.
func interactive() map[string]string {
	return map[string]string{annotationElevate: elevateRelaunch, annotationGate: "true"}
}

// attached marks commands bound to the caller's console or stdio. They
// change z-order, so they need elevation, but cannot relaunch.
func attached() map[string]string {
	return map[string]string{annotationElevate: elevateRequire, annotationGate: "true"}
}

func gated() map[string]string {
	return map[string]string{annotationGate: "true"}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Revision(), version.BuildDate)

	flags := rootCmd.PersistentFlags()
	flags.String("format", "yaml", "Output format: yaml, json")
	flags.Bool("pretty", false, "Pretty-print JSON output")
	flags.Duration("interval", appConfig.ReassertInterval, "How often the pinned window is put back on top")
	flags.StringSlice("hotkeys", appConfig.Hotkeys, "Global hotkeys that release the pinned window")
	flags.Bool("no-elevate", false, "Do not relaunch with administrator rights")
	flags.String("release-url", appConfig.Update.ReleaseURL, "Release endpoint used for the version check")

	bindFlag("reassert_interval", "interval")
	bindFlag("hotkeys", "hotkeys")
	bindFlag("no_elevate", "no-elevate")
	bindFlag("update.release_url", "release-url")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")

		cfg, err := config.Load(settings)
		if err != nil {
			return err
		}
		appConfig = cfg

		ctx := cmd.Context()
		if mode := cmd.Annotations[annotationElevate]; mode != "" && !cfg.NoElevate {
			env, err := newEnv(ctx)
			if err != nil {
				return err
			}
			if err := ensureElevated(env, cmd.Name(), mode, os.Args[1:]); err != nil {
				return err
			}
		}
		if cmd.Annotations[annotationGate] == "true" {
			env, err := newEnv(ctx)
			if err != nil {
				return err
			}
			checker := cfg.Checker(version.Version)
			if err := update.Gate(ctx, checker, env.provider.Notifier, cfg.Update.HomepageURL); err != nil {
				return err
			}
		}
		return nil
	}
}

// bindFlag binds a persistent flag to a configuration key.
func bindFlag(key, flag string) {
	if err := settings.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", flag, err))
	}
}

// ensureElevated checks for administrator rights. In relaunch mode it starts
// an elevated copy with args and returns errRelaunched; in require mode it
// returns an error asking for an elevated shell.
func ensureElevated(e *env, name, mode string, args []string) error {
	elevator := e.provider.Elevator
	if elevator == nil || elevator.IsElevated() {
		return nil
	}
	if mode != elevateRelaunch {
		return fmt.Errorf("%s needs administrator rights: run it from an elevated shell, or pass --no-elevate", name)
	}
	e.log.Info("relaunching with administrator rights")
	if err := elevator.Relaunch(args); err != nil {
		return fmt.Errorf("relaunch elevated: %w", err)
	}
	return errRelaunched
}
