package cmd

import (
	"context"

	"github.com/mj1618/alwaysontop/internal/gui"
	"github.com/mj1618/alwaysontop/internal/version"
	"github.com/spf13/cobra"
)

var guiCmd = &cobra.Command{
	Use:         "gui",
	Short:       "Open the window picker (default)",
	Long:        "Open the interactive window picker with pin and unpin buttons. This is what runs when no subcommand is given.",
	Annotations: interactive(),
	RunE:        runGUI,
}

func init() {
	rootCmd.AddCommand(guiCmd)
}

func runGUI(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	env, err := newEnv(ctx)
	if err != nil {
		return err
	}
	ctrl := env.controller()
	defer ctrl.Close()

	app := gui.New(ctx, gui.Deps{
		Controller: ctrl,
		Directory:  env.provider.Directory,
		Notifier:   env.provider.Notifier,
		Config:     appConfig,
		Version:    version.Version,
	})

	hotkeyCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	env.listenHotkeys(hotkeyCtx, app.Unpin)

	app.Run(ctx)
	return nil
}
