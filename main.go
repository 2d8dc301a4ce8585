package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mj1618/alwaysontop/cmd"
	"pkt.systems/pslog"

	// Register the Win32 platform backend.
	_ "github.com/mj1618/alwaysontop/internal/platform/win32"
)

func main() {
	os.Exit(submain())
}

func submain() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)

	return cmd.Execute(ctx)
}
