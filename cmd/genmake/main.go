package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/agilira/orpheus/pkg/orpheus"

	"github.com/vk/genmake/internal/app"
	"github.com/vk/genmake/internal/cli"
	"github.com/vk/genmake/internal/hcl"
)

// main is the entrypoint for the genmake application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW, errW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	loader := hcl.NewLoader()
	genmakeApp := app.NewApp(outW, errW, appConfig, loader)

	return genmakeApp.Run(context.Background())
}

// exitCode maps an error returned by run to a process exit status.
func exitCode(err error) int {
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	var orphErr *orpheus.Error
	if errors.As(err, &orphErr) {
		return orphErr.ExitCode()
	}
	return 1
}
