// Package main is the entry point for the clientfn CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"

	"clientfn.dev/clientfn/cmd/clientfn/commands"
	"clientfn.dev/clientfn/internal/adapters/config"
	"clientfn.dev/clientfn/internal/adapters/logger"
	"clientfn.dev/clientfn/internal/app"
	_ "clientfn.dev/clientfn/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, func(ctx context.Context) (*app.Components, error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, err
	}))
}

func run(ctx context.Context, args []string, stderr io.Writer, provider ComponentProvider) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Components are constructed before cobra parses anything, so the
	// config flag has to be honored by hand and passed down as the
	// environment override the config node reads.
	if path, ok := configFlag(args); ok {
		if err := os.Setenv(config.FileEnv, path); err != nil {
			_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
			return 1
		}
	}

	components, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}

	cli := commands.New(components.App, commands.WithVerboseHook(func() {
		if leveled, ok := components.Logger.(*logger.Logger); ok {
			leveled.SetLevel(slog.LevelDebug)
		}
	}))
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		// zerr prints a pretty error report with stack trace and metadata
		// when using %+v.
		_, _ = fmt.Fprintf(stderr, "%+v\n", err)
		return 1
	}
	return 0
}

// configFlag extracts the value of --config/-c from raw arguments.
func configFlag(args []string) (string, bool) {
	for i, arg := range args {
		switch {
		case arg == "--config" || arg == "-c":
			if i+1 < len(args) {
				return args[i+1], true
			}
		case len(arg) > len("--config=") && arg[:len("--config=")] == "--config=":
			return arg[len("--config="):], true
		}
	}
	return "", false
}
