// Package commands implements the CLI commands for clientfn.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"clientfn.dev/clientfn/internal/build"
	"clientfn.dev/clientfn/internal/core/domain"
)

// CLI represents the command line interface for clientfn.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	verbose func()
}

// Application represents the application logic interface.
type Application interface {
	Config() domain.Config
	Build(ctx context.Context, opts domain.BuildOptions) (domain.BuildResult, error)
	Watch(ctx context.Context, opts domain.BuildOptions) error
	Clean(outDir string) (int, error)
	Verify(outDir string) (domain.DriftReport, error)
}

// Option configures the CLI.
type Option func(*CLI)

// WithVerboseHook sets the callback invoked when --verbose is given,
// before any command runs. The entry point uses it to lower the log level.
func WithVerboseHook(fn func()) Option {
	return func(c *CLI) { c.verbose = fn }
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "clientfn",
		Short:         "Build server-registered client handlers into lazily loaded browser modules",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the configuration file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log per-module build decisions")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	for _, opt := range opts {
		opt(c)
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose && c.verbose != nil {
			c.verbose()
		}
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVerifyCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// buildOptions starts from the configured build options and applies the
// command's flag overrides. Only flags the user actually set override the
// file values.
func (c *CLI) buildOptions(cmd *cobra.Command) domain.BuildOptions {
	opts := c.app.Config().Build

	flags := cmd.Flags()
	if flags.Changed("src") {
		opts.SrcDir, _ = flags.GetString("src")
	}
	if flags.Changed("out") {
		opts.OutDir, _ = flags.GetString("out")
	}
	if flags.Changed("minify") {
		opts.Minify, _ = flags.GetBool("minify")
	}
	if flags.Changed("cleanup") {
		opts.Cleanup, _ = flags.GetBool("cleanup")
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		opts.Verbose = true
	}
	return opts
}

// addBuildFlags declares the flags shared by build and watch, defaulting
// to the configured values.
func (c *CLI) addBuildFlags(cmd *cobra.Command) {
	defaults := c.app.Config().Build
	cmd.Flags().String("src", defaults.SrcDir, "Client source directory")
	cmd.Flags().String("out", defaults.OutDir, "Output directory for emitted modules")
	cmd.Flags().Bool("minify", defaults.Minify, "Minify emitted modules")
	cmd.Flags().Bool("cleanup", defaults.Cleanup, "Prune output files no build group claims")
}
