package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"clientfn.dev/clientfn/internal/core/domain"
)

func (c *CLI) newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check emitted modules against the digests recorded at build time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			outDir := c.app.Config().Build.OutDir
			if cmd.Flags().Changed("out") {
				outDir, _ = cmd.Flags().GetString("out")
			}

			report, err := c.app.Verify(outDir)
			if err != nil && !errors.Is(err, domain.ErrOutputDrift) {
				return err
			}

			out := cmd.OutOrStdout()
			if report.Clean() {
				_, _ = fmt.Fprintln(out, "output matches the last recorded build")
				return nil
			}
			printDrift(out, "drifted", report.Drifted)
			printDrift(out, "missing", report.Missing)
			printDrift(out, "foreign", report.Foreign)
			return err
		},
	}
	cmd.Flags().String("out", "", "Output directory to verify (defaults to the configured one)")
	return cmd
}

func printDrift(out io.Writer, kind string, names []string) {
	for _, name := range names {
		_, _ = fmt.Fprintf(out, "%s: %s\n", kind, name)
	}
}
