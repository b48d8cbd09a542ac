package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"clientfn.dev/clientfn/internal/core/domain"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build handler modules, client files and the browser bootstrap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := c.app.Build(cmd.Context(), c.buildOptions(cmd))
			if err != nil {
				return err
			}
			printSummary(cmd, result)
			return nil
		},
	}
	c.addBuildFlags(cmd)
	return cmd
}

func printSummary(cmd *cobra.Command, result domain.BuildResult) {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%d modules: %d emitted, %d skipped, %d pruned",
		len(result.Files), result.Emitted, result.Skipped, result.Pruned)
	if result.Degraded > 0 {
		_, _ = fmt.Fprintf(out, ", %d untranspiled", result.Degraded)
	}
	_, _ = fmt.Fprintln(out)

	t := result.Timings
	_, _ = fmt.Fprintf(out, "scan %s, build %s, cleanup %s, total %s\n",
		round(t.Scan), round(t.Build), round(t.Cleanup), round(t.Total))
}

func round(d time.Duration) time.Duration {
	return d.Round(10 * time.Microsecond)
}
