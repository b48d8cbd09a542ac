package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove emitted modules, the resolution cache and the build record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			outDir := c.app.Config().Build.OutDir
			if cmd.Flags().Changed("out") {
				outDir, _ = cmd.Flags().GetString("out")
			}

			removed, err := c.app.Clean(outDir)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %d file(s)\n", removed)
			return nil
		},
	}
	cmd.Flags().String("out", "", "Output directory to clean (defaults to the configured one)")
	return cmd
}
