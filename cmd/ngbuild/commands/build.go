package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the application into its output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := c.buildOptions(cmd)
			if err != nil {
				return err
			}
			return c.app.Build(cmd.Context(), opts)
		},
	}
	cmd.Flags().BoolP(flagNoCache, "n", false, "Bypass the persistent transform cache")
	return cmd
}
