package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/ngbuild/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the transform cache and the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.bind(cmd.Flags(), flagConfiguration); err != nil {
				return err
			}
			cacheOnly, _ := cmd.Flags().GetBool("cache")
			outputOnly, _ := cmd.Flags().GetBool("output")

			opts := app.CleanOptions{
				Configuration: c.config.GetString(flagConfiguration),
			}
			switch {
			case cacheOnly:
				opts.Cache = true
			case outputOnly:
				opts.Output = true
			default:
				opts.Cache = true
				opts.Output = true
			}

			return c.app.Clean(cmd.Context(), opts)
		},
	}

	cmd.Flags().Bool("cache", false, "Only remove the transform cache")
	cmd.Flags().Bool("output", false, "Only remove the output directory")
	cmd.MarkFlagsMutuallyExclusive("cache", "output")

	return cmd
}
