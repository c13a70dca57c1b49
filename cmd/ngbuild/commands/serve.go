package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/ngbuild/internal/app"
)

func (c *CLI) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Build, serve and rebuild the application on changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := c.buildOptions(cmd)
			if err != nil {
				return err
			}
			if err := c.bind(cmd.Flags(), flagHost, flagPort, flagOpen); err != nil {
				return err
			}
			return c.app.Serve(cmd.Context(), app.ServeOptions{
				BuildOptions: opts,
				Host:         c.config.GetString(flagHost),
				Port:         c.config.GetInt(flagPort),
				Open:         c.config.GetBool(flagOpen),
			})
		},
	}
	cmd.Flags().BoolP(flagNoCache, "n", false, "Bypass the persistent transform cache")
	cmd.Flags().String(flagHost, "", "Host to listen on (default from ngbuild.yaml)")
	cmd.Flags().IntP(flagPort, "p", 0, "Port to listen on (default from ngbuild.yaml)")
	cmd.Flags().BoolP(flagOpen, "o", false, "Open the browser once the server is up")
	return cmd
}
