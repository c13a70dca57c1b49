// Package commands implements the CLI commands for ngbuild.
package commands

import (
	"context"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.trai.ch/ngbuild/internal/app"
	"go.trai.ch/ngbuild/internal/build"
)

// EnvPrefix prefixes the environment variables that override flags,
// e.g. NGBUILD_PORT or NGBUILD_NO_CACHE.
const EnvPrefix = "NGBUILD"

// Flag names, which double as configuration keys.
const (
	flagConfiguration = "configuration"
	flagJSON          = "json"
	flagDebug         = "debug"
	flagNoCache       = "no-cache"
	flagHost          = "host"
	flagPort          = "port"
	flagOpen          = "open"
)

// CLI represents the command line interface for ngbuild.
type CLI struct {
	app     Application
	config  *viper.Viper
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, opts app.BuildOptions) error
	Serve(ctx context.Context, opts app.ServeOptions) error
	Clean(ctx context.Context, opts app.CleanOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "ngbuild",
		Short:         "Build and serve Angular applications with esbuild",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP(flagConfiguration, "c", "", "Named configuration to apply, e.g. production")
	rootCmd.PersistentFlags().Bool(flagJSON, false, "Log as JSON")
	rootCmd.PersistentFlags().Bool(flagDebug, false, "Write a debug log to .ngbuild/debug.log")

	config := viper.New()
	config.SetEnvPrefix(EnvPrefix)
	config.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	config.AutomaticEnv()

	c := &CLI{
		app:     a,
		config:  config,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newCleanCmd())
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

// bind wires the named flags of the running command to their configuration
// keys, so environment variables fill in flags that were not passed.
// Binding happens per invocation because several commands share key names.
func (c *CLI) bind(flags *pflag.FlagSet, names ...string) error {
	for _, name := range names {
		if err := c.config.BindPFlag(name, flags.Lookup(name)); err != nil {
			return err
		}
	}
	return nil
}

// buildOptions reads the options shared by build and serve.
func (c *CLI) buildOptions(cmd *cobra.Command) (app.BuildOptions, error) {
	if err := c.bind(cmd.Flags(), flagConfiguration, flagJSON, flagDebug, flagNoCache); err != nil {
		return app.BuildOptions{}, err
	}
	return app.BuildOptions{
		Configuration: c.config.GetString(flagConfiguration),
		NoCache:       c.config.GetBool(flagNoCache),
		JSON:          c.config.GetBool(flagJSON),
		Debug:         c.config.GetBool(flagDebug),
	}, nil
}
