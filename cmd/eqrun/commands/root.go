// Package commands implements the CLI commands for eqrun.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/eqrun/internal/app"
	"go.trai.ch/eqrun/internal/build"
	"go.trai.ch/eqrun/internal/core/domain"
)

// EnvPrefix prefixes the environment variables overriding run flags.
const EnvPrefix = "ECLIPSERUN"

// CLI represents the command line interface for eqrun.
type CLI struct {
	app     Application
	console Console
	rootCmd *cobra.Command

	projectFile string
	json        bool
	verbose     bool
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, opts app.RunOptions) error
	ListDependencies(ctx context.Context, opts app.ListOptions) error
}

// Console is the part of the logger the global flags configure.
type Console interface {
	SetJSON(enable bool)
	SetVerbose(enable bool)
}

// New creates a new CLI instance with the given app. console may be nil.
func New(a Application, console Console) *CLI {
	rootCmd := &cobra.Command{
		Use:           "eqrun",
		Short:         "Provision and launch Equinox runtimes from p2 repositories",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		console: console,
		rootCmd: rootCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.projectFile, "file", "f", domain.ProjectFileName, "Project file to read")
	flags.BoolVar(&c.json, "json", false, "Log as JSON")
	flags.BoolVar(&c.verbose, "verbose", false, "Log debug output")

	rootCmd.PersistentPreRun = func(*cobra.Command, []string) {
		if c.console != nil {
			c.console.SetJSON(c.json)
			c.console.SetVerbose(c.verbose)
		}
	}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newListDependenciesCmd())
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
