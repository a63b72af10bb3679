package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.trai.ch/eqrun/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Provision an Equinox installation and launch it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := app.RunOptions{
				ProjectFile:    c.projectFile,
				Skip:           v.GetBool("skip"),
				Work:           v.GetString("work"),
				ToolchainsFile: v.GetString("toolchains"),
			}
			if v.IsSet("timeout") {
				timeout := v.GetInt("timeout")
				opts.Timeout = &timeout
			}
			return c.app.Run(cmd.Context(), opts)
		},
	}

	cmd.Flags().Bool("skip", false, "Skip the execution")
	cmd.Flags().Int("timeout", 0, "Kill the platform after this many seconds (0 waits forever)")
	cmd.Flags().String("work", "", "Work directory of the installation")
	cmd.Flags().String("toolchains", "", "Toolchain registry to pick the JDK from")

	for _, name := range []string{"skip", "timeout", "work", "toolchains"} {
		_ = v.BindPFlag(name, cmd.Flags().Lookup(name))
	}
	return cmd
}
