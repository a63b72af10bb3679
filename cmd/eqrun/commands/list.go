package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/eqrun/internal/app"
)

func (c *CLI) newListDependenciesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list-dependencies",
		Short: "Write the resolved bundle closure to dependencies-list.txt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			skip, _ := cmd.Flags().GetBool("skip")
			return c.app.ListDependencies(cmd.Context(), app.ListOptions{
				ProjectFile: c.projectFile,
				Skip:        skip,
			})
		},
	}
	cmd.Flags().Bool("skip", false, "Skip writing the list")
	return cmd
}
