package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the counter store if it does not exist",
		Long:  `Create the counter store with every count at zero. Existing counts are kept.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				if err := a.store.Initialize(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "counter store ready (%s)\n", a.cfg.Counter.Backend)
				return nil
			})
		},
	}
}
