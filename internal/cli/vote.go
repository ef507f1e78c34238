package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	mess "github.com/sudharshan-del/Hostel-Management"
)

func NewVoteCmd() *cobra.Command {
	var serverURL string

	cmd := &cobra.Command{
		Use:   "vote <good|average|poor>",
		Short: "Cast one vote",
		Long:  `Cast one vote, either directly into the configured store or through a running server with --server.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			v, err := mess.ParseVote(args[0])
			if err != nil {
				return err
			}

			if serverURL != "" {
				if err := mess.NewClient(serverURL).SubmitVote(ctx, v); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "recorded %s vote\n", v)
				return nil
			}

			return withApp(func(a *app) error {
				a.svc = mess.New(mess.WithStore(a.store), mess.WithLogger(a.logger))
				if err := a.svc.Start(ctx); err != nil {
					return err
				}
				if err := a.svc.Vote(ctx, v); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "recorded %s vote\n", v)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "", "Base URL of a running server, e.g. http://localhost:8000")
	return cmd
}
