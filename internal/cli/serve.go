package cli

import (
	"github.com/spf13/cobra"
	mess "github.com/sudharshan-del/Hostel-Management"
	"github.com/sudharshan-del/Hostel-Management/server"
	"go.uber.org/zap"
)

func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				ctx := cmd.Context()
				hub := server.NewHub(a.logger)

				svc, err := a.service(ctx, mess.WithOnVote(hub.Publish))
				if err != nil {
					return err
				}

				a.logger.Info("starting",
					zap.String("counter_backend", a.cfg.Counter.Backend),
					zap.String("catalog_backend", a.cfg.Catalog.Backend),
					zap.Bool("admin_auth", a.cfg.AdminToken != ""),
				)

				srv := server.New(svc, server.Config{
					Addr:         a.cfg.Addr,
					AdminToken:   a.cfg.AdminToken,
					MaxConns:     a.cfg.MaxConns,
					ReadTimeout:  a.cfg.ReadTimeout,
					WriteTimeout: a.cfg.WriteTimeout,
				}, server.WithLogger(a.logger), server.WithHub(hub))

				return srv.Run(ctx)
			})
		},
	}
}
