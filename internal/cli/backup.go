package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/sudharshan-del/Hostel-Management/internal/backup"
	"go.uber.org/zap"
)

func NewBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Upload a snapshot of the vote counters to S3",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				ctx := cmd.Context()
				bc := a.cfg.Backup
				if bc.Bucket == "" {
					return backup.ErrNotConfigured
				}

				client, err := backup.NewS3Client(ctx, bc)
				if err != nil {
					return err
				}
				b, err := backup.New(client, bc.Bucket, bc.Prefix)
				if err != nil {
					return err
				}

				key, err := b.Snapshot(ctx, a.store)
				if err != nil {
					return err
				}
				a.logger.Info("backup uploaded", zap.String("bucket", bc.Bucket), zap.String("key", key))
				fmt.Fprintf(cmd.OutOrStdout(), "s3://%s/%s\n", bc.Bucket, key)
				return nil
			})
		},
	}
}
