// Package cli implements the mess command line.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"github.com/sudharshan-del/Hostel-Management/internal/config"
)

var (
	configPath string
	envFile    string
)

// NewRoot builds the mess command tree.
func NewRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "mess <command> [flags]",
		Short:             "Hostel mess feedback service",
		Long:              `Collect meal ratings, serve the weekly menu and report vote counts.`,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML configuration file")
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to a .env file; missing files are ignored")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewVoteCmd())
	cmd.AddCommand(NewBackupCmd())

	return cmd
}

// Execute runs the command tree with ctx and returns the process exit code.
func Execute(ctx context.Context, args []string) int {
	root := NewRoot()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, err
	}
	return config.Load(configPath)
}

// withApp loads configuration, builds the app and releases it after fn.
func withApp(fn func(a *app) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	return runApp(a, fn)
}

// runApp calls fn and closes a. A failed close, such as an fsync error on the
// counter file, is joined into the result.
func runApp(a *app, fn func(a *app) error) (err error) {
	defer func() {
		err = errors.Join(err, a.close())
	}()
	return fn(a)
}
