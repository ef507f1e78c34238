package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	mess "github.com/sudharshan-del/Hostel-Management"
)

var (
	statsTitleStyle = lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	statsLabelStyle = lipgloss.NewStyle().Width(10)
	statsCountStyle = lipgloss.NewStyle().Bold(true).Width(8).Align(lipgloss.Right)
	statsShareStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(7).Align(lipgloss.Right)
)

func NewStatsCmd() *cobra.Command {
	var serverURL string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show vote counts",
		Long:  `Show vote counts, read from the configured store or from a running server with --server.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if serverURL != "" {
				stats, err := mess.NewClient(serverURL).Stats(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderStats(stats))
				return nil
			}

			return withApp(func(a *app) error {
				counts, err := a.store.ReadAll(ctx)
				if err != nil {
					return err
				}
				stats, err := mess.StatsFromCounts(counts)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderStats(stats))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "", "Base URL of a running server, e.g. http://localhost:8000")
	return cmd
}

func renderStats(s mess.Stats) string {
	total := s.Total()
	row := func(label string, n uint32) string {
		share := "0%"
		if total > 0 {
			share = strconv.FormatUint(uint64(n)*100/total, 10) + "%"
		}
		return lipgloss.JoinHorizontal(lipgloss.Top,
			statsLabelStyle.Render(label),
			statsCountStyle.Render(strconv.FormatUint(uint64(n), 10)),
			statsShareStyle.Render(share),
		)
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		statsTitleStyle.Render(fmt.Sprintf("Mess feedback (%d votes)", total)),
		row("Good", s.Good),
		row("Average", s.Average),
		row("Poor", s.Poor),
	)
	return statsBoxStyle.Render(body)
}
