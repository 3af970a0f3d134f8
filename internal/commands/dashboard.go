package commands

import (
	"github.com/spf13/cobra"

	"screentime/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive terminal dashboard",
	Args:  cobra.NoArgs,
	RunE:  runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	result, cfg, err := openBackend(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer closeBackend(result)

	return tui.Run(result.Backend, result.Backend, cfg.ThresholdHours)
}
