package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"screentime/internal/core"
)

var (
	listFrom string
	listTo   string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged entries, newest first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listFrom, "from", "", "Only entries on or after this date (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listTo, "to", "", "Only entries on or before this date (YYYY-MM-DD)")
}

func runList(cmd *cobra.Command, args []string) error {
	var rng core.Range
	if listFrom != "" {
		d, err := core.ParseDate(listFrom)
		if err != nil {
			return fmt.Errorf("invalid --from: %w", err)
		}
		rng.From = d
	}
	if listTo != "" {
		d, err := core.ParseDate(listTo)
		if err != nil {
			return fmt.Errorf("invalid --to: %w", err)
		}
		rng.To = d
	}

	result, _, err := openBackend(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer closeBackend(result)

	entries, err := result.Backend.ListEntries(cmd.Context(), rng)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No entries found.")
		return nil
	}

	fmt.Printf("%-4s %-12s %-20s %7s  %s\n", "id", "date", "category", "hours", "remarks")
	for _, e := range entries {
		fmt.Printf("%-4d %-12s %-20s %6sh  %s\n",
			e.ID, e.Date, e.Category, core.FormatHours(e.Hours), e.Remarks)
	}
	return nil
}
