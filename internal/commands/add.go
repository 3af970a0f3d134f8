package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"screentime/internal/core"
)

var (
	addDate    string
	addRemarks string
)

var addCmd = &cobra.Command{
	Use:   "add <category> <hours>",
	Short: "Log usage hours for a category",
	Args:  cobra.ExactArgs(2),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addDate, "date", "", "Entry date (YYYY-MM-DD, default today)")
	addCmd.Flags().StringVar(&addRemarks, "remarks", "", "Optional remarks")
}

func runAdd(cmd *cobra.Command, args []string) error {
	date := core.Today()
	if addDate != "" {
		parsed, err := core.ParseDate(addDate)
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
		date = parsed
	}

	hours, err := core.ParseHours(args[1])
	if err != nil {
		return fmt.Errorf("invalid hours %q: %w", args[1], err)
	}

	entry := core.Entry{
		Date:     date,
		Category: args[0],
		Hours:    hours,
		Remarks:  addRemarks,
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	result, _, err := openBackend(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer closeBackend(result)

	id, err := result.Backend.Append(cmd.Context(), entry)
	if err != nil {
		return err
	}

	fmt.Printf("Logged #%d: %s — %sh on %s\n",
		id, entry.Category, core.FormatHours(entry.Hours), entry.Date)
	return nil
}
