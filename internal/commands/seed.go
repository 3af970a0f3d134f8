package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"screentime/internal/memory"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert a small set of sample entries",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	result, _, err := openBackend(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer closeBackend(result)

	count := 0
	for _, entry := range memory.SampleEntries() {
		if _, err := result.Backend.Append(cmd.Context(), entry); err != nil {
			return fmt.Errorf("seed entry %s/%s: %w", entry.Date, entry.Category, err)
		}
		count++
	}

	fmt.Printf("Seeded %d sample entries\n", count)
	return nil
}
