package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an entry by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		return fmt.Errorf("invalid id %q", args[0])
	}

	result, _, err := openBackend(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer closeBackend(result)

	removed, err := result.Backend.Delete(cmd.Context(), id)
	if err != nil {
		return err
	}
	if removed {
		fmt.Printf("Deleted entry #%d\n", id)
	} else {
		fmt.Printf("Entry #%d not found\n", id)
	}
	return nil
}
