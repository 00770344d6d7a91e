package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:     "rm <vector-id>",
	Aliases: []string{"delete"},
	Short:   "Delete a vector",
	Long: `Delete a vector and its metadata from the store.

Example:
  brisinga rm 2QKyGjzq4N9XgA4bX2hZ3gGvq1x`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseVectorID(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		buffers, ok := storeFromContext(cmd)
		if !ok {
			fmt.Printf("Error: store not found in context\n")
			return
		}

		if err := buffers.Delete(id); err != nil {
			fmt.Printf("Error deleting vector: %v\n", err)
			return
		}

		fmt.Printf("Deleted vector %s\n", id)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
