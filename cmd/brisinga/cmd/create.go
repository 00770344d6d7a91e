package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new vector",
	Long: `Create a new vector backed by a zeroed buffer with room for the
requested number of records.

Example:
  brisinga create --capacity 1024`,
	Run: func(cmd *cobra.Command, args []string) {
		capacity, _ := cmd.Flags().GetInt("capacity")

		buffers, ok := storeFromContext(cmd)
		if !ok {
			fmt.Printf("Error: store not found in context\n")
			return
		}

		id, err := createVector(buffers, capacity)
		if err != nil {
			fmt.Printf("Error creating vector: %v\n", err)
			return
		}

		fmt.Printf("Created vector %s with capacity %d\n", id, capacity)
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().IntP("capacity", "c", 1024, "Capacity in records")
}
