package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/brisinga/pkg/codec"
)

// growCmd represents the grow command
var growCmd = &cobra.Command{
	Use:   "grow <vector-id>",
	Short: "Grow a vector's buffer",
	Long: `Reprovision a vector's buffer with room for the requested number of
records. Existing elements are carried over unchanged.

Example:
  brisinga grow 2QKyGjzq4N9XgA4bX2hZ3gGvq1x --capacity 2048`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseVectorID(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		capacity, _ := cmd.Flags().GetInt("capacity")
		if capacity <= 0 {
			fmt.Printf("Error: --capacity must be positive\n")
			return
		}

		buffers, ok := storeFromContext(cmd)
		if !ok {
			fmt.Printf("Error: store not found in context\n")
			return
		}

		if err := buffers.Grow(id, 4+codec.U64Width*capacity); err != nil {
			fmt.Printf("Error growing vector: %v\n", err)
			return
		}

		fmt.Printf("Vector %s grown to capacity %d\n", id, capacity)
	},
}

func init() {
	rootCmd.AddCommand(growCmd)
	growCmd.Flags().IntP("capacity", "c", 0, "New capacity in records (required)")
	growCmd.MarkFlagRequired("capacity")
}
