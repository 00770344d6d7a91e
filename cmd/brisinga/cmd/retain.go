package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
)

// retainCmd represents the retain command
var retainCmd = &cobra.Command{
	Use:   "retain <vector-id>",
	Short: "Keep only elements inside a range",
	Long: `Compact a vector in place, keeping only the elements inside
[min, max] and preserving their order.

Example:
  brisinga retain 2QKyGjzq4N9XgA4bX2hZ3gGvq1x --min 10 --max 100`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseVectorID(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		min, _ := cmd.Flags().GetUint64("min")
		max, _ := cmd.Flags().GetUint64("max")
		if min > max {
			fmt.Printf("Error: --min must not exceed --max\n")
			return
		}

		buffers, ok := storeFromContext(cmd)
		if !ok {
			fmt.Printf("Error: store not found in context\n")
			return
		}

		survivors, err := retainRange(buffers, id, min, max)
		if err != nil {
			fmt.Printf("Error compacting vector: %v\n", err)
			return
		}

		fmt.Printf("Vector %s now holds %d element(s)\n", id, survivors)
	},
}

func init() {
	rootCmd.AddCommand(retainCmd)
	retainCmd.Flags().Uint64("min", 0, "Smallest value kept")
	retainCmd.Flags().Uint64("max", math.MaxUint64, "Largest value kept")
}
