package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <vector-id>",
	Short: "Print a vector's elements",
	Long: `Print a vector's elements in sorted order, one per line.

Example:
  brisinga get 2QKyGjzq4N9XgA4bX2hZ3gGvq1x --skip 10 --limit 20`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseVectorID(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		skip, _ := cmd.Flags().GetInt("skip")
		limit, _ := cmd.Flags().GetInt("limit")

		buffers, ok := storeFromContext(cmd)
		if !ok {
			fmt.Printf("Error: store not found in context\n")
			return
		}

		elements, err := listElements(buffers, id, skip, limit)
		if err != nil {
			fmt.Printf("Error reading vector: %v\n", err)
			return
		}

		for _, value := range elements {
			fmt.Printf("%d\n", value)
		}
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().Int("skip", 0, "Records to skip")
	getCmd.Flags().Int("limit", -1, "Maximum records printed (-1 for all)")
}
