package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// insertCmd represents the insert command
var insertCmd = &cobra.Command{
	Use:   "insert <vector-id> <value>...",
	Short: "Insert values into a sorted vector",
	Long: `Insert one or more values into a vector, each placed at its sorted
position. Duplicate values are rejected.

Example:
  brisinga insert 2QKyGjzq4N9XgA4bX2hZ3gGvq1x 42 7 99`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseVectorID(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		values := make([]uint64, 0, len(args)-1)
		for _, raw := range args[1:] {
			value, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				fmt.Printf("Error: %q is not an unsigned integer\n", raw)
				return
			}
			values = append(values, value)
		}

		buffers, ok := storeFromContext(cmd)
		if !ok {
			fmt.Printf("Error: store not found in context\n")
			return
		}

		if err := insertValues(buffers, id, values); err != nil {
			fmt.Printf("Error inserting values: %v\n", err)
			return
		}

		fmt.Printf("Inserted %d value(s) into %s\n", len(values), id)
	},
}

func init() {
	rootCmd.AddCommand(insertCmd)
}
