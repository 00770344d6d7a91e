package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// findCmd represents the find command
var findCmd = &cobra.Command{
	Use:   "find <vector-id> <value>",
	Short: "Find a value in a sorted vector",
	Long: `Binary search a vector for a value. Prints the index when present,
or the position the value would be inserted at when absent.

Example:
  brisinga find 2QKyGjzq4N9XgA4bX2hZ3gGvq1x 42`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseVectorID(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		value, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			fmt.Printf("Error: %q is not an unsigned integer\n", args[1])
			return
		}

		buffers, ok := storeFromContext(cmd)
		if !ok {
			fmt.Printf("Error: store not found in context\n")
			return
		}

		buf, meta, err := buffers.Read(id)
		if err != nil {
			fmt.Printf("Error reading vector: %v\n", err)
			return
		}
		v, err := openU64(buf, meta)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		index, found, err := v.BinarySearch(value)
		if err != nil {
			fmt.Printf("Error searching: %v\n", err)
			return
		}
		if found {
			fmt.Printf("Found %d at index %d\n", value, index)
		} else {
			fmt.Printf("%d not present (would insert at index %d)\n", value, index)
		}
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
}
