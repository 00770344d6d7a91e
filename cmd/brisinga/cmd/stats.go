package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats <vector-id>",
	Short: "Show a vector's length and capacity",
	Args:  cobra.ExactArgs(1),
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

		length, capacity, meta, err := vectorStats(buffers, id)
		if err != nil {
			fmt.Printf("Error reading vector: %v\n", err)
			return
		}

		fmt.Printf("Vector:   %s\n", id)
		fmt.Printf("Codec:    %s\n", meta.Codec)
		fmt.Printf("Width:    %d bytes\n", meta.Width)
		fmt.Printf("Length:   %d\n", length)
		fmt.Printf("Capacity: %d records\n", capacity)
		fmt.Printf("Created:  %s\n", meta.CreatedAt.Format("2006-01-02 15:04:05"))
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
