package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all vectors",
	Long: `List every vector in the store with its codec, record width and
buffer capacity in bytes.`,
	Run: func(cmd *cobra.Command, args []string) {
		buffers, ok := storeFromContext(cmd)
		if !ok {
			fmt.Printf("Error: store not found in context\n")
			return
		}

		infos, err := buffers.List()
		if err != nil {
			fmt.Printf("Error listing vectors: %v\n", err)
			return
		}
		if len(infos) == 0 {
			fmt.Println("No vectors")
			return
		}

		for _, info := range infos {
			fmt.Printf("%s  codec=%s width=%d bytes=%d created=%s\n",
				info.ID, info.Meta.Codec, info.Meta.Width, info.Capacity,
				info.Meta.CreatedAt.Format("2006-01-02 15:04:05"))
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
