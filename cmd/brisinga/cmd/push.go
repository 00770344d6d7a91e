package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ssargent/brisinga/pkg/bigvec"
	"github.com/ssargent/brisinga/pkg/codec"
	"github.com/ssargent/brisinga/pkg/storage"
)

// pushCmd represents the push command
var pushCmd = &cobra.Command{
	Use:   "push <vector-id> <value>",
	Short: "Append a value without sorting (deprecated)",
	Long: `Append a value at the end of a vector without placing it in sorted
order. An out-of-order push breaks binary search on the vector; prefer
insert.

Example:
  brisinga push 2QKyGjzq4N9XgA4bX2hZ3gGvq1x 42`,
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

		err = buffers.Update(id, func(buf []byte, meta storage.BufferMeta) error {
			if meta.Codec != u64CodecName {
				return fmt.Errorf("buffer holds %q records, this command operates on %q", meta.Codec, u64CodecName)
			}
			v, err := bigvec.New(buf, codec.U64Codec{})
			if err != nil {
				return err
			}
			return v.Push(value)
		})
		if err != nil {
			fmt.Printf("Error pushing value: %v\n", err)
			return
		}

		fmt.Printf("Pushed %d onto %s\n", value, id)
	},
}

func init() {
	rootCmd.AddCommand(pushCmd)
}
