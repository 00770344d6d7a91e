package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ssargent/brisinga/pkg/fee"
)

// feeCmd represents the fee command
var feeCmd = &cobra.Command{
	Use:   "fee",
	Short: "Work with fee ratios",
	Long: `Work with fee ratios: apply a fee to an amount or compose two
fees into one.`,
}

// feeApplyCmd represents the fee apply command
var feeApplyCmd = &cobra.Command{
	Use:   "apply <numerator> <denominator> <amount>",
	Short: "Apply a fee ratio to an amount",
	Long: `Apply a fee ratio to an amount, truncating toward zero.

Example:
  brisinga fee apply 3 100 2500`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		numbers, err := parseUints(args)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		f, err := fee.New(numbers[0], numbers[1])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		amount := numbers[2]
		charged := f.Apply(amount)
		fmt.Printf("Fee:       %s\n", f)
		fmt.Printf("Amount:    %d\n", amount)
		fmt.Printf("Charged:   %d\n", charged)
		fmt.Printf("Remainder: %d\n", amount-charged)
	},
}

// feeComposeCmd represents the fee compose command
var feeComposeCmd = &cobra.Command{
	Use:   "compose <num1> <den1> <num2> <den2>",
	Short: "Compose two fee ratios",
	Long: `Multiply two fee ratios into one. When the denominators would grow
past the precision cap, the result is rescaled with truncation.

Example:
  brisinga fee compose 1 2 2 3`,
	Args: cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		numbers, err := parseUints(args)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		first, err := fee.New(numbers[0], numbers[1])
		if err != nil {
			fmt.Printf("Error in first fee: %v\n", err)
			return
		}
		second, err := fee.New(numbers[2], numbers[3])
		if err != nil {
			fmt.Printf("Error in second fee: %v\n", err)
			return
		}

		fmt.Printf("%s\n", first.Mul(second))
	},
}

func parseUints(args []string) ([]uint64, error) {
	numbers := make([]uint64, 0, len(args))
	for _, raw := range args {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not an unsigned integer", raw)
		}
		numbers = append(numbers, n)
	}
	return numbers, nil
}

func init() {
	rootCmd.AddCommand(feeCmd)
	feeCmd.AddCommand(feeApplyCmd)
	feeCmd.AddCommand(feeComposeCmd)
}
