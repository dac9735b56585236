package interval

import (
	"fmt"
	"strconv"

	"github.com/markusressel/pid2go/clamping"
	"github.com/spf13/cobra"
)

var rangeNotation string

var Command = &cobra.Command{
	Use:   "range",
	Short: "Evaluate values against a range in interval notation",
	Long: `Ranges are written as "[lower, upper]" (closed) or "[lower, upper)" (half-open).
The upper bound is treated as inclusive in both cases.

Values starting with "-" are read as flags, put them after "--".`,
	Example:          `  pid2go range clamp -r "[-10, 10]" -- -25 5 12`,
	TraverseChildren: true,
}

var clampCmd = &cobra.Command{
	Use:   "clamp value...",
	Short: "Print each value clamped to the range",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return forEachValue(args, func(r clamping.Range[float64], value float64) string {
			return strconv.FormatFloat(r.Clamp(value), 'g', -1, 64)
		})
	},
}

var containsCmd = &cobra.Command{
	Use:   "contains value...",
	Short: "Print whether each value lies within the range",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return forEachValue(args, func(r clamping.Range[float64], value float64) string {
			return strconv.FormatBool(r.Contains(value))
		})
	},
}

func init() {
	Command.PersistentFlags().StringVarP(
		&rangeNotation,
		"range", "r",
		"",
		"Range in interval notation, e.g. \"[0, 255]\"",
	)
	_ = Command.MarkPersistentFlagRequired("range")
	Command.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w (pass negative values after \"--\")", err)
	})

	Command.AddCommand(clampCmd)
	Command.AddCommand(containsCmd)
}

func forEachValue(args []string, evaluate func(r clamping.Range[float64], value float64) string) error {
	r, err := clamping.Parse[float64](rangeNotation)
	if err != nil {
		return err
	}

	for _, arg := range args {
		value, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("not a number: %s", arg)
		}
		fmt.Println(evaluate(r, value))
	}
	return nil
}
