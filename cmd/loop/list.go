package loop

import (
	"fmt"

	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print all configured loops",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		loadConfig()

		config := configuration.CurrentConfig
		var rows [][]string
		for _, loopConfig := range config.Loops {
			gains := loopConfig.Gains
			rows = append(rows, []string{
				loopConfig.ID,
				formatFloat(loopConfig.SetPoint),
				fmt.Sprintf("%g / %g / %g", gains.P, gains.I, gains.D),
				loopConfig.LimitRange().String(),
				fmt.Sprintf("%t", loopConfig.ShouldClampOutput()),
				loopConfig.EffectiveTickRate(config.ControllerTickRate).String(),
				inputType(loopConfig),
				outputType(loopConfig),
			})
		}

		printTable(
			[]string{"ID", "SetPoint", "P / I / D", "Limit", "Clamp", "Tick Rate", "Input", "Output"},
			rows,
		)
	},
}

func init() {
	Command.AddCommand(listCmd)
}
