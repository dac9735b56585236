package loop

import (
	"fmt"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/loops"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/spf13/cobra"
)

var (
	simulationSteps int
	simulationDt    time.Duration
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a loop with a simulated input offline and plot its course",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := getLoopConfig(loopId)
		if err != nil {
			return err
		}

		dt := simulationDt
		if dt <= 0 {
			dt = config.EffectiveTickRate(configuration.CurrentConfig.ControllerTickRate)
		}

		result, err := loops.Simulate(config, simulationSteps, dt)
		if err != nil {
			return err
		}

		final := result.Final
		printTable(
			[]string{"", ""},
			[][]string{
				{"Steps", fmt.Sprintf("%d x %v", len(result.Inputs), result.Dt)},
				{"SetPoint", formatFloat(final.SetPoint)},
				{"Input", formatFloat(final.State.Input)},
				{"Error", formatFloat(final.State.Error)},
				{"P / I / D", fmt.Sprintf("%s / %s / %s", formatFloat(final.State.P), formatFloat(final.State.I), formatFloat(final.State.D))},
				{"Output", formatFloat(final.Output)},
				{"Applied", formatFloat(final.Applied)},
				{"Saturations", fmt.Sprintf("%d", final.Saturations)},
			},
		)

		graph := asciigraph.PlotMany(
			[][]float64{result.SetPoints, result.Inputs},
			asciigraph.Height(15),
			asciigraph.Width(100),
			asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Green),
			asciigraph.Caption("process variable (green) vs. setpoint (blue)"),
		)
		ui.Printfln(graph)
		ui.Printfln("")

		graph = asciigraph.Plot(result.Outputs,
			asciigraph.Height(10),
			asciigraph.Width(100),
			asciigraph.Caption("applied output"),
		)
		ui.Printfln(graph)

		return nil
	},
}

func init() {
	simulateCmd.Flags().IntVarP(&simulationSteps, "steps", "n", 100, "Number of steps to simulate")
	simulateCmd.Flags().DurationVar(&simulationDt, "dt", 0, "Length of a single step (default: tick rate of the loop)")
	Command.AddCommand(simulateCmd)
}
