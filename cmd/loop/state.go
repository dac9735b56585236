package loop

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/persistence"
	"github.com/spf13/cobra"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print the persisted controller state of a loop",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := getLoopConfig(loopId)
		if err != nil {
			return err
		}

		p := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
		saved, err := p.LoadControllerState(config.ID)
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("no persisted state for loop %s", config.ID)
		} else if err != nil {
			return err
		}

		state := saved.State
		printTable(
			[]string{"", ""},
			[][]string{
				{"Saved At", saved.SavedAt.Format(time.RFC3339)},
				{"Target", formatFloat(state.Target)},
				{"Input", formatFloat(state.Input)},
				{"Error", formatFloat(state.Error)},
				{"Proportional", formatFloat(state.P)},
				{"Integral", formatFloat(state.I)},
				{"Derivative", formatFloat(state.D)},
				{"Output", formatFloat(state.Output())},
			},
		)
		return nil
	},
}

func init() {
	Command.AddCommand(stateCmd)
}
