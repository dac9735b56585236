package loop

import (
	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/persistence"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the persisted controller state of a loop",
	Long:  `The loop starts from its configured seeds the next time the daemon is started.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := getLoopConfig(loopId)
		if err != nil {
			return err
		}

		p := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
		err = p.DeleteControllerState(config.ID)
		if err != nil {
			return err
		}

		ui.Success("Deleted persisted state of loop %s", config.ID)
		return nil
	},
}

func init() {
	Command.AddCommand(resetCmd)
}
