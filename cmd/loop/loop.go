package loop

import (
	"bytes"
	"fmt"

	"github.com/markusressel/pid2go/cmd/global"
	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var loopId string

var Command = &cobra.Command{
	Use:              "loop",
	Short:            "Control loop related commands",
	Long:             ``,
	TraverseChildren: true,
}

func init() {
	Command.PersistentFlags().StringVarP(
		&loopId,
		"id", "i",
		"",
		"Loop ID as specified in the config",
	)
}

func loadConfig() {
	configPath := configuration.DetectAndReadConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	err := configuration.Validate(configPath)
	if err != nil {
		ui.Fatal("%v", err)
	}
}

func getLoopConfig(id string) (configuration.LoopConfig, error) {
	if len(id) <= 0 {
		return configuration.LoopConfig{}, fmt.Errorf("missing loop id, use --id")
	}
	loadConfig()

	config, ok := configuration.FindLoop(id)
	if !ok {
		return configuration.LoopConfig{}, fmt.Errorf("no loop with id found: %s", id)
	}
	return config, nil
}

func inputType(config configuration.LoopConfig) string {
	switch {
	case config.Input.Simulated != nil:
		return "simulated"
	case config.Input.File != nil:
		return "file: " + config.Input.File.Path
	default:
		return "none"
	}
}

func outputType(config configuration.LoopConfig) string {
	if config.Output != nil && config.Output.File != nil {
		return "file: " + config.Output.File.Path
	}
	return "none"
}

func printTable(headers []string, rows [][]string) {
	tab := table.Table{
		Headers: headers,
		Rows:    rows,
	}
	var buf bytes.Buffer
	tableErr := tab.WriteTable(&buf, &table.Config{
		ShowIndex:       false,
		Color:           !global.NoColor,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	})
	if tableErr != nil {
		panic(tableErr)
	}
	ui.Printfln(buf.String())
}

func formatFloat(value float64) string {
	return fmt.Sprintf("%.4g", value)
}
