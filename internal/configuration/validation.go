package configuration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/markusressel/pid2go/internal/ui"
	"golang.org/x/exp/slices"
)

func Validate(configPath string) error {
	return validateConfig(&CurrentConfig, configPath)
}

func validateConfig(config *Configuration, path string) error {
	if config.HistorySize <= 0 {
		return errors.New("historySize must be > 0")
	}
	if config.ControllerTickRate <= 0 {
		return errors.New("controllerTickRate must be > 0")
	}

	if len(config.Loops) <= 0 {
		ui.Warning("No loops configured in %s", path)
	}

	var loopIds []string
	for _, loopConfig := range config.Loops {
		if len(strings.TrimSpace(loopConfig.ID)) <= 0 {
			return errors.New("loop id must not be empty")
		}
		if slices.Contains(loopIds, loopConfig.ID) {
			return fmt.Errorf("duplicate loop id detected: %s", loopConfig.ID)
		}
		loopIds = append(loopIds, loopConfig.ID)

		if err := validateLoop(loopConfig); err != nil {
			return err
		}
	}

	return nil
}

func validateLoop(config LoopConfig) error {
	gains := config.Gains
	if !(gains.P >= 0) || !(gains.I >= 0) || !(gains.D >= 0) {
		return fmt.Errorf("loop %s: gains must be non-negative", config.ID)
	}
	if gains.P == 0 && gains.I == 0 && gains.D == 0 {
		ui.Warning("Loop %s: all gains are zero, output will always be zero", config.ID)
	}

	if config.TickRate < 0 {
		return fmt.Errorf("loop %s: tickRate must be positive", config.ID)
	}

	if config.Limit != nil && config.Limit.Min > config.Limit.Max {
		ui.Warning("Loop %s: limit %s has a lower bound greater than its upper bound", config.ID, config.Limit.Range())
	}

	if err := validateInput(config); err != nil {
		return err
	}

	if config.Output != nil {
		if config.Output.File == nil {
			return fmt.Errorf("loop %s: sub-configuration for output is missing, use one of: file", config.ID)
		}
		if len(config.Output.File.Path) <= 0 {
			return fmt.Errorf("loop %s: no output file path provided", config.ID)
		}
	}

	return nil
}

func validateInput(config LoopConfig) error {
	subConfigs := 0
	if config.Input.Simulated != nil {
		subConfigs++
	}
	if config.Input.File != nil {
		subConfigs++
	}
	if subConfigs > 1 {
		return fmt.Errorf("loop %s: only one input type can be used per loop definition block", config.ID)
	}
	if subConfigs <= 0 {
		return fmt.Errorf("loop %s: sub-configuration for input is missing, use one of: simulated | file", config.ID)
	}

	if simulated := config.Input.Simulated; simulated != nil {
		if simulated.TimeConstant <= 0 {
			return fmt.Errorf("loop %s: simulated input requires a positive timeConstant", config.ID)
		}
	}

	if file := config.Input.File; file != nil {
		if len(file.Path) <= 0 {
			return fmt.Errorf("loop %s: no input file path provided", config.ID)
		}
		if file.Scale < 0 {
			return fmt.Errorf("loop %s: input scale must not be negative", config.ID)
		}
	}

	return nil
}
