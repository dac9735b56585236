package configuration

import (
	"os"
	"time"

	"github.com/markusressel/pid2go/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

type Configuration struct {
	DbPath string `json:"dbPath"`

	// Default interval between two updates of a loop
	ControllerTickRate time.Duration `json:"controllerTickRate"`
	// Interval in which controller states are written to the db
	StatePersistRate time.Duration `json:"statePersistRate"`
	// Number of output values kept per loop
	HistorySize int `json:"historySize"`

	Statistics StatisticsConfig `json:"statistics"`
	Api        ApiConfig        `json:"api"`
	Profiling  ProfilingConfig  `json:"profiling"`

	Loops []LoopConfig `json:"loops"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("pid2go")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/pid2go/")
	}

	viper.SetEnvPrefix("pid2go")
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues(viper.GetViper())
}

func setDefaultValues(v *viper.Viper) {
	v.SetDefault("dbPath", "/etc/pid2go/pid2go.db")
	v.SetDefault("controllerTickRate", 200*time.Millisecond)
	v.SetDefault("statePersistRate", 10*time.Second)
	v.SetDefault("historySize", 100)

	v.SetDefault("statistics.enabled", false)
	v.SetDefault("statistics.port", 9000)

	v.SetDefault("api.enabled", false)
	v.SetDefault("api.host", "localhost")
	v.SetDefault("api.port", 8080)

	v.SetDefault("profiling.enabled", false)
	v.SetDefault("profiling.host", "localhost")
	v.SetDefault("profiling.port", 6060)

	v.SetDefault("loops", []LoopConfig{})
}

// DetectAndReadConfigFile reads the config file found by InitConfig and returns its path.
func DetectAndReadConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		// config file is required, so we fail here
		ui.Fatal("Error reading config file, %s", err)
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed()
}

func LoadConfig() {
	err := decode(viper.GetViper(), &CurrentConfig)
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}

// FindLoop returns the configuration of the loop with the given id.
func FindLoop(id string) (LoopConfig, bool) {
	for _, loop := range CurrentConfig.Loops {
		if loop.ID == id {
			return loop, true
		}
	}
	return LoopConfig{}, false
}

func decode(v *viper.Viper, config *Configuration) error {
	return v.Unmarshal(config, viper.DecodeHook(decodeHooks()))
}
