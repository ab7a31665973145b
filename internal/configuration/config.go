package configuration

import (
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/radioburst/catpower/internal/ui"
	"github.com/spf13/viper"
)

type DeviceConfig struct {
	// Address of the CAT server to connect to
	Address string `json:"address"`
	Port    int    `json:"port"`

	ConnectTimeout time.Duration `json:"connectTimeout"`
	// ReadTimeout bounds every single response read; an unresponsive
	// device blocks a control cycle for at most this long
	ReadTimeout time.Duration `json:"readTimeout"`
}

type ControllerConfig struct {
	PollingRate  time.Duration `json:"pollingRate"`
	ErrorBackoff time.Duration `json:"errorBackoff"`

	FrequencyQueryInterval time.Duration `json:"frequencyQueryInterval"`
	StabilizationPeriod    time.Duration `json:"stabilizationPeriod"`
	AdjustmentInterval     time.Duration `json:"adjustmentInterval"`

	// Deadband is the tolerance band around the target power (watts)
	// within which no adjustment is issued
	Deadband float64 `json:"deadband"`
	// StableTolerance is the max deviation from the target power (watts)
	// for a sample to qualify as stable
	StableTolerance float64 `json:"stableTolerance"`
	// TxPowerThreshold is the instantaneous power (watts) above which
	// the device is considered transmitting
	TxPowerThreshold float64 `json:"txPowerThreshold"`
	// PowerFallingRatio suppresses adjustments while the smoothed power
	// has dropped below this fraction of the last stable power
	PowerFallingRatio float64 `json:"powerFallingRatio"`

	PowerWindowSize int `json:"powerWindowSize"`
	SwrWindowSize   int `json:"swrWindowSize"`
}

type ApiConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
	// Key is the shared secret required to change the target power
	Key string `json:"key"`
}

type StatisticsConfig struct {
	Enabled bool `json:"enabled"`
	Port    int  `json:"port"`
}

type Configuration struct {
	Device DeviceConfig `json:"device"`

	// TargetPower is the initial target power in watts
	TargetPower int `json:"targetPower"`

	Controller ControllerConfig `json:"controller"`
	Api        ApiConfig        `json:"api"`
	Statistics StatisticsConfig `json:"statistics"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("catpower")

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
		viper.AddConfigPath("/etc/catpower/")
	}

	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("device.port", 13013)
	viper.SetDefault("device.connectTimeout", 10*time.Second)
	viper.SetDefault("device.readTimeout", 10*time.Second)

	viper.SetDefault("targetPower", 0)

	viper.SetDefault("controller.pollingRate", 100*time.Millisecond)
	viper.SetDefault("controller.errorBackoff", 1*time.Second)
	viper.SetDefault("controller.frequencyQueryInterval", 5*time.Second)
	viper.SetDefault("controller.stabilizationPeriod", 2500*time.Millisecond)
	viper.SetDefault("controller.adjustmentInterval", 500*time.Millisecond)
	viper.SetDefault("controller.deadband", 1.0)
	viper.SetDefault("controller.stableTolerance", 0.8)
	viper.SetDefault("controller.txPowerThreshold", 1.0)
	viper.SetDefault("controller.powerFallingRatio", 0.7)
	viper.SetDefault("controller.powerWindowSize", 8)
	viper.SetDefault("controller.swrWindowSize", 10)

	viper.SetDefault("api.host", "")
	viper.SetDefault("api.port", 8080)
	viper.SetDefault("api.key", "")

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)
}

// ReadConfigFile reads the detected config file and populates
// CurrentConfig. The config file is optional; defaults and environment
// variables alone are enough to run.
func ReadConfigFile() {
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			ui.Fatal("Error reading config file, %s", err)
		}
	} else {
		// this is only populated _after_ ReadInConfig()
		ui.Info("Using configuration file at: %s", viper.ConfigFileUsed())
	}

	LoadConfig()
}

func LoadConfig() {
	err := viper.Unmarshal(&CurrentConfig)
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}
