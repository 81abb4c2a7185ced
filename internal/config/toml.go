// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. All fields are
// pointers so an absent entry is distinguishable from a zero value.
type FileConfig struct {
	Timing   TimingConfig   `toml:"timing"`
	Device   DeviceConfig   `toml:"device"`
	Practice PracticeConfig `toml:"practice"`
}

// TimingConfig maps the keying timing constants.
type TimingConfig struct {
	UnitMs            *int     `toml:"unit"`
	CutoffUnits       *float64 `toml:"cutoff"`
	EndIdleUnits      *float64 `toml:"end-idle"`
	StartTimeoutSec   *int     `toml:"start-timeout"`
	ReleaseTimeoutSec *int     `toml:"release-timeout"`
	MinPressMs        *int     `toml:"min-press"`
	PollMs            *int     `toml:"poll"`
}

// DeviceConfig maps the input and output backend settings.
type DeviceConfig struct {
	Input      *string  `toml:"input"`
	Output     *string  `toml:"output"`
	KeyPin     *string  `toml:"key-pin"`
	BuzzerPin  *string  `toml:"buzzer-pin"`
	DebounceMs *int     `toml:"debounce"`
	HoldMs     *int     `toml:"hold"`
	ToneHz     *int     `toml:"tone"`
	VolumeDB   *float64 `toml:"volume"`
	Sidetone   *bool    `toml:"sidetone"`
}

// PracticeConfig maps practice-session settings.
type PracticeConfig struct {
	Charset     *string  `toml:"charset"`
	DrillFactor *float64 `toml:"drill-factor"`
	CurveWindow *int     `toml:"curve-window"`
	DebugKeying *bool    `toml:"debug-keying"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
