// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Dashboard DashboardConfig `toml:"dashboard"`
	Export    ExportConfig    `toml:"export"`
}

// DashboardConfig maps dashboard-related settings.
type DashboardConfig struct {
	Assessment       *string  `toml:"assessment"`
	View             *string  `toml:"view"`
	Sort             *string  `toml:"sort"`
	MaxValue         *float64 `toml:"max-value"`
	DurationMs       *int     `toml:"duration-ms"`
	FPS              *int     `toml:"fps"`
	BarEasing        *string  `toml:"bar-easing"`
	RadarEasing      *string  `toml:"radar-easing"`
	ResizeDebounceMs *int     `toml:"resize-debounce-ms"`
	ShortLabels      *bool    `toml:"short-labels"`
}

// ExportConfig maps HTML export settings.
type ExportConfig struct {
	Out     *string   `toml:"out"`
	Open    *bool     `toml:"open"`
	Title   *string   `toml:"title"`
	Compare *[]string `toml:"compare"`
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
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
