// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Playback PlaybackConfig `toml:"playback"`
	Speech   SpeechConfig   `toml:"speech"`
	Stats    StatsConfig    `toml:"stats"`
	UI       UIConfig       `toml:"ui"`
}

// PlaybackConfig maps playback-related settings.
type PlaybackConfig struct {
	Rate       *float64 `toml:"rate"`
	Target     *bool    `toml:"target"`
	SourceLang *string  `toml:"source-lang"`
	TargetLang *string  `toml:"target-lang"`
	TargetRate *float64 `toml:"target-rate"`
}

// SpeechConfig maps speech engine settings.
type SpeechConfig struct {
	Engine      *string `toml:"engine"`
	VoiceSource *string `toml:"voice-source"`
	VoiceTarget *string `toml:"voice-target"`
	WordsPerMin *int    `toml:"words-per-minute"`
}

// StatsConfig maps listen statistics settings.
type StatsConfig struct {
	Cap   *int `toml:"cap"`
	Slots *int `toml:"slots"`
}

// UIConfig maps interface settings.
type UIConfig struct {
	Theme *string `toml:"theme"`
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
