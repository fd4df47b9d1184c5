package emu

import (
	"errors"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	General GeneralConfig `toml:"general"`
	Video   VideoConfig   `toml:"video"`
	Debug   DebugConfig   `toml:"debug"`
}

type GeneralConfig struct {
	Log    []string `toml:"log"`    // modules with debug logging enabled
	Frames int      `toml:"frames"` // frames to run in headless mode
}

type VideoConfig struct {
	// Path to a .pal file (64 RGB triplets) replacing the built-in palette.
	Palette string `toml:"palette,omitempty"`
}

type DebugConfig struct {
	Trace   string `toml:"trace,omitempty"` // FILE|stdout|stderr
	Nestest bool   `toml:"nestest"`         // start nestest.nes in automation mode
}

const defaultFrames = 60

func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{Frames: defaultFrames},
	}
}

// LoadConfigOrDefault loads the configuration at path. A missing file gives
// the default configuration.
func LoadConfigOrDefault(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	if cfg.General.Frames <= 0 {
		cfg.General.Frames = defaultFrames
	}
	return cfg, nil
}

// SaveConfig writes cfg to path.
func SaveConfig(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
